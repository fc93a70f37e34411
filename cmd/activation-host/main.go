// Package main provides the entry point for the process activation and
// supervision host. It manages hosted and requester-owned application
// services on a single node, exposing an IPC control plane and a gRPC
// health/introspection endpoint.
package main

import (
	"os"

	"github.com/coreward/activation-host/internal/bootstrap"
)

func main() {
	defer bootstrap.RecoverInvariant()
	os.Exit(bootstrap.Run(os.Args[1:]))
}
