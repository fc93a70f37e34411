// Package grpc provides the host's local liveness/readiness endpoint: a
// standard gRPC health service (§4.8) whose per-service serving status
// doubles as introspection — each hosted or application service entry
// gets its own watchable service name, so a client can grpc_health_v1.Watch
// any individual entry instead of only the aggregate daemon status.
package grpc

import (
	"errors"
	"fmt"
	"net"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// OverallServiceName is the health service name reporting aggregate host
// readiness (the empty string is the standard "whole server" name the
// health protocol reserves; this constant keeps call sites explicit).
const OverallServiceName string = ""

// ErrServerAlreadyRunning indicates the server is already running.
var ErrServerAlreadyRunning error = errors.New("server already running")

// Server hosts the standard gRPC health service and nothing else: the
// control-plane IPC itself is a transport-agnostic dispatcher (see
// internal/infrastructure/transport/ipcsocket), not a gRPC service.
type Server struct {
	grpcServer   *grpc.Server
	healthServer *health.Server

	mu       sync.Mutex
	listener net.Listener
	running  bool
}

// NewServer constructs a Server with the aggregate health status set to
// SERVING immediately; it flips to NOT_SERVING only once Stop is called.
func NewServer() *Server {
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()

	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(OverallServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{grpcServer: grpcServer, healthServer: healthServer}
}

// Serve starts the gRPC server on address, blocking until Stop is called
// or the listener fails.
func (s *Server) Serve(address string) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("serve: %w", ErrServerAlreadyRunning)
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("listen: %w", err)
	}

	s.listener = listener
	s.running = true
	s.mu.Unlock()

	return s.grpcServer.Serve(listener)
}

// Stop gracefully stops the gRPC server, marking the aggregate and every
// per-entry status NOT_SERVING first so in-flight Watch streams observe
// the transition.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.healthServer.Shutdown()
	s.grpcServer.GracefulStop()
	s.running = false
}

// Address returns the server's listening address, or empty if not running.
func (s *Server) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// SetEntryHealthy reports name as SERVING or NOT_SERVING, giving callers
// outside this package a per-entry health/introspection signal without
// exposing the underlying grpc_health_v1 types.
func (s *Server) SetEntryHealthy(name string, healthy bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if healthy {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	s.healthServer.SetServingStatus(name, status)
}

// RemoveEntry marks name NOT_SERVING, the closest the health protocol
// offers to removing a service once its backing entry is gone.
func (s *Server) RemoveEntry(name string) {
	s.healthServer.SetServingStatus(name, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
}
