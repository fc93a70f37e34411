package appsvc

import (
	"github.com/coreward/activation-host/internal/domain/entry"
	"github.com/coreward/activation-host/internal/domain/ipc"
)

// specFromDescription translates the IPC-facing process description into
// the launch descriptor the Entry FSM understands.
func specFromDescription(desc ipc.ProcessDescription) entry.Spec {
	return entry.Spec{
		Command: desc.Command,
		Args:    append([]string(nil), desc.Args...),
		Dir:     desc.Dir,
		Env:     desc.Env,
	}
}

// containerInfoFrom translates the optional IPC container descriptor into
// the entry's container relationship (§3).
func containerInfoFrom(c *ipc.ContainerDescriptor) entry.ContainerInfo {
	if c == nil {
		return entry.ContainerInfo{}
	}
	return entry.ContainerInfo{
		IsContainerRoot: c.IsRoot,
		ParentIdentity:  c.ParentID,
	}
}
