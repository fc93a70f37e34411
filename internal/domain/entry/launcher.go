package entry

import (
	"context"
	"time"
)

// ActivationContext is the opaque handle the Launcher returns for a live
// child process or container; the core never inspects it, only threads it
// back into Terminate/Wait/Measure calls (see GLOSSARY).
type ActivationContext any

// Measurement is a cpu/memory sample for a live child.
type Measurement struct {
	// CPUPercent is instantaneous CPU utilization, 0-100 per core.
	CPUPercent float64
	// MemoryBytes is resident memory usage.
	MemoryBytes int64
}

// Launcher is the process-launcher port consumed by the core (§6.2); only
// the interface the core programs against belongs here. Its concrete
// adapter is internal/infrastructure/launcher.OSLauncher.
type Launcher interface {
	// Launch creates an OS child (or container) per spec and returns its
	// pid plus an opaque activation context.
	Launch(ctx context.Context, spec Spec) (pid int, actx ActivationContext, err error)
	// Terminate asks the child to stop; graceful requests a friendly
	// signal first, false forces immediate termination.
	Terminate(ctx context.Context, actx ActivationContext, graceful bool) error
	// Reconfigure applies an in-place update (resource limits / TLS
	// thumbprint) to a live child without recreating it.
	Reconfigure(ctx context.Context, actx ActivationContext, spec Spec) error
	// Wait returns a channel that delivers the child's exit code once,
	// when the child exits.
	Wait(actx ActivationContext) <-chan int
	// Measure samples the child's current resource usage.
	Measure(ctx context.Context, actx ActivationContext) (Measurement, error)
}

// defaultActivateTimeout and defaultDeactivateTimeout are the fallbacks used
// when a caller passes a non-positive timeout, so a forgotten deadline
// cannot block an operation forever.
const (
	defaultActivateTimeout   = 30 * time.Second
	defaultDeactivateTimeout = 30 * time.Second
)

func timeoutOrDefault(timeout, fallback time.Duration) time.Duration {
	if timeout <= 0 {
		return fallback
	}
	return timeout
}
