// Package launcher provides the concrete entry.Launcher adapter (§6.2):
// it spawns and supervises OS child processes via os/exec, wrapping
// credential resolution, process-group signaling, and resource-usage
// sampling behind the domain-facing port.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/coreward/activation-host/internal/domain/entry"
	"github.com/coreward/activation-host/internal/domain/shared"
)

// CredentialResolver resolves a user/group principal to OS-level
// identifiers, mirroring the teacher's credentials.CredentialManager port.
type CredentialResolver interface {
	ResolveCredentials(username, groupname string) (uid, gid uint32, err error)
}

// handle is the ActivationContext this launcher hands back to the core;
// it carries everything Terminate/Wait/Measure/Reconfigure need without
// requiring the core to understand *exec.Cmd.
type handle struct {
	cmd    *exec.Cmd
	pid    int
	waitCh chan int
}

// OSLauncher implements entry.Launcher by shelling out through os/exec.
type OSLauncher struct {
	credentials CredentialResolver
}

// New constructs an OSLauncher. credentials may be nil; specs without a
// Principal never consult it.
func New(credentials CredentialResolver) *OSLauncher {
	return &OSLauncher{credentials: credentials}
}

// Launch starts spec.Command as a child process in its own process
// group, so a later graceful Terminate can signal the whole group.
func (l *OSLauncher) Launch(ctx context.Context, spec entry.Spec) (int, entry.ActivationContext, error) {
	if strings.TrimSpace(spec.Command) == "" {
		return 0, nil, shared.ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, spec.Command, spec.Args...)
	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}
	cmd.Env = os.Environ()
	for k, v := range spec.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	setProcessGroup(cmd)

	if spec.Principal != nil {
		if err := l.applyPrincipal(cmd, spec.Principal); err != nil {
			return 0, nil, fmt.Errorf("%w: %v", shared.ErrLauncherFailure, err)
		}
	}

	if err := cmd.Start(); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", shared.ErrLauncherFailure, err)
	}

	if spec.Limits != nil {
		applyResourceLimits(cmd.Process.Pid, spec.Limits)
	}

	h := &handle{cmd: cmd, pid: cmd.Process.Pid, waitCh: make(chan int, 1)}
	go l.awaitExit(h)

	return h.pid, h, nil
}

func (l *OSLauncher) applyPrincipal(cmd *exec.Cmd, principal *entry.Principal) error {
	if l.credentials == nil {
		return fmt.Errorf("no credential resolver configured")
	}
	uid, gid, err := l.credentials.ResolveCredentials(principal.User, principal.Group)
	if err != nil {
		return err
	}
	applyCredentials(cmd, uid, gid)
	return nil
}

func (l *OSLauncher) awaitExit(h *handle) {
	err := h.cmd.Wait()
	code := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		} else {
			code = -1
		}
	}
	h.waitCh <- code
	close(h.waitCh)
}

// Terminate signals the child's process group: SIGTERM when graceful,
// SIGKILL otherwise. It returns once the signal is sent and does not wait
// for the child to exit; entry.Entry.Deactivate falls back to a forced
// Terminate only when this call returns an error after its deadline has
// passed.
func (l *OSLauncher) Terminate(ctx context.Context, actx entry.ActivationContext, graceful bool) error {
	h, ok := actx.(*handle)
	if !ok || h == nil {
		return fmt.Errorf("%w: invalid activation context", shared.ErrInvalidArgument)
	}

	sig := syscall.SIGKILL
	if graceful {
		sig = syscall.SIGTERM
	}
	if err := signalGroup(h.pid, sig); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrLauncherFailure, err)
	}
	return nil
}

// Reconfigure applies an in-place resource-limit or TLS-thumbprint
// update. TLS thumbprints are consumed by collaborators outside this
// launcher's scope (§1); only resource limits are actionable here.
func (l *OSLauncher) Reconfigure(ctx context.Context, actx entry.ActivationContext, spec entry.Spec) error {
	h, ok := actx.(*handle)
	if !ok || h == nil {
		return fmt.Errorf("%w: invalid activation context", shared.ErrInvalidArgument)
	}
	if spec.Limits != nil {
		applyResourceLimits(h.pid, spec.Limits)
	}
	return nil
}

// Wait returns the channel the launched child's exit code is delivered
// on exactly once.
func (l *OSLauncher) Wait(actx entry.ActivationContext) <-chan int {
	h, ok := actx.(*handle)
	if !ok || h == nil {
		ch := make(chan int, 1)
		ch <- -1
		close(ch)
		return ch
	}
	return h.waitCh
}

// Measure samples the child's instantaneous resource usage via the
// platform-specific sampler (see measure_linux.go / measure_other.go).
func (l *OSLauncher) Measure(ctx context.Context, actx entry.ActivationContext) (entry.Measurement, error) {
	h, ok := actx.(*handle)
	if !ok || h == nil {
		return entry.Measurement{}, fmt.Errorf("%w: invalid activation context", shared.ErrInvalidArgument)
	}
	return sampleUsage(h.pid)
}
