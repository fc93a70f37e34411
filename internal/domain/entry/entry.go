package entry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/coreward/activation-host/internal/domain/runstats"
	"github.com/coreward/activation-host/internal/domain/shared"
)

// Kind distinguishes hosted from application-service entries. The FSM
// shape (state.go) is identical for both; Kind only gates which
// operations are meaningful (hosted entries may Update, container
// entries track a parent).
type Kind int

// Entry kinds.
const (
	// KindHosted is a declaratively-configured runtime daemon.
	KindHosted Kind = iota
	// KindApplication is a dynamically-requested tenant workload.
	KindApplication
)

// ContainerInfo is carried by application entries that are container
// roots or container children (§3).
type ContainerInfo struct {
	// IsContainerRoot marks an entry that owns dependent container
	// children sharing its network/namespace.
	IsContainerRoot bool
	// ParentIdentity references the container-root entry's identity,
	// set only on container-child entries.
	ParentIdentity string
}

// Entry is one supervised service: a plain record carrying its own FSM
// state, launch descriptor, and run statistics, guarded by a single
// per-entry lock (see DESIGN.md for why this replaces the source's
// shared_ptr/back-reference graph with owned state plus a looked-up-by-key
// identity).
type Entry struct {
	mu sync.Mutex

	identity string
	kind     Kind
	launcher Launcher

	state State
	spec  Spec

	actx ActivationContext
	pid  int

	stats *runstats.RunStats

	container ContainerInfo

	// disabled is set once the backoff scheduler exhausts the failure
	// budget (§4.2); a disabled entry is never rescheduled.
	disabled bool

	publish func(Event)
}

// New constructs an Inactive entry bound to the given identity, kind, and
// launcher. publish, if non-nil, receives every completed transition.
//
// Params:
//   - identity: the entry's stable key.
//   - kind: hosted or application.
//   - spec: the launch descriptor.
//   - launcher: the process-launcher port.
//   - publish: optional event sink.
//
// Returns:
//   - *Entry: a new entry in the Inactive state.
func New(identity string, kind Kind, spec Spec, launcher Launcher, publish func(Event)) *Entry {
	if publish == nil {
		publish = func(Event) {}
	}
	return &Entry{
		identity: identity,
		kind:     kind,
		launcher: launcher,
		state:    Inactive,
		spec:     spec,
		stats:    &runstats.RunStats{},
		publish:  publish,
	}
}

// NewWithStats constructs an Inactive entry like New, but carries forward
// an existing RunStats instead of starting from zero counters. The
// hosted-service supervisor uses this when replacing a terminal
// (Stopped) entry with a fresh one after an unplanned exit, so the
// continuous-failure counters driving §4.2's backoff formula survive
// across the entry replacement that Stopped's terminality forces (§3:
// "an FSM in a terminal state is never re-used").
func NewWithStats(identity string, kind Kind, spec Spec, launcher Launcher, publish func(Event), stats *runstats.RunStats) *Entry {
	e := New(identity, kind, spec, launcher, publish)
	if stats != nil {
		e.stats = stats
	}
	return e
}

// Identity returns the entry's stable key.
func (e *Entry) Identity() string { return e.identity }

// Kind returns whether this is a hosted or application entry.
func (e *Entry) Kind() Kind { return e.kind }

// State returns the current FSM state.
func (e *Entry) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Stats returns the entry's run statistics. The returned pointer must
// only be read, never mutated, outside the entry's own lock.
func (e *Entry) Stats() *runstats.RunStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// Spec returns the entry's current launch descriptor.
func (e *Entry) Spec() Spec {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.spec
}

// Disabled reports whether the backoff scheduler has permanently
// disabled this entry.
func (e *Entry) Disabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.disabled
}

// Container returns the entry's container relationship descriptor.
func (e *Entry) Container() ContainerInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.container
}

// SetContainer records the entry's container relationship. Called once
// at construction by the application-service supervisor; not part of the
// FSM itself.
func (e *Entry) SetContainer(info ContainerInfo) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.container = info
}

// transitionLocked moves the entry from its current state to to, subject
// to the shared transition table, and publishes the resulting event. The
// caller must hold e.mu.
func (e *Entry) transitionLocked(to State, trigger Trigger, exitCode int, err error) error {
	from := e.state
	if trigger == TriggerAbort {
		if !canAbort(from) {
			return fmt.Errorf("%w: cannot abort from %s", shared.ErrInvalidState, from)
		}
	} else if !canTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s not allowed", shared.ErrInvalidState, from, to)
	}
	e.state = to
	e.publish(newEvent(e.identity, from, to, trigger, e.pid, exitCode, err))
	return nil
}

// Activate transitions Inactive -> Starting, calls the launcher, and on
// success transitions to Started and returns the child's pid. On failure
// it transitions to Failed and returns a typed error.
//
// Params:
//   - ctx: caller context; cancelled on the operation's deadline.
//   - timeout: explicit deadline; non-positive falls back to a default.
//
// Returns:
//   - int: the OS process id on success.
//   - error: shared.ErrInvalidState if not Inactive; shared.ErrTimeout
//     on deadline expiry; shared.ErrLauncherFailure wrapping the launcher's
//     error otherwise.
func (e *Entry) Activate(ctx context.Context, timeout time.Duration) (int, error) {
	e.mu.Lock()
	if e.disabled {
		e.mu.Unlock()
		return 0, shared.ErrDisabled
	}
	if err := e.transitionLocked(Starting, TriggerActivate, 0, nil); err != nil {
		e.mu.Unlock()
		return 0, err
	}
	spec := e.spec
	e.mu.Unlock()

	activateCtx, cancel := context.WithTimeout(ctx, timeoutOrDefault(timeout, defaultActivateTimeout))
	defer cancel()

	pid, actx, err := e.launcher.Launch(activateCtx, spec)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.stats.UpdateActivation(err == nil)

	if err != nil {
		failErr := classifyLaunchError(activateCtx, err)
		_ = e.transitionLocked(Failed, TriggerLauncherError, 0, failErr)
		return 0, failErr
	}

	e.pid = pid
	e.actx = actx
	if err := e.transitionLocked(Started, TriggerLauncherRunning, 0, nil); err != nil {
		return 0, err
	}
	return pid, nil
}

// classifyLaunchError turns a launcher error into the appropriate §7
// error kind, distinguishing a caller-deadline expiry from a genuine
// launcher failure.
func classifyLaunchError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", shared.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", shared.ErrLauncherFailure, err)
}

// Deactivate transitions Started -> Stopping -> Stopped. graceful=false
// bypasses friendly termination and forces a kill immediately.
//
// Params:
//   - ctx: caller context.
//   - graceful: whether to attempt friendly termination first.
//   - timeout: explicit deadline; non-positive falls back to a default.
//
// Returns:
//   - error: shared.ErrInvalidState if not Started; shared.ErrTimeout if
//     graceful termination did not complete in time (the entry is then
//     escalated to a forced kill internally, matching seed scenario 5).
func (e *Entry) Deactivate(ctx context.Context, graceful bool, timeout time.Duration) error {
	e.mu.Lock()
	if err := e.transitionLocked(Stopping, TriggerDeactivate, 0, nil); err != nil {
		e.mu.Unlock()
		return err
	}
	actx := e.actx
	e.mu.Unlock()

	deadline := timeoutOrDefault(timeout, defaultDeactivateTimeout)
	stopCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	err := e.launcher.Terminate(stopCtx, actx, graceful)
	var timedOut bool
	if err != nil && stopCtx.Err() != nil {
		timedOut = true
		// Escalate: forced kill with its own short budget, independent
		// of the caller's now-expired deadline.
		forceCtx, forceCancel := context.WithTimeout(context.Background(), defaultDeactivateTimeout)
		err = e.launcher.Terminate(forceCtx, actx, false)
		forceCancel()
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		failErr := fmt.Errorf("%w: %v", shared.ErrLauncherFailure, err)
		_ = e.transitionLocked(Failed, TriggerTeardownError, 0, failErr)
		return failErr
	}
	if transErr := e.transitionLocked(Stopped, TriggerTeardownComplete, 0, nil); transErr != nil {
		return transErr
	}
	if timedOut {
		return shared.ErrTimeout
	}
	return nil
}

// Abort forces teardown from any state but Aborted itself, skipping
// friendly termination. Started, Stopped, and Failed (along with every
// non-terminal state) all accept it; only an already-Aborted entry
// rejects the call.
//
// Returns:
//   - error: shared.ErrInvalidState if already Aborted.
func (e *Entry) Abort(ctx context.Context) error {
	e.mu.Lock()
	if e.state == Aborted {
		e.mu.Unlock()
		return fmt.Errorf("%w: already %s", shared.ErrInvalidState, e.state)
	}
	actx := e.actx
	active := e.state.IsActive()
	if err := e.transitionLocked(Aborted, TriggerAbort, 0, nil); err != nil {
		e.mu.Unlock()
		return err
	}
	e.mu.Unlock()

	if active && actx != nil {
		forceCtx, cancel := context.WithTimeout(ctx, defaultDeactivateTimeout)
		defer cancel()
		_ = e.launcher.Terminate(forceCtx, actx, false)
	}
	return nil
}

// Update reconfigures a live hosted entry in place, per §4.3: valid only
// from Started, and only when next.UpdatableInPlace(spec) holds against
// the entry's current spec. Callers that need a full restart should
// Deactivate then Activate instead of calling Update.
//
// Params:
//   - ctx: caller context.
//   - next: the candidate replacement launch descriptor.
//
// Returns:
//   - error: shared.ErrInvalidState if not Started or not update-compatible;
//     shared.ErrLauncherFailure if the live reconfigure call fails.
func (e *Entry) Update(ctx context.Context, next Spec) error {
	e.mu.Lock()
	if e.state != Started {
		e.mu.Unlock()
		return fmt.Errorf("%w: update requires Started, got %s", shared.ErrInvalidState, e.state)
	}
	if !e.spec.UpdatableInPlace(next) {
		e.mu.Unlock()
		return fmt.Errorf("%w: spec change is not updatable in place", shared.ErrInvalidState)
	}
	if err := e.transitionLocked(Updating, TriggerUpdate, 0, nil); err != nil {
		e.mu.Unlock()
		return err
	}
	actx := e.actx
	e.mu.Unlock()

	err := e.launcher.Reconfigure(ctx, actx, next)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		failErr := fmt.Errorf("%w: %v", shared.ErrLauncherFailure, err)
		_ = e.transitionLocked(Failed, TriggerUpdateError, 0, failErr)
		return failErr
	}
	e.spec = next
	return e.transitionLocked(Started, TriggerUpdateComplete, 0, nil)
}

// OnProcessTerminated is the edge-triggered callback the launcher fires
// when the child exits. In Started it transitions to Stopped; in
// Stopping it completes the in-flight deactivate; in any other state the
// exit is recorded in RunStats and otherwise ignored.
//
// Params:
//   - exitCode: the exit code reported by the launcher.
func (e *Entry) OnProcessTerminated(exitCode int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stats.UpdateExit(exitCode)

	switch e.state {
	case Started:
		_ = e.transitionLocked(Stopping, TriggerProcessExited, exitCode, nil)
		_ = e.transitionLocked(Stopped, TriggerTeardownComplete, exitCode, nil)
	case Stopping:
		_ = e.transitionLocked(Stopped, TriggerTeardownComplete, exitCode, nil)
	default:
		// Recorded in RunStats above; no transition from Inactive,
		// Starting, Updating, Failed, Stopped, or Aborted.
	}
}

// GetProcessID returns the last known child pid.
//
// Returns:
//   - int: the process id.
//   - error: shared.ErrNotFound unless the entry is Started.
func (e *Entry) GetProcessID() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Started {
		return 0, fmt.Errorf("%w: entry is %s, not started", shared.ErrNotFound, e.state)
	}
	return e.pid, nil
}

// MeasureResourceUsage reads the child's current cpu/memory sample via
// the launcher; only valid in Started.
//
// Returns:
//   - Measurement: the cpu/memory sample.
//   - error: shared.ErrInvalidState unless Started.
func (e *Entry) MeasureResourceUsage(ctx context.Context) (Measurement, error) {
	e.mu.Lock()
	if e.state != Started {
		e.mu.Unlock()
		return Measurement{}, fmt.Errorf("%w: entry is %s, not started", shared.ErrInvalidState, e.state)
	}
	actx := e.actx
	e.mu.Unlock()
	return e.launcher.Measure(ctx, actx)
}

// MarkDisabled permanently disables the entry so the backoff scheduler
// never reschedules it again (§4.2: failure count exceeded threshold).
func (e *Entry) MarkDisabled() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.disabled = true
}
