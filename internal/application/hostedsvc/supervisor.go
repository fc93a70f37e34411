// Package hostedsvc implements the hosted-service supervisor (§4.3): it
// owns every declaratively-configured service, drives each through the
// Entry FSM, and reschedules or permanently disables a service according
// to the RunStats backoff policy when its child exits unexpectedly.
package hostedsvc

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/coreward/activation-host/internal/domain/config"
	"github.com/coreward/activation-host/internal/domain/entry"
	"github.com/coreward/activation-host/internal/domain/registry"
	"github.com/coreward/activation-host/internal/domain/runstats"
	"github.com/coreward/activation-host/internal/domain/shared"
	"github.com/coreward/activation-host/internal/domain/storage"
)

// Settings carries the §6.3 tunables that govern hosted-service
// activation timeouts and the backoff scheduler.
type Settings struct {
	// StartTimeout bounds a single Activate call.
	StartTimeout time.Duration
	// StopTimeout bounds Close's parallel teardown of every entry.
	StopTimeout time.Duration
	// BackoffInterval, MaxRetryInterval, and MaxFailureCount feed
	// runstats.Policy directly.
	BackoffInterval  time.Duration
	MaxRetryInterval time.Duration
	MaxFailureCount  int
	// ContinuousExitFailureResetInterval is the uptime threshold after
	// which an entry's failure history is discounted (§4.2's reset
	// window).
	ContinuousExitFailureResetInterval time.Duration
}

// DefaultSettings returns conservative defaults matching the values used
// in seed scenario 2.
func DefaultSettings() Settings {
	return Settings{
		StartTimeout:                       30 * time.Second,
		StopTimeout:                        30 * time.Second,
		BackoffInterval:                    2 * time.Second,
		MaxRetryInterval:                   60 * time.Second,
		MaxFailureCount:                    3,
		ContinuousExitFailureResetInterval: 5 * time.Minute,
	}
}

func (s Settings) policy() runstats.Policy {
	return runstats.Policy{
		BackoffInterval:  s.BackoffInterval,
		MaxRetryInterval: s.MaxRetryInterval,
		MaxFailureCount:  s.MaxFailureCount,
	}
}

// Errors specific to the hosted-service supervisor.
var (
	// ErrAlreadyRunning is returned by Open when called twice.
	ErrAlreadyRunning error = fmt.Errorf("hosted supervisor already running")
)

// Supervisor owns every hosted entry and reschedules or disables it on
// exit (§4.2, §4.3).
type Supervisor struct {
	mu sync.Mutex

	reg      *registry.Registry
	launcher entry.Launcher
	settings Settings
	log      zerolog.Logger
	store    storage.RunStatsStore

	// timers holds the pending reactivation timer for each entry
	// identity currently scheduled for restart.
	timers map[string]*time.Timer

	opened bool
}

// New constructs a hosted-service supervisor bound to reg and launcher,
// with no RunStats persistence: every entry starts from zero counters
// across a host restart. A zero-value zerolog.Logger discards all output.
func New(reg *registry.Registry, launcher entry.Launcher, settings Settings, log zerolog.Logger) *Supervisor {
	return NewWithStore(reg, launcher, settings, log, nil)
}

// NewWithStore constructs a hosted-service supervisor that seeds each
// entry's RunStats from store on Open and keeps store updated as the
// backoff scheduler reschedules or disables entries (§6.5). A nil store
// behaves exactly like New.
func NewWithStore(reg *registry.Registry, launcher entry.Launcher, settings Settings, log zerolog.Logger, store storage.RunStatsStore) *Supervisor {
	return &Supervisor{
		reg:      reg,
		launcher: launcher,
		settings: settings,
		log:      log,
		store:    store,
		timers:   make(map[string]*time.Timer),
	}
}

// Open enumerates the declared services, creates one entry per service,
// and activates all of them concurrently.
//
// Returns:
//   - error: ErrAlreadyRunning if Open was already called; otherwise the
//     first activation failure encountered (other entries still end up
//     Started or Failed independently — Open does not roll them back).
func (s *Supervisor) Open(ctx context.Context, services []config.ServiceConfig) error {
	s.mu.Lock()
	if s.opened {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.opened = true
	s.mu.Unlock()

	persisted := s.loadPersistedStats(ctx)

	for i := range services {
		svc := &services[i]
		e := s.newEntryWithPersistedStats(svc, persisted)
		if err := s.reg.InsertHosted(svc.Name, e); err != nil {
			return fmt.Errorf("register hosted service %s: %w", svc.Name, err)
		}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, name := range s.reg.HostedNames() {
		name := name
		group.Go(func() error {
			return s.activate(groupCtx, name)
		})
	}
	return group.Wait()
}

// loadPersistedStats retrieves every RunStats record the store has for
// hosted services, used once at Open to seed declared entries across a
// restart of the host process itself (§6.5). A nil store or a read
// failure yields an empty map, so Open always proceeds with fresh
// counters rather than failing outright.
func (s *Supervisor) loadPersistedStats(ctx context.Context) map[string]storage.RunStatsRecord {
	if s.store == nil {
		return nil
	}
	records, err := s.store.LoadAll(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to load persisted run stats")
		return nil
	}
	return records
}

// newEntryWithPersistedStats builds the entry for svc, carrying forward
// its RunStats and disabled flag if persisted records a prior run.
func (s *Supervisor) newEntryWithPersistedStats(svc *config.ServiceConfig, persisted map[string]storage.RunStatsRecord) *entry.Entry {
	record, ok := persisted[svc.Name]
	if !ok {
		return entry.New(svc.Name, entry.KindHosted, specFromService(svc), s.launcher, s.handleEvent)
	}

	stats := record.Stats
	e := entry.NewWithStats(svc.Name, entry.KindHosted, specFromService(svc), s.launcher, s.handleEvent, &stats)
	if record.Disabled {
		e.MarkDisabled()
	}
	return e
}

// persistStats saves identity's current stats and disabled flag to the
// store, a no-op when no store was configured.
func (s *Supervisor) persistStats(identity string, stats *runstats.RunStats, disabled bool) {
	if s.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	record := storage.RunStatsRecord{Stats: *stats, Disabled: disabled}
	if err := s.store.Save(ctx, identity, record); err != nil {
		s.log.Warn().Str("service", identity).Err(err).Msg("failed to persist run stats")
	}
}

// forgetStats removes identity's persisted record, a no-op when no store
// was configured.
func (s *Supervisor) forgetStats(identity string) {
	if s.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.Delete(ctx, identity); err != nil {
		s.log.Warn().Str("service", identity).Err(err).Msg("failed to delete persisted run stats")
	}
}

// activate looks up name and runs Entry.Activate with the configured
// start timeout, logging but not propagating failure for entries other
// than the caller's own.
func (s *Supervisor) activate(ctx context.Context, name string) error {
	e, err := s.reg.LookupHosted(name)
	if err != nil {
		return err
	}
	// An entry restored as disabled stays registered but is not launched.
	if e.Disabled() {
		return nil
	}
	if _, err := e.Activate(ctx, s.settings.StartTimeout); err != nil {
		s.log.Error().Str("service", name).Err(err).Msg("hosted service activation failed")
		return err
	}
	return nil
}

// handleEvent is installed as every hosted entry's publish callback. It
// watches for an unplanned process exit (entry.TriggerProcessExited,
// which only Entry.OnProcessTerminated emits — a user-initiated
// Deactivate never produces it) and arms the backoff scheduler.
func (s *Supervisor) handleEvent(ev entry.Event) {
	if ev.Trigger != entry.TriggerProcessExited {
		return
	}
	// transitionLocked publishes while still holding the entry's own
	// lock, so any call back into the entry (Stats, Spec, ...) must
	// happen off this goroutine to avoid self-deadlock.
	go s.scheduleReactivation(ev.Identity)
}

// scheduleReactivation computes the next due-time from RunStats and
// either arms a timer to reactivate the entry or permanently disables it
// once the failure budget is exhausted (§4.2). The exiting entry has
// already reached Stopped — a terminal state — so reactivation replaces
// it with a fresh entry carrying the same RunStats forward (§3: "an FSM
// in a terminal state is never re-used").
func (s *Supervisor) scheduleReactivation(identity string) {
	e, err := s.reg.LookupHosted(identity)
	if err != nil {
		// Removed (e.g. by a concurrent settings-change deletion)
		// between the exit and this callback; nothing to reschedule.
		return
	}

	stats := e.Stats()
	stats.MaybeResetOnUptime(uptimeSince(stats), s.settings.ContinuousExitFailureResetInterval)

	now := time.Now()
	due, shouldReschedule := runstats.NextDueTime(stats, s.settings.policy(), now)
	if !shouldReschedule {
		e.MarkDisabled()
		s.persistStats(identity, stats, true)
		s.log.Warn().Str("service", identity).Msg("hosted service disabled: failure budget exceeded")
		return
	}
	s.persistStats(identity, stats, false)

	spec := e.Spec()
	delay := due.Sub(now)

	s.mu.Lock()
	if old, ok := s.timers[identity]; ok {
		old.Stop()
	}
	s.timers[identity] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, identity)
		s.mu.Unlock()
		s.reactivate(identity, spec, stats)
	})
	s.mu.Unlock()
}

// reactivate replaces the terminal entry at identity with a fresh one
// carrying stats forward, then activates it.
func (s *Supervisor) reactivate(identity string, spec entry.Spec, stats *runstats.RunStats) {
	if _, err := s.reg.RemoveHosted(identity); err != nil {
		return
	}
	fresh := entry.NewWithStats(identity, entry.KindHosted, spec, s.launcher, s.handleEvent, stats)
	if err := s.reg.InsertHosted(identity, fresh); err != nil {
		s.log.Error().Str("service", identity).Err(err).Msg("hosted service re-registration failed")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.settings.StartTimeout)
	defer cancel()
	if _, err := fresh.Activate(ctx, s.settings.StartTimeout); err != nil {
		s.log.Error().Str("service", identity).Err(err).Msg("hosted service restart failed")
	}
}

// uptimeSince reports how long the entry's last activation has been
// running, used to decide whether the failure-count reset window (§4.2)
// applies.
func uptimeSince(stats *runstats.RunStats) time.Duration {
	if stats.LastSuccessfulActivationTime.IsZero() {
		return 0
	}
	return time.Since(stats.LastSuccessfulActivationTime)
}

// ActivateHostedService implements the IPC-facing activate operation
// (§4.3): insert-or-noop, then start. A Failed entry has no outgoing
// transition to Starting (the table gives it none), so it is replaced by
// a fresh entry carrying its RunStats forward — the same
// remove/construct/insert/activate sequence reactivate uses — rather
// than activated in place.
func (s *Supervisor) ActivateHostedService(ctx context.Context, svc *config.ServiceConfig) (int, error) {
	e, err := s.reg.LookupHosted(svc.Name)
	if err != nil {
		e = entry.New(svc.Name, entry.KindHosted, specFromService(svc), s.launcher, s.handleEvent)
		if insertErr := s.reg.InsertHosted(svc.Name, e); insertErr != nil {
			return 0, insertErr
		}
		return e.Activate(ctx, s.settings.StartTimeout)
	}

	if e.State() == entry.Failed {
		s.cancelPendingReactivation(svc.Name)
		stats := e.Stats()
		if _, err := s.reg.RemoveHosted(svc.Name); err != nil {
			return 0, err
		}
		fresh := entry.NewWithStats(svc.Name, entry.KindHosted, specFromService(svc), s.launcher, s.handleEvent, stats)
		if err := s.reg.InsertHosted(svc.Name, fresh); err != nil {
			return 0, err
		}
		e = fresh
	}
	return e.Activate(ctx, s.settings.StartTimeout)
}

// DeactivateHostedService locates the entry by name and stops it
// gracefully.
func (s *Supervisor) DeactivateHostedService(ctx context.Context, name string) error {
	e, err := s.reg.LookupHosted(name)
	if err != nil {
		return err
	}
	s.cancelPendingReactivation(name)
	return e.Deactivate(ctx, true, s.settings.StopTimeout)
}

// HostedNames returns the set of currently registered hosted service
// names, used by the settings watcher (§4.7) to diff the declared set
// against what is actually running without holding any lock of its own
// across the comparison.
func (s *Supervisor) HostedNames() []string {
	return s.reg.HostedNames()
}

// RemoveHostedService deactivates and removes a hosted entry no longer
// present in the declared configuration (§4.7 step 2).
func (s *Supervisor) RemoveHostedService(ctx context.Context, name string) error {
	s.cancelPendingReactivation(name)
	e, err := s.reg.LookupHosted(name)
	if err != nil {
		return err
	}
	if e.State() == entry.Started {
		if err := e.Deactivate(ctx, true, s.settings.StopTimeout); err != nil && !errors.Is(err, shared.ErrTimeout) {
			return err
		}
	}
	if _, err := s.reg.RemoveHosted(name); err != nil {
		return err
	}
	s.forgetStats(name)
	return nil
}

// Update applies an in-place reconfiguration when only the
// updatable-in-place subset differs (§4.3). Otherwise it performs a full
// restart: Stopped is a terminal state (§3's invariant), so the existing
// entry is torn down and replaced by a fresh one carrying the new spec
// rather than reactivated in place.
func (s *Supervisor) Update(ctx context.Context, svc *config.ServiceConfig) error {
	e, err := s.reg.LookupHosted(svc.Name)
	if err != nil {
		return err
	}
	next := specFromService(svc)
	if e.Spec().UpdatableInPlace(next) {
		return e.Update(ctx, next)
	}

	s.cancelPendingReactivation(svc.Name)
	if err := e.Deactivate(ctx, true, s.settings.StopTimeout); err != nil && !errors.Is(err, shared.ErrTimeout) {
		return err
	}
	if _, err := s.reg.RemoveHosted(svc.Name); err != nil {
		return err
	}

	fresh := entry.New(svc.Name, entry.KindHosted, next, s.launcher, s.handleEvent)
	if err := s.reg.InsertHosted(svc.Name, fresh); err != nil {
		return err
	}
	_, err = fresh.Activate(ctx, s.settings.StartTimeout)
	return err
}

// cancelPendingReactivation stops any armed restart timer for name so a
// deliberate deactivate never races a scheduled reactivation.
func (s *Supervisor) cancelPendingReactivation(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[name]; ok {
		t.Stop()
		delete(s.timers, name)
	}
}

// Close deactivates every hosted entry concurrently, bounded by
// StopTimeout, and stops any pending reactivation timers.
func (s *Supervisor) Close(ctx context.Context) error {
	s.mu.Lock()
	for name, t := range s.timers {
		t.Stop()
		delete(s.timers, name)
	}
	s.mu.Unlock()

	closeCtx, cancel := context.WithTimeout(ctx, s.settings.StopTimeout)
	defer cancel()

	group, groupCtx := errgroup.WithContext(closeCtx)
	for _, e := range s.reg.HostedEntries() {
		e := e
		group.Go(func() error {
			if e.State() != entry.Started {
				return nil
			}
			if err := e.Deactivate(groupCtx, true, s.settings.StopTimeout); err != nil && !errors.Is(err, shared.ErrTimeout) {
				return err
			}
			return nil
		})
	}
	return group.Wait()
}

// AbortAll force-terminates every hosted entry, skipping friendly
// termination, for the top-level host's abort() path (§4.8: "skip
// drain, force-terminate every managed child").
func (s *Supervisor) AbortAll(ctx context.Context) error {
	s.mu.Lock()
	for name, t := range s.timers {
		t.Stop()
		delete(s.timers, name)
	}
	s.mu.Unlock()

	group, groupCtx := errgroup.WithContext(ctx)
	for _, e := range s.reg.HostedEntries() {
		e := e
		group.Go(func() error {
			if err := e.Abort(groupCtx); err != nil && !errors.Is(err, shared.ErrInvalidState) {
				return err
			}
			return nil
		})
	}
	return group.Wait()
}
