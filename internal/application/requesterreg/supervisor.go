// Package requesterreg implements the requester registry (§4.5): it binds
// each IPC register request to a watched OS process, and bulk-removes
// everything that requester owns the moment its process disappears.
package requesterreg

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreward/activation-host/internal/domain/requester"
	"github.com/coreward/activation-host/internal/domain/shared"
)

// Teardown is the collaborator that actually removes and tears down
// every application-service entry owned by a requester. appsvc.Supervisor
// satisfies this via its AbortApplicationEnvironment method.
type Teardown interface {
	AbortApplicationEnvironment(ctx context.Context, requesterID string) error
}

// ProcessWatcher reports whether an OS process is still alive. Polled
// rather than event-driven, since a requester's process is not a child
// this core spawned — there is no exit channel to wait on, only liveness
// to poll (§4.5: "a process-termination watch is installed").
type ProcessWatcher interface {
	IsAlive(pid int) bool
}

// Settings carries the §6.3 tunable governing how often a requester's
// liveness is polled.
type Settings struct {
	PollInterval time.Duration
}

// DefaultSettings returns a conservative poll cadence.
func DefaultSettings() Settings {
	return Settings{PollInterval: 2 * time.Second}
}

type watchedRequester struct {
	rec    *requester.Requester
	cancel context.CancelFunc
}

// Supervisor owns every registered requester and its liveness watch.
type Supervisor struct {
	mu sync.Mutex

	watcher  ProcessWatcher
	teardown Teardown
	settings Settings
	log      zerolog.Logger

	requesters map[string]*watchedRequester
}

// New constructs a requester registry bound to watcher (liveness polling)
// and teardown (bulk removal on death).
func New(watcher ProcessWatcher, teardown Teardown, settings Settings, log zerolog.Logger) *Supervisor {
	return &Supervisor{
		watcher:    watcher,
		teardown:   teardown,
		settings:   settings,
		log:        log,
		requesters: make(map[string]*watchedRequester),
	}
}

// Register binds (requesterID, processID, nodeID, callbackAddress) and
// starts a liveness watch on processID.
//
// Returns:
//   - error: shared.ErrAlreadyExists if requesterID is already registered.
func (s *Supervisor) Register(id string, processID int, nodeID, callbackAddress string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.requesters[id]; exists {
		return shared.ErrAlreadyExists
	}

	rec := requester.New(id, processID, nodeID, callbackAddress)
	ctx, cancel := context.WithCancel(context.Background())
	s.requesters[id] = &watchedRequester{rec: rec, cancel: cancel}

	go s.watch(ctx, id, processID)
	return nil
}

// Unregister removes a requester record and stops its liveness watch,
// without tearing down anything it owns (a deliberate unregister, unlike
// a crash, leaves its app services running — §4.5 only fires bulk
// removal off the watch, not off an explicit unregister). Idempotent:
// unregistering an id that is already gone is a no-op success, so a
// caller retrying a successful unregister never sees an error.
//
// Returns:
//   - error: always nil; id's absence is not an error.
func (s *Supervisor) Unregister(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.requesters[id]
	if !ok {
		return nil
	}
	w.cancel()
	delete(s.requesters, id)
	return nil
}

// Lookup returns the requester record for id.
//
// Returns:
//   - error: shared.ErrNotFound if id is not registered.
func (s *Supervisor) Lookup(id string) (*requester.Requester, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.requesters[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return w.rec, nil
}

// TrackInstance records instanceID in requesterID's owned set; it is
// called after a successful ActivateProcess. The teardown when a
// requester goes away removes entries through the registry
// (RemoveAllForRequester), not through this set.
//
// Returns:
//   - error: shared.ErrNotFound if requesterID is not registered.
func (s *Supervisor) TrackInstance(requesterID, instanceID string) error {
	rec, err := s.Lookup(requesterID)
	if err != nil {
		return err
	}
	rec.AddInstance(instanceID)
	return nil
}

// UntrackInstance removes instanceID from requesterID's owned set,
// called after a deliberate DeactivateProcess/TerminateProcess.
func (s *Supervisor) UntrackInstance(requesterID, instanceID string) error {
	rec, err := s.Lookup(requesterID)
	if err != nil {
		return err
	}
	rec.RemoveInstance(instanceID)
	return nil
}

// CallbackAddresses returns the callback address of every currently
// registered requester, used to fan out a broadcast (node-level)
// notification (§6.1) to every in-node runtime client at once.
func (s *Supervisor) CallbackAddresses() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	addrs := make([]string, 0, len(s.requesters))
	for _, w := range s.requesters {
		addrs = append(addrs, w.rec.CallbackAddress)
	}
	return addrs
}

// Count returns the number of currently registered requesters.
func (s *Supervisor) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requesters)
}

// watch polls processID's liveness until it disappears or ctx is
// cancelled (a deliberate Unregister), then fires bulk removal.
func (s *Supervisor) watch(ctx context.Context, id string, processID int) {
	ticker := time.NewTicker(s.settings.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.watcher.IsAlive(processID) {
				continue
			}
			s.onRequesterTerminated(id)
			return
		}
	}
}

// onRequesterTerminated removes id's record and tears down everything it
// owned. This is the primary mechanism preventing orphaned child
// processes after a runtime-node crash (§4.5).
func (s *Supervisor) onRequesterTerminated(id string) {
	s.mu.Lock()
	delete(s.requesters, id)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.settings.PollInterval)
	defer cancel()
	if err := s.teardown.AbortApplicationEnvironment(ctx, id); err != nil {
		s.log.Error().Str("requester", id).Err(err).Msg("requester teardown failed")
	}
}

// Close stops every active liveness watch without tearing down any
// owned app service, mirroring Unregister's semantics applied to every
// requester at once.
func (s *Supervisor) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, w := range s.requesters {
		w.cancel()
		delete(s.requesters, id)
	}
}
