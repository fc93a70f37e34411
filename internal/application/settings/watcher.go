// Package settings implements the settings watcher (§4.7): it registers
// for configuration-source change callbacks and reconciles the declared
// service set against what the hosted-service supervisor is actually
// running, without holding any lock of its own across the delegation.
package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/coreward/activation-host/internal/domain/config"
)

// Source is the configuration-source port: it exposes the currently
// declared services and lets the watcher subscribe to changes. Its
// concrete adapter (a YAML file watcher or similar) lives in
// infrastructure and is out of this package's scope.
type Source interface {
	Services() []config.ServiceConfig
	OnChange(func([]config.ServiceConfig))
}

// HostedServiceSupervisor is the subset of hostedsvc.Supervisor the
// watcher depends on.
type HostedServiceSupervisor interface {
	HostedNames() []string
	ActivateHostedService(ctx context.Context, svc *config.ServiceConfig) (int, error)
	RemoveHostedService(ctx context.Context, name string) error
	Update(ctx context.Context, svc *config.ServiceConfig) error
}

// Watcher reconciles the hosted-service supervisor against a
// configuration source's declared set on every change notification.
type Watcher struct {
	mu sync.Mutex

	hosted HostedServiceSupervisor
	log    zerolog.Logger
}

// New constructs a watcher bound to source and the hosted-service
// supervisor it reconciles.
func New(source Source, hosted HostedServiceSupervisor, log zerolog.Logger) *Watcher {
	w := &Watcher{hosted: hosted, log: log}
	source.OnChange(w.reconcile)
	return w
}

// Reconcile runs the four-step diff described in §4.7 once, against the
// services slice supplied by the caller (normally invoked by the
// configuration source's own OnChange callback, but exported so an
// initial reconciliation can be driven explicitly at startup).
//
// Returns:
//   - error: the first reconciliation step's error; subsequent steps for
//     other entries still run (best-effort, matching hostedsvc.Open's
//     "other entries still end up started/failed independently").
func (w *Watcher) Reconcile(ctx context.Context, declared []config.ServiceConfig) error {
	declaredByName := make(map[string]*config.ServiceConfig, len(declared))
	for i := range declared {
		declaredByName[declared[i].Name] = &declared[i]
	}

	running := make(map[string]struct{})
	for _, name := range w.hosted.HostedNames() {
		running[name] = struct{}{}
	}

	var firstErr error
	recordErr := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	// Step 2: running but no longer declared.
	for name := range running {
		if _, stillDeclared := declaredByName[name]; stillDeclared {
			continue
		}
		if err := w.hosted.RemoveHostedService(ctx, name); err != nil {
			w.log.Error().Str("service", name).Err(err).Msg("settings watcher: remove failed")
			recordErr(fmt.Errorf("remove %s: %w", name, err))
		}
	}

	// Step 3: declared but not yet running.
	for name, svc := range declaredByName {
		if _, alreadyRunning := running[name]; alreadyRunning {
			continue
		}
		if _, err := w.hosted.ActivateHostedService(ctx, svc); err != nil {
			w.log.Error().Str("service", name).Err(err).Msg("settings watcher: activate failed")
			recordErr(fmt.Errorf("activate %s: %w", name, err))
		}
	}

	// Step 4: present in both — Update itself decides in-place vs.
	// full restart against the §4.3 updatable-in-place predicate.
	for name, svc := range declaredByName {
		if _, alreadyRunning := running[name]; !alreadyRunning {
			continue
		}
		if err := w.hosted.Update(ctx, svc); err != nil {
			w.log.Error().Str("service", name).Err(err).Msg("settings watcher: update failed")
			recordErr(fmt.Errorf("update %s: %w", name, err))
		}
	}

	return firstErr
}

// reconcile is the Source.OnChange callback; it discards the outcome
// (errors are already logged per-entry above) since no caller is waiting
// on a change-notification-triggered reconciliation.
func (w *Watcher) reconcile(declared []config.ServiceConfig) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.Reconcile(context.Background(), declared)
}
