package settings_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreward/activation-host/internal/application/settings"
	"github.com/coreward/activation-host/internal/domain/config"
)

type fakeSource struct {
	callback func([]config.ServiceConfig)
}

func (f *fakeSource) Services() []config.ServiceConfig { return nil }

func (f *fakeSource) OnChange(cb func([]config.ServiceConfig)) { f.callback = cb }

type fakeHostedSupervisor struct {
	mu        sync.Mutex
	names     map[string]struct{}
	activated []string
	removed   []string
	updated   []string
}

func newFakeHostedSupervisor(initial ...string) *fakeHostedSupervisor {
	f := &fakeHostedSupervisor{names: make(map[string]struct{})}
	for _, n := range initial {
		f.names[n] = struct{}{}
	}
	return f
}

func (f *fakeHostedSupervisor) HostedNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.names))
	for n := range f.names {
		out = append(out, n)
	}
	return out
}

func (f *fakeHostedSupervisor) ActivateHostedService(ctx context.Context, svc *config.ServiceConfig) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names[svc.Name] = struct{}{}
	f.activated = append(f.activated, svc.Name)
	return 100, nil
}

func (f *fakeHostedSupervisor) RemoveHostedService(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.names, name)
	f.removed = append(f.removed, name)
	return nil
}

func (f *fakeHostedSupervisor) Update(ctx context.Context, svc *config.ServiceConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, svc.Name)
	return nil
}

func zeroLogger() zerolog.Logger { return zerolog.Nop() }

func TestWatcher_Reconcile_ActivatesNewlyDeclaredServices(t *testing.T) {
	hosted := newFakeHostedSupervisor()
	w := settings.New(&fakeSource{}, hosted, zeroLogger())

	require.NoError(t, w.Reconcile(context.Background(), []config.ServiceConfig{{Name: "H1", Command: "/bin/true"}}))
	assert.Equal(t, []string{"H1"}, hosted.activated)
}

func TestWatcher_Reconcile_RemovesUndeclaredServices(t *testing.T) {
	hosted := newFakeHostedSupervisor("H1")
	w := settings.New(&fakeSource{}, hosted, zeroLogger())

	require.NoError(t, w.Reconcile(context.Background(), nil))
	assert.Equal(t, []string{"H1"}, hosted.removed)
}

func TestWatcher_Reconcile_UpdatesServicesPresentInBoth(t *testing.T) {
	hosted := newFakeHostedSupervisor("H1")
	w := settings.New(&fakeSource{}, hosted, zeroLogger())

	require.NoError(t, w.Reconcile(context.Background(), []config.ServiceConfig{{Name: "H1", Command: "/bin/true"}}))
	assert.Equal(t, []string{"H1"}, hosted.updated)
	assert.Empty(t, hosted.activated)
	assert.Empty(t, hosted.removed)
}

func TestWatcher_OnChangeCallback_DrivesReconciliation(t *testing.T) {
	hosted := newFakeHostedSupervisor()
	source := &fakeSource{}
	settings.New(source, hosted, zeroLogger())

	require.NotNil(t, source.callback)
	source.callback([]config.ServiceConfig{{Name: "H2", Command: "/bin/true"}})

	assert.Equal(t, []string{"H2"}, hosted.activated)
}
