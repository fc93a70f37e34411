// Package restartmgr implements the restart/node-disable manager (§4.9):
// on a drain-mode shutdown it posts a disable-node request to the
// cluster-layer client and blocks close until confirmation arrives or a
// bounded wait elapses, periodically reporting progress so the OS
// service manager does not consider the process hung and kill it.
package restartmgr

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ClusterClient is the out-of-scope cluster-layer collaborator (§1) this
// manager posts a disable-node request to and awaits confirmation from.
type ClusterClient interface {
	// RequestDisable posts the disable-node request over IPC.
	RequestDisable(ctx context.Context) error
	// OnConfirmation registers a callback fired exactly once when an
	// enable- or disable-confirmation arrives.
	OnConfirmation(func())
}

// ServiceController is the OS service-manager keepalive port: while a
// drain wait is in progress, ReportProgress must be called periodically
// so the surrounding service manager does not decide the process is
// hung and kill it (the Windows SCM checkpoint/hint convention, applied
// generically).
type ServiceController interface {
	ReportProgress()
}

// Settings carries the §6.3 tunables governing a drain wait.
type Settings struct {
	// NodeDisableWait bounds how long Drain blocks for confirmation
	// before giving up and returning anyway.
	NodeDisableWait time.Duration
	// ProgressInterval is how often ReportProgress is called while
	// waiting.
	ProgressInterval time.Duration
}

// DefaultSettings returns conservative defaults.
func DefaultSettings() Settings {
	return Settings{
		NodeDisableWait:  30 * time.Second,
		ProgressInterval: 5 * time.Second,
	}
}

// Manager drives the disable-node drain sequence.
type Manager struct {
	cluster ClusterClient
	ctrl    ServiceController
	settings Settings
	log      zerolog.Logger
}

// New constructs a restart/node-disable manager.
func New(cluster ClusterClient, ctrl ServiceController, settings Settings, log zerolog.Logger) *Manager {
	return &Manager{cluster: cluster, ctrl: ctrl, settings: settings, log: log}
}

// Drain posts the disable-node request and blocks until confirmation
// fires or NodeDisableWait elapses, reporting progress to the service
// controller every ProgressInterval while it waits (§4.9).
//
// Returns:
//   - error: any error from posting the disable-node request; a
//     confirmation timeout is not treated as an error (close proceeds
//     regardless, per §4.8's close(timeout) contract).
func (m *Manager) Drain(ctx context.Context) error {
	if err := m.cluster.RequestDisable(ctx); err != nil {
		return err
	}

	confirmed := make(chan struct{})
	var once sync.Once
	m.cluster.OnConfirmation(func() {
		once.Do(func() { close(confirmed) })
	})

	deadline := time.NewTimer(m.settings.NodeDisableWait)
	defer deadline.Stop()

	ticker := time.NewTicker(m.settings.ProgressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-confirmed:
			return nil
		case <-deadline.C:
			m.log.Warn().Msg("node-disable confirmation wait exhausted; proceeding with shutdown")
			return nil
		case <-ticker.C:
			m.ctrl.ReportProgress()
		case <-ctx.Done():
			return nil
		}
	}
}
