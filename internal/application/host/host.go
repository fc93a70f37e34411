// Package host implements the top-level lifecycle sequencing (§4.8):
// open, close (with an optional drain step), and abort, coordinating the
// IPC transport, the two supervisors, the requester registry, and the
// optional restart/node-disable manager.
package host

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreward/activation-host/internal/application/dispatcher"
	"github.com/coreward/activation-host/internal/domain/config"
	"github.com/coreward/activation-host/internal/domain/shared"
)

// Transport is the IPC transport port (§6.2): Listen must start
// accepting connections before Open returns, so late-binding clients are
// never refused during the remainder of startup.
type Transport interface {
	Listen(ctx context.Context) error
	RegisterDispatcher(d *dispatcher.Dispatcher)
	Close(ctx context.Context) error
}

// HostedServiceSupervisor is the subset of hostedsvc.Supervisor the host
// depends on.
type HostedServiceSupervisor interface {
	Open(ctx context.Context, services []config.ServiceConfig) error
	Close(ctx context.Context) error
	AbortAll(ctx context.Context) error
}

// AppServiceSupervisor is the subset of appsvc.Supervisor the host
// depends on.
type AppServiceSupervisor interface {
	CloseAll(ctx context.Context, timeout time.Duration) error
	AbortAll(ctx context.Context) error
}

// RequesterRegistry is the subset of requesterreg.Supervisor the host
// depends on.
type RequesterRegistry interface {
	Close()
}

// DrainManager is the subset of restartmgr.Manager the host depends on.
type DrainManager interface {
	Drain(ctx context.Context) error
}

// Settings carries the §6.3 tunables governing open/close timeouts and
// whether close() drains via the restart/node-disable manager.
type Settings struct {
	OpenTimeout  time.Duration
	CloseTimeout time.Duration
	// Drain enables the §4.9 node-disable sequence on close; only
	// meaningful when this process is running in server/cluster mode.
	Drain bool
}

// DefaultSettings returns conservative defaults.
func DefaultSettings() Settings {
	return Settings{OpenTimeout: 30 * time.Second, CloseTimeout: 30 * time.Second, Drain: false}
}

// Host sequences the whole core's lifecycle.
type Host struct {
	mu sync.Mutex

	transport  Transport
	hostedSvc  HostedServiceSupervisor
	appSvc     AppServiceSupervisor
	requesters RequesterRegistry
	dispatcher *dispatcher.Dispatcher
	drain      DrainManager // nil if no cluster-layer drain is configured

	settings Settings
	log      zerolog.Logger

	opened bool
}

// New constructs a Host. drain may be nil when this node never drains
// via the cluster layer.
func New(transport Transport, hostedSvc HostedServiceSupervisor, appSvc AppServiceSupervisor, requesters RequesterRegistry, disp *dispatcher.Dispatcher, drain DrainManager, settings Settings, log zerolog.Logger) *Host {
	return &Host{
		transport:  transport,
		hostedSvc:  hostedSvc,
		appSvc:     appSvc,
		requesters: requesters,
		dispatcher: disp,
		drain:      drain,
		settings:   settings,
		log:        log,
	}
}

// Open starts listening on the IPC transport first (so late-binding
// clients are accepted), registers the dispatcher, then activates every
// declared hosted service. Any step's failure aborts the subcomponents
// that already started and returns a typed error (§4.8).
func (h *Host) Open(ctx context.Context, services []config.ServiceConfig) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.opened {
		return fmt.Errorf("%w: host already open", shared.ErrInvalidState)
	}

	openCtx, cancel := context.WithTimeout(ctx, h.settings.OpenTimeout)
	defer cancel()

	if err := h.transport.Listen(openCtx); err != nil {
		return fmt.Errorf("open transport: %w", err)
	}

	h.transport.RegisterDispatcher(h.dispatcher)

	if err := h.hostedSvc.Open(openCtx, services); err != nil {
		_ = h.transport.Close(context.Background())
		return fmt.Errorf("open hosted services: %w", err)
	}

	h.opened = true
	return nil
}

// Close tears the core down gracefully: an optional drain step, then
// app-services before hosted services, then the requester registry's
// watches, then the transport itself (§4.8).
func (h *Host) Close(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.opened {
		return nil
	}

	closeCtx, cancel := context.WithTimeout(ctx, h.settings.CloseTimeout)
	defer cancel()

	if h.settings.Drain && h.drain != nil {
		if err := h.drain.Drain(closeCtx); err != nil {
			h.log.Error().Err(err).Msg("drain failed; proceeding with shutdown")
		}
	}

	var firstErr error
	recordErr := func(step string, err error) {
		if err == nil {
			return
		}
		h.log.Error().Str("step", step).Err(err).Msg("close step failed")
		if firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", step, err)
		}
	}

	recordErr("app services", h.appSvc.CloseAll(closeCtx, h.settings.CloseTimeout))
	recordErr("hosted services", h.hostedSvc.Close(closeCtx))
	h.requesters.Close()
	recordErr("transport", h.transport.Close(closeCtx))

	h.opened = false
	return firstErr
}

// Abort skips any drain step and force-terminates every managed child
// before closing the transport (§4.8).
func (h *Host) Abort(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.opened {
		return nil
	}

	var firstErr error
	recordErr := func(step string, err error) {
		if err == nil {
			return
		}
		h.log.Error().Str("step", step).Err(err).Msg("abort step failed")
		if firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", step, err)
		}
	}

	recordErr("app services", h.appSvc.AbortAll(ctx))
	recordErr("hosted services", h.hostedSvc.AbortAll(ctx))
	h.requesters.Close()
	recordErr("transport", h.transport.Close(ctx))

	h.opened = false
	return firstErr
}
