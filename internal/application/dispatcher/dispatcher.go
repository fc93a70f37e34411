// Package dispatcher implements the §4.6 IPC dispatch table: one handler
// per domain/ipc request kind, routing to the owning supervisor and
// producing a Reply on operation completion rather than on dispatch.
// It handles inbound requests only: outbound notifications are published
// by appsvc through its Notifier and do not pass through this package.
package dispatcher

import (
	"context"
	"time"

	"github.com/coreward/activation-host/internal/domain/config"
	"github.com/coreward/activation-host/internal/domain/ipc"
)

// HostedServiceSupervisor is the subset of hostedsvc.Supervisor the
// dispatcher depends on.
type HostedServiceSupervisor interface {
	ActivateHostedService(ctx context.Context, svc *config.ServiceConfig) (int, error)
	DeactivateHostedService(ctx context.Context, name string) error
}

// AppServiceSupervisor is the subset of appsvc.Supervisor the dispatcher
// depends on.
type AppServiceSupervisor interface {
	ActivateProcess(ctx context.Context, req ipc.ActivateProcessRequest, timeout time.Duration) (string, int, error)
	DeactivateProcess(ctx context.Context, requesterID, instanceID string, graceful bool, timeout time.Duration) error
	TerminateProcess(ctx context.Context, requesterID, instanceID string) error
	GetContainerInfo(ctx context.Context, requesterID, instanceID, infoType string, args []string) (string, error)
}

// RequesterRegistry is the subset of requesterreg.Supervisor the
// dispatcher depends on.
type RequesterRegistry interface {
	Register(id string, processID int, nodeID, callbackAddress string) error
	Unregister(id string) error
	TrackInstance(requesterID, instanceID string) error
	UntrackInstance(requesterID, instanceID string) error
}

// CollaboratorConfigurer answers the out-of-scope Configure* family
// (§1: security-principal, endpoint-security, firewall collaborators),
// passed through as an opaque payload. Left nil-safe: a Dispatcher with
// no configurer attached replies ConfigurationError to every Configure*
// request.
type CollaboratorConfigurer interface {
	Configure(ctx context.Context, kind ipc.RequestKind, payload []byte) ([]byte, error)
}

// Settings carries the default timeout applied when a request does not
// itself carry one (ActivateProcess, ActivateHostedService).
type Settings struct {
	DefaultTimeout time.Duration
}

// DefaultSettings returns a conservative default activation timeout.
func DefaultSettings() Settings {
	return Settings{DefaultTimeout: 30 * time.Second}
}

// Dispatcher routes inbound IPC requests to the owning supervisor.
type Dispatcher struct {
	hosted     HostedServiceSupervisor
	app        AppServiceSupervisor
	requesters RequesterRegistry
	collab     CollaboratorConfigurer
	settings   Settings
}

// New constructs a dispatcher bound to its three owning supervisors.
// collab may be nil.
func New(hosted HostedServiceSupervisor, app AppServiceSupervisor, requesters RequesterRegistry, collab CollaboratorConfigurer, settings Settings) *Dispatcher {
	return &Dispatcher{hosted: hosted, app: app, requesters: requesters, collab: collab, settings: settings}
}

// HandleRegister binds a requester's identity to its process.
func (d *Dispatcher) HandleRegister(ctx context.Context, req ipc.RegisterRequest) ipc.Reply {
	if req.Version != ipc.CurrentVersion {
		return ipc.Reply{Kind: ipc.ErrorKindProtocolMismatch}
	}
	err := d.requesters.Register(req.RequesterID, req.ProcessID, req.NodeID, req.CallbackAddress)
	return ipc.ErrReply(err)
}

// HandleUnregister removes a previously registered requester.
func (d *Dispatcher) HandleUnregister(ctx context.Context, req ipc.UnregisterRequest) ipc.Reply {
	if req.Version != ipc.CurrentVersion {
		return ipc.Reply{Kind: ipc.ErrorKindProtocolMismatch}
	}
	err := d.requesters.Unregister(req.RequesterID)
	return ipc.ErrReply(err)
}

// HandleActivateProcess activates a requested application service and
// tracks its ownership under the requester registry.
func (d *Dispatcher) HandleActivateProcess(ctx context.Context, req ipc.ActivateProcessRequest) ipc.Reply {
	if req.Version != ipc.CurrentVersion {
		return ipc.Reply{Kind: ipc.ErrorKindProtocolMismatch}
	}
	instanceID, pid, err := d.app.ActivateProcess(ctx, req, d.settings.DefaultTimeout)
	if err != nil {
		return ipc.ErrReply(err)
	}
	if err := d.requesters.TrackInstance(req.RequesterID, instanceID); err != nil {
		return ipc.ErrReply(err)
	}
	return ipc.OKWithPID(pid)
}

// HandleDeactivateProcess stops an application service, graceful or
// forced, bounded by the request's own timeout.
func (d *Dispatcher) HandleDeactivateProcess(ctx context.Context, req ipc.DeactivateProcessRequest) ipc.Reply {
	if req.Version != ipc.CurrentVersion {
		return ipc.Reply{Kind: ipc.ErrorKindProtocolMismatch}
	}
	err := d.app.DeactivateProcess(ctx, req.RequesterID, req.AppServiceID, req.Graceful, req.Timeout)
	if err != nil {
		return ipc.ErrReply(err)
	}
	_ = d.requesters.UntrackInstance(req.RequesterID, req.AppServiceID)
	return ipc.OK()
}

// HandleTerminateProcess forces immediate termination of an application
// service.
func (d *Dispatcher) HandleTerminateProcess(ctx context.Context, req ipc.TerminateProcessRequest) ipc.Reply {
	if req.Version != ipc.CurrentVersion {
		return ipc.Reply{Kind: ipc.ErrorKindProtocolMismatch}
	}
	err := d.app.TerminateProcess(ctx, req.RequesterID, req.AppServiceID)
	if err != nil {
		return ipc.ErrReply(err)
	}
	_ = d.requesters.UntrackInstance(req.RequesterID, req.AppServiceID)
	return ipc.OK()
}

// HandleActivateHostedService activates a declared hosted service
// outside the normal settings-watcher path.
func (d *Dispatcher) HandleActivateHostedService(ctx context.Context, req ipc.ActivateHostedServiceRequest) ipc.Reply {
	if req.Version != ipc.CurrentVersion {
		return ipc.Reply{Kind: ipc.ErrorKindProtocolMismatch}
	}
	svc := serviceConfigFromParams(req.Params)
	pid, err := d.hosted.ActivateHostedService(ctx, &svc)
	if err != nil {
		return ipc.ErrReply(err)
	}
	return ipc.OKWithPID(pid)
}

// HandleDeactivateHostedService deactivates a hosted service by name.
func (d *Dispatcher) HandleDeactivateHostedService(ctx context.Context, req ipc.DeactivateHostedServiceRequest) ipc.Reply {
	if req.Version != ipc.CurrentVersion {
		return ipc.Reply{Kind: ipc.ErrorKindProtocolMismatch}
	}
	err := d.hosted.DeactivateHostedService(ctx, req.ServiceName)
	return ipc.ErrReply(err)
}

// HandleGetContainerInfo answers a container metadata query.
func (d *Dispatcher) HandleGetContainerInfo(ctx context.Context, req ipc.GetContainerInfoRequest) ipc.Reply {
	if req.Version != ipc.CurrentVersion {
		return ipc.Reply{Kind: ipc.ErrorKindProtocolMismatch}
	}
	info, err := d.app.GetContainerInfo(ctx, req.RequesterID, req.AppServiceID, req.InfoType, req.Args)
	if err != nil {
		return ipc.ErrReply(err)
	}
	return ipc.OKWithInfo(info)
}

// HandleCollaboratorConfig answers the ConfigureSecurityPrincipals /
// ConfigureEndpointSecurity / ConfigureFirewall family, which share a
// single opaque-payload shape since their collaborators are out of this
// specification's scope (§1).
func (d *Dispatcher) HandleCollaboratorConfig(ctx context.Context, kind ipc.RequestKind, req ipc.CollaboratorConfigRequest) ipc.Reply {
	if req.Version != ipc.CurrentVersion {
		return ipc.Reply{Kind: ipc.ErrorKindProtocolMismatch}
	}
	if d.collab == nil {
		return ipc.Reply{Kind: ipc.ErrorKindConfigurationError}
	}
	payload, err := d.collab.Configure(ctx, kind, req.Payload)
	if err != nil {
		return ipc.ErrReply(err)
	}
	return ipc.Reply{Kind: ipc.ErrorKindNone, CollaboratorPayload: payload}
}

// Dispatch routes an inbound envelope to its owning Handle* method by
// Kind, the single entry point a transport adapter needs to drive the
// full request set without switching on wire types itself.
func (d *Dispatcher) Dispatch(ctx context.Context, env ipc.Envelope) ipc.Reply {
	switch env.Kind {
	case ipc.RequestRegister:
		if env.Register == nil {
			return ipc.Reply{Kind: ipc.ErrorKindProtocolMismatch}
		}
		return d.HandleRegister(ctx, *env.Register)
	case ipc.RequestUnregister:
		if env.Unregister == nil {
			return ipc.Reply{Kind: ipc.ErrorKindProtocolMismatch}
		}
		return d.HandleUnregister(ctx, *env.Unregister)
	case ipc.RequestActivateProcess:
		if env.ActivateProcess == nil {
			return ipc.Reply{Kind: ipc.ErrorKindProtocolMismatch}
		}
		return d.HandleActivateProcess(ctx, *env.ActivateProcess)
	case ipc.RequestDeactivateProcess:
		if env.DeactivateProcess == nil {
			return ipc.Reply{Kind: ipc.ErrorKindProtocolMismatch}
		}
		return d.HandleDeactivateProcess(ctx, *env.DeactivateProcess)
	case ipc.RequestTerminateProcess:
		if env.TerminateProcess == nil {
			return ipc.Reply{Kind: ipc.ErrorKindProtocolMismatch}
		}
		return d.HandleTerminateProcess(ctx, *env.TerminateProcess)
	case ipc.RequestActivateHostedService:
		if env.ActivateHostedService == nil {
			return ipc.Reply{Kind: ipc.ErrorKindProtocolMismatch}
		}
		return d.HandleActivateHostedService(ctx, *env.ActivateHostedService)
	case ipc.RequestDeactivateHostedService:
		if env.DeactivateHostedService == nil {
			return ipc.Reply{Kind: ipc.ErrorKindProtocolMismatch}
		}
		return d.HandleDeactivateHostedService(ctx, *env.DeactivateHostedService)
	case ipc.RequestGetContainerInfo:
		if env.GetContainerInfo == nil {
			return ipc.Reply{Kind: ipc.ErrorKindProtocolMismatch}
		}
		return d.HandleGetContainerInfo(ctx, *env.GetContainerInfo)
	case ipc.RequestConfigureSecurityPrincipals, ipc.RequestConfigureEndpointSecurity, ipc.RequestConfigureFirewall:
		if env.CollaboratorConfig == nil {
			return ipc.Reply{Kind: ipc.ErrorKindProtocolMismatch}
		}
		return d.HandleCollaboratorConfig(ctx, env.Kind, *env.CollaboratorConfig)
	default:
		return ipc.Reply{Kind: ipc.ErrorKindProtocolMismatch}
	}
}

// serviceConfigFromParams translates wire-facing hosted-service
// parameters into the domain config type ActivateHostedService expects.
func serviceConfigFromParams(params ipc.HostedServiceParams) config.ServiceConfig {
	return config.ServiceConfig{
		Name:             params.Name,
		Command:          params.Process.Command,
		Args:             append([]string(nil), params.Process.Args...),
		WorkingDirectory: params.Process.Dir,
		Environment:      params.Process.Env,
	}
}
