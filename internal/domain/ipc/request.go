package ipc

import "time"

// CurrentVersion is the message version this core understands. Every
// request payload carries Version as its first field; a request whose
// Version does not match is rejected with ErrorKindProtocolMismatch
// before it reaches any supervisor.
const CurrentVersion int = 1

// RequestKind is the closed enum of inbound request types (§6.1).
type RequestKind int

// Request kind constants.
const (
	RequestRegister RequestKind = iota
	RequestUnregister
	RequestActivateProcess
	RequestDeactivateProcess
	RequestTerminateProcess
	RequestActivateHostedService
	RequestDeactivateHostedService
	RequestGetContainerInfo
	RequestConfigureSecurityPrincipals
	RequestConfigureEndpointSecurity
	RequestConfigureFirewall
)

// String returns the wire name of the request kind.
func (k RequestKind) String() string {
	switch k {
	case RequestRegister:
		return "Register"
	case RequestUnregister:
		return "Unregister"
	case RequestActivateProcess:
		return "ActivateProcess"
	case RequestDeactivateProcess:
		return "DeactivateProcess"
	case RequestTerminateProcess:
		return "TerminateProcess"
	case RequestActivateHostedService:
		return "ActivateHostedService"
	case RequestDeactivateHostedService:
		return "DeactivateHostedService"
	case RequestGetContainerInfo:
		return "GetContainerInfo"
	case RequestConfigureSecurityPrincipals:
		return "ConfigureSecurityPrincipals"
	case RequestConfigureEndpointSecurity:
		return "ConfigureEndpointSecurity"
	case RequestConfigureFirewall:
		return "ConfigureFirewall"
	default:
		return "unknown"
	}
}

// RegisterRequest binds a requester's identity to its process and
// callback address.
type RegisterRequest struct {
	Version         int
	RequesterID     string
	ProcessID       int
	NodeID          string
	CallbackAddress string
}

// UnregisterRequest removes a previously registered requester.
type UnregisterRequest struct {
	Version     int
	RequesterID string
}

// ProcessDescription is the launch descriptor carried over the wire for
// an ActivateProcess request (the IPC-facing counterpart of
// entry.Spec).
type ProcessDescription struct {
	Command string
	Args    []string
	Dir     string
	Env     map[string]string
}

// ContainerDescriptor carries optional container configuration for an
// ActivateProcess request.
type ContainerDescriptor struct {
	ImageRef  string
	IsRoot    bool
	ParentID  string
	NetworkNS string
}

// ActivateProcessRequest requests activation of an application service.
type ActivateProcessRequest struct {
	Version     int
	RequesterID string
	AppServiceID string
	Process     ProcessDescription
	RunAsID     string
	Container   *ContainerDescriptor
}

// DeactivateProcessRequest requests deactivation of an application
// service, graceful or forced, bounded by Timeout.
type DeactivateProcessRequest struct {
	Version      int
	RequesterID  string
	AppServiceID string
	Graceful     bool
	Timeout      time.Duration
}

// TerminateProcessRequest forces immediate termination of an application
// service.
type TerminateProcessRequest struct {
	Version      int
	RequesterID  string
	AppServiceID string
}

// HostedServiceParams carries the declarative parameters for an
// ActivateHostedService request (used for operator-triggered activation
// outside the normal settings-watcher path).
type HostedServiceParams struct {
	Name    string
	Process ProcessDescription
}

// ActivateHostedServiceRequest requests activation of a hosted service.
type ActivateHostedServiceRequest struct {
	Version int
	Params  HostedServiceParams
}

// DeactivateHostedServiceRequest requests deactivation of a hosted
// service by name.
type DeactivateHostedServiceRequest struct {
	Version     int
	ServiceName string
}

// GetContainerInfoRequest queries container metadata for an application
// service.
type GetContainerInfoRequest struct {
	Version      int
	RequesterID  string
	AppServiceID string
	InfoType     string
	Args         []string
}

// CollaboratorConfigRequest is the shared shape for the
// ConfigureSecurityPrincipals / ConfigureEndpointSecurity /
// ConfigureFirewall family: each is collaborator-specific and passed
// through as an opaque payload, since those collaborators are out of
// this specification's scope (§1).
type CollaboratorConfigRequest struct {
	Version int
	Payload []byte
}
