package hostedsvc

import (
	"github.com/coreward/activation-host/internal/domain/config"
	"github.com/coreward/activation-host/internal/domain/entry"
)

// specFromService translates a declared service configuration into the
// launch descriptor the Entry FSM understands. Only the first listener's
// port/protocol is carried into the endpoint descriptor; additional
// listeners are ACL/health-probe concerns handled elsewhere.
func specFromService(svc *config.ServiceConfig) entry.Spec {
	spec := entry.Spec{
		Command: svc.Command,
		Args:    append([]string(nil), svc.Args...),
		Dir:     svc.WorkingDirectory,
		Env:     svc.Environment,
	}
	if svc.User != "" || svc.Group != "" {
		spec.Principal = &entry.Principal{User: svc.User, Group: svc.Group}
	}
	for i := range svc.Listeners {
		l := &svc.Listeners[i]
		if l.Port == 0 {
			continue
		}
		spec.Endpoint = &entry.EndpointDescriptor{
			Port:     l.Port,
			Protocol: l.Protocol,
		}
		break
	}
	return spec
}
