package entry

// ResourceLimits carries optional cgroup-backed resource governance for a
// launch descriptor. A zero value means "no limit of that kind".
type ResourceLimits struct {
	// CPUShares is the relative CPU weight (cgroup cpu.shares / cpu.weight).
	CPUShares int
	// CPUSet restricts the entry to a set of CPUs, e.g. "0-3,7".
	CPUSet string
	// MemoryLimitBytes caps resident memory; 0 means unbounded.
	MemoryLimitBytes int64
}

// EndpointDescriptor describes a network endpoint the entry exposes, used
// by the health-probe binding and by ACL/firewall collaborators (out of
// scope here, consumed only as an opaque descriptor).
type EndpointDescriptor struct {
	// Port is the listen port.
	Port int
	// Protocol is "tcp" or "udp".
	Protocol string
	// TLSThumbprint identifies the certificate bound to this endpoint.
	TLSThumbprint string
	// TLSStore names the certificate store the thumbprint is resolved in.
	TLSStore string
	// TLSFindType names how TLSThumbprint should be matched (e.g. "findByThumbprint").
	TLSFindType string
}

// Principal names the security identity a launched child runs under.
type Principal struct {
	// User is the username or SID to run as.
	User string
	// Group is the group name or SID to run as.
	Group string
}

// Spec is the launch descriptor for one entry: everything the launcher
// needs to create and later identify the OS child, independent of
// whichever supervisor owns the entry.
type Spec struct {
	// Command is the executable path.
	Command string
	// Args are the command-line arguments.
	Args []string
	// Dir is the working directory; empty means the launcher's default.
	Dir string
	// Env holds environment variables as key=value pairs.
	Env map[string]string
	// ConsoleSignal, when true, asks the launcher to deliver console
	// control signals (e.g. CTRL_BREAK on Windows, SIGINT elsewhere)
	// instead of a hard kill on graceful termination.
	ConsoleSignal bool
	// Principal is the optional security identity to launch under.
	Principal *Principal
	// Limits is the optional resource-governance descriptor.
	Limits *ResourceLimits
	// Endpoint is the optional network endpoint descriptor.
	Endpoint *EndpointDescriptor
}

// UpdatableInPlace reports whether only the fields §4.3 allows to be
// reconfigured without a restart differ between the receiver and next.
//
// The predicate is re-derived from first principles (see DESIGN.md's Open
// Question entry) rather than copied from any single source: a change is
// in-place-updatable only when the executable, arguments, working
// directory, environment, and security principal are all unchanged, and
// only the resource-governance limits and/or the endpoint's TLS
// thumbprint differ. Any other difference — including a changed
// Principal, a changed Command/Args/Dir/Env, or a changed endpoint
// port/protocol — requires a full restart, since those affect what the
// launcher must recreate, not just reconfigure.
//
// Params:
//   - next: the candidate replacement spec.
//
// Returns:
//   - bool: true if next can be applied to the live child in place.
func (s Spec) UpdatableInPlace(next Spec) bool {
	if s.Command != next.Command || s.Dir != next.Dir || s.ConsoleSignal != next.ConsoleSignal {
		return false
	}
	if !stringSlicesEqual(s.Args, next.Args) || !envEqual(s.Env, next.Env) {
		return false
	}
	if !principalsEqual(s.Principal, next.Principal) {
		return false
	}
	if !endpointUpdatableOnly(s.Endpoint, next.Endpoint) {
		return false
	}
	// Any remaining difference is confined to Limits and/or the
	// endpoint's TLS thumbprint, both reconfigurable in place.
	return true
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func envEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

func principalsEqual(a, b *Principal) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.User == b.User && a.Group == b.Group
}

// endpointUpdatableOnly reports whether any difference between the two
// endpoint descriptors is confined to the TLS thumbprint/store/find-type
// (the subset §4.3 allows to change without a restart). A changed port
// or protocol always requires a restart.
func endpointUpdatableOnly(a, b *EndpointDescriptor) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		// Gaining or losing an endpoint entirely changes what the
		// launcher must bind; not updatable in place.
		return false
	}
	return a.Port == b.Port && a.Protocol == b.Protocol
}
