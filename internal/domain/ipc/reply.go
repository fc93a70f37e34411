package ipc

// Reply is the shape every dispatcher handler eventually produces: an
// error kind plus an optional, request-specific payload. Replies for
// async operations are produced on operation completion, not on
// dispatch (§4.6).
type Reply struct {
	Kind ErrorKind
	// ProcessID is populated by ActivateProcess replies.
	ProcessID int
	// InfoString is populated by GetContainerInfo replies.
	InfoString string
	// CollaboratorPayload is populated by the Configure* family.
	CollaboratorPayload []byte
}

// OK constructs a successful reply with no payload.
func OK() Reply { return Reply{Kind: ErrorKindNone} }

// OKWithPID constructs a successful ActivateProcess/ActivateHostedService
// reply carrying the launched pid.
func OKWithPID(pid int) Reply { return Reply{Kind: ErrorKindNone, ProcessID: pid} }

// OKWithInfo constructs a successful GetContainerInfo reply.
func OKWithInfo(info string) Reply { return Reply{Kind: ErrorKindNone, InfoString: info} }

// ErrReply constructs a failed reply classified from err.
func ErrReply(err error) Reply { return Reply{Kind: Classify(err)} }
