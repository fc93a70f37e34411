// Package ipc provides the §6.1 request/reply/notification message
// shapes exchanged with the in-node runtime client, and the closed §7
// error-kind taxonomy every reply carries instead of a transport-specific
// exception type.
package ipc

import (
	"errors"

	"github.com/coreward/activation-host/internal/domain/shared"
)

// ErrorKind is the closed set of error classifications a reply payload
// carries (§7: "kinds not types"). Zero value ErrorKindNone means
// success.
type ErrorKind int

// Error kind constants, one per §7 entry.
const (
	ErrorKindNone ErrorKind = iota
	ErrorKindInvalidArgument
	ErrorKindInvalidState
	ErrorKindNotFound
	ErrorKindAlreadyExists
	ErrorKindTimeout
	ErrorKindLauncherFailure
	ErrorKindConfigurationError
	ErrorKindProtocolMismatch
	ErrorKindClosed
	ErrorKindDisabled
	ErrorKindInternal
)

// String returns the wire name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindNone:
		return "none"
	case ErrorKindInvalidArgument:
		return "invalid_argument"
	case ErrorKindInvalidState:
		return "invalid_state"
	case ErrorKindNotFound:
		return "not_found"
	case ErrorKindAlreadyExists:
		return "already_exists"
	case ErrorKindTimeout:
		return "timeout"
	case ErrorKindLauncherFailure:
		return "launcher_failure"
	case ErrorKindConfigurationError:
		return "configuration_error"
	case ErrorKindProtocolMismatch:
		return "protocol_mismatch"
	case ErrorKindClosed:
		return "closed"
	case ErrorKindDisabled:
		return "disabled"
	default:
		return "internal"
	}
}

// Classify maps a domain error onto its §7 error kind using errors.Is
// against the shared sentinels, so a single classifier serves every
// dispatcher handler without a parallel exception hierarchy.
//
// Params:
//   - err: the error returned by a supervisor operation; nil means success.
//
// Returns:
//   - ErrorKind: ErrorKindNone if err is nil, ErrorKindInternal if err is
//     non-nil but matches none of the known sentinels.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorKindNone
	case errors.Is(err, shared.ErrInvalidArgument):
		return ErrorKindInvalidArgument
	case errors.Is(err, shared.ErrInvalidState):
		return ErrorKindInvalidState
	case errors.Is(err, shared.ErrNotFound):
		return ErrorKindNotFound
	case errors.Is(err, shared.ErrAlreadyExists):
		return ErrorKindAlreadyExists
	case errors.Is(err, shared.ErrTimeout):
		return ErrorKindTimeout
	case errors.Is(err, shared.ErrLauncherFailure):
		return ErrorKindLauncherFailure
	case errors.Is(err, shared.ErrConfigurationError):
		return ErrorKindConfigurationError
	case errors.Is(err, shared.ErrProtocolMismatch):
		return ErrorKindProtocolMismatch
	case errors.Is(err, shared.ErrClosed):
		return ErrorKindClosed
	case errors.Is(err, shared.ErrDisabled):
		return ErrorKindDisabled
	default:
		return ErrorKindInternal
	}
}
