package entry

import "time"

// Event is published whenever an Entry completes a state transition. The
// dispatcher and settings watcher subscribe to these to turn them into
// IPC notifications or reconciliation follow-ups; an Event never carries
// a pointer back to the Entry itself, only its identity, so a removed
// entry cannot be touched after the fact (see DESIGN.md's notes on
// pointer-graph replacement).
type Event struct {
	// Identity is the entry's stable key (service name, or
	// requester-id/instance-id joined by the registry).
	Identity string
	// From is the state the entry transitioned out of.
	From State
	// To is the state the entry transitioned into.
	To State
	// Trigger names the operation that drove the transition.
	Trigger Trigger
	// PID is the OS process id, when known.
	PID int
	// ExitCode is the child's exit code, when the transition was
	// triggered by a process exit.
	ExitCode int
	// Err carries the typed error associated with a Failed transition,
	// if any.
	Err error
	// Timestamp is when the transition completed.
	Timestamp time.Time
}

// newEvent builds an Event for a just-completed transition.
func newEvent(identity string, from, to State, trigger Trigger, pid, exitCode int, err error) Event {
	return Event{
		Identity:  identity,
		From:      from,
		To:        to,
		Trigger:   trigger,
		PID:       pid,
		ExitCode:  exitCode,
		Err:       err,
		Timestamp: time.Now(),
	}
}
