package entry

// Trigger names the event that drives a state transition. Triggers are
// recorded on events published by an Entry so callers can tell a
// scheduler-initiated restart apart from an operator-initiated one
// without inspecting before/after states.
type Trigger int

// Trigger constants, one per §4.1 operation.
const (
	TriggerActivate Trigger = iota
	TriggerLauncherRunning
	TriggerLauncherError
	TriggerDeactivate
	TriggerProcessExited
	TriggerUpdate
	TriggerUpdateComplete
	TriggerUpdateError
	TriggerTeardownComplete
	TriggerTeardownError
	TriggerReschedule
	TriggerAbort
)

// transitionTable is a plain from-state -> allowed to-states map. It is a
// value, not a type hierarchy: every Entry shares the same table instance,
// so the FSM's shape lives in exactly one place.
type transitionTable map[State][]State

// allowedTransitions is the single source of truth for §4.1's transition
// graph, shared by every Entry regardless of hosted/application kind.
var allowedTransitions = transitionTable{
	Inactive: {Starting},
	Starting: {Started, Failed},
	Started:  {Stopping, Updating},
	Updating: {Started, Failed},
	Stopping: {Stopped, Failed},
}

// canTransition reports whether moving from one state to another is
// allowed by the shared transition table, independent of abort.
//
// Params:
//   - from: the current state.
//   - to: the proposed next state.
//
// Returns:
//   - bool: true if the transition is listed in the table.
func canTransition(from, to State) bool {
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// canAbort reports whether abort is legal from the given state. Abort is
// accepted from every state but Aborted itself, per §4.1 — including
// Stopped, since an already-stopped entry can still be marked Aborted to
// take it out of scheduling for good.
//
// Params:
//   - from: the current state.
//
// Returns:
//   - bool: true if abort is legal from this state.
func canAbort(from State) bool {
	return from != Aborted
}
