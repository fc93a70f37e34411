// Package entry provides the single-entry state machine shared by hosted
// and application services, plus the launch descriptor each entry carries.
package entry

// State represents the lifecycle state of one supervised entry.
//
// Hosted and application entries share the same shape: Updating is a
// sub-state reachable only from Started, exercised solely by hosted
// services performing an in-place reconfigure (see §4.3's update path);
// application entries never enter it.
type State int

// Entry state constants.
const (
	// Inactive is the initial state before activation is requested.
	Inactive State = iota
	// Starting indicates the launcher has been asked to create the child.
	Starting
	// Started indicates the launcher reported the child running.
	Started
	// Updating indicates a hosted entry is being reconfigured in place.
	Updating
	// Stopping indicates graceful or forced teardown is in flight.
	Stopping
	// Stopped is a terminal state: teardown completed.
	Stopped
	// Failed indicates the launcher or teardown reported an error. Not
	// terminal in the FSM-transition sense (it still accepts Abort), but
	// the transition table gives it no outgoing edge: a failed hosted
	// entry is never reactivated in place, only replaced by a fresh
	// entry (see hostedsvc.Supervisor.reactivate).
	Failed
	// Aborted is a terminal state: forced teardown was requested.
	Aborted
)

// String returns the human-readable name of the state.
//
// Returns:
//   - string: lowercase state name, "unknown" for unrecognized values.
func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Starting:
		return "starting"
	case Started:
		return "started"
	case Updating:
		return "updating"
	case Stopping:
		return "stopping"
	case Stopped:
		return "stopped"
	case Failed:
		return "failed"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the state is a terminal state in the
// "entry stays right here forever" sense.
//
// Only Stopped and Aborted are terminal. Failed is deliberately excluded
// even though the transition table gives it no outgoing edge either:
// Failed is not a dead end, it is a cue to replace the entry (see
// hostedsvc.Supervisor.reactivate), whereas Stopped and Aborted really
// are where an entry's life ends.
//
// Returns:
//   - bool: true if no further transition is permitted.
func (s State) IsTerminal() bool {
	return s == Stopped || s == Aborted
}

// IsActive reports whether the entry currently owns a live or
// in-flight child process.
//
// Returns:
//   - bool: true for Starting, Started, or Updating.
func (s State) IsActive() bool {
	return s == Starting || s == Started || s == Updating
}
