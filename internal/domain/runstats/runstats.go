// Package runstats provides the per-entry activation/exit counters and
// the backoff scheduler that reactivates hosted services after exit
// (§4.2). It is grounded on the shape of the teacher's
// domain/process.RestartTracker (an attempts counter plus a stability
// window and a next-delay computation) but implements the specification's
// own linear backoff formula rather than the teacher's exponential one —
// see DESIGN.md for why the formula itself was not carried over verbatim.
package runstats

import "time"

// RunStats tracks activation and exit counters for one entry. All
// mutation happens through its methods, which the owning Entry calls
// only while holding its own per-entry lock (§3: "mutated only under the
// entry's stats lock").
type RunStats struct {
	// LastExitCode is the exit code from the most recent exit.
	LastExitCode int
	// LastActivationTime is when the most recent failed activation attempt
	// happened; successful activations set LastSuccessfulActivationTime.
	LastActivationTime time.Time
	// LastExitTime is when the entry most recently exited.
	LastExitTime time.Time
	// LastSuccessfulActivationTime is when activation last succeeded.
	LastSuccessfulActivationTime time.Time
	// LastSuccessfulExitTime is when the entry last exited with code 0.
	LastSuccessfulExitTime time.Time
	// ContinuousActivationFailureCount counts consecutive activation
	// failures since the last success.
	ContinuousActivationFailureCount int
	// ContinuousExitFailureCount counts consecutive non-zero exits
	// since the last clean exit.
	ContinuousExitFailureCount int
	// ActivationCount is the total number of activation attempts.
	ActivationCount int
	// ExitCount is the total number of observed exits.
	ExitCount int
}

// UpdateActivation records the outcome of an activation attempt.
//
// Params:
//   - success: whether the launcher reported the child running.
func (r *RunStats) UpdateActivation(success bool) {
	r.ActivationCount++
	if success {
		r.ContinuousActivationFailureCount = 0
		r.LastSuccessfulActivationTime = time.Now()
		return
	}
	r.ContinuousActivationFailureCount++
	r.LastActivationTime = time.Now()
}

// UpdateExit records an observed child exit.
//
// Params:
//   - exitCode: the exit code reported by the launcher.
func (r *RunStats) UpdateExit(exitCode int) {
	r.ExitCount++
	r.LastExitCode = exitCode
	r.LastExitTime = time.Now()
	if exitCode == 0 {
		r.ContinuousExitFailureCount = 0
		r.LastSuccessfulExitTime = time.Now()
		return
	}
	r.ContinuousExitFailureCount++
}

// MaxContinuousFailure returns the larger of the two continuous-failure
// counters, the quantity the backoff formula and the disable threshold
// both key off.
//
// Returns:
//   - int: max(ContinuousActivationFailureCount, ContinuousExitFailureCount).
func (r *RunStats) MaxContinuousFailure() int {
	if r.ContinuousActivationFailureCount > r.ContinuousExitFailureCount {
		return r.ContinuousActivationFailureCount
	}
	return r.ContinuousExitFailureCount
}

// ResetContinuousFailures zeroes both continuous-failure counters. Called
// when a run outlasts the configured reset window, so an old failure
// streak cannot delay a now-healthy service's next restart (§4.2's reset
// window).
func (r *RunStats) ResetContinuousFailures() {
	r.ContinuousActivationFailureCount = 0
	r.ContinuousExitFailureCount = 0
}

// MaybeResetOnUptime applies the reset window rule: if the entry ran for
// at least resetInterval before exiting, both continuous counters are
// treated as zero before the next due-time is computed.
//
// Params:
//   - uptime: how long the entry ran before this exit.
//   - resetInterval: the configured continuous-exit-failure reset window.
func (r *RunStats) MaybeResetOnUptime(uptime, resetInterval time.Duration) {
	if resetInterval > 0 && uptime >= resetInterval {
		r.ResetContinuousFailures()
	}
}
