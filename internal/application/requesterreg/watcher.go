//go:build unix

package requesterreg

import (
	"os"
	"syscall"
)

// OSProcessWatcher polls liveness via the zero-signal convention: sending
// signal 0 to a pid succeeds iff a process with that pid exists and is
// signalable, without actually delivering anything to it.
type OSProcessWatcher struct{}

// IsAlive reports whether pid currently names a live, signalable process.
func (OSProcessWatcher) IsAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
