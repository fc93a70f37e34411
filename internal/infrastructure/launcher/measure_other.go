//go:build !linux

package launcher

import "github.com/coreward/activation-host/internal/domain/entry"

// sampleUsage has no /proc filesystem to read from outside Linux; it
// reports a zero-value measurement rather than fabricating one.
func sampleUsage(pid int) (entry.Measurement, error) {
	return entry.Measurement{}, nil
}
