//go:build !linux

package launcher

import "github.com/coreward/activation-host/internal/domain/entry"

// applyResourceLimits is a no-op outside Linux: cgroups are a
// Linux-specific facility and no other platform's governance mechanism
// is in scope here.
func applyResourceLimits(pid int, limits *entry.ResourceLimits) {}
