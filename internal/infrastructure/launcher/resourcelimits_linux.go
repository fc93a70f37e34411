//go:build linux

package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/coreward/activation-host/internal/domain/entry"
)

// cgroupV2Root mirrors the teacher's cgroup reader's DefaultCgroupPath;
// governance here is a best-effort sibling of that read path, written
// through the same unified hierarchy.
const cgroupV2Root = "/sys/fs/cgroup"

// applyResourceLimits writes limits into a per-pid cgroup v2 slice. Any
// failure is swallowed: a process whose cgroup cannot be governed still
// runs, just without the requested ceiling, and the core never treats
// resource governance as launch-blocking (§4.3's Limits field is
// advisory infrastructure, not a launch precondition).
func applyResourceLimits(pid int, limits *entry.ResourceLimits) {
	dir := filepath.Join(cgroupV2Root, fmt.Sprintf("activation-host-%d.scope", pid))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	if limits.MemoryLimitBytes > 0 {
		_ = os.WriteFile(filepath.Join(dir, "memory.max"), []byte(strconv.FormatInt(limits.MemoryLimitBytes, 10)), 0o644)
	}
	if limits.CPUShares > 0 {
		// cpu.weight ranges 1-10000; cgroup v1-style shares (2-262144,
		// default 1024) are rescaled onto that range.
		weight := limits.CPUShares * 100 / 1024
		if weight < 1 {
			weight = 1
		}
		if weight > 10000 {
			weight = 10000
		}
		_ = os.WriteFile(filepath.Join(dir, "cpu.weight"), []byte(strconv.Itoa(weight)), 0o644)
	}
	if limits.CPUSet != "" {
		_ = os.WriteFile(filepath.Join(dir, "cpuset.cpus"), []byte(limits.CPUSet), 0o644)
	}
	_ = os.WriteFile(filepath.Join(dir, "cgroup.procs"), []byte(strconv.Itoa(pid)), 0o644)
}
