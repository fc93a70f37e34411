//go:build linux

package launcher

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/coreward/activation-host/internal/domain/entry"
)

// clockTicksPerSecond is the kernel's USER_HZ, conventionally 100 on
// Linux; /proc/[pid]/stat's utime/stime fields are expressed in it.
const clockTicksPerSecond = 100

// /proc/[pid]/stat field indices counted after the command's closing
// paren, matching the teacher's linux.CPUCollector offsets.
const (
	statFieldUTime = 11
	statFieldSTime = 12
)

type cpuSample struct {
	at    time.Time
	ticks uint64
}

var (
	cpuSamplesMu sync.Mutex
	cpuSamples   = map[int]cpuSample{}
)

// sampleUsage reads /proc/[pid]/stat and /proc/[pid]/status to report
// CPU percent (delta-based, 0 on the first sample for a given pid) and
// resident memory.
func sampleUsage(pid int) (entry.Measurement, error) {
	ticks, err := readProcessTicks(pid)
	if err != nil {
		return entry.Measurement{}, err
	}
	rss, err := readResidentMemory(pid)
	if err != nil {
		return entry.Measurement{}, err
	}

	now := time.Now()
	cpuSamplesMu.Lock()
	prev, seen := cpuSamples[pid]
	cpuSamples[pid] = cpuSample{at: now, ticks: ticks}
	cpuSamplesMu.Unlock()

	var cpuPercent float64
	if seen {
		elapsed := now.Sub(prev.at).Seconds()
		if elapsed > 0 && ticks >= prev.ticks {
			deltaSeconds := float64(ticks-prev.ticks) / clockTicksPerSecond
			cpuPercent = deltaSeconds / elapsed * 100
		}
	}

	return entry.Measurement{CPUPercent: cpuPercent, MemoryBytes: rss}, nil
}

func readProcessTicks(pid int) (uint64, error) {
	raw, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return 0, err
	}
	content := string(raw)
	// comm may itself contain spaces/parens; split on the last ')'.
	commEnd := strings.LastIndexByte(content, ')')
	if commEnd < 0 {
		return 0, fmt.Errorf("malformed /proc/%d/stat", pid)
	}
	fields := strings.Fields(content[commEnd+1:])
	if len(fields) <= statFieldSTime {
		return 0, fmt.Errorf("short /proc/%d/stat", pid)
	}
	utime, _ := strconv.ParseUint(fields[statFieldUTime], 10, 64)
	stime, _ := strconv.ParseUint(fields[statFieldSTime], 10, 64)
	return utime + stime, nil
}

func readResidentMemory(pid int) (int64, error) {
	raw, err := os.ReadFile(fmt.Sprintf("/proc/%d/status", pid))
	if err != nil {
		return 0, err
	}
	for _, line := range strings.Split(string(raw), "\n") {
		if !strings.HasPrefix(line, "VmRSS:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0, nil
		}
		kb, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return 0, nil
		}
		return kb * 1024, nil
	}
	return 0, nil
}
