// Package sysmon samples system-wide CPU and memory usage and the resident
// size of the current process.
package sysmon

import (
	"context"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Stats holds a single snapshot of resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
	// ProcessRSS is the resident set size of this process in bytes.
	ProcessRSS uint64
	NumCPU     int
}

// Sample collects a snapshot. CPU usage is the delta since the previous
// call. Fields that cannot be read are left at zero.
func Sample(ctx context.Context) Stats {
	s := Stats{NumCPU: runtime.NumCPU()}
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vmem, err := mem.VirtualMemoryWithContext(ctx); err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	if p, err := process.NewProcessWithContext(ctx, int32(os.Getpid())); err == nil {
		if info, err := p.MemoryInfoWithContext(ctx); err == nil && info != nil {
			s.ProcessRSS = info.RSS
		}
	}
	return s
}
