// Package metrics collects runtime memory readings, Prometheus evaluation
// metrics and the derived indicators shown after an evaluation.
package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by live objects
	HeapSys      uint64 // heap bytes obtained from the OS
	Sys          uint64 // total bytes obtained from the OS
	TotalAlloc   uint64 // cumulative bytes allocated
	NumGC        uint32
	PauseTotalNs uint64
	HeapObjects  uint64
}

// MemoryDelta is the difference between two snapshots.
type MemoryDelta struct {
	// Allocated counts bytes allocated in between, whether freed or not.
	Allocated uint64
	GCCycles  uint32
	// PauseNs is the GC pause time accumulated in between.
	PauseNs uint64
}

// Sub returns what happened between before and s.
func (s MemorySnapshot) Sub(before MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		Allocated: s.TotalAlloc - before.TotalAlloc,
		GCCycles:  s.NumGC - before.NumGC,
		PauseNs:   s.PauseTotalNs - before.PauseTotalNs,
	}
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector returns a collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads the current statistics. It stops the world briefly.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		TotalAlloc:   m.TotalAlloc,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}
