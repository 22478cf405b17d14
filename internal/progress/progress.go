// Package progress carries evaluation progress from the engine to whatever is
// displaying it (spinner, progress bar, TUI, logs).
package progress

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ProgressUpdate is one progress report from the evaluator at Index.
type ProgressUpdate struct {
	// EvaluatorIndex identifies the evaluator in a concurrent run.
	EvaluatorIndex int
	// Value is the completed fraction in [0, 1].
	Value float64
	// Iterations is the series iteration count of the step just finished.
	Iterations uint
	// StableDigits is how many leading digits agreed with the previous step.
	StableDigits int
}

// ProgressCallback receives completed fractions in [0, 1].
type ProgressCallback func(progress float64)

// ProgressObserver receives progress notifications from a ProgressSubject.
type ProgressObserver interface {
	Update(update ProgressUpdate)
}

// ProgressSubject fans progress updates out to registered observers.
type ProgressSubject struct {
	mu        sync.RWMutex
	observers []ProgressObserver
}

// NewProgressSubject returns an empty subject.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Register adds an observer. Nil observers are ignored.
func (s *ProgressSubject) Register(o ProgressObserver) {
	if o == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// Notify sends update to every observer.
func (s *ProgressSubject) Notify(update ProgressUpdate) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.observers {
		o.Update(update)
	}
}

// ObserverCount reports the number of registered observers.
func (s *ProgressSubject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// ChannelObserver forwards updates to a channel without ever blocking the
// evaluator: when the channel is full the update is dropped.
type ChannelObserver struct {
	ch chan<- ProgressUpdate
}

// NewChannelObserver returns an observer writing to ch.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

func (c *ChannelObserver) Update(update ProgressUpdate) {
	if c.ch == nil {
		return
	}
	select {
	case c.ch <- update:
	default:
	}
}

// LoggingObserver writes progress at debug level, at most once per interval
// per evaluator. The final update is always logged.
type LoggingObserver struct {
	logger   zerolog.Logger
	interval time.Duration

	mu   sync.Mutex
	last map[int]time.Time
}

// NewLoggingObserver returns a throttled logging observer.
func NewLoggingObserver(logger zerolog.Logger, interval time.Duration) *LoggingObserver {
	return &LoggingObserver{logger: logger, interval: interval, last: make(map[int]time.Time)}
}

func (l *LoggingObserver) Update(update ProgressUpdate) {
	l.mu.Lock()
	now := time.Now()
	prev, seen := l.last[update.EvaluatorIndex]
	if seen && update.Value < 1 && now.Sub(prev) < l.interval {
		l.mu.Unlock()
		return
	}
	l.last[update.EvaluatorIndex] = now
	l.mu.Unlock()

	l.logger.Debug().
		Int("index", update.EvaluatorIndex).
		Float64("progress", update.Value).
		Uint("k", update.Iterations).
		Int("stable_digits", update.StableDigits).
		Msg("refinement step")
}

// NoOpObserver discards updates.
type NoOpObserver struct{}

// NewNoOpObserver returns a NoOpObserver.
func NewNoOpObserver() NoOpObserver { return NoOpObserver{} }

func (NoOpObserver) Update(ProgressUpdate) {}

// ScheduleWork returns the total cost of a doubling iteration schedule
// 1, 2, 4, ..., up to and including target. Series cost grows linearly in k,
// so each step is weighted by its iteration count.
func ScheduleWork(target uint) float64 {
	if target == 0 {
		return 1
	}
	var total float64
	for _, k := range Schedule(target) {
		total += float64(k)
	}
	return total
}

// Schedule returns the doubling iteration schedule 1, 2, 4, ... capped at
// target. The last element is always target.
func Schedule(target uint) []uint {
	if target == 0 {
		return []uint{0}
	}
	var steps []uint
	for k := uint(1); k < target; k *= 2 {
		steps = append(steps, k)
	}
	return append(steps, target)
}
