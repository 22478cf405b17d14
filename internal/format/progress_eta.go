package format

import (
	"fmt"
	"strings"
	"time"
)

// maxETA caps estimates produced from very slow early rates.
const maxETA = 24 * time.Hour

// ETATracker averages the completed fraction of several concurrent
// evaluations and extrapolates the remaining time from the mean rate since
// start.
type ETATracker struct {
	fractions []float64
	start     time.Time
	rate      float64 // average fraction per second
}

// NewETATracker starts the clock for n evaluations, all at zero.
func NewETATracker(n int) *ETATracker {
	return &ETATracker{fractions: make([]float64, max(n, 0)), start: time.Now()}
}

// Set records the fraction of evaluation index, clamped to [0, 1], and
// returns the refreshed average and estimate. Unknown indices only refresh.
func (e *ETATracker) Set(index int, fraction float64) (float64, time.Duration) {
	if index >= 0 && index < len(e.fractions) {
		e.fractions[index] = min(max(fraction, 0), 1)
	}
	avg := e.Average()
	if elapsed := time.Since(e.start).Seconds(); elapsed > 0 && avg > 0 {
		e.rate = avg / elapsed
	}
	return avg, e.ETA()
}

// Average is the mean fraction, 0 with no evaluations.
func (e *ETATracker) Average() float64 {
	if len(e.fractions) == 0 {
		return 0
	}
	var sum float64
	for _, f := range e.fractions {
		sum += f
	}
	return sum / float64(len(e.fractions))
}

// ETA is the estimated remaining time, 0 while the rate is unknown.
func (e *ETATracker) ETA() time.Duration {
	avg := e.Average()
	if avg <= 0 || e.rate <= 0 {
		return 0
	}
	secs := (1 - avg) / e.rate
	if secs > maxETA.Seconds() {
		return maxETA
	}
	return time.Duration(secs * float64(time.Second))
}

// ProgressBar renders length cells, filled in proportion to fraction.
func ProgressBar(fraction float64, length int) string {
	filled := int(min(max(fraction, 0), 1) * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders "[bar]  42.0% ETA: 1m5s".
func FormatProgressBarWithETA(fraction float64, eta time.Duration, width int) string {
	fraction = min(max(fraction, 0), 1)
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(fraction, width), fraction*100, FormatETA(eta))
}
