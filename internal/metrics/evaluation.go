package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	apperrors "github.com/agbru/numcalc/internal/errors"
)

// Namespace prefixes every numcalc metric.
const Namespace = "numcalc"

// EvaluationCollector records evaluation outcomes.
type EvaluationCollector struct {
	evaluations  *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	resultLimbs  *prometheus.HistogramVec
	stableDigits *prometheus.GaugeVec
}

// NewEvaluationCollector creates the collectors and registers them with reg.
func NewEvaluationCollector(reg prometheus.Registerer) *EvaluationCollector {
	c := &EvaluationCollector{
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "evaluations_total",
			Help:      "Evaluations by function and outcome.",
		}, []string{"function", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Wall time of successful evaluations.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"function"}),
		resultLimbs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "result_limbs",
			Help:      "Limbs in the numerator plus denominator of a result.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"function"}),
		stableDigits: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "stable_digits",
			Help:      "Fractional digits stable across the last refinement of the latest evaluation.",
		}, []string{"function"}),
	}
	reg.MustRegister(c.evaluations, c.duration, c.resultLimbs, c.stableDigits)
	return c
}

// Status classifies an evaluation error for the status label.
func Status(err error) string {
	var rng apperrors.NotInRangeError
	switch {
	case err == nil:
		return "ok"
	case apperrors.IsContextError(err):
		return "canceled"
	case errors.As(err, &rng):
		return "domain_error"
	default:
		return "error"
	}
}

// Observe records one evaluation. limbs and stable are ignored on error;
// a negative stable count is not recorded.
func (c *EvaluationCollector) Observe(function string, d time.Duration, limbs, stable int, err error) {
	c.evaluations.WithLabelValues(function, Status(err)).Inc()
	if err != nil {
		return
	}
	c.duration.WithLabelValues(function).Observe(d.Seconds())
	c.resultLimbs.WithLabelValues(function).Observe(float64(limbs))
	if stable >= 0 {
		c.stableDigits.WithLabelValues(function).Set(float64(stable))
	}
}
