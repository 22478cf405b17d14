package engine

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/agbru/numcalc/internal/errors"
	"github.com/agbru/numcalc/internal/progress"
	"github.com/agbru/numcalc/internal/rational"
	"github.com/agbru/numcalc/internal/series"
)

const (
	// DefaultIterations is the series iteration count used when none is set.
	DefaultIterations = 32
	// MaxIterations bounds the iteration count accepted from users. Series
	// cost grows at least linearly in k and operands grow with it.
	MaxIterations = 1 << 14
	// DefaultDigits is the default length of approximate output.
	DefaultDigits = 40
)

// Options controls one evaluation.
type Options struct {
	// Iterations is the target series iteration count k.
	Iterations uint
	// SingleStep evaluates only at Iterations, skipping the refinement
	// schedule. No stable digit estimate is produced.
	SingleStep bool
	// Observers receive progress in addition to the progress channel.
	Observers []progress.ProgressObserver
}

// Normalize fills defaults.
func (o Options) Normalize() Options {
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	return o
}

// Result is the outcome of one evaluation.
type Result struct {
	Value *rational.Rat
	// Iterations is the k of the final step.
	Iterations uint
	// Steps is the number of schedule steps run.
	Steps int
	// StableDigits counts fractional decimal digits that agreed between the
	// last two steps; -1 when unknown.
	StableDigits int
	// Converged is set when the last two steps produced identical values.
	Converged bool
	// StepDurations records the wall time of each step.
	StepDurations []time.Duration
}

// Evaluator computes one named function.
type Evaluator interface {
	Name() string
	Description() string
	// Arity is 0 for constants and 1 for functions of x.
	Arity() int
	Evaluate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, x *rational.Rat, opts Options) (*Result, error)
}

// SeriesEvaluator adapts a series.Function to Evaluator.
type SeriesEvaluator struct {
	fn series.Function
}

// NewSeriesEvaluator wraps fn.
func NewSeriesEvaluator(fn series.Function) *SeriesEvaluator {
	return &SeriesEvaluator{fn: fn}
}

func (e *SeriesEvaluator) Name() string        { return e.fn.Name }
func (e *SeriesEvaluator) Description() string { return e.fn.Doc }
func (e *SeriesEvaluator) Arity() int          { return e.fn.Arity }

// Evaluate runs the refinement schedule. The context is checked before each
// step; a step itself is not interruptible. Domain errors from the series
// are wrapped in CalculationError.
func (e *SeriesEvaluator) Evaluate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, x *rational.Rat, opts Options) (*Result, error) {
	opts = opts.Normalize()
	if opts.Iterations > MaxIterations {
		return nil, apperrors.ValidationError{
			Field:   "k",
			Message: fmt.Sprintf("iteration count %d exceeds %d", opts.Iterations, MaxIterations),
		}
	}
	if x == nil {
		if e.fn.Arity > 0 {
			return nil, apperrors.ValidationError{Field: "x", Message: e.fn.Name + " needs an argument"}
		}
		x = rational.Zero()
	}

	subject := progress.NewProgressSubject()
	subject.Register(progress.NewChannelObserver(progressChan))
	for _, o := range opts.Observers {
		subject.Register(o)
	}

	schedule := progress.Schedule(opts.Iterations)
	if opts.SingleStep {
		schedule = []uint{opts.Iterations}
	}
	totalWork := 0.0
	for _, k := range schedule {
		totalWork += float64(k)
	}

	res := &Result{StableDigits: -1}
	var prev *rational.Rat
	done := 0.0
	for _, k := range schedule {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		val, err := e.fn.Eval(x, k)
		if err != nil {
			return nil, apperrors.CalculationError{Function: e.fn.Name, Cause: err}
		}
		res.StepDurations = append(res.StepDurations, time.Since(start))
		if prev != nil {
			res.StableDigits, res.Converged = StableDigits(prev, val)
		}
		prev = val
		res.Value, res.Iterations = val, k
		res.Steps++

		done += float64(k)
		fraction := 1.0
		if totalWork > 0 {
			fraction = done / totalWork
		}
		subject.Notify(progress.ProgressUpdate{
			EvaluatorIndex: index,
			Value:          fraction,
			Iterations:     k,
			StableDigits:   res.StableDigits,
		})
	}
	return res, nil
}
