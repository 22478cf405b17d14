package orchestration

import (
	"context"
	"io"

	"github.com/agbru/numcalc/internal/engine"
)

// Verification compares a result with a single-step re-evaluation of the
// same function at twice the iteration count.
type Verification struct {
	Name            string
	Iterations      uint
	CheckIterations uint
	// Claimed is the primary result's stable digit estimate.
	Claimed int
	// Agreed counts fractional digits shared with the re-evaluation.
	Agreed int
	// Skipped is set when the primary gave no estimate or the re-check failed.
	Skipped bool
	Err     error
}

// Mismatch reports a re-evaluation that contradicts the stable digit estimate.
// One digit of slack covers the bound's rounding at a truncation boundary.
// Exact convergence claims are not checked.
func (v Verification) Mismatch() bool {
	if v.Skipped || v.Agreed == engine.ExactDigits || v.Claimed == engine.ExactDigits {
		return false
	}
	return v.Agreed < v.Claimed-1
}

// VerifyResults re-evaluates each successful result at 2k in a single step
// and compares. evaluators must be the slice that produced results.
func VerifyResults(ctx context.Context, evaluators []engine.Evaluator, results []EvaluationResult, run RunConfig, reporter ProgressReporter, out io.Writer) []Verification {
	var toCheck []engine.Evaluator
	var primaries []EvaluationResult
	for i, r := range results {
		if r.Err != nil || r.Result.StableDigits < 0 {
			continue
		}
		toCheck = append(toCheck, evaluators[i])
		primaries = append(primaries, r)
	}
	if len(toCheck) == 0 {
		return nil
	}

	checkRun := run
	checkRun.Metrics = nil
	k := run.Options.Normalize().Iterations
	checkRun.Options.Iterations = min(2*k, engine.MaxIterations)
	checkRun.Options.SingleStep = true
	checkRun.Options.Observers = nil
	checks := ExecuteEvaluations(ctx, toCheck, checkRun, reporter, out)

	checked := make([]Verification, len(checks))
	for i, c := range checks {
		p := primaries[i]
		v := Verification{
			Name:            p.Name,
			Iterations:      p.Result.Iterations,
			CheckIterations: checkRun.Options.Iterations,
			Claimed:         p.Result.StableDigits,
		}
		if c.Err != nil {
			v.Skipped, v.Err = true, c.Err
		} else {
			v.Agreed, _ = engine.StableDigits(p.Result.Value, c.Result.Value)
		}
		checked[i] = v
	}
	return checked
}
