package orchestration

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/agbru/numcalc/internal/engine"
	"github.com/agbru/numcalc/internal/progress"
	"github.com/agbru/numcalc/internal/rational"
)

func TestVerification_Mismatch(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		v    Verification
		want bool
	}{
		{"Agrees", Verification{Claimed: 12, Agreed: 15}, false},
		{"WithinSlack", Verification{Claimed: 12, Agreed: 11}, false},
		{"Contradicts", Verification{Claimed: 12, Agreed: 10}, true},
		{"Identical", Verification{Claimed: 12, Agreed: engine.ExactDigits}, false},
		{"ExactClaim", Verification{Claimed: engine.ExactDigits, Agreed: 3}, false},
		{"Skipped", Verification{Claimed: 12, Skipped: true}, false},
	}
	for _, tt := range tests {
		if got := tt.v.Mismatch(); got != tt.want {
			t.Errorf("%s: Mismatch() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestVerifyResults_RealEngine(t *testing.T) {
	t.Parallel()
	f := engine.NewDefaultFactory()
	names := []string{"e", "exp", "atan", "sqrt"}
	evs := make([]engine.Evaluator, len(names))
	for i, n := range names {
		ev, err := f.Get(n)
		if err != nil {
			t.Fatal(err)
		}
		evs[i] = ev
	}
	run := RunConfig{Argument: rational.NewRat(1, 3), Options: engine.Options{Iterations: 32}}
	results := ExecuteEvaluations(context.Background(), evs, run, NullProgressReporter{}, io.Discard)
	checks := VerifyResults(context.Background(), evs, results, run, NullProgressReporter{}, io.Discard)

	if len(checks) != len(names) {
		t.Fatalf("got %d checks, want %d", len(checks), len(names))
	}
	for _, c := range checks {
		if c.CheckIterations != 64 {
			t.Errorf("%s: CheckIterations = %d, want 64", c.Name, c.CheckIterations)
		}
		if c.Skipped || c.Mismatch() {
			t.Errorf("%s: claimed %d, agreed %d, err %v", c.Name, c.Claimed, c.Agreed, c.Err)
		}
	}
}

func TestVerifyResults_SkipsFailuresAndSingleStep(t *testing.T) {
	t.Parallel()
	called := 0
	ev := &MockEvaluator{EvaluateFunc: func(context.Context, progress.ProgressCallback, *rational.Rat, engine.Options) (*engine.Result, error) {
		called++
		return &engine.Result{Value: rational.One()}, nil
	}}
	results := []EvaluationResult{
		{Name: "a", Err: errors.New("fail")},
		{Name: "b", Result: &engine.Result{Value: rational.One(), StableDigits: -1}},
	}
	checks := VerifyResults(context.Background(), []engine.Evaluator{ev, ev}, results, RunConfig{}, NullProgressReporter{}, io.Discard)
	if checks != nil || called != 0 {
		t.Errorf("expected no re-evaluation, got %d checks and %d calls", len(checks), called)
	}
}

func TestVerifyResults_DetectsDisagreement(t *testing.T) {
	t.Parallel()
	ev := &MockEvaluator{NameValue: "drift", EvaluateFunc: constResult("0.5")}
	results := []EvaluationResult{{
		Name:   "drift",
		Result: &engine.Result{Value: rational.MustParse("0.25"), Iterations: 8, StableDigits: 10},
	}}
	checks := VerifyResults(context.Background(), []engine.Evaluator{ev}, results, RunConfig{Options: engine.Options{Iterations: 8}}, NullProgressReporter{}, io.Discard)
	if len(checks) != 1 {
		t.Fatalf("got %d checks", len(checks))
	}
	if !checks[0].Mismatch() {
		t.Errorf("expected mismatch, got claimed %d agreed %d", checks[0].Claimed, checks[0].Agreed)
	}
	if checks[0].CheckIterations != 16 {
		t.Errorf("CheckIterations = %d, want 16", checks[0].CheckIterations)
	}
}
