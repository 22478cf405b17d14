package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/agbru/numcalc/internal/engine"
	"github.com/agbru/numcalc/internal/progress"
	"github.com/agbru/numcalc/internal/rational"
)

// scriptedEvaluator simulates evaluator behaviours for deadlock testing.
type scriptedEvaluator struct {
	name     string
	behavior string // "instant", "slow", "error", "progress_flood"
	delay    time.Duration
}

func (m *scriptedEvaluator) Evaluate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, _ *rational.Rat, _ engine.Options) (*engine.Result, error) {
	done := &engine.Result{Value: rational.One(), StableDigits: -1}
	switch m.behavior {
	case "slow":
		for i := 0; i < 100; i++ {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case progressChan <- progress.ProgressUpdate{EvaluatorIndex: index, Value: float64(i) / 100.0}:
			default:
			}
			time.Sleep(m.delay)
		}
	case "error":
		return nil, fmt.Errorf("simulated error")
	case "progress_flood":
		for i := 0; i < 10000; i++ {
			select {
			case progressChan <- progress.ProgressUpdate{EvaluatorIndex: index, Value: float64(i) / 10000.0}:
			default:
			}
		}
	}
	return done, nil
}

func (m *scriptedEvaluator) Name() string        { return m.name }
func (m *scriptedEvaluator) Description() string { return m.behavior }
func (m *scriptedEvaluator) Arity() int          { return 0 }

// slowReporter drains the channel with a delay per update.
type slowReporter struct{}

func (slowReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		time.Sleep(10 * time.Microsecond)
	}
}

func TestOrchestrationNoDeadlock_MixedBehaviors(t *testing.T) {
	testCases := []struct {
		name        string
		evaluators  []engine.Evaluator
		concurrency int
	}{
		{
			name: "all_instant",
			evaluators: []engine.Evaluator{
				&scriptedEvaluator{name: "c1", behavior: "instant"},
				&scriptedEvaluator{name: "c2", behavior: "instant"},
				&scriptedEvaluator{name: "c3", behavior: "instant"},
			},
		},
		{
			name: "mixed_instant_and_slow",
			evaluators: []engine.Evaluator{
				&scriptedEvaluator{name: "fast", behavior: "instant"},
				&scriptedEvaluator{name: "slow", behavior: "slow", delay: time.Millisecond},
			},
		},
		{
			name: "mixed_with_errors",
			evaluators: []engine.Evaluator{
				&scriptedEvaluator{name: "ok", behavior: "instant"},
				&scriptedEvaluator{name: "err", behavior: "error"},
			},
		},
		{
			name: "progress_flood_limited",
			evaluators: []engine.Evaluator{
				&scriptedEvaluator{name: "flood1", behavior: "progress_flood"},
				&scriptedEvaluator{name: "flood2", behavior: "progress_flood"},
				&scriptedEvaluator{name: "flood3", behavior: "progress_flood"},
			},
			concurrency: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			done := make(chan struct{})
			go func() {
				defer close(done)
				ExecuteEvaluations(ctx, tc.evaluators, RunConfig{Concurrency: tc.concurrency}, slowReporter{}, io.Discard)
			}()

			select {
			case <-done:
			case <-time.After(10 * time.Second):
				t.Fatal("DEADLOCK: ExecuteEvaluations did not complete within timeout")
			}
		})
	}
}

func TestOrchestrationNoDeadlock_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	evs := []engine.Evaluator{
		&scriptedEvaluator{name: "slow1", behavior: "slow", delay: 100 * time.Millisecond},
		&scriptedEvaluator{name: "slow2", behavior: "slow", delay: 100 * time.Millisecond},
	}

	var results []EvaluationResult
	done := make(chan struct{})
	go func() {
		defer close(done)
		results = ExecuteEvaluations(ctx, evs, RunConfig{}, NullProgressReporter{}, io.Discard)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("DEADLOCK after context cancellation")
	}
	for _, r := range results {
		if r.Err == nil {
			t.Errorf("%s: expected cancellation error", r.Name)
		}
	}
}
