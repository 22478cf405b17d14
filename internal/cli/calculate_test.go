package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/numcalc/internal/config"
	"github.com/agbru/numcalc/internal/engine"
	"github.com/agbru/numcalc/internal/orchestration"
)

func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cfg := config.AppConfig{
		Function:   "sin",
		Argument:   "1/2",
		Iterations: 64,
		Timeout:    time.Minute,
	}

	PrintExecutionConfig(cfg, &buf)

	out := buf.String()
	assert.Contains(t, out, "sin")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "64")
	assert.Contains(t, out, "Karatsuba threshold")
}

func TestPrintExecutionConfigWithoutArgument(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintExecutionConfig(config.AppConfig{Function: "pi", Iterations: 32}, &buf)
	assert.Contains(t, buf.String(), "(none)")
}

func TestPrintExecutionMode(t *testing.T) {
	t.Parallel()
	factory := engine.NewDefaultFactory()

	t.Run("single function", func(t *testing.T) {
		t.Parallel()
		ev, err := factory.Get("pi")
		require.NoError(t, err)

		var buf bytes.Buffer
		PrintExecutionMode([]engine.Evaluator{ev}, &buf)
		assert.Contains(t, buf.String(), "Single evaluation")
		assert.Contains(t, buf.String(), "pi")
	})

	t.Run("all functions", func(t *testing.T) {
		t.Parallel()
		evaluators := orchestration.GetEvaluatorsToRun(config.AppConfig{Function: config.AllFunctions}, factory)

		var buf bytes.Buffer
		PrintExecutionMode(evaluators, &buf)
		assert.Contains(t, buf.String(), "Concurrent evaluation")
	})

	t.Run("nothing", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		PrintExecutionMode(nil, &buf)
		assert.Contains(t, buf.String(), "nothing to evaluate")
	})
}
