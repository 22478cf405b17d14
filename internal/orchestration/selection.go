package orchestration

import (
	"github.com/agbru/numcalc/internal/config"
	"github.com/agbru/numcalc/internal/engine"
)

// GetEvaluatorsToRun resolves cfg.Function against the factory. "all"
// yields every registered function in name order; unknown names are skipped.
func GetEvaluatorsToRun(cfg config.AppConfig, factory engine.Factory) []engine.Evaluator {
	names := cfg.FunctionNames(factory.List())
	evaluators := make([]engine.Evaluator, 0, len(names))
	for _, n := range names {
		if ev, err := factory.Get(n); err == nil {
			evaluators = append(evaluators, ev)
		}
	}
	return evaluators
}
