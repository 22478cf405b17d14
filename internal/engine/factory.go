package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agbru/numcalc/internal/series"
)

// Factory provides evaluators by name.
type Factory interface {
	// List returns registered names in sorted order.
	List() []string
	Get(name string) (Evaluator, error)
	// GetAll returns every evaluator sorted by name.
	GetAll() []Evaluator
	Register(e Evaluator)
}

// DefaultFactory is a concurrency-safe registry of evaluators.
type DefaultFactory struct {
	mu         sync.RWMutex
	evaluators map[string]Evaluator
}

// NewDefaultFactory returns a factory holding one SeriesEvaluator per
// registered series function.
func NewDefaultFactory() *DefaultFactory {
	f := NewEmptyFactory()
	for _, fn := range series.All() {
		f.Register(NewSeriesEvaluator(fn))
	}
	return f
}

// NewEmptyFactory returns a factory with nothing registered.
func NewEmptyFactory() *DefaultFactory {
	return &DefaultFactory{evaluators: make(map[string]Evaluator)}
}

// Register adds or replaces the evaluator under e.Name().
func (f *DefaultFactory) Register(e Evaluator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evaluators[e.Name()] = e
}

func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.evaluators))
	for name := range f.evaluators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f *DefaultFactory) Get(name string) (Evaluator, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	e, ok := f.evaluators[name]
	if !ok {
		return nil, fmt.Errorf("unknown function %q", name)
	}
	return e, nil
}

func (f *DefaultFactory) GetAll() []Evaluator {
	names := f.List()
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Evaluator, 0, len(names))
	for _, name := range names {
		out = append(out, f.evaluators[name])
	}
	return out
}
