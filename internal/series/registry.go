package series

import (
	"sort"

	"github.com/agbru/numcalc/internal/rational"
)

// Func evaluates a registered function at x with k iterations. Constants
// ignore x.
type Func func(x *rational.Rat, k uint) (*rational.Rat, error)

// Function describes a named evaluator.
type Function struct {
	Name string
	Doc  string
	// Arity is 0 for constants and 1 for functions of x.
	Arity int
	Eval  Func
}

func constant(f func(uint) *rational.Rat) Func {
	return func(_ *rational.Rat, k uint) (*rational.Rat, error) { return f(k), nil }
}

func total(f func(*rational.Rat, uint) *rational.Rat) Func {
	return func(x *rational.Rat, k uint) (*rational.Rat, error) { return f(x, k), nil }
}

func logBase(b int64) Func {
	return func(x *rational.Rat, k uint) (*rational.Rat, error) {
		return Log(x, rational.FromInt64(b), k)
	}
}

var registry = map[string]Function{
	"pi":    {Name: "pi", Doc: "pi (BBP series)", Arity: 0, Eval: constant(Pi)},
	"e":     {Name: "e", Doc: "Euler's number", Arity: 0, Eval: constant(E)},
	"ln2":   {Name: "ln2", Doc: "natural logarithm of 2", Arity: 0, Eval: constant(Ln2)},
	"exp":   {Name: "exp", Doc: "e raised to x", Arity: 1, Eval: Exp},
	"ln":    {Name: "ln", Doc: "natural logarithm, x > 0", Arity: 1, Eval: Ln},
	"log2":  {Name: "log2", Doc: "base-2 logarithm, x > 0", Arity: 1, Eval: logBase(2)},
	"log10": {Name: "log10", Doc: "base-10 logarithm, x > 0", Arity: 1, Eval: logBase(10)},
	"sin":   {Name: "sin", Doc: "sine", Arity: 1, Eval: total(Sin)},
	"cos":   {Name: "cos", Doc: "cosine", Arity: 1, Eval: total(Cos)},
	"tan":   {Name: "tan", Doc: "tangent", Arity: 1, Eval: Tan},
	"asin":  {Name: "asin", Doc: "arcsine, |x| <= 1", Arity: 1, Eval: Asin},
	"acos":  {Name: "acos", Doc: "arccosine, |x| <= 1", Arity: 1, Eval: Acos},
	"atan":  {Name: "atan", Doc: "arctangent", Arity: 1, Eval: total(Atan)},
	"sqrt":  {Name: "sqrt", Doc: "square root, x >= 0", Arity: 1, Eval: Sqrt},
	"cbrt":  {Name: "cbrt", Doc: "cube root", Arity: 1, Eval: total(Cbrt)},
}

// Lookup returns the function registered under name.
func Lookup(name string) (Function, bool) {
	f, ok := registry[name]
	return f, ok
}

// Names returns the registered names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered function sorted by name.
func All() []Function {
	names := Names()
	fns := make([]Function, len(names))
	for i, name := range names {
		fns[i] = registry[name]
	}
	return fns
}
