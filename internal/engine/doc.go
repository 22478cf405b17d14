// Package engine turns the series functions into cancellable, observable
// evaluators. An evaluator refines its result over a doubling iteration
// schedule (k = 1, 2, 4, ... up to the requested count), checks the context
// between steps, reports progress, and estimates how many fractional digits
// have stopped changing.
package engine
