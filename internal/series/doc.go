// Package series approximates transcendental constants and functions with
// exact rational arithmetic.
//
// Every function takes an iteration count k and returns a rational.Rat.
// No floating point is used: each term is exact, so the only error comes
// from truncating the series, and it does not grow as k increases. The
// package does not choose k from a target precision; callers pick it.
//
// Pi, E and Ln2 start from embedded partial sums and add k more terms.
// Exp, Ln, Log and Pow build on them, the trigonometric functions reduce
// their argument with Pi(k), and Sqrt and Cbrt scale numerator and
// denominator by 2^(2(1+k)) and 2^(3(1+k)) before taking integer roots.
package series
