// Package rational provides Rat, an exact rational number built on the
// signed integers of package bigint.
//
// A Rat is always in lowest terms with a positive denominator. It supports
// field arithmetic, comparison, integer and fractional parts, exact integer
// powers, bit-exact conversion from and to IEEE754 binary32 and binary64,
// parsing of decimal, scientific and radix-prefixed literals, and
// length-bounded decimal formatting.
package rational
