// Package bigint implements arbitrary-precision integers on base-2^32 limbs.
//
// UBigInt is the unsigned magnitude: carry-propagating addition and
// subtraction, schoolbook multiplication with a Karatsuba path above a
// tunable threshold (see SetKaratsubaThreshold), block long division,
// exponentiation by a table of squarings, floor square and cube roots, and
// conversion to and from base 2, 8, 10 and 16 text. Int layers a sign over
// it, with division truncating toward zero and range-checked conversion to
// native integers.
//
// Every operation has a value form, which returns a new result, and most have
// an Assign form that updates the receiver. Nothing in this package blocks,
// performs I/O or keeps shared state apart from the Karatsuba threshold,
// which is read atomically. Values may be read from several goroutines as
// long as none of them mutates the value.
//
// Caller errors panic with an apperrors.PreconditionError: division by zero,
// a UBigInt subtraction that would go negative, and gcd(0, 0). Parse and
// conversion failures are returned as errors.
package bigint
