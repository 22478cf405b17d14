package bigint

import (
	"math/bits"

	apperrors "github.com/agbru/numcalc/internal/errors"
)

// divRemUint32 returns x / d and x % d. It panics if d == 0.
func divRemUint32(x nat, d uint32) (nat, uint32) {
	if d == 0 {
		panic(apperrors.ErrDivisionByZero)
	}
	q := make(nat, len(x))
	var r uint32
	for i := len(x) - 1; i >= 0; i-- {
		q[i], r = bits.Div32(r, x[i], d)
	}
	return q.norm(), r
}

// divRem returns the truncated quotient and remainder of a / b in fresh
// vectors. It panics if b is zero.
//
// Operands that fit in 64 bits use native division and a single-limb divisor
// uses short division. Otherwise the quotient is built block by block: the
// top 64 bits of the remainder are divided by the top 32 bits of b plus one,
// which never overestimates, and the block is multiplied back and subtracted
// at the matching bit offset until the remainder drops below b.
func divRem(a, b nat) (q, r nat) {
	switch {
	case len(b) == 0:
		panic(apperrors.ErrDivisionByZero)
	case cmpNat(a, b) < 0:
		return nil, a.clone()
	case len(a) <= 2:
		av, bv := a.uint64(), b.uint64()
		return natFromUint64(av / bv), natFromUint64(av % bv)
	case len(b) == 1:
		q, r32 := divRemUint32(a, b[0])
		return q, natFromUint64(uint64(r32))
	}

	bb := b.bitLen()
	bShift := bb - 32
	bTop := b.bitsFrom(bShift) // in [2^31, 2^32)

	r = a.clone()
	q = make(nat, len(a)-len(b)+1)
	for cmpNat(r, b) >= 0 {
		s := max(r.bitLen()-64, bShift)
		qhat := r.bitsFrom(s) / (bTop + 1)
		if qhat == 0 {
			// r and b agree on their top 32 bits, so r < 2b.
			subAt(r, b, 0)
			r = r.norm()
			addAt(q, nat{1}, 0)
			continue
		}
		shift := uint(s - bShift)
		t := mulUint64(b, qhat).shl(shift % limbBits)
		subAt(r, t, int(shift/limbBits))
		r = r.norm()
		addAt(q, natFromUint64(qhat).shl(shift%limbBits), int(shift/limbBits))
	}
	return q.norm(), r
}

// divRemReference is restoring binary long division, one bit at a time.
// Tests compare divRem against it.
func divRemReference(a, b nat) (q, r nat) {
	if len(b) == 0 {
		panic(apperrors.ErrDivisionByZero)
	}
	for i := a.bitLen() - 1; i >= 0; i-- {
		r = r.shl(1)
		if a[i/limbBits]>>(uint(i)%limbBits)&1 == 1 {
			r = addNat(r, nat{1})
		}
		q = q.shl(1)
		if cmpNat(r, b) >= 0 {
			r = subNat(r, b)
			q = addNat(q, nat{1})
		}
	}
	return q, r
}
