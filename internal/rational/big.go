package rational

import (
	"math/big"

	"github.com/agbru/numcalc/internal/bigint"
)

// Big returns x as a *big.Rat.
func (x *Rat) Big() *big.Rat {
	return new(big.Rat).SetFrac(x.num.Big(), x.den.Big())
}

// FromBigRat returns the value of r. big.Rat keeps lowest terms with a
// positive denominator, so no reduction is needed.
func FromBigRat(r *big.Rat) *Rat {
	return newRaw(bigint.IntFromBig(r.Num()), bigint.IntFromBig(r.Denom()))
}
