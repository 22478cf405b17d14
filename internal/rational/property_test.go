package rational

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/numcalc/internal/bigint"
)

func isReduced(x *Rat) bool {
	if x.den.Sign() != 1 {
		return false
	}
	if x.num.IsZero() {
		return x.den.IsOne()
	}
	return bigint.GcdInt(&x.num, &x.den).IsOne()
}

func ratGen() gopter.Gen {
	return gopter.CombineGens(gen.Int64(), gen.Int64Range(1, 1<<40)).Map(func(v []any) *Rat {
		return NewRat(v[0].(int64), v[1].(int64))
	})
}

// TestReducedFormInvariant_PropertyBased checks that every operation leaves
// its result in lowest terms and agrees with math/big.
func TestReducedFormInvariant_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("field operations keep lowest terms", prop.ForAll(
		func(a, b *Rat) bool {
			results := []*Rat{a.Add(b), a.Sub(b), a.Mul(b), a.Neg(), a.Abs(), a.Frac(), a.Pow(3)}
			if !a.IsZero() {
				results = append(results, a.Pow(int32(b.Sign())-2))
			}
			if !b.IsZero() {
				results = append(results, a.Quo(b), b.Inv())
			}
			for _, r := range results {
				if !isReduced(r) {
					return false
				}
			}
			return true
		},
		ratGen(), ratGen(),
	))

	properties.Property("arithmetic agrees with math/big", prop.ForAll(
		func(a, b *Rat) bool {
			ba, bb := a.Big(), b.Big()
			if a.Add(b).Big().Cmp(new(big.Rat).Add(ba, bb)) != 0 ||
				a.Mul(b).Big().Cmp(new(big.Rat).Mul(ba, bb)) != 0 ||
				a.Cmp(b) != ba.Cmp(bb) {
				return false
			}
			return b.IsZero() || a.Quo(b).Big().Cmp(new(big.Rat).Quo(ba, bb)) == 0
		},
		ratGen(), ratGen(),
	))

	properties.Property("ApproxString truncates toward zero", prop.ForAll(
		func(a *Rat) bool {
			s := a.ApproxString(20)
			back, err := Parse(s)
			if err != nil || len(s) > 20 {
				return false
			}
			return back.Abs().LessEq(a.Abs())
		},
		ratGen(),
	))

	properties.TestingRun(t)
}
