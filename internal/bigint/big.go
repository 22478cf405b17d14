package bigint

import "math/big"

// Big returns x as a *big.Int.
func (x *UBigInt) Big() *big.Int {
	return new(big.Int).SetBytes(x.nat().toBytes())
}

// UBigIntFromBig returns |b| as a UBigInt.
func UBigIntFromBig(b *big.Int) *UBigInt {
	return new(UBigInt).setNat(natFromBytes(b.Bytes()))
}

// Big returns x as a *big.Int.
func (x *Int) Big() *big.Int {
	b := x.mag.Big()
	if x.neg {
		b.Neg(b)
	}
	return b
}

// IntFromBig returns b as an Int.
func IntFromBig(b *big.Int) *Int {
	return intFromNat(natFromBytes(b.Bytes()), b.Sign() < 0)
}
