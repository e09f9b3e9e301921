package number

import (
	"math/big"

	"github.com/shopspring/decimal"
)

var maxUint64 = decimal.NewFromBigInt(new(big.Int).SetUint64(^uint64(0)), 0)

func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}

func Floor(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Floor().Shift(-precision)
}

// FromUint64 exact conversion, decimal.NewFromInt would wrap above MaxInt64
func FromUint64(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}

// ToUint64 floors d and reports whether it fits in an uint64
func ToUint64(d decimal.Decimal) (uint64, bool) {
	d = d.Floor()
	if d.IsNegative() || d.GreaterThan(maxUint64) {
		return 0, false
	}

	return d.BigInt().Uint64(), true
}

// MulDiv a*b/c rounded down, ok is false on division by zero or overflow
func MulDiv(a, b, c uint64) (uint64, bool) {
	return mulDiv(a, b, c, false)
}

// MulDivCeil a*b/c rounded up
func MulDivCeil(a, b, c uint64) (uint64, bool) {
	return mulDiv(a, b, c, true)
}

func mulDiv(a, b, c uint64, roundUp bool) (uint64, bool) {
	if c == 0 {
		return 0, false
	}

	q, r := FromUint64(a).Mul(FromUint64(b)).QuoRem(FromUint64(c), 0)
	if roundUp && !r.IsZero() {
		q = q.Add(decimal.NewFromInt(1))
	}

	return ToUint64(q)
}
