package numeric

import (
	"github.com/shopspring/decimal"
)

// decimalLike is a thin indirection so arith.go doesn't need to import
// shopspring/decimal directly in its signatures; it keeps the "any ×
// decimal -> decimal" promotion rule's conversion step in one place.
type decimalLike = decimal.Decimal

func toDecimalImpl(n Number) decimal.Decimal {
	switch n.Kind {
	case Dec:
		return n.Dec
	case F32:
		return decimal.NewFromFloat32(n.F32)
	case F64:
		return decimal.NewFromFloat(n.F64)
	default:
		if n.Kind.IsSigned() {
			return decimal.NewFromBigInt(n.SI, 0)
		}
		return decimal.NewFromBigInt(n.UI.Big(), 0)
	}
}

func decimalBinary(op Op, l, r decimal.Decimal) (Number, error) {
	switch op {
	case OpAdd:
		return FromDecimal(l.Add(r)), nil
	case OpSub:
		return FromDecimal(l.Sub(r)), nil
	case OpMul:
		return FromDecimal(l.Mul(r)), nil
	case OpDiv:
		if r.IsZero() {
			return Number{}, ErrDivByZero
		}
		return FromDecimal(l.Div(r)), nil
	case OpMod:
		if r.IsZero() {
			return Number{}, ErrDivByZero
		}
		return FromDecimal(l.Mod(r)), nil
	}
	return Number{}, ErrDivByZero
}
