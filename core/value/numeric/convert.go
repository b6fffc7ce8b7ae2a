package numeric

import (
	"math/big"

	"lukechampine.com/uint128"
)

// To narrows n to target, applying the same range check Binary uses for
// overflow. It is the numeric half of value.Value.Cast: textual/temporal
// casts are handled in core/value itself.
func To(n Number, target Kind) (Number, error) {
	switch {
	case target == Dec:
		return FromDecimal(toDecimal(n)), nil
	case target.IsFloat():
		f := toFloat(n)
		if target == F32 {
			return FromF32(float32(f)), nil
		}
		return FromF64(f), nil
	case target.IsSigned():
		bi, err := toBigSignedFor(n)
		if err != nil {
			return Number{}, err
		}
		if !fitsSigned(target, bi) {
			return Number{}, &ErrOverflow{Kind: target}
		}
		return Number{Kind: target, SI: bi}, nil
	default: // unsigned
		u, err := toUnsignedFor(n)
		if err != nil {
			return Number{}, err
		}
		if !fitsUnsigned(target, u) {
			return Number{}, &ErrOverflow{Kind: target}
		}
		return Number{Kind: target, UI: u}, nil
	}
}

// toBigSignedFor widens n (any numeric kind, including float/decimal via
// truncation) to a big.Int for a signed cast.
func toBigSignedFor(n Number) (*big.Int, error) {
	switch {
	case n.Kind.IsSigned():
		return new(big.Int).Set(n.SI), nil
	case n.Kind.IsUnsigned():
		return n.UI.Big(), nil
	case n.Kind == F32, n.Kind == F64:
		bi, _ := big.NewFloat(toFloat(n)).Int(nil)
		return bi, nil
	case n.Kind == Dec:
		bi, _ := big.NewFloat(0).SetPrec(200).SetString(n.Dec.Truncate(0).String())
		if bi == nil {
			return big.NewInt(0), nil
		}
		out, _ := bi.Int(nil)
		return out, nil
	}
	return nil, ErrDivByZero
}

func toUnsignedFor(n Number) (uint128.Uint128, error) {
	bi, err := toBigSignedFor(n)
	if err != nil {
		return uint128.Uint128{}, err
	}
	if bi.Sign() < 0 {
		return uint128.Uint128{}, &ErrOverflow{Kind: U128}
	}
	u, ok := uint128.FromBig(bi)
	if !ok {
		return uint128.Uint128{}, &ErrOverflow{Kind: U128}
	}
	return u, nil
}
