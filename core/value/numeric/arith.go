package numeric

import (
	"errors"
	"math"
	"math/big"

	"lukechampine.com/uint128"
)

// Op is one of the five checked binary arithmetic operators.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
)

// ErrDivByZero is returned by Binary for Div/Mod with a zero rhs.
var ErrDivByZero = errors.New("divisor should not be zero")

// ErrOverflow is returned by Binary when the exact result does not fit the
// promoted target Kind's width. Use errors.As to recover the Kind.
type ErrOverflow struct {
	Kind Kind
}

func (e *ErrOverflow) Error() string { return "binary operation overflow" }

// ErrConversion is returned when an unsigned operand cannot be represented
// in i128 for a signed/unsigned mixed operation.
var ErrConversion = errors.New("conversion error: unsigned operand does not fit in i128")

// promote computes the result Kind of combining kinds a and b per a
// fixed promotion table.
func promote(a, b Kind) (Kind, error) {
	switch {
	case a == Dec || b == Dec:
		return Dec, nil
	case a.IsFloat() || b.IsFloat():
		switch {
		case a.IsFloat() && b.IsFloat():
			return widerFloat(a, b), nil
		case a.IsFloat():
			return a, nil
		default:
			return b, nil
		}
	case a.IsSigned() && b.IsSigned():
		return widerSigned(a, b), nil
	case a.IsUnsigned() && b.IsUnsigned():
		return widerUnsigned(a, b), nil
	default:
		// one signed, one unsigned: both widen to I128 whatever their
		// widths (I32 with U32 gives I128, not I64); Binary reports
		// ErrConversion when the unsigned side does not fit in I128.
		return I128, nil
	}
}

// toBigSigned widens n (assumed integer, any signedness) to a big.Int,
// erroring if an unsigned operand cannot fit in i128.
func toBigSigned(n Number) (*big.Int, error) {
	switch {
	case n.Kind.IsSigned():
		return n.SI, nil
	case n.Kind.IsUnsigned():
		if n.UI.Hi>>63 != 0 {
			// top bit of the high word set: exceeds i128 max (2^127-1)
			return nil, ErrConversion
		}
		return n.UI.Big(), nil
	default:
		return nil, errors.New("not an integer")
	}
}

func toFloat(n Number) float64 {
	switch n.Kind {
	case F32:
		return float64(n.F32)
	case F64:
		return n.F64
	case Dec:
		f, _ := n.Dec.Float64()
		return f
	default:
		bi, err := toBigSigned(n)
		if err != nil {
			f := new(big.Float).SetInt(n.UI.Big())
			out, _ := f.Float64()
			return out
		}
		f := new(big.Float).SetInt(bi)
		out, _ := f.Float64()
		return out
	}
}

func toDecimal(n Number) (d decimalLike) {
	return toDecimalImpl(n)
}

// Binary applies op to l and r per the promotion table, using checked
// arithmetic: overflow for any integer result that does not fit the
// promoted Kind's width returns *ErrOverflow, and Div/Mod by a zero
// divisor returns ErrDivByZero, both checked before any truncation.
func Binary(op Op, l, r Number) (Number, error) {
	target, err := promote(l.Kind, r.Kind)
	if err != nil {
		return Number{}, err
	}

	switch {
	case target == Dec:
		ld, rd := toDecimal(l), toDecimal(r)
		return decimalBinary(op, ld, rd)
	case target.IsFloat():
		lf, rf := toFloat(l), toFloat(r)
		res, err := floatBinary(op, lf, rf)
		if err != nil {
			return Number{}, err
		}
		if target == F32 {
			return FromF32(float32(res)), nil
		}
		return FromF64(res), nil
	case target.IsUnsigned():
		lu, err := toUnsigned128(l)
		if err != nil {
			return Number{}, err
		}
		ru, err := toUnsigned128(r)
		if err != nil {
			return Number{}, err
		}
		return unsignedBinary(op, target, lu, ru)
	default: // signed, possibly I128 from a mixed signed/unsigned pair
		lb, err := toBigSigned(l)
		if err != nil {
			return Number{}, err
		}
		rb, err := toBigSigned(r)
		if err != nil {
			return Number{}, err
		}
		return signedBinary(op, target, lb, rb)
	}
}

func toUnsigned128(n Number) (uint128.Uint128, error) {
	if n.Kind.IsUnsigned() {
		return n.UI, nil
	}
	return uint128.Uint128{}, errors.New("not unsigned")
}

func signedBinary(op Op, target Kind, l, r *big.Int) (Number, error) {
	var res big.Int
	switch op {
	case OpAdd:
		res.Add(l, r)
	case OpSub:
		res.Sub(l, r)
	case OpMul:
		res.Mul(l, r)
	case OpDiv:
		if r.Sign() == 0 {
			return Number{}, ErrDivByZero
		}
		res.Quo(l, r)
	case OpMod:
		if r.Sign() == 0 {
			return Number{}, ErrDivByZero
		}
		res.Rem(l, r)
	}
	if !fitsSigned(target, &res) {
		return Number{}, &ErrOverflow{Kind: target}
	}
	return Number{Kind: target, SI: &res}, nil
}

func unsignedBinary(op Op, target Kind, l, r uint128.Uint128) (Number, error) {
	var res uint128.Uint128
	switch op {
	case OpAdd:
		if l.Cmp(uint128.Max.Sub(r)) > 0 {
			return Number{}, &ErrOverflow{Kind: target}
		}
		res = l.Add(r)
	case OpSub:
		if l.Cmp(r) < 0 {
			return Number{}, &ErrOverflow{Kind: target}
		}
		res = l.Sub(r)
	case OpMul:
		if !r.IsZero() && l.Cmp(uint128.Max.Div(r)) > 0 {
			return Number{}, &ErrOverflow{Kind: target}
		}
		res = l.Mul(r)
	case OpDiv:
		if r.IsZero() {
			return Number{}, ErrDivByZero
		}
		res = l.Div(r)
	case OpMod:
		if r.IsZero() {
			return Number{}, ErrDivByZero
		}
		res = l.Mod(r)
	}
	if !fitsUnsigned(target, res) {
		return Number{}, &ErrOverflow{Kind: target}
	}
	return Number{Kind: target, UI: res}, nil
}

func floatBinary(op Op, l, r float64) (float64, error) {
	switch op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpDiv:
		if r == 0 {
			return 0, ErrDivByZero
		}
		return l / r, nil
	case OpMod:
		if r == 0 {
			return 0, ErrDivByZero
		}
		return math.Mod(l, r), nil
	}
	return 0, errors.New("unsupported op")
}
