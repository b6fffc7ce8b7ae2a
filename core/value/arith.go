package value

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gluesql/gluesql-sub000/core/sqlerr"
	"github.com/gluesql/gluesql-sub000/core/value/numeric"
)

// numericBinary runs op through core/value/numeric's promotion table and
// translates numeric's untyped errors into the tagged sqlerr.Error
// forms, attaching lhs/rhs/op context.
func (v Value) numericBinary(op numeric.Op, other Value, opName string) (Value, error) {
	n, err := numeric.Binary(op, v.asNumber(), other.asNumber())
	if err == nil {
		return fromNumber(resultKind(v.kind, other.kind, n.Kind), n), nil
	}
	var overflow *numeric.ErrOverflow
	switch {
	case errors.Is(err, numeric.ErrDivByZero):
		return Value{}, sqlerr.New(sqlerr.KindDivisorIsZero, "%s by zero", opName)
	case errors.As(err, &overflow):
		return Value{}, sqlerr.New(sqlerr.KindBinaryOperationOverflow,
			"binary operation overflow: %v %s %v", v, opName, other).
			With("lhs", v).With("rhs", other).With("op", opName)
	case errors.Is(err, numeric.ErrConversion):
		return Value{}, sqlerr.New(sqlerr.KindNonNumericArithmetic,
			"conversion error from %v to %v", other.kind, v.kind)
	default:
		return Value{}, sqlerr.New(sqlerr.KindNonNumericArithmetic, "%v", err)
	}
}

// resultKind maps a numeric.Kind back to the widest value.Kind that can
// hold it, matching the promotion table's result kind exactly (I128/U128
// are only reached via a mixed signed/unsigned pair or an explicit I128
// operand).
func resultKind(a, b Kind, nk numeric.Kind) Kind {
	switch nk {
	case numeric.I8:
		return KindI8
	case numeric.I16:
		return KindI16
	case numeric.I32:
		return KindI32
	case numeric.I64:
		return KindI64
	case numeric.I128:
		return KindI128
	case numeric.U8:
		return KindU8
	case numeric.U16:
		return KindU16
	case numeric.U32:
		return KindU32
	case numeric.U64:
		return KindU64
	case numeric.U128:
		return KindU128
	case numeric.F32:
		return KindF32
	case numeric.F64:
		return KindF64
	case numeric.Dec:
		return KindDecimal
	}
	return KindNull
}

// Add implements Value + Value, including Interval/Date/Time/Timestamp
// combinations. NULL propagates: if either operand is Null the result
// is Null, never an error.
func (v Value) Add(other Value) (Value, error) {
	if v.IsNull() || other.IsNull() {
		return Null(), nil
	}
	if v.kind == KindInterval || other.kind == KindInterval {
		return addInterval(v, other, +1)
	}
	if v.kind.IsNumeric() && other.kind.IsNumeric() {
		return v.numericBinary(numeric.OpAdd, other, "add")
	}
	return Value{}, sqlerr.New(sqlerr.KindNonNumericArithmetic,
		"cannot add %v and %v", v.kind, other.kind)
}

// Subtract implements Value - Value.
func (v Value) Subtract(other Value) (Value, error) {
	if v.IsNull() || other.IsNull() {
		return Null(), nil
	}
	if v.kind == KindInterval && other.kind == KindInterval {
		return subtractIntervals(v.raw.(Interval), other.raw.(Interval))
	}
	if v.kind == KindInterval || other.kind == KindInterval {
		return addInterval(v, other, -1)
	}
	if v.kind.IsNumeric() && other.kind.IsNumeric() {
		return v.numericBinary(numeric.OpSub, other, "subtract")
	}
	return Value{}, sqlerr.New(sqlerr.KindNonNumericArithmetic,
		"cannot subtract %v and %v", v.kind, other.kind)
}

// Multiply implements Value * Value.
func (v Value) Multiply(other Value) (Value, error) {
	if v.IsNull() || other.IsNull() {
		return Null(), nil
	}
	if !v.kind.IsNumeric() || !other.kind.IsNumeric() {
		return Value{}, sqlerr.New(sqlerr.KindNonNumericArithmetic,
			"cannot multiply %v and %v", v.kind, other.kind)
	}
	return v.numericBinary(numeric.OpMul, other, "multiply")
}

// Divide implements Value / Value.
func (v Value) Divide(other Value) (Value, error) {
	if v.IsNull() || other.IsNull() {
		return Null(), nil
	}
	if !v.kind.IsNumeric() || !other.kind.IsNumeric() {
		return Value{}, sqlerr.New(sqlerr.KindNonNumericArithmetic,
			"cannot divide %v and %v", v.kind, other.kind)
	}
	return v.numericBinary(numeric.OpDiv, other, "divide")
}

// Modulo implements Value % Value.
func (v Value) Modulo(other Value) (Value, error) {
	if v.IsNull() || other.IsNull() {
		return Null(), nil
	}
	if !v.kind.IsNumeric() || !other.kind.IsNumeric() {
		return Value{}, sqlerr.New(sqlerr.KindNonNumericArithmetic,
			"cannot modulo %v and %v", v.kind, other.kind)
	}
	return v.numericBinary(numeric.OpMod, other, "modulo")
}

// addInterval adds (sign=+1) or subtracts (sign=-1) an Interval and a
// Date/Time/Timestamp. Adding a year-month interval to a Time is an
// error; adding to Time otherwise rolls modulo 24h; adding to Date or
// Timestamp always yields a Timestamp.
func addInterval(v, other Value, sign int) (Value, error) {
	var iv Interval
	var base Value
	if v.kind == KindInterval {
		iv, base = v.raw.(Interval), other
	} else {
		iv, base = other.raw.(Interval), v
	}

	shift := func(t time.Time) time.Time {
		if iv.Kind == IntervalMonth {
			return t.AddDate(0, sign*int(iv.Month), 0)
		}
		return t.Add(time.Duration(sign*int(iv.Micro)) * time.Microsecond)
	}

	switch base.kind {
	case KindDate:
		return NewTimestamp(Timestamp{shift(base.raw.(Date).toTime())}), nil
	case KindTimestamp:
		return NewTimestamp(Timestamp{shift(base.raw.(Timestamp).Time)}), nil
	case KindTime:
		if iv.Kind == IntervalMonth {
			return Value{}, sqlerr.New(sqlerr.KindIncompatibleIntervalKind,
				"cannot add a year-month interval to TIME")
		}
		d := base.raw.(Time).duration() + time.Duration(sign*int(iv.Micro))*time.Microsecond
		return NewTime(timeFromDuration(d)), nil
	}
	return Value{}, sqlerr.New(sqlerr.KindNonNumericArithmetic,
		"cannot combine INTERVAL with %v", base.kind)
}

// subtractIntervals implements Interval - Interval; kinds must match.
func subtractIntervals(a, b Interval) (Value, error) {
	if a.Kind != b.Kind {
		return Value{}, sqlerr.New(sqlerr.KindIncompatibleIntervalKind,
			"cannot combine a year-month interval with a microsecond interval")
	}
	if a.Kind == IntervalMonth {
		return NewInterval(Interval{Kind: IntervalMonth, Month: a.Month - b.Month}), nil
	}
	return NewInterval(Interval{Kind: IntervalMicrosecond, Micro: a.Micro - b.Micro}), nil
}

// UnaryPlus is the identity on numeric values.
func (v Value) UnaryPlus() (Value, error) {
	if v.IsNull() {
		return Null(), nil
	}
	if !v.kind.IsNumeric() {
		return Value{}, sqlerr.New(sqlerr.KindNonNumericArithmetic, "unary plus on %v", v.kind)
	}
	return v, nil
}

// UnaryMinus negates a numeric value, using the same checked-overflow
// path as Subtract(0, v) would.
func (v Value) UnaryMinus() (Value, error) {
	if v.IsNull() {
		return Null(), nil
	}
	if !v.kind.IsNumeric() {
		return Value{}, sqlerr.New(sqlerr.KindNonNumericArithmetic, "unary minus on %v", v.kind)
	}
	zero := zeroLike(v.kind)
	return zero.Subtract(v)
}

func zeroLike(k Kind) Value {
	switch k {
	case KindF32:
		return NewF32(0)
	case KindF64:
		return NewF64(0)
	case KindDecimal:
		return NewDecimal(zeroDecimal())
	default:
		return NewI64(0)
	}
}

// BitwiseNot complements an integer value; floats and Decimal are
// rejected since the bitwise domain is integers only.
func (v Value) BitwiseNot() (Value, error) {
	if v.IsNull() {
		return Null(), nil
	}
	if !v.kind.IsNumeric() || v.kind == KindF32 || v.kind == KindF64 || v.kind == KindDecimal {
		return Value{}, sqlerr.New(sqlerr.KindNonNumericArithmetic, "bitwise not on %v", v.kind)
	}
	n := v.asNumber()
	switch {
	case n.Kind.IsSigned():
		neg := new(bigIntT).Neg(n.SI)
		neg.Sub(neg, bigOne())
		return fromNumber(v.kind, numeric.Number{Kind: n.Kind, SI: neg}), nil
	default:
		// ^x for unsigned x of width w is (2^w - 1) - x
		maxForWidth := maxUnsigned(v.kind)
		res := maxForWidth.Sub(n.UI)
		return fromNumber(v.kind, numeric.Number{Kind: n.Kind, UI: res}), nil
	}
}

// Factorial implements the `!` postfix operator: defined only for
// non-negative integers.
func (v Value) Factorial() (Value, error) {
	if v.IsNull() {
		return Null(), nil
	}
	if v.kind == KindF32 || v.kind == KindF64 || v.kind == KindDecimal {
		return Value{}, sqlerr.New(sqlerr.KindFactorialOnNonInteger, "factorial on non-integer %v", v.kind)
	}
	if !v.kind.IsNumeric() {
		return Value{}, sqlerr.New(sqlerr.KindFactorialOnNonNumeric, "factorial on non-numeric %v", v.kind)
	}
	n := v.asNumber()
	var i int64
	if n.Kind.IsSigned() {
		if n.SI.Sign() < 0 {
			return Value{}, sqlerr.New(sqlerr.KindFactorialOnNegative, "factorial on negative value")
		}
		i = n.SI.Int64()
	} else {
		i = int64(n.UI.Lo)
	}
	result := big1()
	for k := int64(2); k <= i; k++ {
		result.Mul(result, bigFromInt64(k))
	}
	return NewI128(numeric.Number{Kind: numeric.I128, SI: result}), nil
}

// Sqrt implements the square-root function over numeric values,
// returning F64.
func (v Value) Sqrt() (Value, error) {
	if v.IsNull() {
		return Null(), nil
	}
	if !v.kind.IsNumeric() {
		return Value{}, sqlerr.New(sqlerr.KindSqrtOnNonNumeric, "sqrt on non-numeric %v", v.kind)
	}
	f := numericToFloat64(v)
	return NewF64(math.Sqrt(f)), nil
}

func numericToFloat64(v Value) float64 {
	n, err := numeric.To(v.asNumber(), numeric.F64)
	if err != nil {
		return 0
	}
	return n.F64
}

// Concat implements textual concatenation; NULL on either side yields
// NULL.
func (v Value) Concat(other Value) Value {
	if v.IsNull() || other.IsNull() {
		return Null()
	}
	return NewStr(v.displayText() + other.displayText())
}

func (v Value) displayText() string {
	if v.kind == KindStr {
		return v.raw.(string)
	}
	return fmt.Sprintf("%v", v.raw)
}
