// Package literal implements a borrow-friendly Literal sum type: a
// thinner representation used while translating and evaluating
// expressions, before a value is forced into a typed Value.
package literal

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gluesql/gluesql-sub000/core/sqlerr"
	"github.com/gluesql/gluesql-sub000/core/value"
)

// Kind discriminates the five Literal variants.
type Kind uint8

const (
	KindBoolean Kind = iota
	KindNumber
	KindText
	KindBytea
	KindNull
)

// Literal is the untyped, pre-cast representation of a parsed constant.
// Number uses shopspring/decimal as the bigdecimal stand-in.
type Literal struct {
	kind   Kind
	b      bool
	num    decimal.Decimal
	text   string
	bytea  []byte
}

func Boolean(b bool) Literal         { return Literal{kind: KindBoolean, b: b} }
func Number(d decimal.Decimal) Literal { return Literal{kind: KindNumber, num: d} }
func Text(s string) Literal          { return Literal{kind: KindText, text: s} }
func Bytea(b []byte) Literal         { return Literal{kind: KindBytea, bytea: append([]byte(nil), b...)} }
func Null() Literal                  { return Literal{kind: KindNull} }

// NumberFromString parses s (e.g. from a SQL numeric token) into a
// Number literal.
func NumberFromString(s string) (Literal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Literal{}, sqlerr.New(sqlerr.KindFailedToParseNumber, "failed to parse number %q", s)
	}
	return Number(d), nil
}

func (l Literal) Kind() Kind     { return l.kind }
func (l Literal) IsNull() bool   { return l.kind == KindNull }
func (l Literal) AsBool() bool   { return l.b }
func (l Literal) AsNumber() decimal.Decimal { return l.num }
func (l Literal) AsText() string { return l.text }
func (l Literal) AsBytea() []byte { return l.bytea }

func (l Literal) String() string {
	switch l.kind {
	case KindNull:
		return "NULL"
	case KindBoolean:
		if l.b {
			return "TRUE"
		}
		return "FALSE"
	case KindNumber:
		return l.num.String()
	case KindText:
		return l.text
	case KindBytea:
		return "\\x" + hexString(l.bytea)
	}
	return ""
}

func hexString(b []byte) string {
	const hexDigits = "0123456789abcdef"
	var sb strings.Builder
	for _, c := range b {
		sb.WriteByte(hexDigits[c>>4])
		sb.WriteByte(hexDigits[c&0xf])
	}
	return sb.String()
}

// Equal compares two literals when both sides are the same kind; any
// other combination is not equal at the Literal level (full SQL
// equality semantics live one layer up, in core/value once both sides
// are materialized).
func (l Literal) Equal(other Literal) bool {
	if l.kind != other.kind {
		return false
	}
	switch l.kind {
	case KindBoolean:
		return l.b == other.b
	case KindNumber:
		return l.num.Equal(other.num)
	case KindText:
		return l.text == other.text
	case KindBytea:
		return string(l.bytea) == string(other.bytea)
	case KindNull:
		return false
	}
	return false
}

// Compare orders l against other when both are Number or both are Text;
// any other pairing is incomparable (ok=false).
func (l Literal) Compare(other Literal) (cmp int, ok bool) {
	if l.kind != other.kind {
		return 0, false
	}
	switch l.kind {
	case KindNumber:
		return l.num.Cmp(other.num), true
	case KindText:
		switch {
		case l.text < other.text:
			return -1, true
		case l.text > other.text:
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

// Add/Sub/Mul/Div/Mod implement Literal arithmetic for Number literals
// only; textual "arithmetic" is just Concat below.
func (l Literal) Add(other Literal) (Literal, error) { return l.numOp(other, decimal.Decimal.Add) }
func (l Literal) Sub(other Literal) (Literal, error) { return l.numOp(other, decimal.Decimal.Sub) }
func (l Literal) Mul(other Literal) (Literal, error) { return l.numOp(other, decimal.Decimal.Mul) }

func (l Literal) Div(other Literal) (Literal, error) {
	if other.kind == KindNumber && other.num.IsZero() {
		return Literal{}, sqlerr.New(sqlerr.KindDivisorIsZero, "divide by zero")
	}
	return l.numOp(other, decimal.Decimal.Div)
}

func (l Literal) Mod(other Literal) (Literal, error) {
	if other.kind == KindNumber && other.num.IsZero() {
		return Literal{}, sqlerr.New(sqlerr.KindDivisorIsZero, "modulo by zero")
	}
	return l.numOp(other, decimal.Decimal.Mod)
}

func (l Literal) numOp(other Literal, op func(decimal.Decimal, decimal.Decimal) decimal.Decimal) (Literal, error) {
	if l.kind != KindNumber || other.kind != KindNumber {
		return Literal{}, sqlerr.New(sqlerr.KindNonNumericArithmetic, "literal arithmetic requires two numbers")
	}
	return Number(op(l.num, other.num)), nil
}

// Concat implements textual concatenation for Text literals.
func (l Literal) Concat(other Literal) (Literal, error) {
	if l.kind != KindText || other.kind != KindText {
		return Literal{}, sqlerr.New(sqlerr.KindNonNumericArithmetic, "literal concat requires two text literals")
	}
	return Text(l.text + other.text), nil
}

// TryFromLiteral converts a Literal to a typed Value given a target
// DataType, following a type-specific sub-matrix.
func TryFromLiteral(dt value.DataType, l Literal) (value.Value, error) {
	if l.kind == KindNull {
		return value.Null(), nil
	}
	switch l.kind {
	case KindBoolean:
		if dt == value.Boolean {
			return value.NewBool(l.b), nil
		}
	case KindText:
		if dt == value.Text {
			return value.NewStr(l.text), nil
		}
	case KindBytea:
		if dt == value.Bytea {
			return value.NewBytea(l.bytea), nil
		}
	case KindNumber:
		return numberToValue(dt, l.num)
	}
	return value.Value{}, sqlerr.New(sqlerr.KindIncompatibleDataType,
		"cannot convert literal %v to %v", l, dt)
}

// TryCastFromLiteral applies SQL CAST semantics (boolean<->numeric,
// text<->temporal, etc.) rather than TryFromLiteral's stricter "must
// already be the right shape" rule: it first materializes l as a Value
// of its natural type, then defers to value.Value.Cast.
func TryCastFromLiteral(dt value.DataType, l Literal) (value.Value, error) {
	if l.kind == KindNull {
		return value.Null(), nil
	}
	natural, err := naturalValue(l)
	if err != nil {
		return value.Value{}, err
	}
	return natural.Cast(dt)
}

func naturalValue(l Literal) (value.Value, error) {
	switch l.kind {
	case KindBoolean:
		return value.NewBool(l.b), nil
	case KindText:
		return value.NewStr(l.text), nil
	case KindBytea:
		return value.NewBytea(l.bytea), nil
	case KindNumber:
		return value.NewDecimal(l.num), nil
	}
	return value.Null(), nil
}

func numberToValue(dt value.DataType, d decimal.Decimal) (value.Value, error) {
	dec := value.NewDecimal(d)
	if dt == value.Decimal {
		return dec, nil
	}
	return dec.Cast(dt)
}
