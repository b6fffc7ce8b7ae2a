// Package numeric implements the cross-type numeric promotion table and
// checked arithmetic used by core/value's binary operators. It is kept
// separate from core/value so the promotion-table dispatch (conceptually a
// macro-expanded table in the source this was distilled from) lives in one
// small, independently testable place, mirroring how
// original_source/core/src/data/value/binary_op/ is its own module tree
// distinct from value/mod.rs.
package numeric

import (
	"math/big"

	"github.com/shopspring/decimal"
	"lukechampine.com/uint128"
)

// Kind identifies one of the thirteen numeric variants of value.Value.
type Kind uint8

const (
	I8 Kind = iota
	I16
	I32
	I64
	I128
	U8
	U16
	U32
	U64
	U128
	F32
	F64
	Dec
)

// IsSigned reports whether k is one of the signed integer kinds.
func (k Kind) IsSigned() bool { return k >= I8 && k <= I128 }

// IsUnsigned reports whether k is one of the unsigned integer kinds.
func (k Kind) IsUnsigned() bool { return k >= U8 && k <= U128 }

// IsFloat reports whether k is F32 or F64.
func (k Kind) IsFloat() bool { return k == F32 || k == F64 }

// IsInteger reports whether k is any signed or unsigned integer kind.
func (k Kind) IsInteger() bool { return k.IsSigned() || k.IsUnsigned() }

// Number is a widened numeric value: every integer, signed or unsigned, is
// carried in SI/UI at full precision (big.Int / uint128.Uint128) so that
// arithmetic never silently truncates before the final range check against
// Kind's width.
type Number struct {
	Kind Kind
	SI   *big.Int
	UI   uint128.Uint128
	F32  float32
	F64  float64
	Dec  decimal.Decimal
}

func fromInt64(k Kind, v int64) Number { return Number{Kind: k, SI: big.NewInt(v)} }
func fromUint64(k Kind, v uint64) Number {
	return Number{Kind: k, UI: uint128.From64(v)}
}

func FromI8(v int8) Number   { return fromInt64(I8, int64(v)) }
func FromI16(v int16) Number { return fromInt64(I16, int64(v)) }
func FromI32(v int32) Number { return fromInt64(I32, int64(v)) }
func FromI64(v int64) Number { return fromInt64(I64, v) }
func FromI128(v *big.Int) Number {
	return Number{Kind: I128, SI: new(big.Int).Set(v)}
}
func FromU8(v uint8) Number   { return fromUint64(U8, uint64(v)) }
func FromU16(v uint16) Number { return fromUint64(U16, uint64(v)) }
func FromU32(v uint32) Number { return fromUint64(U32, uint64(v)) }
func FromU64(v uint64) Number { return fromUint64(U64, v) }
func FromU128(v uint128.Uint128) Number {
	return Number{Kind: U128, UI: v}
}
func FromF32(v float32) Number       { return Number{Kind: F32, F32: v} }
func FromF64(v float64) Number       { return Number{Kind: F64, F64: v} }
func FromDecimal(v decimal.Decimal) Number { return Number{Kind: Dec, Dec: v} }

// signedMin and signedMax hold the [min,max] of each signed integer width
// (fitsUnsigned covers the unsigned ones), used for the final overflow
// check after arithmetic is done at full precision.
var signedMin = map[Kind]*big.Int{
	I8:  big.NewInt(-1 << 7),
	I16: big.NewInt(-1 << 15),
	I32: big.NewInt(-1 << 31),
	I64: big.NewInt(-1 << 63),
}
var signedMax = map[Kind]*big.Int{
	I8:  big.NewInt(1<<7 - 1),
	I16: big.NewInt(1<<15 - 1),
	I32: big.NewInt(1<<31 - 1),
	I64: big.NewInt(1<<63 - 1),
}

func init() {
	max128 := new(big.Int).Lsh(big.NewInt(1), 127)
	max128.Sub(max128, big.NewInt(1))
	min128 := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	signedMax[I128] = max128
	signedMin[I128] = min128
}

var unsignedMax = map[Kind]uint64{
	U8:  1<<8 - 1,
	U16: 1<<16 - 1,
	U32: 1<<32 - 1,
	U64: 1<<64 - 1,
}

// fitsSigned reports whether v is within the representable range of k.
func fitsSigned(k Kind, v *big.Int) bool {
	return v.Cmp(signedMin[k]) >= 0 && v.Cmp(signedMax[k]) <= 0
}

// fitsUnsigned reports whether v is within the representable range of k.
func fitsUnsigned(k Kind, v uint128.Uint128) bool {
	if k == U128 {
		return true
	}
	if v.Hi != 0 {
		return false
	}
	return v.Lo <= unsignedMax[k]
}

func signedWidth(k Kind) int {
	switch k {
	case I8:
		return 8
	case I16:
		return 16
	case I32:
		return 32
	case I64:
		return 64
	default:
		return 128
	}
}

func unsignedWidth(k Kind) int {
	switch k {
	case U8:
		return 8
	case U16:
		return 16
	case U32:
		return 32
	case U64:
		return 64
	default:
		return 128
	}
}

func widerSigned(a, b Kind) Kind {
	if signedWidth(a) >= signedWidth(b) {
		return a
	}
	return b
}

func widerUnsigned(a, b Kind) Kind {
	if unsignedWidth(a) >= unsignedWidth(b) {
		return a
	}
	return b
}

func widerFloat(a, b Kind) Kind {
	if a == F64 || b == F64 {
		return F64
	}
	return F32
}
