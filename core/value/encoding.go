package value

import (
	"encoding/binary"
	"math"
	"math/big"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gluesql/gluesql-sub000/core/sqlerr"
	"github.com/gluesql/gluesql-sub000/core/value/numeric"
)

// ToCmpBEBytes encodes v into a byte sequence whose lexicographic
// (unsigned, big-endian) order agrees with v's partial order, for use
// as an ordered storage key. It errors on Null (no encoding
// participates in range scans) and on kinds with no defined total
// order to encode (Map/List/Point), matching Compare's "incomparable"
// result for those.
func (v Value) ToCmpBEBytes() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return nil, sqlerr.New(sqlerr.KindImpossibleCast, "cannot encode NULL as an ordered key")
	case KindBool:
		if v.raw.(bool) {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case KindStr:
		return []byte(v.raw.(string)), nil
	case KindBytea:
		return v.raw.([]byte), nil
	case KindDate:
		t := v.raw.(Date).toTime()
		return encodeInt64(t.Unix()), nil
	case KindTime:
		return encodeInt64(int64(v.raw.(Time).duration())), nil
	case KindTimestamp:
		t := v.raw.(Timestamp).Time
		out := encodeInt64(t.Unix())
		out = append(out, encodeInt64(int64(t.Nanosecond()))...)
		return out, nil
	case KindUuid:
		u := v.raw.(uuid.UUID)
		out := make([]byte, 16)
		copy(out, u[:])
		return out, nil
	}
	if v.kind.IsNumeric() {
		return encodeNumeric(v)
	}
	return nil, sqlerr.New(sqlerr.KindImpossibleCast, "no ordered-key encoding for %v", v.kind)
}

// encodeInt64 flips the sign bit so two's-complement ordering becomes
// unsigned lexicographic ordering.
func encodeInt64(v int64) []byte {
	u := uint64(v) ^ (1 << 63)
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, u)
	return out
}

func encodeUint64(v uint64) []byte {
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, v)
	return out
}

// encodeFloat64 produces an order-preserving encoding of an IEEE-754
// double: for non-negative floats, flip the sign bit; for negative
// floats, flip every bit (so that more-negative sorts first).
func encodeFloat64(f float64) []byte {
	bits := math.Float64bits(f)
	if f >= 0 {
		bits ^= 1 << 63
	} else {
		bits = ^bits
	}
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, bits)
	return out
}

func encodeNumeric(v Value) ([]byte, error) {
	n := v.asNumber()
	switch {
	case n.Kind.IsSigned():
		// Widen to a fixed 17-byte form, a sign byte followed by the
		// 16-byte magnitude (inverted when negative), so every signed
		// width compares consistently.
		return encodeBigSigned(n.SI), nil
	case n.Kind.IsUnsigned():
		hi, lo := n.UI.Hi, n.UI.Lo
		out := make([]byte, 16)
		binary.BigEndian.PutUint64(out[:8], hi)
		binary.BigEndian.PutUint64(out[8:], lo)
		return out, nil
	case n.Kind.IsFloat():
		f := n.F64
		if n.Kind == numeric.F32 {
			f = float64(n.F32)
		}
		return encodeFloat64(f), nil
	default:
		return encodeDecimalKey(n.Dec), nil
	}
}

// decimalKeyExponent is the scale every Decimal is rescaled to before
// encoding. Comparing fixed-point coefficients at a common scale keeps
// the order exact; round-tripping through float64 instead silently
// collapses distinct decimals once precision exceeds ~15-17 significant
// digits, the normal range for a 128-bit fixed decimal.
const decimalKeyExponent = -28

// decimalKeyWidth is the magnitude buffer width encodeDecimalKey uses,
// wide enough for the coefficient of any Decimal rescaled to
// decimalKeyExponent that arises from ordinary arithmetic.
const decimalKeyWidth = 32

func encodeDecimalKey(d decimal.Decimal) []byte {
	rescaled := d.Rescale(decimalKeyExponent)
	return encodeBigSignedWidth(rescaled.Coefficient(), decimalKeyWidth)
}

// encodeBigSigned encodes a signed big.Int into a fixed 17-byte form: one
// sign byte (0x00 for negative, 0x01 for non-negative) followed by the
// 16-byte big-endian magnitude, so that encoding a wider-width negative
// number never sorts after a narrower-width one by virtue of length.
func encodeBigSigned(v *big.Int) []byte {
	return encodeBigSignedWidth(v, 16)
}

// encodeBigSignedWidth is encodeBigSigned generalized to an arbitrary
// magnitude width, so callers whose values don't fit in 128 bits (a
// Decimal rescaled to a wide fixed scale) can still get a single
// sign byte plus a fixed-width magnitude.
func encodeBigSignedWidth(v *big.Int, width int) []byte {
	out := make([]byte, width+1)
	mag := new(big.Int).Abs(v)
	magBytes := mag.Bytes()
	copy(out[len(out)-len(magBytes):], magBytes)
	if v.Sign() < 0 {
		out[0] = 0
		// two's-complement-style: invert magnitude bytes so more-negative
		// sorts before less-negative.
		for i := 1; i < len(out); i++ {
			out[i] = ^out[i]
		}
	} else {
		out[0] = 1
	}
	return out
}
