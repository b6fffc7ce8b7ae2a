package value

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
)

// TestToCmpBEBytesOrdersNumericsAcrossKinds is property 9 over the
// numeric, bool, and string kinds.
func TestToCmpBEBytesOrdersNumericsAcrossKinds(t *testing.T) {
	pairs := []struct {
		name string
		a, b Value
	}{
		{"i64", NewI64(1), NewI64(2)},
		{"i64 negative", NewI64(-5), NewI64(-1)},
		{"i64 crossing zero", NewI64(-1), NewI64(1)},
		{"u64", NewU64(1), NewU64(2)},
		{"f64", NewF64(1.5), NewF64(2.5)},
		{"f64 negative", NewF64(-2.5), NewF64(-1.5)},
		{"bool", NewBool(false), NewBool(true)},
		{"text", NewStr("abc"), NewStr("abd")},
	}
	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			ab, err := tt.a.ToCmpBEBytes()
			if err != nil {
				t.Fatalf("ToCmpBEBytes(%v) error = %v", tt.a, err)
			}
			bb, err := tt.b.ToCmpBEBytes()
			if err != nil {
				t.Fatalf("ToCmpBEBytes(%v) error = %v", tt.b, err)
			}
			if bytes.Compare(ab, bb) >= 0 {
				t.Errorf("ToCmpBEBytes(%v) >= ToCmpBEBytes(%v), want strictly less", tt.a, tt.b)
			}
		})
	}
}

// TestToCmpBEBytesDecimalDistinguishesHighPrecisionValues regression-
// tests the encodeNumeric Decimal branch: two distinct decimals whose
// float64 approximations collapse to the same bit pattern once they
// exceed ~15-17 significant digits must still produce distinct,
// order-correct keys, since encoding now rescales the exact big.Int
// coefficient instead of round-tripping through float64.
func TestToCmpBEBytesDecimalDistinguishesHighPrecisionValues(t *testing.T) {
	a := decimal.RequireFromString("1.00000000000000001")
	b := decimal.RequireFromString("1.00000000000000002")

	va, vb := NewDecimal(a), NewDecimal(b)
	if va.Equal(vb) {
		t.Fatalf("%v and %v should be distinct Decimal values", a, b)
	}

	ab, err := va.ToCmpBEBytes()
	if err != nil {
		t.Fatalf("ToCmpBEBytes(%v) error = %v", a, err)
	}
	bb, err := vb.ToCmpBEBytes()
	if err != nil {
		t.Fatalf("ToCmpBEBytes(%v) error = %v", b, err)
	}
	if bytes.Equal(ab, bb) {
		t.Error("distinct high-precision decimals produced identical ordered-key bytes")
	}
	if bytes.Compare(ab, bb) >= 0 {
		t.Error("ToCmpBEBytes(a) should sort strictly before ToCmpBEBytes(b)")
	}
}

func TestToCmpBEBytesDecimalNegativeOrdering(t *testing.T) {
	neg := NewDecimal(decimal.RequireFromString("-3.25"))
	pos := NewDecimal(decimal.RequireFromString("3.25"))
	zero := NewDecimal(decimal.Zero)

	negB, _ := neg.ToCmpBEBytes()
	zeroB, _ := zero.ToCmpBEBytes()
	posB, _ := pos.ToCmpBEBytes()

	if bytes.Compare(negB, zeroB) >= 0 {
		t.Error("negative decimal should sort before zero")
	}
	if bytes.Compare(zeroB, posB) >= 0 {
		t.Error("zero should sort before positive decimal")
	}
}

func TestToCmpBEBytesRejectsNull(t *testing.T) {
	if _, err := Null().ToCmpBEBytes(); err == nil {
		t.Error("ToCmpBEBytes on Null should error")
	}
}
