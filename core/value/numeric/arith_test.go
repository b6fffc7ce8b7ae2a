package numeric

import (
	"errors"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
)

// TestFloatModuloPreservesFractionalPart regression-tests the OpMod
// float path: it must use math.Mod, not a truncating int64 cast, so
// fractional remainders survive.
func TestFloatModuloPreservesFractionalPart(t *testing.T) {
	got, err := Binary(OpMod, FromF64(5.5), FromF64(2.0))
	if err != nil {
		t.Fatalf("Binary(Mod, 5.5, 2.0) error = %v", err)
	}
	if got.F64 != 1.5 {
		t.Errorf("5.5 %% 2.0 = %v, want 1.5", got.F64)
	}
}

func TestFloatModuloByZero(t *testing.T) {
	_, err := Binary(OpMod, FromF64(5.5), FromF64(0))
	if !errors.Is(err, ErrDivByZero) {
		t.Errorf("Binary(Mod, 5.5, 0) error = %v, want ErrDivByZero", err)
	}
}

// TestSignedOverflowIsChecked is property 3: adding 1 to a signed
// type's max never wraps, it errors.
func TestSignedOverflowIsChecked(t *testing.T) {
	max := FromI8(127)
	_, err := Binary(OpAdd, max, FromI8(1))
	var overflow *ErrOverflow
	if !errors.As(err, &overflow) {
		t.Fatalf("Binary(Add, I8(127), I8(1)) error = %v, want *ErrOverflow", err)
	}
	if overflow.Kind != I8 {
		t.Errorf("overflow.Kind = %v, want I8", overflow.Kind)
	}
}

func TestSignedAddWithinRange(t *testing.T) {
	got, err := Binary(OpAdd, FromI8(100), FromI8(27))
	if err != nil {
		t.Fatalf("Binary(Add, I8(100), I8(27)) error = %v", err)
	}
	if got.SI.Cmp(big.NewInt(127)) != 0 {
		t.Errorf("100 + 27 = %v, want 127", got.SI)
	}
}

// TestIntegerDivisionByZero is property 4's integer half.
func TestIntegerDivisionByZero(t *testing.T) {
	_, err := Binary(OpDiv, FromI64(5), FromI64(0))
	if !errors.Is(err, ErrDivByZero) {
		t.Errorf("Binary(Div, 5, 0) error = %v, want ErrDivByZero", err)
	}
	_, err = Binary(OpMod, FromI64(5), FromI64(0))
	if !errors.Is(err, ErrDivByZero) {
		t.Errorf("Binary(Mod, 5, 0) error = %v, want ErrDivByZero", err)
	}
}

func TestUnsignedOverflow(t *testing.T) {
	_, err := Binary(OpSub, FromU8(0), FromU8(1))
	var overflow *ErrOverflow
	if !errors.As(err, &overflow) {
		t.Fatalf("Binary(Sub, U8(0), U8(1)) error = %v, want *ErrOverflow", err)
	}
}

// TestPromotionWidensToLargerKind exercises the promotion table: mixing
// an I8 with an I32 should produce an I32 result, not overflow at I8's
// width.
func TestPromotionWidensToLargerKind(t *testing.T) {
	got, err := Binary(OpAdd, FromI8(100), FromI32(1000))
	if err != nil {
		t.Fatalf("Binary(Add, I8(100), I32(1000)) error = %v", err)
	}
	if got.Kind != I32 {
		t.Errorf("result Kind = %v, want I32", got.Kind)
	}
	if got.SI.Cmp(big.NewInt(1100)) != 0 {
		t.Errorf("100 + 1000 = %v, want 1100", got.SI)
	}
}

func TestMixedSignedUnsignedPromotesToI128(t *testing.T) {
	got, err := Binary(OpAdd, FromI32(5), FromU32(10))
	if err != nil {
		t.Fatalf("Binary(Add, I32(5), U32(10)) error = %v", err)
	}
	if got.Kind != I128 {
		t.Errorf("result Kind = %v, want I128", got.Kind)
	}
	if got.SI.Cmp(big.NewInt(15)) != 0 {
		t.Errorf("5 + 10 = %v, want 15", got.SI)
	}
}

func TestDecimalDominatesPromotion(t *testing.T) {
	got, err := Binary(OpAdd, FromI64(2), FromDecimal(decimal.RequireFromString("1.5")))
	if err != nil {
		t.Fatalf("Binary(Add, I64(2), Dec(1.5)) error = %v", err)
	}
	if got.Kind != Dec {
		t.Errorf("result Kind = %v, want Dec", got.Kind)
	}
}
