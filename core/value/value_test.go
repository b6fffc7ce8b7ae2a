package value

import "testing"

// TestNullIsNeverEqual is property 2's Null half: Null != Null, and Null
// is unequal to everything else too.
func TestNullIsNeverEqual(t *testing.T) {
	if Null().Equal(Null()) {
		t.Error("Null().Equal(Null()) = true, want false")
	}
	if Null().Equal(NewI64(0)) {
		t.Error("Null should not equal a zero value")
	}
}

// TestNumericEqualityIsWidthAgnostic is property 2's non-null half for
// numerics: equal values of different widths/kinds still compare equal.
func TestNumericEqualityIsWidthAgnostic(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same kind equal", NewI64(5), NewI64(5), true},
		{"same kind unequal", NewI64(5), NewI64(6), false},
		{"cross width equal", NewI32(5), NewI64(5), true},
		{"int vs float equal", NewI64(5), NewF64(5.0), true},
		{"int vs float unequal", NewI64(5), NewF64(5.5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompareIncomparableCases(t *testing.T) {
	if _, ok := Null().Compare(NewI64(1)); ok {
		t.Error("Null should be incomparable to anything")
	}
	if _, ok := NewStr("a").Compare(NewI64(1)); ok {
		t.Error("string and int should be incomparable")
	}
	if _, ok := NewBool(true).Compare(NewBool(false)); !ok {
		t.Error("bool should be comparable to bool")
	}
}

func TestCompareOrdersNumericsAcrossKinds(t *testing.T) {
	cmp, ok := NewI32(3).Compare(NewI64(5))
	if !ok || cmp >= 0 {
		t.Errorf("Compare(3, 5) = (%d, %v), want negative, true", cmp, ok)
	}
	cmp, ok = NewF64(5.5).Compare(NewI64(5))
	if !ok || cmp <= 0 {
		t.Errorf("Compare(5.5, 5) = (%d, %v), want positive, true", cmp, ok)
	}
}

func TestCompareDateAndTimestampCrossKind(t *testing.T) {
	d := NewDate(Date{Year: 2024, Month: 1, Day: 1})
	ts := NewTimestamp(Timestamp{d.raw.(Date).toTime()})
	cmp, ok := d.Compare(ts)
	if !ok || cmp != 0 {
		t.Errorf("Date and the equivalent midnight Timestamp should compare equal, got (%d, %v)", cmp, ok)
	}
}

func TestIsZero(t *testing.T) {
	if !NewI64(0).IsZero() {
		t.Error("NewI64(0) should be zero")
	}
	if NewI64(1).IsZero() {
		t.Error("NewI64(1) should not be zero")
	}
	if NewStr("").IsZero() {
		t.Error("empty string is not numeric, should not be zero")
	}
	if Null().IsZero() {
		t.Error("Null should not be zero")
	}
}

func TestAsI64Coercions(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want int64
	}{
		{"i8", NewI8(5), 5},
		{"i32", NewI32(-5), -5},
		{"u32", NewU32(5), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := tt.v.AsI64()
			if !ok || n != tt.want {
				t.Errorf("AsI64() = (%d, %v), want (%d, true)", n, ok, tt.want)
			}
		})
	}
	if _, ok := NewStr("x").AsI64(); ok {
		t.Error("AsI64 on a string should fail")
	}
}

// TestNullArithmeticPropagates is property 6: every numeric op returns
// NULL, never an error, when either operand is NULL.
func TestNullArithmeticPropagates(t *testing.T) {
	ops := []struct {
		name string
		fn   func(a, b Value) (Value, error)
	}{
		{"Add", Value.Add},
		{"Subtract", Value.Subtract},
		{"Multiply", Value.Multiply},
		{"Divide", Value.Divide},
		{"Modulo", Value.Modulo},
	}
	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			got, err := op.fn(Null(), NewI64(5))
			if err != nil || !got.IsNull() {
				t.Errorf("%s(NULL, 5) = (%v, %v), want (NULL, nil)", op.name, got, err)
			}
			got, err = op.fn(NewI64(5), Null())
			if err != nil || !got.IsNull() {
				t.Errorf("%s(5, NULL) = (%v, %v), want (NULL, nil)", op.name, got, err)
			}
		})
	}
}
