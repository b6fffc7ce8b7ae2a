package value

import (
	"errors"
	"testing"

	"github.com/gluesql/gluesql-sub000/core/sqlerr"
)

// TestCastIdentity is property 5: casting a value to its own type is a
// no-op for every Value kind that has a DataType counterpart.
func TestCastIdentity(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		dt   DataType
	}{
		{"bool", NewBool(true), Boolean},
		{"i64", NewI64(42), Int},
		{"f64", NewF64(3.5), Float},
		{"text", NewStr("hi"), Text},
		{"bytea", NewBytea([]byte{1, 2}), Bytea},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.Cast(tt.dt)
			if err != nil {
				t.Fatalf("Cast(%v, %v) error = %v", tt.v, tt.dt, err)
			}
			if !got.Equal(tt.v) {
				t.Errorf("Cast(%v, %v) = %v, want the identity", tt.v, tt.dt, got)
			}
		})
	}
}

func TestCastNullAlwaysCastsToNull(t *testing.T) {
	got, err := Null().Cast(Int)
	if err != nil {
		t.Fatalf("Null().Cast(Int) error = %v", err)
	}
	if !got.IsNull() {
		t.Errorf("Null().Cast(Int) = %v, want Null", got)
	}
}

func TestCastNumericNarrowingOverflow(t *testing.T) {
	_, err := NewI64(200).Cast(Int8)
	var se *sqlerr.Error
	if !errors.As(err, &se) {
		t.Fatalf("expected a *sqlerr.Error casting 200 to INT8, got %v", err)
	}
	if se.Kind != sqlerr.KindBinaryOperationOverflow {
		t.Errorf("Kind = %v, want KindBinaryOperationOverflow", se.Kind)
	}
}

func TestCastStringToBoolean(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"TRUE", true, false},
		{"false", false, false},
		{"t", true, false},
		{"0", false, false},
		{"nope", false, true},
	}
	for _, tt := range tests {
		got, err := NewStr(tt.in).Cast(Boolean)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Cast(%q, Boolean) error = nil, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Cast(%q, Boolean) error = %v", tt.in, err)
		}
		b, _ := got.AsBool()
		if b != tt.want {
			t.Errorf("Cast(%q, Boolean) = %v, want %v", tt.in, b, tt.want)
		}
	}
}

func TestCastTextRoundTripsThroughDisplay(t *testing.T) {
	got, err := NewI64(42).Cast(Text)
	if err != nil {
		t.Fatalf("Cast(42, Text) error = %v", err)
	}
	s, ok := got.AsStr()
	if !ok || s != "42" {
		t.Errorf("Cast(42, Text) = (%q, %v), want (\"42\", true)", s, ok)
	}
}
