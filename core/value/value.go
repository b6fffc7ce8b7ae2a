// Package value implements the typed Value system: a tagged union over
// the SQL primitive types with arithmetic, comparison, casting, NULL,
// and ordered-byte-encoding semantics.
//
// Value deliberately is not a Go interface with one concrete type per
// variant: the variant count — 26 — and the need to switch on *pairs*
// of variants for arithmetic/comparison made a closed struct with a
// Kind discriminant the better fit; see DESIGN.md.
package value

import (
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gluesql/gluesql-sub000/core/sqlerr"
	"github.com/gluesql/gluesql-sub000/core/value/numeric"
)

// Kind is the discriminant of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindI8
	KindI16
	KindI32
	KindI64
	KindI128
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindF32
	KindF64
	KindDecimal
	KindStr
	KindBytea
	KindInet
	KindDate
	KindTime
	KindTimestamp
	KindInterval
	KindUuid
	KindMap
	KindList
	KindPoint
)

var kindNames = map[Kind]string{
	KindNull: "NULL", KindBool: "BOOLEAN",
	KindI8: "INT8", KindI16: "INT16", KindI32: "INT32", KindI64: "INT", KindI128: "INT128",
	KindU8: "UINT8", KindU16: "UINT16", KindU32: "UINT32", KindU64: "UINT64", KindU128: "UINT128",
	KindF32: "FLOAT32", KindF64: "FLOAT", KindDecimal: "DECIMAL",
	KindStr: "TEXT", KindBytea: "BYTEA", KindInet: "INET",
	KindDate: "DATE", KindTime: "TIME", KindTimestamp: "TIMESTAMP", KindInterval: "INTERVAL",
	KindUuid: "UUID", KindMap: "MAP", KindList: "LIST", KindPoint: "POINT",
}

func (k Kind) String() string { return kindNames[k] }

// IsNumeric reports whether k is one of the thirteen numeric variants.
func (k Kind) IsNumeric() bool {
	return k >= KindI8 && k <= KindDecimal
}

// Date is a plain calendar date (no time-of-day, no zone).
type Date struct{ Year, Month, Day int }

func (d Date) toTime() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// Time is a time-of-day with fractional-second (nanosecond) precision.
type Time struct{ Hour, Min, Sec, Nanos int }

func (t Time) duration() time.Duration {
	return time.Duration(t.Hour)*time.Hour + time.Duration(t.Min)*time.Minute +
		time.Duration(t.Sec)*time.Second + time.Duration(t.Nanos)
}

func timeFromDuration(d time.Duration) Time {
	d = ((d % (24 * time.Hour)) + 24*time.Hour) % (24 * time.Hour)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	return Time{Hour: int(h), Min: int(m), Sec: int(s), Nanos: int(d)}
}

// Timestamp is a naive (zone-less) date and time.
type Timestamp struct{ time.Time }

// IntervalKind distinguishes the two disjoint interval families: a
// year-month interval cannot be combined with a microsecond interval.
type IntervalKind uint8

const (
	IntervalMonth IntervalKind = iota
	IntervalMicrosecond
)

// Interval holds either a Month(i32) or Microsecond(i64) payload: the
// two kinds are disjoint, never mixed in one value.
type Interval struct {
	Kind  IntervalKind
	Month int32
	Micro int64
}

// Point is a planar coordinate pair.
type Point struct{ X, Y float64 }

// MapValue is an ordered mapping from text to Value: the Map variant
// is explicitly "ordered", unlike a bare Go map.
type MapValue struct {
	keys []string
	vals map[string]Value
}

// NewMapValue builds an empty ordered map.
func NewMapValue() *MapValue {
	return &MapValue{vals: make(map[string]Value)}
}

// Set inserts or overwrites key with v, appending key to the iteration
// order only the first time it is seen.
func (m *MapValue) Set(key string, v Value) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

// Get looks up key.
func (m *MapValue) Get(key string) (Value, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Keys returns the map's keys in insertion order.
func (m *MapValue) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *MapValue) Len() int { return len(m.keys) }

// Value is a tagged union over every SQL scalar/compound type this engine
// understands. The zero Value is KindNull.
type Value struct {
	kind Kind
	raw  any
}

// Kind returns v's discriminant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the Null variant.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Null is the single Null value.
func Null() Value { return Value{kind: KindNull} }

// AsBool returns v's boolean payload; ok is false if v is not KindBool.
func (v Value) AsBool() (b bool, ok bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.raw.(bool), true
}

// AsStr returns v's text payload; ok is false if v is not KindStr.
func (v Value) AsStr() (s string, ok bool) {
	if v.kind != KindStr {
		return "", false
	}
	return v.raw.(string), true
}

// AsBytea returns v's raw bytes if v is a Bytea value.
func (v Value) AsBytea() (b []byte, ok bool) {
	if v.kind != KindBytea {
		return nil, false
	}
	return v.raw.([]byte), true
}

// AsI64 coerces any integral Value to int64, for callers (LIMIT/OFFSET,
// SERIES size) that need a plain Go count rather than a typed Value.
func (v Value) AsI64() (n int64, ok bool) {
	switch v.kind {
	case KindI8:
		return int64(v.raw.(int8)), true
	case KindI16:
		return int64(v.raw.(int16)), true
	case KindI32:
		return int64(v.raw.(int32)), true
	case KindI64:
		return v.raw.(int64), true
	case KindI128:
		n := v.raw.(numeric.Number)
		if !n.SI.IsInt64() {
			return 0, false
		}
		return n.SI.Int64(), true
	case KindU128:
		n := v.raw.(numeric.Number)
		if n.UI.Hi != 0 || n.UI.Lo>>63 != 0 {
			return 0, false
		}
		return int64(n.UI.Lo), true
	case KindU8:
		return int64(v.raw.(uint8)), true
	case KindU16:
		return int64(v.raw.(uint16)), true
	case KindU32:
		return int64(v.raw.(uint32)), true
	case KindU64:
		return int64(v.raw.(uint64)), true
	case KindDecimal:
		return v.raw.(decimal.Decimal).IntPart(), true
	}
	return 0, false
}

// AsF64 coerces any numeric Value to float64, for callers (core/row's
// struct scanner) that need a plain Go float rather than a typed Value.
func (v Value) AsF64() (f float64, ok bool) {
	switch v.kind {
	case KindF32:
		return float64(v.raw.(float32)), true
	case KindF64:
		return v.raw.(float64), true
	case KindDecimal:
		f, _ := v.raw.(decimal.Decimal).Float64()
		return f, true
	}
	if n, ok := v.AsI64(); ok {
		return float64(n), true
	}
	return 0, false
}

// ToGoTime exposes Date/Time/Timestamp values as a time.Time, for
// callers (EXTRACT, row conversion) that need calendar fields rather
// than the raw Date/Time/Timestamp structs. Time values are anchored to
// 0001-01-01 (the zero time.Time) since Time has no date component of
// its own.
func (v Value) ToGoTime() (time.Time, error) {
	switch v.kind {
	case KindDate:
		return v.raw.(Date).toTime(), nil
	case KindTime:
		return time.Time{}.Add(v.raw.(Time).duration()), nil
	case KindTimestamp:
		return v.raw.(Timestamp).Time, nil
	}
	return time.Time{}, sqlerr.New(sqlerr.KindImpossibleCast, "%v has no time representation", v.kind)
}

func NewBool(b bool) Value   { return Value{kind: KindBool, raw: b} }
func NewI8(v int8) Value     { return Value{kind: KindI8, raw: v} }
func NewI16(v int16) Value   { return Value{kind: KindI16, raw: v} }
func NewI32(v int32) Value   { return Value{kind: KindI32, raw: v} }
func NewI64(v int64) Value   { return Value{kind: KindI64, raw: v} }
func NewI128(v numeric.Number) Value {
	v.Kind = numeric.I128
	return Value{kind: KindI128, raw: v}
}
func NewU8(v uint8) Value   { return Value{kind: KindU8, raw: v} }
func NewU16(v uint16) Value { return Value{kind: KindU16, raw: v} }
func NewU32(v uint32) Value { return Value{kind: KindU32, raw: v} }
func NewU64(v uint64) Value { return Value{kind: KindU64, raw: v} }
func NewU128(v numeric.Number) Value {
	v.Kind = numeric.U128
	return Value{kind: KindU128, raw: v}
}
func NewF32(v float32) Value            { return Value{kind: KindF32, raw: v} }
func NewF64(v float64) Value            { return Value{kind: KindF64, raw: v} }
func NewDecimal(v decimal.Decimal) Value { return Value{kind: KindDecimal, raw: v} }
func NewStr(s string) Value             { return Value{kind: KindStr, raw: s} }
func NewBytea(b []byte) Value           { return Value{kind: KindBytea, raw: append([]byte(nil), b...)} }
func NewInet(ip net.IP) Value           { return Value{kind: KindInet, raw: ip} }
func NewDate(d Date) Value              { return Value{kind: KindDate, raw: d} }
func NewTime(t Time) Value              { return Value{kind: KindTime, raw: t} }
func NewTimestamp(t Timestamp) Value    { return Value{kind: KindTimestamp, raw: t} }
func NewInterval(iv Interval) Value     { return Value{kind: KindInterval, raw: iv} }
func NewUUID(u uuid.UUID) Value         { return Value{kind: KindUuid, raw: u} }
func NewMap(m *MapValue) Value          { return Value{kind: KindMap, raw: m} }
func NewList(l []Value) Value           { return Value{kind: KindList, raw: l} }
func NewPoint(p Point) Value            { return Value{kind: KindPoint, raw: p} }

// asNumber widens any numeric-kind Value into a numeric.Number for the
// promotion-table arithmetic in core/value/numeric. Panics if v is not
// numeric; callers must check Kind().IsNumeric() first (every call site
// in this package does).
func (v Value) asNumber() numeric.Number {
	switch v.kind {
	case KindI8:
		return numeric.FromI8(v.raw.(int8))
	case KindI16:
		return numeric.FromI16(v.raw.(int16))
	case KindI32:
		return numeric.FromI32(v.raw.(int32))
	case KindI64:
		return numeric.FromI64(v.raw.(int64))
	case KindI128:
		return v.raw.(numeric.Number)
	case KindU8:
		return numeric.FromU8(v.raw.(uint8))
	case KindU16:
		return numeric.FromU16(v.raw.(uint16))
	case KindU32:
		return numeric.FromU32(v.raw.(uint32))
	case KindU64:
		return numeric.FromU64(v.raw.(uint64))
	case KindU128:
		return v.raw.(numeric.Number)
	case KindF32:
		return numeric.FromF32(v.raw.(float32))
	case KindF64:
		return numeric.FromF64(v.raw.(float64))
	case KindDecimal:
		return numeric.FromDecimal(v.raw.(decimal.Decimal))
	}
	panic(fmt.Sprintf("value: asNumber on non-numeric kind %v", v.kind))
}

// fromNumber builds a Value of kind k's shape from a numeric.Number
// already narrowed to that kind (as numeric.To/Binary guarantee).
func fromNumber(k Kind, n numeric.Number) Value {
	switch k {
	case KindI8:
		return NewI8(int8(n.SI.Int64()))
	case KindI16:
		return NewI16(int16(n.SI.Int64()))
	case KindI32:
		return NewI32(int32(n.SI.Int64()))
	case KindI64:
		return NewI64(n.SI.Int64())
	case KindI128:
		return NewI128(n)
	case KindU8:
		return NewU8(uint8(n.UI.Lo))
	case KindU16:
		return NewU16(uint16(n.UI.Lo))
	case KindU32:
		return NewU32(uint32(n.UI.Lo))
	case KindU64:
		return NewU64(n.UI.Lo)
	case KindU128:
		return NewU128(n)
	case KindF32:
		return NewF32(n.F32)
	case KindF64:
		return NewF64(n.F64)
	case KindDecimal:
		return NewDecimal(n.Dec)
	}
	panic("value: fromNumber on non-numeric kind")
}

func numKind(k Kind) numeric.Kind {
	switch k {
	case KindI8:
		return numeric.I8
	case KindI16:
		return numeric.I16
	case KindI32:
		return numeric.I32
	case KindI64:
		return numeric.I64
	case KindI128:
		return numeric.I128
	case KindU8:
		return numeric.U8
	case KindU16:
		return numeric.U16
	case KindU32:
		return numeric.U32
	case KindU64:
		return numeric.U64
	case KindU128:
		return numeric.U128
	case KindF32:
		return numeric.F32
	case KindF64:
		return numeric.F64
	case KindDecimal:
		return numeric.Dec
	}
	panic("value: numKind on non-numeric Kind")
}

// IsZero reports whether v is a numeric zero. Non-numeric values
// (including Null) are never zero.
func (v Value) IsZero() bool {
	if !v.kind.IsNumeric() {
		return false
	}
	n := v.asNumber()
	switch {
	case n.Kind.IsSigned():
		return n.SI.Sign() == 0
	case n.Kind.IsUnsigned():
		return n.UI.IsZero()
	case n.Kind == numeric.F32:
		return n.F32 == 0
	case n.Kind == numeric.F64:
		return n.F64 == 0
	case n.Kind == numeric.Dec:
		return n.Dec.IsZero()
	}
	return false
}

// String renders v for diagnostics; it is not SQL text (see core/ast for
// that) and not used by equality/comparison.
func (v Value) String() string {
	if v.IsNull() {
		return "NULL"
	}
	return fmt.Sprintf("%v", v.raw)
}
