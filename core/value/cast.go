package value

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gluesql/gluesql-sub000/core/sqlerr"
	"github.com/gluesql/gluesql-sub000/core/value/numeric"
)

// Cast converts v to DataType target following a fixed cast matrix:
// NULL always casts to NULL of the target type, same-type cast
// is the identity, and every other pair either has a well-defined
// conversion or returns ImpossibleCast.
func (v Value) Cast(target DataType) (Value, error) {
	if v.IsNull() {
		return Null(), nil
	}
	if v.kind == KindOf(target) {
		return v, nil
	}

	switch target {
	case Boolean:
		return v.castBoolean()
	case Int8, Int16, Int32, Int, Int128, Uint8, Uint16, Uint32, Uint64, Uint128, Float32, Float, Decimal:
		return v.castNumeric(target)
	case Text:
		return NewStr(v.displayText()), nil
	case Bytea:
		return v.castBytea()
	case DateType:
		return v.castDate()
	case TimeType:
		return v.castTime()
	case TimestampType:
		return v.castTimestamp()
	case IntervalType:
		return v.castInterval()
	case Uuid:
		return v.castUUID()
	case Inet:
		return Value{}, sqlerr.New(sqlerr.KindImpossibleCast, "cannot cast %v to INET", v.kind)
	}
	return Value{}, sqlerr.New(sqlerr.KindImpossibleCast, "cannot cast %v to %v", v.kind, target)
}

func (v Value) castBoolean() (Value, error) {
	switch v.kind {
	case KindStr:
		switch strings.ToUpper(strings.TrimSpace(v.raw.(string))) {
		case "TRUE", "T", "1":
			return NewBool(true), nil
		case "FALSE", "F", "0":
			return NewBool(false), nil
		}
		return Value{}, sqlerr.New(sqlerr.KindImpossibleCast, "cannot cast %q to BOOLEAN", v.raw)
	}
	if v.kind.IsNumeric() {
		return NewBool(!v.IsZero()), nil
	}
	return Value{}, sqlerr.New(sqlerr.KindImpossibleCast, "cannot cast %v to BOOLEAN", v.kind)
}

func (v Value) castNumeric(target DataType) (Value, error) {
	switch v.kind {
	case KindBool:
		b := int64(0)
		if v.raw.(bool) {
			b = 1
		}
		n, err := numeric.To(numeric.FromI64(b), numKind(KindOf(target)))
		if err != nil {
			return Value{}, overflowErr(target, err)
		}
		return fromNumber(KindOf(target), n), nil
	case KindStr:
		return parseNumericText(v.raw.(string), target)
	}
	if v.kind.IsNumeric() {
		n, err := numeric.To(v.asNumber(), numKind(KindOf(target)))
		if err != nil {
			return Value{}, overflowErr(target, err)
		}
		return fromNumber(KindOf(target), n), nil
	}
	return Value{}, sqlerr.New(sqlerr.KindImpossibleCast, "cannot cast %v to %v", v.kind, target)
}

func overflowErr(target DataType, err error) error {
	return sqlerr.New(sqlerr.KindBinaryOperationOverflow, "value out of range for %v: %v", target, err)
}

func parseNumericText(s string, target DataType) (Value, error) {
	s = strings.TrimSpace(s)
	if target == Decimal {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return Value{}, sqlerr.New(sqlerr.KindFailedToParseNumber, "failed to parse number %q", s)
		}
		return NewDecimal(d), nil
	}
	if target == Float || target == Float32 {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, sqlerr.New(sqlerr.KindFailedToParseNumber, "failed to parse number %q", s)
		}
		if target == Float32 {
			return NewF32(float32(f)), nil
		}
		return NewF64(f), nil
	}
	// Integer targets: parse through big.Int-backed decimal so both
	// "123" and a decimal-ish "123.0" textual literal are accepted,
	// matching bigdecimal-backed Literal::Number semantics.
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Value{}, sqlerr.New(sqlerr.KindFailedToParseNumber, "failed to parse number %q", s)
	}
	n, err := numeric.To(numeric.FromDecimal(d), numKind(KindOf(target)))
	if err != nil {
		return Value{}, overflowErr(target, err)
	}
	return fromNumber(KindOf(target), n), nil
}

func (v Value) castBytea() (Value, error) {
	if v.kind == KindStr {
		s := strings.TrimPrefix(v.raw.(string), "\\x")
		b, err := hexDecode(s)
		if err != nil {
			return Value{}, sqlerr.New(sqlerr.KindFailedToParseHex, "failed to parse hex %q", v.raw)
		}
		return NewBytea(b), nil
	}
	return Value{}, sqlerr.New(sqlerr.KindImpossibleCast, "cannot cast %v to BYTEA", v.kind)
}

func (v Value) castDate() (Value, error) {
	switch v.kind {
	case KindStr:
		t, err := time.Parse("2006-01-02", strings.TrimSpace(v.raw.(string)))
		if err != nil {
			return Value{}, sqlerr.New(sqlerr.KindFailedToParseDate, "failed to parse date %q", v.raw)
		}
		return NewDate(Date{t.Year(), int(t.Month()), t.Day()}), nil
	case KindTimestamp:
		t := v.raw.(Timestamp).Time
		return NewDate(Date{t.Year(), int(t.Month()), t.Day()}), nil
	}
	return Value{}, sqlerr.New(sqlerr.KindImpossibleCast, "cannot cast %v to DATE", v.kind)
}

func (v Value) castTime() (Value, error) {
	switch v.kind {
	case KindStr:
		s := strings.TrimSpace(v.raw.(string))
		for _, layout := range []string{"15:04:05.999999999", "15:04:05", "15:04"} {
			if t, err := time.Parse(layout, s); err == nil {
				return NewTime(Time{t.Hour(), t.Minute(), t.Second(), t.Nanosecond()}), nil
			}
		}
		return Value{}, sqlerr.New(sqlerr.KindFailedToParseTime, "failed to parse time %q", v.raw)
	case KindTimestamp:
		t := v.raw.(Timestamp).Time
		return NewTime(Time{t.Hour(), t.Minute(), t.Second(), t.Nanosecond()}), nil
	}
	return Value{}, sqlerr.New(sqlerr.KindImpossibleCast, "cannot cast %v to TIME", v.kind)
}

func (v Value) castTimestamp() (Value, error) {
	switch v.kind {
	case KindStr:
		s := strings.TrimSpace(v.raw.(string))
		for _, layout := range []string{"2006-01-02 15:04:05.999999999", "2006-01-02T15:04:05.999999999",
			"2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return NewTimestamp(Timestamp{t}), nil
			}
		}
		return Value{}, sqlerr.New(sqlerr.KindFailedToParseTimestamp, "failed to parse timestamp %q", v.raw)
	case KindDate:
		return NewTimestamp(Timestamp{v.raw.(Date).toTime()}), nil
	}
	return Value{}, sqlerr.New(sqlerr.KindImpossibleCast, "cannot cast %v to TIMESTAMP", v.kind)
}

func (v Value) castInterval() (Value, error) {
	if v.kind != KindStr {
		return Value{}, sqlerr.New(sqlerr.KindImpossibleCast, "cannot cast %v to INTERVAL", v.kind)
	}
	iv, err := ParseIntervalText(v.raw.(string))
	if err != nil {
		return Value{}, sqlerr.New(sqlerr.KindFailedToParseInterval, "failed to parse interval %q: %v", v.raw, err)
	}
	return NewInterval(iv), nil
}

func (v Value) castUUID() (Value, error) {
	if v.kind != KindStr {
		return Value{}, sqlerr.New(sqlerr.KindImpossibleCast, "cannot cast %v to UUID", v.kind)
	}
	u, err := uuid.Parse(v.raw.(string))
	if err != nil {
		return Value{}, sqlerr.New(sqlerr.KindFailedToParseUUID, "failed to parse uuid %q", v.raw)
	}
	return NewUUID(u), nil
}

func hexDecode(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("odd-length hex string")
	}
	out := make([]byte, len(s)/2)
	for i := 0; i < len(out); i++ {
		hi, err := hexNibble(s[i*2])
		if err != nil {
			return nil, err
		}
		lo, err := hexNibble(s[i*2+1])
		if err != nil {
			return nil, err
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexNibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	}
	return 0, fmt.Errorf("invalid hex digit %q", c)
}
