package value

import (
	"bytes"

	"github.com/google/uuid"

	"github.com/gluesql/gluesql-sub000/core/value/numeric"
)

// Compare orders v against other. The bool result is false ("incomparable")
// when the pair has no defined order: Null on either side, or mismatched
// non-numeric, non-Date/Timestamp kinds.
func (v Value) Compare(other Value) (cmp int, ok bool) {
	if v.kind == KindNull || other.kind == KindNull {
		return 0, false
	}
	if v.kind.IsNumeric() && other.kind.IsNumeric() {
		c, err := numeric.Compare(v.asNumber(), other.asNumber())
		if err != nil {
			return 0, false
		}
		return c, true
	}
	if v.kind != other.kind {
		return dateTimestampCompare(v, other)
	}
	switch v.kind {
	case KindBool:
		return boolCmp(v.raw.(bool), other.raw.(bool)), true
	case KindStr:
		return stringsCmp(v.raw.(string), other.raw.(string)), true
	case KindBytea:
		return bytes.Compare(v.raw.([]byte), other.raw.([]byte)), true
	case KindDate:
		return v.raw.(Date).toTime().Compare(other.raw.(Date).toTime()), true
	case KindTime:
		return int(v.raw.(Time).duration() - other.raw.(Time).duration()), true
	case KindTimestamp:
		return v.raw.(Timestamp).Time.Compare(other.raw.(Timestamp).Time), true
	case KindInterval:
		return intervalCompare(v.raw.(Interval), other.raw.(Interval))
	case KindUuid:
		a, b := v.raw.(uuid.UUID), other.raw.(uuid.UUID)
		return bytes.Compare(a[:], b[:]), true
	}
	return 0, false
}

func boolCmp(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

func stringsCmp(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func dateTimestampCompare(v, other Value) (int, bool) {
	if v.kind == KindDate && other.kind == KindTimestamp {
		return v.raw.(Date).toTime().Compare(other.raw.(Timestamp).Time), true
	}
	if v.kind == KindTimestamp && other.kind == KindDate {
		return v.raw.(Timestamp).Time.Compare(other.raw.(Date).toTime()), true
	}
	return 0, false
}

// intervalCompare orders two intervals only when they share a kind:
// adding/subtracting across year-month and microsecond kinds is an
// error, and so is comparing across them.
func intervalCompare(a, b Interval) (int, bool) {
	if a.Kind != b.Kind {
		return 0, false
	}
	if a.Kind == IntervalMonth {
		return int(a.Month) - int(b.Month), true
	}
	d := a.Micro - b.Micro
	switch {
	case d < 0:
		return -1, true
	case d > 0:
		return 1, true
	default:
		return 0, true
	}
}
