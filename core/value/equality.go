package value

import (
	"bytes"
	"net"

	"github.com/google/uuid"

	"github.com/gluesql/gluesql-sub000/core/value/numeric"
)

// Equal implements raw Value equality: reflexive except
// Null, which is unequal to everything including another Null (SQL's
// three-valued "unknown" is reintroduced one layer up, in core/evaluate).
func (v Value) Equal(other Value) bool {
	if v.kind == KindNull || other.kind == KindNull {
		return false
	}
	if v.kind.IsNumeric() && other.kind.IsNumeric() {
		return numeric.Equal(v.asNumber(), other.asNumber())
	}
	if v.kind != other.kind {
		return dateTimestampEqual(v, other)
	}
	switch v.kind {
	case KindBool:
		return v.raw.(bool) == other.raw.(bool)
	case KindStr:
		return v.raw.(string) == other.raw.(string)
	case KindBytea:
		return bytes.Equal(v.raw.([]byte), other.raw.([]byte))
	case KindInet:
		return v.raw.(net.IP).Equal(other.raw.(net.IP))
	case KindDate:
		return v.raw.(Date) == other.raw.(Date)
	case KindTime:
		return v.raw.(Time) == other.raw.(Time)
	case KindTimestamp:
		return v.raw.(Timestamp).Time.Equal(other.raw.(Timestamp).Time)
	case KindInterval:
		return v.raw.(Interval) == other.raw.(Interval)
	case KindUuid:
		return v.raw.(uuid.UUID) == other.raw.(uuid.UUID)
	case KindMap:
		return mapEqual(v.raw.(*MapValue), other.raw.(*MapValue))
	case KindList:
		return listEqual(v.raw.([]Value), other.raw.([]Value))
	case KindPoint:
		return v.raw.(Point) == other.raw.(Point)
	}
	return false
}

// dateTimestampEqual implements "Date and Timestamp compare as if Date
// were Timestamp(date, 00:00:00)" for the mismatched-kind
// case; any other mismatched pair is simply unequal.
func dateTimestampEqual(v, other Value) bool {
	if v.kind == KindDate && other.kind == KindTimestamp {
		return v.raw.(Date).toTime().Equal(other.raw.(Timestamp).Time)
	}
	if v.kind == KindTimestamp && other.kind == KindDate {
		return v.raw.(Timestamp).Time.Equal(other.raw.(Date).toTime())
	}
	return false
}

func mapEqual(a, b *MapValue) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, k := range a.keys {
		av := a.vals[k]
		bv, ok := b.vals[k]
		if !ok || !av.Equal(bv) {
			return false
		}
	}
	return true
}

func listEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
