package value

import (
	"bytes"
	"encoding/gob"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/gluesql/gluesql-sub000/core/sqlerr"
	"github.com/gluesql/gluesql-sub000/core/value/numeric"
)

// valueDTO is the gob-encodable shape MarshalBinary/UnmarshalBinary
// round-trip through. It exists because Value's own fields are
// unexported, and because this is a value-preserving codec distinct
// from ToCmpBEBytes's order-preserving one: a storage backend that
// needs to write a row to a blob store and read the exact same typed
// Value back (storage/kvsqlite) needs this; a backend that only needs
// sort order (an index) needs ToCmpBEBytes instead.
type valueDTO struct {
	Kind Kind

	Bool  bool
	Str   string
	Bytea []byte
	Num   numeric.Number
	Inet  net.IP
	Date  Date
	Time  Time
	Ts    time.Time
	IvKind  IntervalKind
	IvMonth int32
	IvMicro int64
	UUID  uuid.UUID
}

// MarshalBinary implements encoding.BinaryMarshaler. It errors on Map,
// List, and Point, which have no defined wire form here (the kvsqlite
// backend does not support columns of those kinds).
func (v Value) MarshalBinary() ([]byte, error) {
	dto := valueDTO{Kind: v.kind}
	switch v.kind {
	case KindNull:
	case KindBool:
		dto.Bool = v.raw.(bool)
	case KindStr:
		dto.Str = v.raw.(string)
	case KindBytea:
		dto.Bytea = v.raw.([]byte)
	case KindInet:
		dto.Inet = v.raw.(net.IP)
	case KindDate:
		dto.Date = v.raw.(Date)
	case KindTime:
		dto.Time = v.raw.(Time)
	case KindTimestamp:
		dto.Ts = v.raw.(Timestamp).Time
	case KindInterval:
		iv := v.raw.(Interval)
		dto.IvKind = iv.Kind
		dto.IvMonth = iv.Month
		dto.IvMicro = iv.Micro
	case KindUuid:
		dto.UUID = v.raw.(uuid.UUID)
	default:
		if !v.kind.IsNumeric() {
			return nil, sqlerr.New(sqlerr.KindImpossibleCast, "no binary encoding for %v", v.kind)
		}
		dto.Num = v.asNumber()
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(dto); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler, the inverse of
// MarshalBinary.
func (v *Value) UnmarshalBinary(data []byte) error {
	var dto valueDTO
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&dto); err != nil {
		return err
	}
	switch dto.Kind {
	case KindNull:
		*v = Null()
	case KindBool:
		*v = NewBool(dto.Bool)
	case KindStr:
		*v = NewStr(dto.Str)
	case KindBytea:
		*v = NewBytea(dto.Bytea)
	case KindInet:
		*v = NewInet(dto.Inet)
	case KindDate:
		*v = NewDate(dto.Date)
	case KindTime:
		*v = NewTime(dto.Time)
	case KindTimestamp:
		*v = NewTimestamp(Timestamp{dto.Ts})
	case KindInterval:
		*v = NewInterval(Interval{Kind: dto.IvKind, Month: dto.IvMonth, Micro: dto.IvMicro})
	case KindUuid:
		*v = NewUUID(dto.UUID)
	default:
		*v = fromNumber(dto.Kind, dto.Num)
	}
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler for MapValue, whose
// keys/vals fields are unexported and so invisible to gob's default
// reflection-based struct encoding.
func (m MapValue) MarshalBinary() ([]byte, error) {
	vals := make(map[string]Value, len(m.keys))
	for k, v := range m.vals {
		vals[k] = v
	}
	dto := struct {
		Keys []string
		Vals map[string]Value
	}{Keys: m.keys, Vals: vals}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(dto); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *MapValue) UnmarshalBinary(data []byte) error {
	var dto struct {
		Keys []string
		Vals map[string]Value
	}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&dto); err != nil {
		return err
	}
	m.keys = dto.Keys
	m.vals = dto.Vals
	return nil
}
