// Package row scans a query result (labels + []value.Value rows, the
// shape core/execute's Payload carries) into caller-defined Go structs:
// a runtime reflection-based deserializer keyed by a
// `glue:"column_name"` struct tag, in the idiom of encoding/json's
// struct-tag scanning.
package row

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gluesql/gluesql-sub000/core/sqlerr"
	"github.com/gluesql/gluesql-sub000/core/value"
)

// fieldMap maps a destination struct type's field index to the source
// column index it reads from, computed once per struct type and reused
// across rows sharing the same label set.
type fieldMap []int

// Scanner caches the struct-field/column mapping for one struct type
// against one label set, so scanning many rows of the same shape (the
// common case: iterating a whole result set into a slice) only walks
// struct tags once.
type Scanner struct {
	labels  []string
	typ     reflect.Type
	mapping fieldMap
}

// NewScanner builds a Scanner for destStruct (a pointer to a struct, or
// the struct type itself) against labels, the column names a query
// result carries in order.
func NewScanner(labels []string, destStruct any) (*Scanner, error) {
	typ := reflect.TypeOf(destStruct)
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, sqlerr.New(sqlerr.KindUnsupportedSyntax, "row: destination must be a struct, got %s", typ.Kind())
	}
	mapping := buildMapping(typ, labels)
	return &Scanner{labels: labels, typ: typ, mapping: mapping}, nil
}

func buildMapping(typ reflect.Type, labels []string) fieldMap {
	colIndex := make(map[string]int, len(labels))
	for i, l := range labels {
		colIndex[l] = i
	}
	mapping := make(fieldMap, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			mapping[i] = -1
			continue
		}
		name := f.Tag.Get("glue")
		if name == "-" {
			mapping[i] = -1
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		idx, ok := colIndex[name]
		if !ok {
			mapping[i] = -1
			continue
		}
		mapping[i] = idx
	}
	return mapping
}

// Scan populates dest (a pointer to a struct matching the Scanner's
// type) from one row.
func (s *Scanner) Scan(values []value.Value, dest any) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.Elem().Type() != s.typ {
		return sqlerr.New(sqlerr.KindUnsupportedSyntax, "row: dest does not match scanner's struct type")
	}
	elem := rv.Elem()
	for fieldIdx, colIdx := range s.mapping {
		if colIdx < 0 {
			continue
		}
		if colIdx >= len(values) {
			return sqlerr.New(sqlerr.KindColumnNotFound, "row: column index %d out of range", colIdx)
		}
		if err := setField(elem.Field(fieldIdx), values[colIdx]); err != nil {
			return fmt.Errorf("row: field %q: %w", s.typ.Field(fieldIdx).Name, err)
		}
	}
	return nil
}

// Scan is the one-shot convenience form of NewScanner+Scanner.Scan, for
// callers scanning a single row rather than iterating a result set.
func Scan(labels []string, values []value.Value, dest any) error {
	s, err := NewScanner(labels, dest)
	if err != nil {
		return err
	}
	return s.Scan(values, dest)
}

func setField(field reflect.Value, v value.Value) error {
	if v.IsNull() {
		if field.Kind() == reflect.Ptr {
			field.Set(reflect.Zero(field.Type()))
			return nil
		}
		return nil
	}
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return setField(field.Elem(), v)
	}

	switch field.Interface().(type) {
	case decimal.Decimal:
		f, ok := v.AsF64()
		if !ok {
			return fmt.Errorf("cannot scan %s into decimal.Decimal", v.Kind())
		}
		field.Set(reflect.ValueOf(decimal.NewFromFloat(f)))
		return nil
	case uuid.UUID:
		s, ok := v.AsStr()
		if !ok {
			return fmt.Errorf("cannot scan %s into uuid.UUID", v.Kind())
		}
		u, err := uuid.Parse(s)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(u))
		return nil
	case time.Time:
		t, err := v.ToGoTime()
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(t))
		return nil
	}

	switch field.Kind() {
	case reflect.Bool:
		b, ok := v.AsBool()
		if !ok {
			return fmt.Errorf("cannot scan %s into bool", v.Kind())
		}
		field.SetBool(b)
	case reflect.String:
		s, ok := v.AsStr()
		if !ok {
			return fmt.Errorf("cannot scan %s into string", v.Kind())
		}
		field.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := v.AsI64()
		if !ok {
			return fmt.Errorf("cannot scan %s into %s", v.Kind(), field.Kind())
		}
		if field.OverflowInt(n) {
			return fmt.Errorf("value %d overflows %s", n, field.Kind())
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := v.AsI64()
		if !ok || n < 0 {
			return fmt.Errorf("cannot scan %s into %s", v.Kind(), field.Kind())
		}
		field.SetUint(uint64(n))
	case reflect.Float32, reflect.Float64:
		f, ok := v.AsF64()
		if !ok {
			return fmt.Errorf("cannot scan %s into %s", v.Kind(), field.Kind())
		}
		field.SetFloat(f)
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.Uint8 {
			b, ok := v.AsBytea()
			if ok {
				field.SetBytes(b)
				return nil
			}
		}
		return fmt.Errorf("cannot scan %s into %s", v.Kind(), field.Kind())
	default:
		return fmt.Errorf("unsupported destination kind %s", field.Kind())
	}
	return nil
}
