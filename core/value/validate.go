package value

import "github.com/gluesql/gluesql-sub000/core/sqlerr"

// ValidateType checks that v's Kind matches dt. Null is valid against
// every DataType (nullability is checked separately by ValidateNull).
func (v Value) ValidateType(dt DataType) error {
	if v.IsNull() {
		return nil
	}
	if v.kind != KindOf(dt) {
		return sqlerr.New(sqlerr.KindIncompatibleDataType,
			"incompatible data type: %v is not %v", v.kind, dt).
			With("data_type", dt).With("value", v)
	}
	return nil
}

// ValidateNull rejects a Null value when the column is not nullable.
func (v Value) ValidateNull(nullable bool) error {
	if !nullable && v.IsNull() {
		return sqlerr.New(sqlerr.KindNullOnNotNull, "NULL value on a NOT NULL field")
	}
	return nil
}
