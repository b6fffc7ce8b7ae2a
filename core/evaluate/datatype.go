package evaluate

import (
	"strings"

	"github.com/gluesql/gluesql-sub000/core/sqlerr"
	"github.com/gluesql/gluesql-sub000/core/value"
)

var dataTypeNames = map[string]value.DataType{
	"BOOLEAN": value.Boolean, "BOOL": value.Boolean,
	"INT8": value.Int8, "INT16": value.Int16, "INT32": value.Int32,
	"INT": value.Int, "INTEGER": value.Int, "INT64": value.Int, "INT128": value.Int128,
	"UINT8": value.Uint8, "UINT16": value.Uint16, "UINT32": value.Uint32,
	"UINT64": value.Uint64, "UINT128": value.Uint128,
	"FLOAT32": value.Float32, "FLOAT": value.Float, "FLOAT64": value.Float,
	"DECIMAL": value.Decimal,
	"TEXT":    value.Text, "VARCHAR": value.Text, "STRING": value.Text,
	"BYTEA": value.Bytea,
	"INET":  value.Inet,
	"DATE":  value.DateType, "TIME": value.TimeType, "TIMESTAMP": value.TimestampType,
	"INTERVAL": value.IntervalType,
	"UUID":     value.Uuid,
	"MAP":      value.Map, "LIST": value.List, "POINT": value.PointType,
}

// dataTypeByName resolves a SQL type-name token into value.DataType,
// the form TypedString/Cast nodes carry (translate keeps these as raw
// strings since DataType parsing rules belong to the evaluator, not to
// the statement-shape-only translate layer).
func dataTypeByName(name string) (value.DataType, error) {
	dt, ok := dataTypeNames[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, sqlerr.New(sqlerr.KindUnsupportedSyntax, "unrecognized data type %q", name)
	}
	return dt, nil
}
