package sqltext

import "github.com/gluesql/gluesql-sub000/core/value"

// dataTypeAliases resolves a column-definition's SQL type keyword to
// the value.DataType enum translate.PColumnDef carries. It is
// deliberately more permissive than value.DataType.String()'s canonical
// names -- a text parser has to accept INTEGER and VARCHAR, not just
// the core's own INT/TEXT spelling.
//
// CAST(x AS ...) targets are a separate concern: PCast.DataType is a
// raw string that core/evaluate resolves at evaluation time against
// its own alias table, so parseCast passes the type name through
// unresolved rather than consulting this map.
var dataTypeAliases = map[string]value.DataType{
	"BOOLEAN": value.Boolean, "BOOL": value.Boolean,
	"INT8": value.Int8, "TINYINT": value.Int8,
	"INT16": value.Int16, "SMALLINT": value.Int16,
	"INT32": value.Int32,
	"INT":    value.Int, "INTEGER": value.Int, "BIGINT": value.Int,
	"INT128": value.Int128,
	"UINT8":  value.Uint8,
	"UINT16": value.Uint16,
	"UINT32": value.Uint32,
	"UINT64": value.Uint64, "UINT": value.Uint64,
	"UINT128":  value.Uint128,
	"FLOAT32":  value.Float32, "REAL": value.Float32,
	"FLOAT": value.Float, "DOUBLE": value.Float,
	"DECIMAL": value.Decimal, "NUMERIC": value.Decimal,
	"TEXT": value.Text, "VARCHAR": value.Text, "CHAR": value.Text, "STRING": value.Text,
	"BYTEA": value.Bytea, "BLOB": value.Bytea, "BINARY": value.Bytea,
	"INET":      value.Inet,
	"DATE":      value.DateType,
	"TIME":      value.TimeType,
	"TIMESTAMP": value.TimestampType, "DATETIME": value.TimestampType,
	"INTERVAL": value.IntervalType,
	"UUID":     value.Uuid,
	"MAP":      value.Map,
	"LIST":     value.List, "ARRAY": value.List,
	"POINT": value.PointType,
}
