package value

// DataType is the declared SQL type of a column, cast target, or typed
// literal. It is deliberately the same enum
// family core/ast's ColumnDef/Cast nodes reference, so there is exactly
// one type-name vocabulary shared by the AST and the Value layer.
type DataType uint8

const (
	Boolean DataType = iota
	Int8
	Int16
	Int32
	Int
	Int128
	Uint8
	Uint16
	Uint32
	Uint64
	Uint128
	Float32
	Float
	Decimal
	Text
	Bytea
	Inet
	DateType
	TimeType
	TimestampType
	IntervalType
	Uuid
	Map
	List
	PointType
)

var dataTypeNames = map[DataType]string{
	Boolean: "BOOLEAN", Int8: "INT8", Int16: "INT16", Int32: "INT32", Int: "INT", Int128: "INT128",
	Uint8: "UINT8", Uint16: "UINT16", Uint32: "UINT32", Uint64: "UINT64", Uint128: "UINT128",
	Float32: "FLOAT32", Float: "FLOAT", Decimal: "DECIMAL", Text: "TEXT", Bytea: "BYTEA",
	Inet: "INET", DateType: "DATE", TimeType: "TIME", TimestampType: "TIMESTAMP",
	IntervalType: "INTERVAL", Uuid: "UUID", Map: "MAP", List: "LIST", PointType: "POINT",
}

func (d DataType) String() string { return dataTypeNames[d] }

// KindOf returns the Value Kind that DataType d's values carry.
func KindOf(d DataType) Kind {
	switch d {
	case Boolean:
		return KindBool
	case Int8:
		return KindI8
	case Int16:
		return KindI16
	case Int32:
		return KindI32
	case Int:
		return KindI64
	case Int128:
		return KindI128
	case Uint8:
		return KindU8
	case Uint16:
		return KindU16
	case Uint32:
		return KindU32
	case Uint64:
		return KindU64
	case Uint128:
		return KindU128
	case Float32:
		return KindF32
	case Float:
		return KindF64
	case Decimal:
		return KindDecimal
	case Text:
		return KindStr
	case Bytea:
		return KindBytea
	case Inet:
		return KindInet
	case DateType:
		return KindDate
	case TimeType:
		return KindTime
	case TimestampType:
		return KindTimestamp
	case IntervalType:
		return KindInterval
	case Uuid:
		return KindUuid
	case Map:
		return KindMap
	case List:
		return KindList
	case PointType:
		return KindPoint
	}
	return KindNull
}
