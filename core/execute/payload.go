// Package execute implements the execution pipeline: the top-level
// dispatcher, the SELECT scan/join/filter/project/order/limit stages,
// and the DML statement executors.
package execute

import "github.com/gluesql/gluesql-sub000/core/value"

// PayloadKind discriminates the shape of a Payload's result.
type PayloadKind int

const (
	PayloadCreate PayloadKind = iota
	PayloadDropTable
	PayloadDropFunction
	PayloadAlterTable
	PayloadCreateIndex
	PayloadDropIndex
	PayloadStartTransaction
	PayloadCommit
	PayloadRollback
	PayloadInsert
	PayloadUpdate
	PayloadDelete
	PayloadSelect
	PayloadSelectMap
	PayloadShowColumns
	PayloadShowVariable
)

// Payload is the outcome of Execute: exactly one of its fields is
// meaningful, selected by Kind.
type Payload struct {
	Kind PayloadKind

	RowCount int // Insert(n) / Update(n) / Delete(n)

	Labels []string
	Rows   [][]value.Value // Select

	MapRows []value.MapValue // SelectMap

	ColumnInfo []ShowColumn // ShowColumns

	Variable value.Value // ShowVariable
}

// ShowColumn is one (name, DataType) pair for SHOW COLUMNS.
type ShowColumn struct {
	Name     string
	DataType string
}
