// Package storage defines the Store contract the core consumes: the
// core never specifies physical storage itself, only this interface,
// against which core/execute drives every statement.
package storage

import (
	"context"

	"github.com/gluesql/gluesql-sub000/core/ast"
	"github.com/gluesql/gluesql-sub000/core/value"
)

// Key is an opaque byte sequence; rows with a user-declared primary key
// must serialize it via value.Value.ToCmpBEBytes so range scans on the
// PK come back in sorted order.
type Key []byte

// Row is either a positional slice aligned to the schema's columns, or
// (for schema-less tables) a single Map value.
type Row struct {
	Values []value.Value
	Map    value.MapValue
	IsMap  bool
}

// KeyedRow pairs a Row with its storage key, the shape scan_data and
// fetch_data stream.
type KeyedRow struct {
	Key Key
	Row Row
}

// Store is the capability set core/execute needs from a backend.
// Implementations exist at storage/memory (in-memory) and
// storage/kvsqlite (file-backed); a "remote" variant is left
// unimplemented since network protocols are an explicit non-goal.
type Store interface {
	FetchSchema(ctx context.Context, table string) (*ast.Schema, error)
	FetchAllSchemas(ctx context.Context) ([]*ast.Schema, error)
	ScanData(ctx context.Context, table string) ([]KeyedRow, error)
	FetchData(ctx context.Context, table string, key Key) (*Row, error)

	InsertSchema(ctx context.Context, schema *ast.Schema) error
	DeleteSchema(ctx context.Context, table string) error
	AppendSchema(ctx context.Context, schema *ast.Schema) error
	RenameTable(ctx context.Context, oldName, newName string) error

	InsertData(ctx context.Context, table string, rows []KeyedRow) error
	UpdateData(ctx context.Context, table string, rows []KeyedRow) error
	DeleteData(ctx context.Context, table string, keys []Key) error

	CreateIndex(ctx context.Context, table, name string, column ast.Expr) error
	DropIndex(ctx context.Context, table, name string) error

	FetchFunction(ctx context.Context, name string) (*ast.CreateFunctionStatement, error)
	InsertFunction(ctx context.Context, fn *ast.CreateFunctionStatement) error
	DeleteFunction(ctx context.Context, name string) error

	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionUnsupportedError is the error a storage backend returns
// when it cannot open the requested transaction; both built-in backends
// return it for a nested Begin.
type TransactionUnsupportedError struct{ Backend string }

func (e *TransactionUnsupportedError) Error() string {
	return e.Backend + " does not support transactions"
}
