// Package kvsqlite implements storage.Store as a key/value
// blob store layered on SQLite: schemas, functions, and rows are all
// opaque gob blobs keyed by table name and row key, with SQLite used
// purely for durable, transactional storage rather than as a second
// query engine. The driver is selected at build time between the pure
// Go modernc.org/sqlite (default) and CGO mattn/go-sqlite3 (-tags
// cgo_sqlite).
package kvsqlite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/gob"
	"fmt"

	"github.com/gluesql/gluesql-sub000/core/ast"
	"github.com/gluesql/gluesql-sub000/core/sqlerr"
	"github.com/gluesql/gluesql-sub000/storage"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS glue_schemas (
	table_name TEXT PRIMARY KEY,
	schema_blob BLOB NOT NULL
);
CREATE TABLE IF NOT EXISTS glue_functions (
	name TEXT PRIMARY KEY,
	fn_blob BLOB NOT NULL
);
CREATE TABLE IF NOT EXISTS glue_rows (
	table_name TEXT NOT NULL,
	row_key BLOB NOT NULL,
	seq INTEGER NOT NULL,
	row_blob BLOB NOT NULL,
	PRIMARY KEY (table_name, row_key)
);
CREATE INDEX IF NOT EXISTS glue_rows_seq ON glue_rows(table_name, seq);
CREATE TABLE IF NOT EXISTS glue_counters (
	table_name TEXT PRIMARY KEY,
	next INTEGER NOT NULL
);
`

// querier is satisfied by both *sql.DB and *sql.Tx, so every method
// below runs unchanged whether or not a transaction is open.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is a file-backed storage.Store. Reads and writes go through q,
// which is the raw *sql.DB outside a transaction and the open *sql.Tx
// once Begin has been called.
type Store struct {
	db *sql.DB
	tx *sql.Tx
}

// Open creates or opens a SQLite database file at path and ensures the
// catalog tables exist.
func Open(path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("kvsqlite: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) q() querier {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

func gobEncode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gobDecode(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

func (s *Store) FetchSchema(ctx context.Context, table string) (*ast.Schema, error) {
	var blob []byte
	err := s.q().QueryRowContext(ctx, `SELECT schema_blob FROM glue_schemas WHERE table_name = ?`, table).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var schema ast.Schema
	if err := gobDecode(blob, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

func (s *Store) FetchAllSchemas(ctx context.Context) ([]*ast.Schema, error) {
	rows, err := s.q().QueryContext(ctx, `SELECT schema_blob FROM glue_schemas ORDER BY table_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*ast.Schema
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, err
		}
		var schema ast.Schema
		if err := gobDecode(blob, &schema); err != nil {
			return nil, err
		}
		out = append(out, &schema)
	}
	return out, rows.Err()
}

func (s *Store) InsertSchema(ctx context.Context, schema *ast.Schema) error {
	existing, err := s.FetchSchema(ctx, schema.TableName)
	if err != nil {
		return err
	}
	if existing != nil {
		return sqlerr.New(sqlerr.KindTableAlreadyExists, "table %q already exists", schema.TableName)
	}
	blob, err := gobEncode(schema)
	if err != nil {
		return err
	}
	_, err = s.q().ExecContext(ctx, `INSERT INTO glue_schemas (table_name, schema_blob) VALUES (?, ?)`, schema.TableName, blob)
	if err != nil {
		return err
	}
	_, err = s.q().ExecContext(ctx, `INSERT OR REPLACE INTO glue_counters (table_name, next) VALUES (?, 1)`, schema.TableName)
	return err
}

func (s *Store) DeleteSchema(ctx context.Context, table string) error {
	if _, err := s.q().ExecContext(ctx, `DELETE FROM glue_schemas WHERE table_name = ?`, table); err != nil {
		return err
	}
	if _, err := s.q().ExecContext(ctx, `DELETE FROM glue_rows WHERE table_name = ?`, table); err != nil {
		return err
	}
	_, err := s.q().ExecContext(ctx, `DELETE FROM glue_counters WHERE table_name = ?`, table)
	return err
}

func (s *Store) AppendSchema(ctx context.Context, schema *ast.Schema) error {
	blob, err := gobEncode(schema)
	if err != nil {
		return err
	}
	_, err = s.q().ExecContext(ctx, `INSERT OR REPLACE INTO glue_schemas (table_name, schema_blob) VALUES (?, ?)`, schema.TableName, blob)
	return err
}

// RenameTable relocates a table's catalog entry, row data, and
// surrogate-key counter to newName in one pass, which the generic
// FetchSchema-mutate-AppendSchema path cannot do since it only ever
// sees the new schema with no link back to the old row data's key.
func (s *Store) RenameTable(ctx context.Context, oldName, newName string) error {
	schema, err := s.FetchSchema(ctx, oldName)
	if err != nil {
		return err
	}
	if schema == nil {
		return sqlerr.New(sqlerr.KindTableNotFound, "table %q not found", oldName)
	}
	if existing, err := s.FetchSchema(ctx, newName); err != nil {
		return err
	} else if existing != nil {
		return sqlerr.New(sqlerr.KindTableAlreadyExists, "table %q already exists", newName)
	}
	schema.TableName = newName
	blob, err := gobEncode(schema)
	if err != nil {
		return err
	}
	if _, err := s.q().ExecContext(ctx, `UPDATE glue_schemas SET table_name = ?, schema_blob = ? WHERE table_name = ?`, newName, blob, oldName); err != nil {
		return err
	}
	if _, err := s.q().ExecContext(ctx, `UPDATE glue_rows SET table_name = ? WHERE table_name = ?`, newName, oldName); err != nil {
		return err
	}
	_, err = s.q().ExecContext(ctx, `UPDATE glue_counters SET table_name = ? WHERE table_name = ?`, newName, oldName)
	return err
}

func (s *Store) ScanData(ctx context.Context, table string) ([]storage.KeyedRow, error) {
	if schema, err := s.FetchSchema(ctx, table); err != nil {
		return nil, err
	} else if schema == nil {
		return nil, sqlerr.New(sqlerr.KindTableNotFound, "table %q not found", table)
	}
	rows, err := s.q().QueryContext(ctx, `SELECT row_key, row_blob FROM glue_rows WHERE table_name = ? ORDER BY seq`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []storage.KeyedRow
	for rows.Next() {
		var key, blob []byte
		if err := rows.Scan(&key, &blob); err != nil {
			return nil, err
		}
		var row storage.Row
		if err := gobDecode(blob, &row); err != nil {
			return nil, err
		}
		out = append(out, storage.KeyedRow{Key: storage.Key(key), Row: row})
	}
	return out, rows.Err()
}

func (s *Store) FetchData(ctx context.Context, table string, key storage.Key) (*storage.Row, error) {
	var blob []byte
	err := s.q().QueryRowContext(ctx, `SELECT row_blob FROM glue_rows WHERE table_name = ? AND row_key = ?`, table, []byte(key)).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var row storage.Row
	if err := gobDecode(blob, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Store) nextSeq(ctx context.Context, table string) (int64, error) {
	var next int64
	err := s.q().QueryRowContext(ctx, `SELECT next FROM glue_counters WHERE table_name = ?`, table).Scan(&next)
	if err == sql.ErrNoRows {
		next = 1
	} else if err != nil {
		return 0, err
	}
	if _, err := s.q().ExecContext(ctx, `INSERT OR REPLACE INTO glue_counters (table_name, next) VALUES (?, ?)`, table, next+1); err != nil {
		return 0, err
	}
	return next, nil
}

func (s *Store) InsertData(ctx context.Context, table string, rows []storage.KeyedRow) error {
	if schema, err := s.FetchSchema(ctx, table); err != nil {
		return err
	} else if schema == nil {
		return sqlerr.New(sqlerr.KindTableNotFound, "table %q not found", table)
	}
	for _, kr := range rows {
		key := kr.Key
		if len(key) == 0 {
			seq, err := s.nextSeq(ctx, table)
			if err != nil {
				return err
			}
			key = storage.Key(fmt.Sprintf("%020d", seq))
		}
		var exists int
		err := s.q().QueryRowContext(ctx, `SELECT 1 FROM glue_rows WHERE table_name = ? AND row_key = ?`, table, []byte(key)).Scan(&exists)
		if err == nil {
			return sqlerr.New(sqlerr.KindDuplicateEntryOnPrimaryKey, "duplicate key in table %q", table)
		}
		if err != sql.ErrNoRows {
			return err
		}
		blob, err := gobEncode(kr.Row)
		if err != nil {
			return err
		}
		seq, err := s.nextSeq(ctx, table)
		if err != nil {
			return err
		}
		if _, err := s.q().ExecContext(ctx, `INSERT INTO glue_rows (table_name, row_key, seq, row_blob) VALUES (?, ?, ?, ?)`, table, []byte(key), seq, blob); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) UpdateData(ctx context.Context, table string, rows []storage.KeyedRow) error {
	for _, kr := range rows {
		blob, err := gobEncode(kr.Row)
		if err != nil {
			return err
		}
		if _, err := s.q().ExecContext(ctx, `UPDATE glue_rows SET row_blob = ? WHERE table_name = ? AND row_key = ?`, blob, table, []byte(kr.Key)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) DeleteData(ctx context.Context, table string, keys []storage.Key) error {
	for _, k := range keys {
		if _, err := s.q().ExecContext(ctx, `DELETE FROM glue_rows WHERE table_name = ? AND row_key = ?`, table, []byte(k)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) CreateIndex(ctx context.Context, tableName, name string, column ast.Expr) error {
	schema, err := s.FetchSchema(ctx, tableName)
	if err != nil {
		return err
	}
	if schema == nil {
		return sqlerr.New(sqlerr.KindTableNotFound, "table %q not found", tableName)
	}
	for _, idx := range schema.Indexes {
		if idx.Name == name {
			return sqlerr.New(sqlerr.KindDuplicateColumn, "index %q already exists", name)
		}
	}
	schema.Indexes = append(schema.Indexes, ast.IndexDef{Name: name, Column: column})
	return s.AppendSchema(ctx, schema)
}

func (s *Store) DropIndex(ctx context.Context, tableName, name string) error {
	schema, err := s.FetchSchema(ctx, tableName)
	if err != nil {
		return err
	}
	if schema == nil {
		return sqlerr.New(sqlerr.KindTableNotFound, "table %q not found", tableName)
	}
	for i, idx := range schema.Indexes {
		if idx.Name == name {
			schema.Indexes = append(schema.Indexes[:i], schema.Indexes[i+1:]...)
			return s.AppendSchema(ctx, schema)
		}
	}
	return sqlerr.New(sqlerr.KindIdentifierNotFoundInIndex, "index %q not found", name)
}

func (s *Store) FetchFunction(ctx context.Context, name string) (*ast.CreateFunctionStatement, error) {
	var blob []byte
	err := s.q().QueryRowContext(ctx, `SELECT fn_blob FROM glue_functions WHERE name = ?`, name).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var fn ast.CreateFunctionStatement
	if err := gobDecode(blob, &fn); err != nil {
		return nil, err
	}
	return &fn, nil
}

func (s *Store) InsertFunction(ctx context.Context, fn *ast.CreateFunctionStatement) error {
	blob, err := gobEncode(fn)
	if err != nil {
		return err
	}
	_, err = s.q().ExecContext(ctx, `INSERT OR REPLACE INTO glue_functions (name, fn_blob) VALUES (?, ?)`, fn.Name, blob)
	return err
}

func (s *Store) DeleteFunction(ctx context.Context, name string) error {
	_, err := s.q().ExecContext(ctx, `DELETE FROM glue_functions WHERE name = ?`, name)
	return err
}

func (s *Store) Begin(ctx context.Context) error {
	if s.tx != nil {
		return &storage.TransactionUnsupportedError{Backend: "kvsqlite: nested transactions"}
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	s.tx = tx
	return nil
}

func (s *Store) Commit(_ context.Context) error {
	if s.tx == nil {
		return nil
	}
	err := s.tx.Commit()
	s.tx = nil
	return err
}

func (s *Store) Rollback(_ context.Context) error {
	if s.tx == nil {
		return nil
	}
	err := s.tx.Rollback()
	s.tx = nil
	return err
}

var _ storage.Store = (*Store)(nil)
