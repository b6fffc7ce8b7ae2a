// Package memory implements storage.Store as a plain in-process map: a
// reference backend for tests and the CLI's default store (used when
// --db is omitted), with no persistence across process restarts.
package memory

import (
	"context"
	"encoding/hex"
	"strconv"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/gluesql/gluesql-sub000/core/ast"
	"github.com/gluesql/gluesql-sub000/core/sqlerr"
	"github.com/gluesql/gluesql-sub000/storage"
)

type table struct {
	schema *ast.Schema
	rows   map[string]storage.Row
	order  []string
	auto   uint64
}

func newTable(schema *ast.Schema) *table {
	return &table{schema: schema, rows: map[string]storage.Row{}}
}

func (t *table) clone() *table {
	schemaCopy := *t.schema
	rows := make(map[string]storage.Row, len(t.rows))
	for k, v := range t.rows {
		rows[k] = v
	}
	return &table{
		schema: &schemaCopy,
		rows:   rows,
		order:  append([]string(nil), t.order...),
		auto:   t.auto,
	}
}

// Store is the reference in-memory storage.Store: every table is a plain
// Go map guarded by one mutex. Begin/Rollback snapshot and restore the
// entire map set rather than implementing real MVCC, since concurrent
// storage semantics are left to real backends.
type Store struct {
	mu        sync.Mutex
	tables    map[string]*table
	functions map[string]*ast.CreateFunctionStatement
	snapshot  *snapshot
}

type snapshot struct {
	tables    map[string]*table
	functions map[string]*ast.CreateFunctionStatement
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		tables:    map[string]*table{},
		functions: map[string]*ast.CreateFunctionStatement{},
	}
}

func (s *Store) FetchSchema(_ context.Context, name string) (*ast.Schema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	if !ok {
		return nil, nil
	}
	schemaCopy := *t.schema
	return &schemaCopy, nil
}

func (s *Store) FetchAllSchemas(_ context.Context) ([]*ast.Schema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*ast.Schema, 0, len(s.tables))
	for _, t := range s.tables {
		schemaCopy := *t.schema
		out = append(out, &schemaCopy)
	}
	return out, nil
}

func (s *Store) ScanData(_ context.Context, name string) ([]storage.KeyedRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	if !ok {
		return nil, sqlerr.New(sqlerr.KindTableNotFound, "table %q not found", name)
	}
	out := make([]storage.KeyedRow, 0, len(t.order))
	for _, k := range t.order {
		row, ok := t.rows[k]
		if !ok {
			continue
		}
		out = append(out, storage.KeyedRow{Key: storage.Key(k), Row: row})
	}
	return out, nil
}

func (s *Store) FetchData(_ context.Context, name string, key storage.Key) (*storage.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	if !ok {
		return nil, sqlerr.New(sqlerr.KindTableNotFound, "table %q not found", name)
	}
	row, ok := t.rows[string(key)]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s *Store) InsertSchema(_ context.Context, schema *ast.Schema) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[schema.TableName]; ok {
		return sqlerr.New(sqlerr.KindTableAlreadyExists, "table %q already exists", schema.TableName)
	}
	schemaCopy := *schema
	s.tables[schema.TableName] = newTable(&schemaCopy)
	return nil
}

func (s *Store) DeleteSchema(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, name)
	return nil
}

func (s *Store) AppendSchema(_ context.Context, schema *ast.Schema) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[schema.TableName]
	schemaCopy := *schema
	if !ok {
		s.tables[schema.TableName] = newTable(&schemaCopy)
		return nil
	}
	t.schema = &schemaCopy
	return nil
}

// RenameTable moves a table's data and catalog entry to a new key,
// which the generic FetchSchema-mutate-AppendSchema round trip cannot
// express since the schema's own TableName field is the only record of
// the old key once it has been overwritten.
func (s *Store) RenameTable(_ context.Context, oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[oldName]
	if !ok {
		return sqlerr.New(sqlerr.KindTableNotFound, "table %q not found", oldName)
	}
	if _, exists := s.tables[newName]; exists {
		return sqlerr.New(sqlerr.KindTableAlreadyExists, "table %q already exists", newName)
	}
	t.schema.TableName = newName
	delete(s.tables, oldName)
	s.tables[newName] = t
	return nil
}

func (s *Store) InsertData(_ context.Context, name string, rows []storage.KeyedRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	if !ok {
		return sqlerr.New(sqlerr.KindTableNotFound, "table %q not found", name)
	}
	for _, kr := range rows {
		key := kr.Key
		if len(key) == 0 {
			t.auto++
			key = storage.Key(strconv.FormatUint(t.auto, 36))
		}
		ks := string(key)
		if _, exists := t.rows[ks]; exists {
			return sqlerr.New(sqlerr.KindDuplicateEntryOnPrimaryKey, "duplicate key in table %q", name)
		}
		if err := checkUnique(t, kr.Row, ks); err != nil {
			return err
		}
		t.rows[ks] = kr.Row
		t.order = append(t.order, ks)
	}
	return nil
}

func (s *Store) UpdateData(_ context.Context, name string, rows []storage.KeyedRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	if !ok {
		return sqlerr.New(sqlerr.KindTableNotFound, "table %q not found", name)
	}
	for _, kr := range rows {
		ks := string(kr.Key)
		if err := checkUnique(t, kr.Row, ks); err != nil {
			return err
		}
		t.rows[ks] = kr.Row
	}
	return nil
}

func (s *Store) DeleteData(_ context.Context, name string, keys []storage.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	if !ok {
		return sqlerr.New(sqlerr.KindTableNotFound, "table %q not found", name)
	}
	dead := make(map[string]bool, len(keys))
	for _, k := range keys {
		dead[string(k)] = true
		delete(t.rows, string(k))
	}
	order := t.order[:0]
	for _, k := range t.order {
		if !dead[k] {
			order = append(order, k)
		}
	}
	t.order = order
	return nil
}

// checkUnique enforces the schema's UNIQUE constraints by hashing each
// constraint's column tuple with BLAKE3 and scanning for a collision --
// O(n) per write, adequate for a reference backend that favors a small
// dependency footprint over an index structure.
func checkUnique(t *table, row storage.Row, skipKey string) error {
	for _, uc := range t.schema.UniqueConstraints {
		h, err := uniqueHash(t.schema, uc, row)
		if err != nil {
			return err
		}
		for k, existing := range t.rows {
			if k == skipKey {
				continue
			}
			eh, err := uniqueHash(t.schema, uc, existing)
			if err != nil {
				return err
			}
			if eh == h {
				return sqlerr.New(sqlerr.KindDuplicateEntryOnUnique, "duplicate entry for unique constraint on table %q", t.schema.TableName)
			}
		}
	}
	return nil
}

func uniqueHash(schema *ast.Schema, uc ast.UniqueConstraint, row storage.Row) (string, error) {
	h := blake3.New()
	for _, col := range uc.Columns {
		idx := schema.ColumnIndex(col)
		if idx < 0 || idx >= len(row.Values) {
			continue
		}
		b, err := row.Values[idx].ToCmpBEBytes()
		if err != nil {
			return "", err
		}
		h.Write(b)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (s *Store) CreateIndex(_ context.Context, tableName, name string, column ast.Expr) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[tableName]
	if !ok {
		return sqlerr.New(sqlerr.KindTableNotFound, "table %q not found", tableName)
	}
	for _, idx := range t.schema.Indexes {
		if idx.Name == name {
			return sqlerr.New(sqlerr.KindDuplicateColumn, "index %q already exists", name)
		}
	}
	t.schema.Indexes = append(t.schema.Indexes, ast.IndexDef{Name: name, Column: column})
	return nil
}

func (s *Store) DropIndex(_ context.Context, tableName, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[tableName]
	if !ok {
		return sqlerr.New(sqlerr.KindTableNotFound, "table %q not found", tableName)
	}
	for i, idx := range t.schema.Indexes {
		if idx.Name == name {
			t.schema.Indexes = append(t.schema.Indexes[:i], t.schema.Indexes[i+1:]...)
			return nil
		}
	}
	return sqlerr.New(sqlerr.KindIdentifierNotFoundInIndex, "index %q not found", name)
}

func (s *Store) FetchFunction(_ context.Context, name string) (*ast.CreateFunctionStatement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn, ok := s.functions[name]
	if !ok {
		return nil, nil
	}
	fnCopy := *fn
	return &fnCopy, nil
}

func (s *Store) InsertFunction(_ context.Context, fn *ast.CreateFunctionStatement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fnCopy := *fn
	s.functions[fn.Name] = &fnCopy
	return nil
}

func (s *Store) DeleteFunction(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.functions, name)
	return nil
}

func (s *Store) Begin(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot != nil {
		return &storage.TransactionUnsupportedError{Backend: "memory: nested transactions"}
	}
	tables := make(map[string]*table, len(s.tables))
	for k, t := range s.tables {
		tables[k] = t.clone()
	}
	functions := make(map[string]*ast.CreateFunctionStatement, len(s.functions))
	for k, fn := range s.functions {
		fnCopy := *fn
		functions[k] = &fnCopy
	}
	s.snapshot = &snapshot{tables: tables, functions: functions}
	return nil
}

func (s *Store) Commit(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
	return nil
}

func (s *Store) Rollback(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return nil
	}
	s.tables = s.snapshot.tables
	s.functions = s.snapshot.functions
	s.snapshot = nil
	return nil
}

var _ storage.Store = (*Store)(nil)
