package kvsqlite

import (
	"context"
	"io"
	"os"

	"github.com/ulikunitz/xz"

	"github.com/gluesql/gluesql-sub000/core/ast"
	"github.com/gluesql/gluesql-sub000/storage"
)

// snapshotDTO is the whole-database payload Export/Import gob-encode
// and xz-compress, letting a kvsqlite database travel as one portable
// file independent of the local SQLite page format.
type snapshotDTO struct {
	Schemas   []*ast.Schema
	Functions []*ast.CreateFunctionStatement
	Rows      map[string][]storage.KeyedRow
}

// Export writes every table's schema, rows, and registered function to
// path as an xz-compressed gob stream.
func (s *Store) Export(ctx context.Context, path string) error {
	schemas, err := s.FetchAllSchemas(ctx)
	if err != nil {
		return err
	}
	dto := snapshotDTO{Schemas: schemas, Rows: map[string][]storage.KeyedRow{}}
	for _, schema := range schemas {
		rows, err := s.ScanData(ctx, schema.TableName)
		if err != nil {
			return err
		}
		dto.Rows[schema.TableName] = rows
	}
	fnRows, err := s.q().QueryContext(ctx, `SELECT name FROM glue_functions`)
	if err != nil {
		return err
	}
	var names []string
	for fnRows.Next() {
		var name string
		if err := fnRows.Scan(&name); err != nil {
			fnRows.Close()
			return err
		}
		names = append(names, name)
	}
	fnRows.Close()
	if err := fnRows.Err(); err != nil {
		return err
	}
	for _, name := range names {
		fn, err := s.FetchFunction(ctx, name)
		if err != nil {
			return err
		}
		dto.Functions = append(dto.Functions, fn)
	}

	blob, err := gobEncode(dto)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w, err := xz.NewWriter(f)
	if err != nil {
		return err
	}
	if _, err := w.Write(blob); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// Import replaces the store's entire contents with the snapshot at
// path, produced by a prior Export.
func (s *Store) Import(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	r, err := xz.NewReader(f)
	if err != nil {
		return err
	}
	blob, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	var dto snapshotDTO
	if err := gobDecode(blob, &dto); err != nil {
		return err
	}

	for _, table := range []string{"glue_schemas", "glue_functions", "glue_rows", "glue_counters"} {
		if _, err := s.q().ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	for _, schema := range dto.Schemas {
		if err := s.InsertSchema(ctx, schema); err != nil {
			return err
		}
		if err := s.InsertData(ctx, schema.TableName, dto.Rows[schema.TableName]); err != nil {
			return err
		}
	}
	for _, fn := range dto.Functions {
		if err := s.InsertFunction(ctx, fn); err != nil {
			return err
		}
	}
	return nil
}
