package execute

import (
	"github.com/gluesql/gluesql-sub000/core/ast"
	"github.com/gluesql/gluesql-sub000/core/evaluate"
	"github.com/gluesql/gluesql-sub000/core/sqlerr"
	"github.com/gluesql/gluesql-sub000/core/value"
	"github.com/gluesql/gluesql-sub000/storage"
)

func (ex *executor) insert(s ast.InsertStatement) (Payload, error) {
	schema, err := ex.store.FetchSchema(ex.ctx, s.Table)
	if err != nil {
		return Payload{}, err
	}
	if schema == nil {
		return Payload{}, sqlerr.New(sqlerr.KindTableNotFound, "table %q not found", s.Table)
	}

	columns := s.Columns
	if len(columns) == 0 {
		columns = schema.ColumnNames()
	}

	_, srcRows, err := ex.runQuery(s.Source, nil)
	if err != nil {
		return Payload{}, err
	}

	keyed := make([]storage.KeyedRow, 0, len(srcRows))
	for _, src := range srcRows {
		if len(src) != len(columns) {
			return Payload{}, sqlerr.New(sqlerr.KindTooManyValues, "expected %d values, got %d", len(columns), len(src))
		}
		row := make([]value.Value, len(schema.ColumnDefs))
		set := make([]bool, len(row))
		for i, col := range columns {
			idx := schema.ColumnIndex(col)
			if idx < 0 {
				return Payload{}, sqlerr.New(sqlerr.KindColumnNotFound, "column %q not found", col)
			}
			v, err := coerceColumn(schema.ColumnDefs[idx], src[i])
			if err != nil {
				return Payload{}, err
			}
			row[idx] = v
			set[idx] = true
		}
		for i, cd := range schema.ColumnDefs {
			if set[i] {
				continue
			}
			v, err := defaultFor(ex, cd)
			if err != nil {
				return Payload{}, err
			}
			row[i] = v
		}
		var key storage.Key
		if len(schema.PrimaryKey) > 0 {
			key, err = pkBytes(schema, row)
			if err != nil {
				return Payload{}, err
			}
		}
		keyed = append(keyed, storage.KeyedRow{Key: key, Row: storage.Row{Values: row}})
	}

	if err := ex.store.InsertData(ex.ctx, s.Table, keyed); err != nil {
		return Payload{}, err
	}
	return Payload{Kind: PayloadInsert, RowCount: len(keyed)}, nil
}

func defaultFor(ex *executor, cd ast.ColumnDef) (value.Value, error) {
	if cd.Default != nil {
		return ex.evalValue(nil, nil, cd.Default)
	}
	if !cd.Nullable {
		return value.Value{}, sqlerr.New(sqlerr.KindNullOnNotNull, "column %q requires a value", cd.Name)
	}
	return value.Null(), nil
}

func coerceColumn(cd ast.ColumnDef, v value.Value) (value.Value, error) {
	if v.IsNull() {
		if !cd.Nullable {
			return value.Value{}, sqlerr.New(sqlerr.KindNullOnNotNull, "column %q cannot be NULL", cd.Name)
		}
		return value.Null(), nil
	}
	return v.Cast(cd.DataType)
}

func pkBytes(schema *ast.Schema, row []value.Value) (storage.Key, error) {
	var key []byte
	for _, col := range schema.PrimaryKey {
		idx := schema.ColumnIndex(col)
		b, err := row[idx].ToCmpBEBytes()
		if err != nil {
			return nil, err
		}
		key = append(key, b...)
	}
	return key, nil
}

func (ex *executor) update(s ast.UpdateStatement) (Payload, error) {
	schema, err := ex.store.FetchSchema(ex.ctx, s.Table)
	if err != nil {
		return Payload{}, err
	}
	if schema == nil {
		return Payload{}, sqlerr.New(sqlerr.KindTableNotFound, "table %q not found", s.Table)
	}
	keyed, err := ex.store.ScanData(ex.ctx, s.Table)
	if err != nil {
		return Payload{}, err
	}

	pkSet := map[string]bool{}
	for _, col := range schema.PrimaryKey {
		pkSet[col] = true
	}

	out := make([]storage.KeyedRow, 0)
	count := 0
	for _, kr := range keyed {
		fc := evaluate.NewFilterContext(s.Table, schema.ColumnNames(), kr.Row.Values, nil)
		if s.Selection != nil {
			ok, err := rowMatches(ex, fc, s.Selection)
			if err != nil {
				return Payload{}, err
			}
			if !ok {
				continue
			}
		}
		newRow := append([]value.Value(nil), kr.Row.Values...)
		for _, a := range s.Assignments {
			idx := schema.ColumnIndex(a.Column)
			if idx < 0 {
				return Payload{}, sqlerr.New(sqlerr.KindColumnNotFound, "column %q not found", a.Column)
			}
			if pkSet[a.Column] {
				return Payload{}, sqlerr.New(sqlerr.KindUpdateOnPrimaryKey, "cannot update primary key column %q", a.Column)
			}
			v, err := ex.evalValue(fc, nil, a.Value)
			if err != nil {
				return Payload{}, err
			}
			v, err = coerceColumn(schema.ColumnDefs[idx], v)
			if err != nil {
				return Payload{}, err
			}
			newRow[idx] = v
		}
		out = append(out, storage.KeyedRow{Key: kr.Key, Row: storage.Row{Values: newRow}})
		count++
	}
	if err := ex.store.UpdateData(ex.ctx, s.Table, out); err != nil {
		return Payload{}, err
	}
	return Payload{Kind: PayloadUpdate, RowCount: count}, nil
}

func (ex *executor) deleteStmt(s ast.DeleteStatement) (Payload, error) {
	schema, err := ex.store.FetchSchema(ex.ctx, s.Table)
	if err != nil {
		return Payload{}, err
	}
	if schema == nil {
		return Payload{}, sqlerr.New(sqlerr.KindTableNotFound, "table %q not found", s.Table)
	}
	keyed, err := ex.store.ScanData(ex.ctx, s.Table)
	if err != nil {
		return Payload{}, err
	}
	var keys []storage.Key
	for _, kr := range keyed {
		if s.Selection != nil {
			fc := evaluate.NewFilterContext(s.Table, schema.ColumnNames(), kr.Row.Values, nil)
			ok, err := rowMatches(ex, fc, s.Selection)
			if err != nil {
				return Payload{}, err
			}
			if !ok {
				continue
			}
		}
		keys = append(keys, kr.Key)
	}
	if err := ex.store.DeleteData(ex.ctx, s.Table, keys); err != nil {
		return Payload{}, err
	}
	return Payload{Kind: PayloadDelete, RowCount: len(keys)}, nil
}

// rowMatches evaluates a predicate and applies the "both false and
// null drop the row" rule WHERE filtering requires.
func rowMatches(ex *executor, fc *evaluate.FilterContext, predicate ast.Expr) (bool, error) {
	v, err := ex.evalValue(fc, nil, predicate)
	if err != nil {
		return false, err
	}
	b, ok := v.AsBool()
	return ok && b, nil
}
