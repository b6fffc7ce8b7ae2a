package execute

import (
	"github.com/gluesql/gluesql-sub000/core/ast"
	"github.com/gluesql/gluesql-sub000/core/sqlerr"
	"github.com/gluesql/gluesql-sub000/core/value"
)

func (ex *executor) createTable(s ast.CreateTableStatement) (Payload, error) {
	existing, err := ex.store.FetchSchema(ex.ctx, s.Name)
	if err != nil {
		return Payload{}, err
	}
	if existing != nil {
		if s.IfNotExists {
			return Payload{Kind: PayloadCreate}, nil
		}
		return Payload{}, sqlerr.New(sqlerr.KindTableAlreadyExists, "table %q already exists", s.Name)
	}
	schema := &ast.Schema{
		TableName:         s.Name,
		ColumnDefs:        s.Columns,
		Engine:            s.Engine,
		ForeignKeys:       s.Constraints.ForeignKeys,
		PrimaryKey:        s.Constraints.PrimaryKey,
		UniqueConstraints: s.Constraints.UniqueConstraints,
		Comment:           s.Comment,
	}
	if err := ex.store.InsertSchema(ex.ctx, schema); err != nil {
		return Payload{}, err
	}
	return Payload{Kind: PayloadCreate}, nil
}

func (ex *executor) dropTable(s ast.DropTableStatement) (Payload, error) {
	for _, name := range s.Names {
		existing, err := ex.store.FetchSchema(ex.ctx, name)
		if err != nil {
			return Payload{}, err
		}
		if existing == nil {
			if s.IfExists {
				continue
			}
			return Payload{}, sqlerr.New(sqlerr.KindTableNotFound, "table %q not found", name)
		}
		if err := ex.store.DeleteSchema(ex.ctx, name); err != nil {
			return Payload{}, err
		}
	}
	return Payload{Kind: PayloadDropTable}, nil
}

func (ex *executor) alterTable(s ast.AlterTableStatement) (Payload, error) {
	schema, err := ex.store.FetchSchema(ex.ctx, s.Name)
	if err != nil {
		return Payload{}, err
	}
	if schema == nil {
		return Payload{}, sqlerr.New(sqlerr.KindTableNotFound, "table %q not found", s.Name)
	}
	if op, ok := s.Op.(ast.RenameTable); ok {
		if err := ex.store.RenameTable(ex.ctx, s.Name, op.NewName); err != nil {
			return Payload{}, err
		}
		return Payload{Kind: PayloadAlterTable}, nil
	}

	switch op := s.Op.(type) {
	case ast.AddColumn:
		for _, c := range schema.ColumnDefs {
			if c.Name == op.Column.Name {
				return Payload{}, sqlerr.New(sqlerr.KindDuplicateColumn, "duplicate column %q", c.Name)
			}
		}
		schema.ColumnDefs = append(schema.ColumnDefs, op.Column)
	case ast.DropColumn:
		idx := schema.ColumnIndex(op.Name)
		if idx < 0 {
			if op.IfExists {
				return Payload{Kind: PayloadAlterTable}, nil
			}
			return Payload{}, sqlerr.New(sqlerr.KindColumnNotFound, "column %q not found", op.Name)
		}
		schema.ColumnDefs = append(schema.ColumnDefs[:idx], schema.ColumnDefs[idx+1:]...)
	case ast.RenameColumn:
		idx := schema.ColumnIndex(op.OldName)
		if idx < 0 {
			return Payload{}, sqlerr.New(sqlerr.KindColumnNotFound, "column %q not found", op.OldName)
		}
		schema.ColumnDefs[idx].Name = op.NewName
	}
	if err := ex.store.AppendSchema(ex.ctx, schema); err != nil {
		return Payload{}, err
	}
	return Payload{Kind: PayloadAlterTable}, nil
}

func (ex *executor) createIndex(s ast.CreateIndexStatement) (Payload, error) {
	schema, err := ex.store.FetchSchema(ex.ctx, s.Table)
	if err != nil {
		return Payload{}, err
	}
	if schema == nil {
		return Payload{}, sqlerr.New(sqlerr.KindTableNotFound, "table %q not found", s.Table)
	}
	if ident, ok := s.Column.(ast.Identifier); ok {
		if schema.ColumnIndex(ident.Name) < 0 {
			return Payload{}, sqlerr.New(sqlerr.KindIdentifierNotFoundInIndex, "column %q not found for index", ident.Name)
		}
	}
	if err := ex.store.CreateIndex(ex.ctx, s.Table, s.Name, s.Column); err != nil {
		return Payload{}, err
	}
	return Payload{Kind: PayloadCreateIndex}, nil
}

func (ex *executor) createFunction(s ast.CreateFunctionStatement) (Payload, error) {
	existing, err := ex.store.FetchFunction(ex.ctx, s.Name)
	if err != nil {
		return Payload{}, err
	}
	if existing != nil {
		return Payload{}, sqlerr.New(sqlerr.KindFunctionAlreadyExists, "function %q already exists", s.Name)
	}
	if err := ex.store.InsertFunction(ex.ctx, &s); err != nil {
		return Payload{}, err
	}
	return Payload{Kind: PayloadCreate}, nil
}

func (ex *executor) dropFunction(s ast.DropFunctionStatement) (Payload, error) {
	existing, err := ex.store.FetchFunction(ex.ctx, s.Name)
	if err != nil {
		return Payload{}, err
	}
	if existing == nil {
		if s.IfExists {
			return Payload{Kind: PayloadDropFunction}, nil
		}
		return Payload{}, sqlerr.New(sqlerr.KindTableNotFound, "function %q not found", s.Name)
	}
	if err := ex.store.DeleteFunction(ex.ctx, s.Name); err != nil {
		return Payload{}, err
	}
	return Payload{Kind: PayloadDropFunction}, nil
}

func (ex *executor) showColumns(s ast.ShowColumnsStatement) (Payload, error) {
	schema, err := ex.store.FetchSchema(ex.ctx, s.Table)
	if err != nil {
		return Payload{}, err
	}
	if schema == nil {
		return Payload{}, sqlerr.New(sqlerr.KindTableNotFound, "table %q not found", s.Table)
	}
	cols := make([]ShowColumn, len(schema.ColumnDefs))
	for i, c := range schema.ColumnDefs {
		cols[i] = ShowColumn{Name: c.Name, DataType: c.DataType.String()}
	}
	return Payload{Kind: PayloadShowColumns, ColumnInfo: cols}, nil
}

func (ex *executor) showIndexes(s ast.ShowIndexesStatement) (Payload, error) {
	schema, err := ex.store.FetchSchema(ex.ctx, s.Table)
	if err != nil {
		return Payload{}, err
	}
	if schema == nil {
		return Payload{}, sqlerr.New(sqlerr.KindTableNotFound, "table %q not found", s.Table)
	}
	rows := make([][]value.Value, len(schema.Indexes))
	for i, idx := range schema.Indexes {
		rows[i] = []value.Value{value.NewStr(idx.Name), value.NewStr(idx.Column.ToSQL())}
	}
	return Payload{Kind: PayloadSelect, Labels: []string{"name", "column"}, Rows: rows}, nil
}
