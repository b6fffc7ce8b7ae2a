package translate

import (
	"github.com/gluesql/gluesql-sub000/core/ast"
	"github.com/gluesql/gluesql-sub000/core/literal"
	"github.com/gluesql/gluesql-sub000/core/sqlerr"
)

// Translate maps a parser-neutral PStatement into core/ast.Statement,
// resolving `$n` parameter placeholders against params.
// Rejections each return a distinct sqlerr.Kind so callers can tell
// "unsupported syntax" apart from "actually wrong".
func Translate(p *PStatement, params []literal.Literal) (ast.Statement, error) {
	t := &translator{params: params}
	switch {
	case p.Query != nil:
		q, err := t.query(p.Query)
		if err != nil {
			return nil, err
		}
		return ast.QueryStatement{Query: q}, nil
	case p.Insert != nil:
		return t.insert(p.Insert)
	case p.Update != nil:
		return t.update(p.Update)
	case p.Delete != nil:
		return t.deleteStmt(p.Delete)
	case p.CreateTable != nil:
		return t.createTable(p.CreateTable)
	case p.AlterTable != nil:
		return t.alterTable(p.AlterTable)
	case p.DropTable != nil:
		return ast.DropTableStatement{
			IfExists: p.DropTable.IfExists,
			Names:    p.DropTable.Names,
			Cascade:  p.DropTable.Cascade,
		}, nil
	case p.CreateFunction != nil:
		return t.createFunction(p.CreateFunction)
	case p.DropFunction != nil:
		return ast.DropFunctionStatement{IfExists: p.DropFunction.IfExists, Name: p.DropFunction.Name}, nil
	case p.CreateIndex != nil:
		return t.createIndex(p.CreateIndex)
	case p.DropIndex != nil:
		return ast.DropIndexStatement{Table: p.DropIndex.Table, Name: p.DropIndex.Name}, nil
	case p.StartTxn:
		return ast.StartTransactionStatement{}, nil
	case p.Commit:
		return ast.CommitStatement{}, nil
	case p.Rollback:
		return ast.RollbackStatement{}, nil
	case p.ShowColumns != nil:
		return ast.ShowColumnsStatement{Table: p.ShowColumns.Table}, nil
	case p.ShowVariable != "":
		return ast.ShowVariableStatement{Name: p.ShowVariable}, nil
	case p.ShowIndexes != nil:
		return ast.ShowIndexesStatement{Table: p.ShowIndexes.Table}, nil
	}
	return nil, sqlerr.New(sqlerr.KindUnsupportedSyntax, "statement has no recognized variant set")
}

type translator struct {
	params []literal.Literal
}

func (t *translator) insert(p *PInsert) (ast.Statement, error) {
	if p.Returning != nil {
		return nil, sqlerr.New(sqlerr.KindUnsupportedSyntax, "RETURNING is not supported")
	}
	if p.OnConflict {
		return nil, sqlerr.New(sqlerr.KindUnsupportedSyntax, "ON CONFLICT is not supported")
	}
	if p.DefaultValues {
		return nil, sqlerr.New(sqlerr.KindDefaultValuesNotSupported, "DEFAULT VALUES is not supported")
	}
	q, err := t.query(p.Source)
	if err != nil {
		return nil, err
	}
	return ast.InsertStatement{Table: p.Table, Columns: p.Columns, Source: q}, nil
}

func (t *translator) update(p *PUpdate) (ast.Statement, error) {
	if p.From != nil {
		return nil, sqlerr.New(sqlerr.KindUnsupportedSyntax, "USING is not supported in UPDATE")
	}
	assigns := make([]ast.Assignment, 0, len(p.Assignments))
	for _, a := range p.Assignments {
		if len(a.TupleTargets) > 0 {
			return nil, sqlerr.New(sqlerr.KindUnsupportedSyntax, "tuple assignment is not supported")
		}
		if a.TargetQualified {
			return nil, sqlerr.New(sqlerr.KindCompoundIdentifierOnUpdate,
				"compound identifier %q not allowed on UPDATE left-hand side", a.Target)
		}
		val, err := t.expr(a.Value)
		if err != nil {
			return nil, err
		}
		assigns = append(assigns, ast.Assignment{Column: a.Target, Value: val})
	}
	var sel ast.Expr
	if p.HasSelection {
		var err error
		sel, err = t.expr(p.Selection)
		if err != nil {
			return nil, err
		}
	}
	return ast.UpdateStatement{Table: p.Table, Assignments: assigns, Selection: sel}, nil
}

func (t *translator) deleteStmt(p *PDelete) (ast.Statement, error) {
	var sel ast.Expr
	if p.HasSelection {
		var err error
		sel, err = t.expr(p.Selection)
		if err != nil {
			return nil, err
		}
	}
	return ast.DeleteStatement{Table: p.Table, Selection: sel}, nil
}

func (t *translator) createFunction(p *PCreateFunction) (ast.Statement, error) {
	body, err := t.expr(p.Body)
	if err != nil {
		return nil, err
	}
	args := make([]ast.FunctionArg, 0, len(p.Args))
	for _, a := range p.Args {
		fa := ast.FunctionArg{Name: a.Name}
		if a.HasDefault {
			d, err := t.expr(a.Default)
			if err != nil {
				return nil, err
			}
			fa.Default = d
		}
		args = append(args, fa)
	}
	return ast.CreateFunctionStatement{Name: p.Name, Args: args, Body: body}, nil
}

func (t *translator) createIndex(p *PCreateIndex) (ast.Statement, error) {
	if len(p.Columns) == 0 {
		return nil, sqlerr.New(sqlerr.KindUnnamedIndex, "index must name a column")
	}
	if len(p.Columns) > 1 {
		return nil, sqlerr.New(sqlerr.KindCompositeIndex, "composite CREATE INDEX is not supported")
	}
	if p.Name == "" {
		return nil, sqlerr.New(sqlerr.KindUnnamedIndex, "unnamed index is not supported")
	}
	col, err := t.expr(p.Columns[0])
	if err != nil {
		return nil, err
	}
	return ast.CreateIndexStatement{Name: p.Name, Table: p.Table, Column: col}, nil
}

func (t *translator) alterTable(p *PAlterTable) (ast.Statement, error) {
	if len(p.Ops) != 1 {
		return nil, sqlerr.New(sqlerr.KindMultiOperationAlter, "ALTER TABLE supports exactly one operation per statement")
	}
	op := p.Ops[0]
	var astOp ast.AlterTableOperation
	switch {
	case op.AddColumn != nil:
		cd, err := t.columnDef(*op.AddColumn)
		if err != nil {
			return nil, err
		}
		astOp = ast.AddColumn{Column: cd}
	case op.DropColumn != "":
		astOp = ast.DropColumn{Name: op.DropColumn, IfExists: op.DropIfExists}
	case op.RenameColumn != nil:
		astOp = ast.RenameColumn{OldName: op.RenameColumn[0], NewName: op.RenameColumn[1]}
	case op.RenameTable != "":
		astOp = ast.RenameTable{NewName: op.RenameTable}
	default:
		return nil, sqlerr.New(sqlerr.KindUnsupportedSyntax, "unrecognized ALTER TABLE operation")
	}
	return ast.AlterTableStatement{Name: p.Name, Op: astOp}, nil
}

func (t *translator) createTable(p *PCreateTable) (ast.Statement, error) {
	cols := make([]ast.ColumnDef, 0, len(p.Columns))
	seen := map[string]bool{}
	for _, c := range p.Columns {
		if seen[c.Name] {
			return nil, sqlerr.New(sqlerr.KindDuplicateColumn, "duplicate column %q", c.Name)
		}
		seen[c.Name] = true
		cd, err := t.columnDef(c)
		if err != nil {
			return nil, err
		}
		cols = append(cols, cd)
	}

	colExists := func(name string) bool {
		for _, c := range p.Columns {
			if c.Name == name {
				return true
			}
		}
		return false
	}

	// Inline PRIMARY KEY columns fold into the table-level list.
	pk := append([]string(nil), p.PrimaryKey...)
	inlinePK := 0
	for _, c := range p.Columns {
		if c.PrimaryKey {
			pk = append(pk, c.Name)
			inlinePK++
		}
	}
	if inlinePK > 1 || (inlinePK == 1 && len(p.PrimaryKey) > 0) {
		return nil, sqlerr.New(sqlerr.KindMultiplePrimaryKeys, "at most one primary key is allowed")
	}
	if len(p.PrimaryKey) == 0 {
		// no table-level PK: the single inline PK (if any) is already in pk
	} else if len(dedupeStrings(p.PrimaryKey)) != len(p.PrimaryKey) {
		return nil, sqlerr.New(sqlerr.KindMultiplePrimaryKeys, "repeated column in primary key")
	}
	for _, col := range pk {
		if !colExists(col) {
			return nil, sqlerr.New(sqlerr.KindColumnNotFoundInConstraint, "column %q not found for PRIMARY KEY", col)
		}
	}

	uniques := make([]ast.UniqueConstraint, 0, len(p.UniqueConstraints)+len(p.Columns))
	seenSets := map[string]bool{}
	seenNames := map[string]bool{}
	addUnique := func(name string, cols []string) error {
		if len(cols) == 0 {
			return sqlerr.New(sqlerr.KindEmptyUniqueConstraint, "UNIQUE constraint names no columns")
		}
		if len(dedupeStrings(cols)) != len(cols) {
			return sqlerr.New(sqlerr.KindRepeatedUniqueConstraint, "repeated column in UNIQUE constraint")
		}
		for _, col := range cols {
			if !colExists(col) {
				return sqlerr.New(sqlerr.KindColumnNotFoundInConstraint, "column %q not found for UNIQUE", col)
			}
		}
		key := setKey(cols)
		if seenSets[key] {
			return sqlerr.New(sqlerr.KindDuplicateUniqueConstraint, "duplicate UNIQUE constraint on %v", cols)
		}
		seenSets[key] = true
		if name != "" {
			if seenNames[name] {
				return sqlerr.New(sqlerr.KindDuplicateUniqueConstraint, "duplicate named UNIQUE constraint %q", name)
			}
			seenNames[name] = true
		}
		uniques = append(uniques, ast.UniqueConstraint{Name: name, Columns: cols})
		return nil
	}
	for _, c := range p.Columns {
		if c.Unique {
			if err := addUnique(c.UniqueName, []string{c.Name}); err != nil {
				return nil, err
			}
		}
	}
	for _, uc := range p.UniqueConstraints {
		if err := addUnique(uc.Name, uc.Columns); err != nil {
			return nil, err
		}
	}

	fks := make([]ast.ForeignKey, 0, len(p.ForeignKeys))
	for _, fk := range p.ForeignKeys {
		for _, col := range fk.Columns {
			if !colExists(col) {
				return nil, sqlerr.New(sqlerr.KindColumnNotFoundInConstraint, "column %q not found for FOREIGN KEY", col)
			}
		}
		fks = append(fks, ast.ForeignKey{
			Name:       fk.Name,
			Columns:    fk.Columns,
			RefTable:   fk.RefTable,
			RefColumns: fk.RefColumns,
			OnDelete:   referentialAction(fk.OnDelete),
			OnUpdate:   referentialAction(fk.OnUpdate),
		})
	}

	return ast.CreateTableStatement{
		IfNotExists: p.IfNotExists,
		Name:        p.Name,
		Columns:     cols,
		Constraints: ast.TableConstraints{PrimaryKey: pk, UniqueConstraints: uniques, ForeignKeys: fks},
		Engine:      p.Engine,
		Comment:     p.Comment,
	}, nil
}

// referentialAction collapses NO ACTION and RESTRICT to NoAction,
// preserving CASCADE / SET NULL / SET DEFAULT.
func referentialAction(s string) ast.ReferentialAction {
	switch s {
	case "CASCADE":
		return ast.Cascade
	case "SET NULL":
		return ast.SetNull
	case "SET DEFAULT":
		return ast.SetDefault
	default:
		return ast.NoAction
	}
}

func (t *translator) columnDef(c PColumnDef) (ast.ColumnDef, error) {
	cd := ast.ColumnDef{
		Name:       c.Name,
		DataType:   c.DataType,
		Nullable:   !c.NotNull,
		Unique:     c.Unique,
		UniqueName: c.UniqueName,
		Comment:    c.Comment,
	}
	if c.HasDefault {
		d, err := t.expr(c.Default)
		if err != nil {
			return ast.ColumnDef{}, err
		}
		cd.Default = d
	}
	return cd, nil
}

func dedupeStrings(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func setKey(cols []string) string {
	key := ""
	for _, c := range cols {
		key += c + "\x00"
	}
	return key
}
