package translate_test

import (
	"errors"
	"testing"

	"github.com/gluesql/gluesql-sub000/core/ast"
	"github.com/gluesql/gluesql-sub000/core/sqlerr"
	"github.com/gluesql/gluesql-sub000/core/translate"
	"github.com/gluesql/gluesql-sub000/core/value"
)

func mustError(t *testing.T, err error, wantKind sqlerr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error, got nil")
	}
	var se *sqlerr.Error
	if !errors.As(err, &se) {
		t.Fatalf("error %v is not a *sqlerr.Error", err)
	}
	if se.Kind != wantKind {
		t.Errorf("error Kind = %v, want %v", se.Kind, wantKind)
	}
}

func simpleQuery(table string) *translate.PQuery {
	return &translate.PQuery{Body: translate.PSetExpr{Select: &translate.PSelect{
		Projection: []translate.PSelectItem{{Wildcard: true}},
		From:       translate.PTableWithJoins{Relation: translate.PTableFactor{TableName: table}},
	}}}
}

func TestTranslateInsertRejections(t *testing.T) {
	base := translate.PInsert{Table: "t", Source: simpleQuery("t")}

	returning := base
	returning.Returning = []translate.PExpr{{Ident: []string{"id"}}}
	_, err := translate.Translate(&translate.PStatement{Insert: &returning}, nil)
	mustError(t, err, sqlerr.KindUnsupportedSyntax)

	onConflict := base
	onConflict.OnConflict = true
	_, err = translate.Translate(&translate.PStatement{Insert: &onConflict}, nil)
	mustError(t, err, sqlerr.KindUnsupportedSyntax)

	defaultValues := base
	defaultValues.DefaultValues = true
	_, err = translate.Translate(&translate.PStatement{Insert: &defaultValues}, nil)
	mustError(t, err, sqlerr.KindDefaultValuesNotSupported)

	stmt, err := translate.Translate(&translate.PStatement{Insert: &base}, nil)
	if err != nil {
		t.Fatalf("expected the unadorned insert to translate cleanly: %v", err)
	}
	if _, ok := stmt.(ast.InsertStatement); !ok {
		t.Fatalf("got %T, want ast.InsertStatement", stmt)
	}
}

func TestTranslateUpdateRejections(t *testing.T) {
	usingClause := &translate.PUpdate{
		Table:       "t",
		Assignments: []translate.PAssignment{{Target: "a", Value: translate.PExpr{LiteralNumber: "1"}}},
		From:        &translate.PTableWithJoins{Relation: translate.PTableFactor{TableName: "u"}},
	}
	_, err := translate.Translate(&translate.PStatement{Update: usingClause}, nil)
	mustError(t, err, sqlerr.KindUnsupportedSyntax)

	tuple := &translate.PUpdate{
		Table: "t",
		Assignments: []translate.PAssignment{
			{TupleTargets: []string{"a", "b"}, Value: translate.PExpr{LiteralNumber: "1"}},
		},
	}
	_, err = translate.Translate(&translate.PStatement{Update: tuple}, nil)
	mustError(t, err, sqlerr.KindUnsupportedSyntax)

	qualified := &translate.PUpdate{
		Table: "t",
		Assignments: []translate.PAssignment{
			{Target: "a", TargetQualified: true, Value: translate.PExpr{LiteralNumber: "1"}},
		},
	}
	_, err = translate.Translate(&translate.PStatement{Update: qualified}, nil)
	mustError(t, err, sqlerr.KindCompoundIdentifierOnUpdate)
}

func TestTranslateCreateIndexRejections(t *testing.T) {
	noColumns := &translate.PCreateIndex{Table: "t", Name: "idx"}
	_, err := translate.Translate(&translate.PStatement{CreateIndex: noColumns}, nil)
	mustError(t, err, sqlerr.KindUnnamedIndex)

	composite := &translate.PCreateIndex{
		Table: "t", Name: "idx",
		Columns: []translate.PExpr{{Ident: []string{"a"}}, {Ident: []string{"b"}}},
	}
	_, err = translate.Translate(&translate.PStatement{CreateIndex: composite}, nil)
	mustError(t, err, sqlerr.KindCompositeIndex)

	unnamed := &translate.PCreateIndex{
		Table:   "t",
		Columns: []translate.PExpr{{Ident: []string{"a"}}},
	}
	_, err = translate.Translate(&translate.PStatement{CreateIndex: unnamed}, nil)
	mustError(t, err, sqlerr.KindUnnamedIndex)
}

func TestTranslateCreateTableConstraints(t *testing.T) {
	cols := []translate.PColumnDef{
		{Name: "id", DataType: value.Int, PrimaryKey: true},
		{Name: "email", DataType: value.Text, Unique: true},
	}

	ct := &translate.PCreateTable{Name: "t", Columns: cols, PrimaryKey: []string{"id"}}
	_, err := translate.Translate(&translate.PStatement{CreateTable: ct}, nil)
	mustError(t, err, sqlerr.KindMultiplePrimaryKeys)

	missingCol := &translate.PCreateTable{
		Name:    "t",
		Columns: []translate.PColumnDef{{Name: "id", DataType: value.Int}},
		UniqueConstraints: []translate.PUniqueConstraint{
			{Columns: []string{"nope"}},
		},
	}
	_, err = translate.Translate(&translate.PStatement{CreateTable: missingCol}, nil)
	mustError(t, err, sqlerr.KindColumnNotFoundInConstraint)

	ok := &translate.PCreateTable{Name: "t", Columns: cols}
	stmt, err := translate.Translate(&translate.PStatement{CreateTable: ok}, nil)
	if err != nil {
		t.Fatalf("expected clean translate: %v", err)
	}
	created := stmt.(ast.CreateTableStatement)
	if len(created.Constraints.PrimaryKey) != 1 || created.Constraints.PrimaryKey[0] != "id" {
		t.Errorf("inline PRIMARY KEY did not fold into Constraints.PrimaryKey: %+v", created.Constraints)
	}
	if len(created.Constraints.UniqueConstraints) != 1 {
		t.Errorf("inline UNIQUE did not fold into Constraints.UniqueConstraints: %+v", created.Constraints)
	}
}

func TestTranslateAlterTableMultiOp(t *testing.T) {
	at := &translate.PAlterTable{
		Name: "t",
		Ops: []translate.PAlterOp{
			{DropColumn: "a"},
			{DropColumn: "b"},
		},
	}
	_, err := translate.Translate(&translate.PStatement{AlterTable: at}, nil)
	mustError(t, err, sqlerr.KindMultiOperationAlter)
}

func TestTranslateParamPlaceholderOutOfRange(t *testing.T) {
	q := &translate.PStatement{Query: &translate.PQuery{Body: translate.PSetExpr{Select: &translate.PSelect{
		Projection: []translate.PSelectItem{{Expr: translate.PExpr{Param: 1, ParamRaw: "$1"}}},
		From:       translate.PTableWithJoins{Relation: translate.PTableFactor{TableName: "t"}},
	}}}}
	_, err := translate.Translate(q, nil)
	mustError(t, err, sqlerr.KindInvalidParamPlaceholder)
}
