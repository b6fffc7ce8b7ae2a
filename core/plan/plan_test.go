package plan_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/gluesql/gluesql-sub000/core/ast"
	"github.com/gluesql/gluesql-sub000/core/literal"
	"github.com/gluesql/gluesql-sub000/core/plan"
)

// schemaOf is a plan.SchemaColumns backed by a fixed table->columns map,
// standing in for storage.Store.FetchSchema in these planner-only tests.
func schemaOf(m map[string][]string) plan.SchemaColumns {
	return func(table string) []string { return m[table] }
}

func num(n int64) ast.Expr {
	return ast.LiteralExpr{Value: literal.Number(decimal.NewFromInt(n))}
}

// TestPlanPromotesEquiJoinToHash is the planner half of the "B.a = A.id
// AND B.x > 10" scenario: once the planner can see each table's real
// columns, the equi-join key should be split into a Hash executor with
// the inequality folded into its residual Where.
func TestPlanPromotesEquiJoinToHash(t *testing.T) {
	lookup := schemaOf(map[string][]string{
		"a": {"id"},
		"b": {"a", "x"},
	})

	pred := ast.BinaryOp{
		Left: ast.BinaryOp{
			Left:  ast.CompoundIdentifier{Parts: []string{"b", "a"}},
			Op:    ast.OpEq,
			Right: ast.CompoundIdentifier{Parts: []string{"a", "id"}},
		},
		Op: ast.OpAnd,
		Right: ast.BinaryOp{
			Left:  ast.CompoundIdentifier{Parts: []string{"b", "x"}},
			Op:    ast.OpGt,
			Right: num(10),
		},
	}

	q := &ast.Query{Body: ast.Select{
		From: ast.TableWithJoins{
			Relation: ast.Table{Name: "a"},
			Joins: []ast.Join{{
				Relation:     ast.Table{Name: "b"},
				JoinOperator: ast.JoinOperator{Kind: ast.JoinInner, Constraint: pred},
			}},
		},
	}}

	planned := plan.Plan(ast.QueryStatement{Query: q}, nil, lookup).(ast.QueryStatement)
	sel := planned.Query.Body.(ast.Select)
	join := sel.From.Joins[0]

	hash, ok := join.JoinExecutor.(ast.Hash)
	if !ok {
		t.Fatalf("JoinExecutor = %T, want ast.Hash", join.JoinExecutor)
	}
	key, ok := hash.KeyExpr.(ast.CompoundIdentifier)
	if !ok || key.Parts[0] != "b" || key.Parts[1] != "a" {
		t.Errorf("KeyExpr = %+v, want b.a", hash.KeyExpr)
	}
	value, ok := hash.ValueExpr.(ast.CompoundIdentifier)
	if !ok || value.Parts[0] != "a" || value.Parts[1] != "id" {
		t.Errorf("ValueExpr = %+v, want a.id", hash.ValueExpr)
	}
	where, ok := hash.Where.(ast.BinaryOp)
	if !ok || where.Op != ast.OpGt {
		t.Fatalf("Where = %+v, want a BinaryOp(>)", hash.Where)
	}
}

// TestPlanFallsBackToNestedLoopWithoutSchema documents the degraded-but-
// correct behavior when no lookup is available: every frame's Columns is
// empty, so checkEvaluable can't place either side of the predicate and
// the join stays NestedLoop rather than mis-planning.
func TestPlanFallsBackToNestedLoopWithoutSchema(t *testing.T) {
	pred := ast.BinaryOp{
		Left:  ast.CompoundIdentifier{Parts: []string{"b", "a"}},
		Op:    ast.OpEq,
		Right: ast.CompoundIdentifier{Parts: []string{"a", "id"}},
	}
	q := &ast.Query{Body: ast.Select{
		From: ast.TableWithJoins{
			Relation: ast.Table{Name: "a"},
			Joins: []ast.Join{{
				Relation:     ast.Table{Name: "b"},
				JoinOperator: ast.JoinOperator{Kind: ast.JoinInner, Constraint: pred},
			}},
		},
	}}

	planned := plan.Plan(ast.QueryStatement{Query: q}, nil, nil).(ast.QueryStatement)
	join := planned.Query.Body.(ast.Select).From.Joins[0]
	if _, ok := join.JoinExecutor.(ast.NestedLoop); !ok {
		t.Fatalf("JoinExecutor = %T, want ast.NestedLoop", join.JoinExecutor)
	}
}

func TestContextContainsQualified(t *testing.T) {
	outer := plan.NewContext("a", []string{"id", "name"}, nil)
	ctx := plan.NewContext("b", []string{"a", "x"}, outer)

	if !ctx.ContainsQualified("a", "id") {
		t.Error("expected a.id to be visible through the outer frame")
	}
	if ctx.ContainsQualified("a", "missing") {
		t.Error("a.missing should not be visible")
	}
	if !ctx.Contains("x") {
		t.Error("expected unqualified x to resolve against the inner frame")
	}
	if ctx.Ambiguous("x") {
		t.Error("x only appears in one frame, should not be ambiguous")
	}

	merged := plan.Merge(plan.NewContext("b", []string{"id"}, nil), outer)
	if !merged.Ambiguous("id") {
		t.Error("id appears in both frames once merged, should be ambiguous")
	}
}

// TestPlanNonQueryStatementPassesThrough checks Plan's documented no-op
// behavior for anything that isn't a QueryStatement.
func TestPlanNonQueryStatementPassesThrough(t *testing.T) {
	stmt := ast.DeleteStatement{Table: "t"}
	out := plan.Plan(stmt, nil, nil)
	if _, ok := out.(ast.DeleteStatement); !ok {
		t.Fatalf("Plan(non-query) = %T, want it returned unchanged", out)
	}
}
