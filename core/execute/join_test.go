package execute_test

import (
	"context"
	"sort"
	"testing"

	"github.com/gluesql/gluesql-sub000/core/ast"
	"github.com/gluesql/gluesql-sub000/core/execute"
	"github.com/gluesql/gluesql-sub000/core/translate"
	"github.com/gluesql/gluesql-sub000/core/value"
	"github.com/gluesql/gluesql-sub000/sqltext"
	"github.com/gluesql/gluesql-sub000/storage/memory"
)

// run parses, translates, and executes sql against store, failing the
// test on any pipeline error.
func run(t *testing.T, store *memory.Store, sql string) execute.Payload {
	t.Helper()
	p, err := sqltext.Parse(sql)
	if err != nil {
		t.Fatalf("Parse(%q): %v", sql, err)
	}
	stmt, err := translate.Translate(p, nil)
	if err != nil {
		t.Fatalf("Translate(%q): %v", sql, err)
	}
	payload, err := execute.Execute(context.Background(), store, stmt, nil)
	if err != nil {
		t.Fatalf("Execute(%q): %v", sql, err)
	}
	return payload
}

func setupJoinTables(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	run(t, store, "CREATE TABLE a (id INT, label TEXT)")
	run(t, store, "CREATE TABLE b (a INT, x INT)")
	run(t, store, "INSERT INTO a (id, label) VALUES (1, 'one'), (2, 'two'), (3, 'three')")
	run(t, store, "INSERT INTO b (a, x) VALUES (1, 5), (1, 20), (2, 1)")
	return store
}

// TestHashJoinMatchesNestedLoopSemantics is the end-to-end half of
// scenario S3: "B.a = A.id AND B.x > 10" must return the same rows
// whether the planner picks Hash or NestedLoop, since the two
// executors are observably equivalent -- only their cost differs.
func TestHashJoinMatchesNestedLoopSemantics(t *testing.T) {
	store := setupJoinTables(t)
	payload := run(t, store, `
		SELECT a.label, b.x FROM a JOIN b ON b.a = a.id AND b.x > 10
	`)

	if len(payload.Rows) != 1 {
		t.Fatalf("got %d rows, want 1: %+v", len(payload.Rows), payload.Rows)
	}
	row := payload.Rows[0]
	label, _ := row[0].AsStr()
	x, _ := row[1].AsI64()
	if label != "one" || x != 20 {
		t.Errorf("row = (%v, %v), want (one, 20)", label, x)
	}
}

func TestLeftOuterJoinFillsNullForUnmatched(t *testing.T) {
	store := setupJoinTables(t)
	payload := run(t, store, `
		SELECT a.label, b.x FROM a LEFT JOIN b ON b.a = a.id
		ORDER BY a.label
	`)

	if len(payload.Rows) != 4 {
		t.Fatalf("got %d rows, want 4 (1 unmatched 'three' + 3 matches for one/two): %+v", len(payload.Rows), payload.Rows)
	}
	var sawNullX bool
	for _, row := range payload.Rows {
		label, _ := row[0].AsStr()
		if label == "three" {
			if !row[1].IsNull() {
				t.Errorf("unmatched row for 'three' should have NULL b.x, got %v", row[1])
			}
			sawNullX = true
		}
	}
	if !sawNullX {
		t.Error("expected to see the unmatched 'three' row with NULL b.x")
	}
}

func TestInnerJoinDropsUnmatchedRows(t *testing.T) {
	store := setupJoinTables(t)
	payload := run(t, store, `
		SELECT a.label FROM a JOIN b ON b.a = a.id
	`)
	for _, row := range payload.Rows {
		label, _ := row[0].AsStr()
		if label == "three" {
			t.Error("inner join should not include unmatched 'three' row")
		}
	}
}

func TestJoinOnNullKeyNeverMatches(t *testing.T) {
	store := memory.New()
	run(t, store, "CREATE TABLE a (id INT)")
	run(t, store, "CREATE TABLE b (a INT)")
	run(t, store, "INSERT INTO a (id) VALUES (NULL)")
	run(t, store, "INSERT INTO b (a) VALUES (NULL)")

	payload := run(t, store, "SELECT * FROM a JOIN b ON b.a = a.id")
	if len(payload.Rows) != 0 {
		t.Errorf("NULL = NULL should never match in a join, got %d rows", len(payload.Rows))
	}
}

// TestPlannerSoundnessHashAndNestedLoopAgree is property 8: the two
// join executors must agree on the resulting row multiset. Both trees
// below share the ON predicate but carry no Constraint (so Plan leaves
// JoinExecutor untouched), letting the test pick NestedLoop for one
// and Hash for the other over identical data.
func TestPlannerSoundnessHashAndNestedLoopAgree(t *testing.T) {
	store := setupJoinTables(t)

	predicate := ast.BinaryOp{
		Left:  ast.CompoundIdentifier{Parts: []string{"b", "a"}},
		Op:    ast.OpEq,
		Right: ast.CompoundIdentifier{Parts: []string{"a", "id"}},
	}
	query := func(exec ast.JoinExecutor) *ast.Query {
		return &ast.Query{Body: ast.Select{
			Projection: []ast.SelectItem{
				ast.ExprWithLabel{Expr: ast.CompoundIdentifier{Parts: []string{"a", "label"}}},
				ast.ExprWithLabel{Expr: ast.CompoundIdentifier{Parts: []string{"b", "x"}}},
			},
			From: ast.TableWithJoins{
				Relation: ast.Table{Name: "a"},
				Joins: []ast.Join{{
					Relation:     ast.Table{Name: "b"},
					JoinOperator: ast.JoinOperator{Kind: ast.JoinInner},
					JoinExecutor: exec,
				}},
			},
		}}
	}

	nestedLoop, err := execute.Execute(context.Background(), store,
		ast.QueryStatement{Query: query(ast.NestedLoop{Predicate: predicate})}, nil)
	if err != nil {
		t.Fatalf("NestedLoop execute error = %v", err)
	}
	hash, err := execute.Execute(context.Background(), store,
		ast.QueryStatement{Query: query(ast.Hash{
			KeyExpr:   ast.CompoundIdentifier{Parts: []string{"b", "a"}},
			ValueExpr: ast.CompoundIdentifier{Parts: []string{"a", "id"}},
		})}, nil)
	if err != nil {
		t.Fatalf("Hash execute error = %v", err)
	}

	if len(nestedLoop.Rows) != len(hash.Rows) {
		t.Fatalf("NestedLoop produced %d rows, Hash produced %d", len(nestedLoop.Rows), len(hash.Rows))
	}
	if !sameRowMultiset(nestedLoop.Rows, hash.Rows) {
		t.Errorf("NestedLoop and Hash disagree on the row multiset:\nNestedLoop: %+v\nHash: %+v", nestedLoop.Rows, hash.Rows)
	}
}

func sameRowMultiset(a, b [][]value.Value) bool {
	render := func(rows [][]value.Value) []string {
		out := make([]string, len(rows))
		for i, row := range rows {
			s := ""
			for _, v := range row {
				s += v.String() + "|"
			}
			out[i] = s
		}
		sort.Strings(out)
		return out
	}
	ar, br := render(a), render(b)
	if len(ar) != len(br) {
		return false
	}
	for i := range ar {
		if ar[i] != br[i] {
			return false
		}
	}
	return true
}
