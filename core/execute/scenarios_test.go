package execute_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gluesql/gluesql-sub000/core/execute"
	"github.com/gluesql/gluesql-sub000/core/sqlerr"
	"github.com/gluesql/gluesql-sub000/core/translate"
	"github.com/gluesql/gluesql-sub000/sqltext"
	"github.com/gluesql/gluesql-sub000/storage/memory"
)

// runErr is run's counterpart for statements expected to fail somewhere
// in the parse/translate/execute pipeline.
func runErr(t *testing.T, store *memory.Store, sql string) error {
	t.Helper()
	p, err := sqltext.Parse(sql)
	if err != nil {
		return err
	}
	stmt, err := translate.Translate(p, nil)
	if err != nil {
		return err
	}
	_, err = execute.Execute(context.Background(), store, stmt, nil)
	return err
}

// TestOrderByDesc is scenario S1: a fresh table, two inserted rows,
// then ORDER BY a DESC returns them largest-a-first.
func TestOrderByDesc(t *testing.T) {
	store := memory.New()
	run(t, store, "CREATE TABLE t (a INT, b TEXT)")
	run(t, store, "INSERT INTO t (a, b) VALUES (1, 'x'), (2, 'y')")
	payload := run(t, store, "SELECT * FROM t ORDER BY a DESC")

	if len(payload.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(payload.Rows))
	}
	a0, _ := payload.Rows[0][0].AsI64()
	a1, _ := payload.Rows[1][0].AsI64()
	if a0 != 2 || a1 != 1 {
		t.Errorf("order = (%d, %d), want (2, 1)", a0, a1)
	}
}

// TestDuplicatePrimaryKeyRejected is scenario S2.
func TestDuplicatePrimaryKeyRejected(t *testing.T) {
	store := memory.New()
	run(t, store, "CREATE TABLE u (id INT PRIMARY KEY, v INT)")
	run(t, store, "INSERT INTO u (id, v) VALUES (1, 10)")

	err := runErr(t, store, "INSERT INTO u (id, v) VALUES (1, 20)")
	var se *sqlerr.Error
	if !errors.As(err, &se) {
		t.Fatalf("error %v is not a *sqlerr.Error", err)
	}
	if se.Kind != sqlerr.KindDuplicateEntryOnPrimaryKey {
		t.Errorf("Kind = %v, want KindDuplicateEntryOnPrimaryKey", se.Kind)
	}
}

// TestCorrelatedSubquery is scenario S4: each outer row's subquery
// re-evaluates against the outer row's own id.
func TestCorrelatedSubquery(t *testing.T) {
	store := memory.New()
	run(t, store, "CREATE TABLE u (id INT, v INT)")
	run(t, store, "INSERT INTO u (id, v) VALUES (1, 10), (2, 20)")

	payload := run(t, store, `
		SELECT id FROM u u1
		WHERE v = (SELECT MAX(v) FROM u u2 WHERE u2.id <= u1.id)
		ORDER BY id
	`)
	if len(payload.Rows) != 2 {
		t.Fatalf("got %d rows, want 2: %+v", len(payload.Rows), payload.Rows)
	}
	id0, _ := payload.Rows[0][0].AsI64()
	id1, _ := payload.Rows[1][0].AsI64()
	if id0 != 1 || id1 != 2 {
		t.Errorf("ids = (%d, %d), want (1, 2)", id0, id1)
	}
}

// TestNullThreeValuedLogic is scenario S5.
func TestNullThreeValuedLogic(t *testing.T) {
	store := memory.New()
	payload := run(t, store, "SELECT (NULL = NULL), (NULL AND TRUE), (NULL OR TRUE)")

	if len(payload.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(payload.Rows))
	}
	row := payload.Rows[0]
	if !row[0].IsNull() {
		t.Errorf("NULL = NULL should be NULL, got %v", row[0])
	}
	if !row[1].IsNull() {
		t.Errorf("NULL AND TRUE should be NULL, got %v", row[1])
	}
	b, ok := row[2].AsBool()
	if !ok || !b {
		t.Errorf("NULL OR TRUE should be TRUE, got %v", row[2])
	}
}

// TestOverflowRejected is scenario S6.
func TestOverflowRejected(t *testing.T) {
	store := memory.New()
	err := runErr(t, store, "SELECT CAST(127 AS INT8) + CAST(1 AS INT8)")
	var se *sqlerr.Error
	if !errors.As(err, &se) {
		t.Fatalf("error %v is not a *sqlerr.Error", err)
	}
	if se.Kind != sqlerr.KindBinaryOperationOverflow {
		t.Errorf("Kind = %v, want KindBinaryOperationOverflow", se.Kind)
	}
}

func TestUpdateAndDeleteRoundTrip(t *testing.T) {
	store := memory.New()
	run(t, store, "CREATE TABLE t (a INT, b TEXT)")
	run(t, store, "INSERT INTO t (a, b) VALUES (1, 'x'), (2, 'y')")

	updatePayload := run(t, store, "UPDATE t SET b = 'z' WHERE a = 1")
	if updatePayload.RowCount != 1 {
		t.Errorf("UPDATE RowCount = %d, want 1", updatePayload.RowCount)
	}

	selected := run(t, store, "SELECT b FROM t WHERE a = 1")
	b, _ := selected.Rows[0][0].AsStr()
	if b != "z" {
		t.Errorf("after UPDATE, b = %q, want \"z\"", b)
	}

	deletePayload := run(t, store, "DELETE FROM t WHERE a = 2")
	if deletePayload.RowCount != 1 {
		t.Errorf("DELETE RowCount = %d, want 1", deletePayload.RowCount)
	}

	remaining := run(t, store, "SELECT a FROM t")
	if len(remaining.Rows) != 1 {
		t.Fatalf("got %d rows after DELETE, want 1", len(remaining.Rows))
	}
}
