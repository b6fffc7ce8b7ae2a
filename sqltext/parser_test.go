package sqltext

import (
	"testing"

	"github.com/gluesql/gluesql-sub000/core/translate"
)

func TestParseSelect(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTable string
		wantWhere bool
		wantErr   bool
	}{
		{
			name:      "wildcard select",
			input:     "SELECT * FROM users",
			wantTable: "users",
		},
		{
			name:      "select with where",
			input:     "SELECT id, name FROM users WHERE id = 1",
			wantTable: "users",
			wantWhere: true,
		},
		{
			name:      "select with join",
			input:     "SELECT u.id FROM users AS u JOIN orders AS o ON u.id = o.user_id",
			wantTable: "users",
		},
		{
			name:      "missing from",
			input:     "SELECT 1",
			wantTable: "SERIES",
		},
		{
			name:    "trailing garbage",
			input:   "SELECT * FROM users; DROP TABLE users",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if stmt.Query == nil || stmt.Query.Body.Select == nil {
				t.Fatalf("Parse(%q) did not produce a SELECT", tt.input)
			}
			sel := stmt.Query.Body.Select
			if sel.From.Relation.TableName != tt.wantTable {
				t.Errorf("table = %q, want %q", sel.From.Relation.TableName, tt.wantTable)
			}
			if (sel.Selection != nil) != tt.wantWhere {
				t.Errorf("has WHERE = %v, want %v", sel.Selection != nil, tt.wantWhere)
			}
		})
	}
}

func TestParseExprPrecedence(t *testing.T) {
	stmt, err := Parse("SELECT * FROM t WHERE a + 1 * 2 = 3 AND b OR NOT c")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	sel := stmt.Query.Body.Select
	or := sel.Selection.BinaryOp
	if or == nil || or.Op != "OR" {
		t.Fatalf("top-level operator = %+v, want OR", sel.Selection)
	}
	and := or.Left.BinaryOp
	if and == nil || and.Op != "AND" {
		t.Fatalf("left of OR = %+v, want AND", or.Left)
	}
	eq := and.Left.BinaryOp
	if eq == nil || eq.Op != "=" {
		t.Fatalf("left of AND = %+v, want =", and.Left)
	}
	plus := eq.Left.BinaryOp
	if plus == nil || plus.Op != "+" {
		t.Fatalf("left of = should be +, got %+v", eq.Left)
	}
	mul := plus.Right.BinaryOp
	if mul == nil || mul.Op != "*" {
		t.Fatalf("right of + should be *, got %+v", plus.Right)
	}
}

func TestParseInsertUpdateDelete(t *testing.T) {
	if _, err := Parse("INSERT INTO t (a, b) VALUES (1, 'x')"); err != nil {
		t.Errorf("insert: %v", err)
	}
	if _, err := Parse("UPDATE t SET a = 1 WHERE b = 2"); err != nil {
		t.Errorf("update: %v", err)
	}
	if _, err := Parse("DELETE FROM t WHERE a = 1"); err != nil {
		t.Errorf("delete: %v", err)
	}
}

func TestParseCreateTable(t *testing.T) {
	stmt, err := Parse(`CREATE TABLE t (
		id INT PRIMARY KEY,
		name TEXT NOT NULL,
		age INTEGER DEFAULT 0
	)`)
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	ct := stmt.CreateTable
	if ct == nil {
		t.Fatalf("expected CreateTable, got %+v", stmt)
	}
	if len(ct.Columns) != 3 {
		t.Fatalf("len(Columns) = %d, want 3", len(ct.Columns))
	}
	if !ct.Columns[0].PrimaryKey {
		t.Errorf("column 0 should be PRIMARY KEY")
	}
	if !ct.Columns[1].NotNull {
		t.Errorf("column 1 should be NOT NULL")
	}
	if !ct.Columns[2].HasDefault {
		t.Errorf("column 2 should have a default")
	}
}

func TestParseCastPassesRawTypeName(t *testing.T) {
	stmt, err := Parse("SELECT CAST(a AS INT64) FROM t")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	expr := stmt.Query.Body.Select.Projection[0].Expr
	if expr.Cast == nil {
		t.Fatalf("expected a Cast expression, got %+v", expr)
	}
	if expr.Cast.DataType != "INT64" {
		t.Errorf("Cast.DataType = %q, want %q (unresolved, verbatim)", expr.Cast.DataType, "INT64")
	}
}

func TestParseBetweenInLike(t *testing.T) {
	stmt, err := Parse("SELECT * FROM t WHERE a BETWEEN 1 AND 10 AND b NOT IN (1, 2) AND c LIKE '%x%'")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	sel := stmt.Query.Body.Select
	// top: ((between AND notin) AND like)
	top := sel.Selection.BinaryOp
	if top == nil || top.Op != "AND" {
		t.Fatalf("expected top-level AND, got %+v", sel.Selection)
	}
	mid := top.Left.BinaryOp
	if mid == nil || mid.Op != "AND" {
		t.Fatalf("expected middle AND, got %+v", top.Left)
	}
	if mid.Left.Between == nil {
		t.Errorf("expected BETWEEN on the left, got %+v", mid.Left)
	}
	if mid.Right.InList == nil || !mid.Right.InList.Negated {
		t.Errorf("expected a negated IN list, got %+v", mid.Right)
	}
	if top.Right.BinaryOp == nil || top.Right.BinaryOp.Op != "LIKE" {
		t.Errorf("expected LIKE on the right, got %+v", top.Right)
	}
}

func TestTranslateRoundTrip(t *testing.T) {
	stmts := []string{
		"SELECT * FROM users WHERE id = 1",
		"INSERT INTO users (id, name) VALUES (1, 'alice')",
		"UPDATE users SET name = 'bob' WHERE id = 1",
		"DELETE FROM users WHERE id = 1",
		"CREATE TABLE users (id INT PRIMARY KEY, name TEXT NOT NULL)",
		"DROP TABLE IF EXISTS users",
		"SHOW COLUMNS FROM users",
	}
	for _, sql := range stmts {
		p, err := Parse(sql)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", sql, err)
		}
		if _, err := translate.Translate(p, nil); err != nil {
			t.Errorf("Translate(%q) error = %v", sql, err)
		}
	}
}

func TestParseUnrecognizedColumnType(t *testing.T) {
	if _, err := Parse("CREATE TABLE t (a NOSUCHTYPE)"); err == nil {
		t.Error("expected an error for an unrecognized column type")
	}
}
