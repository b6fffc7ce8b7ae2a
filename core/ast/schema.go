package ast

import (
	"strings"

	"github.com/gluesql/gluesql-sub000/core/literal"
	"github.com/gluesql/gluesql-sub000/core/value"
)

// ReferentialAction keeps the richer four-variant form rather than
// collapsing to a single generic action. NoAction subsumes both NO
// ACTION and RESTRICT.
type ReferentialAction int

const (
	NoAction ReferentialAction = iota
	Cascade
	SetNull
	SetDefault
)

func (a ReferentialAction) String() string {
	switch a {
	case Cascade:
		return "CASCADE"
	case SetNull:
		return "SET NULL"
	case SetDefault:
		return "SET DEFAULT"
	default:
		return "NO ACTION"
	}
}

// ColumnDef is one column in a CREATE TABLE / ADD COLUMN.
type ColumnDef struct {
	Name      string
	DataType  value.DataType
	Nullable  bool
	Default   Expr // nil if none
	Unique    bool
	UniqueName string // "" if inline unique has no name
	Comment   string // "" if none
}

func (c ColumnDef) ToSQL() string {
	var sb strings.Builder
	sb.WriteString(quoteIdent(c.Name) + " " + c.DataType.String())
	if !c.Nullable {
		sb.WriteString(" NOT NULL")
	}
	if c.Default != nil {
		sb.WriteString(" DEFAULT " + c.Default.ToSQL())
	}
	if c.Unique {
		sb.WriteString(" UNIQUE")
	}
	if c.Comment != "" {
		sb.WriteString(" COMMENT " + quoteString(c.Comment))
	}
	return sb.String()
}

// UniqueConstraint carries an optional name and a non-empty set of
// columns, stored by column name rather than by position. RENAME
// COLUMN does not rewrite these names, so a constraint keeps the
// column's old name after a rename.
type UniqueConstraint struct {
	Name    string // "" if unnamed
	Columns []string
}

type ForeignKey struct {
	Name       string
	Columns    []string
	RefTable   string
	RefColumns []string
	OnDelete   ReferentialAction
	OnUpdate   ReferentialAction
}

func (fk ForeignKey) ToSQL() string {
	sql := "FOREIGN KEY (" + strings.Join(quoteAll(fk.Columns), ", ") + ") REFERENCES " +
		quoteIdent(fk.RefTable) + " (" + strings.Join(quoteAll(fk.RefColumns), ", ") + ")"
	if fk.OnDelete != NoAction {
		sql += " ON DELETE " + fk.OnDelete.String()
	}
	if fk.OnUpdate != NoAction {
		sql += " ON UPDATE " + fk.OnUpdate.String()
	}
	return sql
}

type TableConstraints struct {
	PrimaryKey        []string
	UniqueConstraints []UniqueConstraint
	ForeignKeys       []ForeignKey
}

// IndexDef describes a secondary index recorded on a Schema, tracked
// for CREATE INDEX/DROP INDEX/ALTER TABLE support.
type IndexDef struct {
	Name   string
	Column Expr
}

// Schema is the catalog record for one table.
type Schema struct {
	TableName         string
	ColumnDefs        []ColumnDef
	Indexes           []IndexDef
	Engine            string
	ForeignKeys       []ForeignKey
	PrimaryKey        []string
	UniqueConstraints []UniqueConstraint
	Comment           string
}

// ColumnNames returns the declared column order.
func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.ColumnDefs))
	for i, c := range s.ColumnDefs {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of name in the schema, or -1.
func (s Schema) ColumnIndex(name string) int {
	for i, c := range s.ColumnDefs {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// LiteralDefault materializes a ColumnDef's DEFAULT when it is a plain
// literal expression (the common case for INSERT column-filling).
func LiteralDefault(e Expr) (literal.Literal, bool) {
	le, ok := e.(LiteralExpr)
	if !ok {
		return literal.Literal{}, false
	}
	return le.Value, true
}
