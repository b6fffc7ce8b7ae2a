// Package ast implements the tree-IR: a round-trippable representation
// of statements and expressions, each node rendering itself back to
// SQL text via ToSQL.
package ast

import (
	"strings"

	"github.com/gluesql/gluesql-sub000/core/literal"
)

// BinaryOperator enumerates the binary operators BinaryOp nodes carry.
type BinaryOperator int

const (
	OpPlus BinaryOperator = iota
	OpMinus
	OpMultiply
	OpDivide
	OpModulo
	OpEq
	OpNotEq
	OpLt
	OpLtEq
	OpGt
	OpGtEq
	OpAnd
	OpOr
	OpLike
	OpNotLike
	OpStringConcat
)

var binOpText = map[BinaryOperator]string{
	OpPlus: "+", OpMinus: "-", OpMultiply: "*", OpDivide: "/", OpModulo: "%",
	OpEq: "=", OpNotEq: "<>", OpLt: "<", OpLtEq: "<=", OpGt: ">", OpGtEq: ">=",
	OpAnd: "AND", OpOr: "OR", OpLike: "LIKE", OpNotLike: "NOT LIKE",
	OpStringConcat: "||",
}

func (o BinaryOperator) String() string { return binOpText[o] }

// UnaryOperator enumerates the prefix operators UnaryOp nodes carry.
type UnaryOperator int

const (
	OpUnaryPlus UnaryOperator = iota
	OpUnaryMinus
	OpNot
	OpFactorial
)

var unOpText = map[UnaryOperator]string{
	OpUnaryPlus: "+", OpUnaryMinus: "-", OpNot: "NOT", OpFactorial: "!",
}

// Expr is the sum type covering every expression node: Identifier
// through Aggregate. Every concrete node below implements Expr.
type Expr interface {
	ToSQL() string
	isExpr()
}

type Identifier struct{ Name string }

func (e Identifier) ToSQL() string { return quoteIdent(e.Name) }
func (Identifier) isExpr()         {}

type CompoundIdentifier struct{ Parts []string }

func (e CompoundIdentifier) ToSQL() string {
	parts := make([]string, len(e.Parts))
	for i, p := range e.Parts {
		parts[i] = quoteIdent(p)
	}
	return strings.Join(parts, ".")
}
func (CompoundIdentifier) isExpr() {}

type LiteralExpr struct{ Value literal.Literal }

func (e LiteralExpr) ToSQL() string {
	switch e.Value.Kind() {
	case literal.KindText:
		return quoteString(e.Value.AsText())
	case literal.KindNull:
		return "NULL"
	case literal.KindBoolean:
		if e.Value.AsBool() {
			return "TRUE"
		}
		return "FALSE"
	}
	return e.Value.String()
}
func (LiteralExpr) isExpr() {}

type TypedString struct {
	DataType string
	Value    string
}

func (e TypedString) ToSQL() string { return e.DataType + " " + quoteString(e.Value) }
func (TypedString) isExpr()         {}

type IsNull struct{ Expr Expr }

func (e IsNull) ToSQL() string { return e.Expr.ToSQL() + " IS NULL" }
func (IsNull) isExpr()         {}

type IsNotNull struct{ Expr Expr }

func (e IsNotNull) ToSQL() string { return e.Expr.ToSQL() + " IS NOT NULL" }
func (IsNotNull) isExpr()         {}

type InList struct {
	Expr     Expr
	List     []Expr
	Negated  bool
}

func (e InList) ToSQL() string {
	items := make([]string, len(e.List))
	for i, it := range e.List {
		items[i] = it.ToSQL()
	}
	not := ""
	if e.Negated {
		not = "NOT "
	}
	return e.Expr.ToSQL() + " " + not + "IN (" + strings.Join(items, ", ") + ")"
}
func (InList) isExpr() {}

type InSubquery struct {
	Expr     Expr
	Subquery *Query
	Negated  bool
}

func (e InSubquery) ToSQL() string {
	not := ""
	if e.Negated {
		not = "NOT "
	}
	return e.Expr.ToSQL() + " " + not + "IN (" + e.Subquery.ToSQL() + ")"
}
func (InSubquery) isExpr() {}

type Between struct {
	Expr    Expr
	Negated bool
	Low     Expr
	High    Expr
}

func (e Between) ToSQL() string {
	not := ""
	if e.Negated {
		not = "NOT "
	}
	return e.Expr.ToSQL() + " " + not + "BETWEEN " + e.Low.ToSQL() + " AND " + e.High.ToSQL()
}
func (Between) isExpr() {}

type BinaryOp struct {
	Left  Expr
	Op    BinaryOperator
	Right Expr
}

func (e BinaryOp) ToSQL() string {
	return e.Left.ToSQL() + " " + e.Op.String() + " " + e.Right.ToSQL()
}
func (BinaryOp) isExpr() {}

type UnaryOp struct {
	Op   UnaryOperator
	Expr Expr
}

func (e UnaryOp) ToSQL() string {
	if e.Op == OpFactorial {
		return e.Expr.ToSQL() + "!"
	}
	return unOpText[e.Op] + " " + e.Expr.ToSQL()
}
func (UnaryOp) isExpr() {}

type Cast struct {
	Expr     Expr
	DataType string
}

func (e Cast) ToSQL() string { return "CAST(" + e.Expr.ToSQL() + " AS " + e.DataType + ")" }
func (Cast) isExpr()         {}

type Extract struct {
	Field string
	Expr  Expr
}

func (e Extract) ToSQL() string { return "EXTRACT(" + e.Field + " FROM " + e.Expr.ToSQL() + ")" }
func (Extract) isExpr()         {}

type Nested struct{ Expr Expr }

func (e Nested) ToSQL() string { return "(" + e.Expr.ToSQL() + ")" }
func (Nested) isExpr()         {}

type WhenThen struct {
	When Expr
	Then Expr
}

type Case struct {
	Operand  Expr // nil for searched CASE
	WhenThen []WhenThen
	Else     Expr // nil if absent
}

func (e Case) ToSQL() string {
	var sb strings.Builder
	sb.WriteString("CASE")
	if e.Operand != nil {
		sb.WriteString(" " + e.Operand.ToSQL())
	}
	for _, wt := range e.WhenThen {
		sb.WriteString(" WHEN " + wt.When.ToSQL() + " THEN " + wt.Then.ToSQL())
	}
	if e.Else != nil {
		sb.WriteString(" ELSE " + e.Else.ToSQL())
	}
	sb.WriteString(" END")
	return sb.String()
}
func (Case) isExpr() {}

type Subquery struct{ Query *Query }

func (e Subquery) ToSQL() string { return "(" + e.Query.ToSQL() + ")" }
func (Subquery) isExpr()         {}

type Exists struct {
	Query   *Query
	Negated bool
}

func (e Exists) ToSQL() string {
	not := ""
	if e.Negated {
		not = "NOT "
	}
	return not + "EXISTS (" + e.Query.ToSQL() + ")"
}
func (Exists) isExpr() {}

type Function struct {
	Name string
	Args []Expr
}

func (e Function) ToSQL() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.ToSQL()
	}
	return e.Name + "(" + strings.Join(args, ", ") + ")"
}
func (Function) isExpr() {}

// AggregateKind enumerates the aggregate functions the evaluator wires
// a concrete registry for (COUNT/SUM/MIN/MAX/AVG, plus COUNT DISTINCT).
type AggregateKind int

const (
	AggCount AggregateKind = iota
	AggSum
	AggMin
	AggMax
	AggAvg
)

var aggText = map[AggregateKind]string{
	AggCount: "COUNT", AggSum: "SUM", AggMin: "MIN", AggMax: "MAX", AggAvg: "AVG",
}

type Aggregate struct {
	Kind     AggregateKind
	Expr     Expr // nil for COUNT(*)
	Distinct bool
}

func (e Aggregate) ToSQL() string {
	inner := "*"
	if e.Expr != nil {
		inner = e.Expr.ToSQL()
	}
	distinct := ""
	if e.Distinct {
		distinct = "DISTINCT "
	}
	return aggText[e.Kind] + "(" + distinct + inner + ")"
}
func (Aggregate) isExpr() {}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
