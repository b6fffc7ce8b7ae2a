// Package evaluate implements the expression evaluator:
// Evaluate(storage, context, aggregateContext, expr) -> Evaluated, where
// Evaluated defers materialization to a Literal when possible and only
// forces a Value when the expression genuinely produced one (column
// reads, subquery results, casts).
package evaluate

import (
	"context"

	"github.com/gluesql/gluesql-sub000/core/ast"
	"github.com/gluesql/gluesql-sub000/core/literal"
	"github.com/gluesql/gluesql-sub000/core/sqlerr"
	"github.com/gluesql/gluesql-sub000/core/value"
)

// Evaluated is Literal(Literal) | Value(Value).
type Evaluated struct {
	lit      *literal.Literal
	val      *value.Value
}

func FromLiteral(l literal.Literal) Evaluated { return Evaluated{lit: &l} }
func FromValue(v value.Value) Evaluated       { return Evaluated{val: &v} }

func (e Evaluated) IsLiteral() bool { return e.lit != nil }

// Value forces materialization: a bare Literal is converted to its
// "natural" Value type (the same conversion literal.TryCastFromLiteral
// performs with the literal's own intrinsic type).
func (e Evaluated) Value() (value.Value, error) {
	if e.val != nil {
		return *e.val, nil
	}
	switch e.lit.Kind() {
	case literal.KindNull:
		return value.Null(), nil
	case literal.KindBoolean:
		return value.NewBool(e.lit.AsBool()), nil
	case literal.KindText:
		return value.NewStr(e.lit.AsText()), nil
	case literal.KindBytea:
		return value.NewBytea(e.lit.AsBytea()), nil
	case literal.KindNumber:
		return value.NewDecimal(e.lit.AsNumber()), nil
	}
	return value.Null(), nil
}

// FilterContext binds one row's columns (and optionally an outer
// context) so identifier lookup can resolve both unqualified and
// qualified names, mirroring core/plan.Context's frame-stack shape but
// carrying live Values rather than just column names.
type FilterContext struct {
	Alias  string
	Labels []string
	Values []value.Value
	Outer  *FilterContext
}

func NewFilterContext(alias string, labels []string, values []value.Value, outer *FilterContext) *FilterContext {
	return &FilterContext{Alias: alias, Labels: labels, Values: values, Outer: outer}
}

func (c *FilterContext) lookup(name string) (value.Value, bool, bool) {
	matches := 0
	var found value.Value
	for f := c; f != nil; f = f.Outer {
		for i, l := range f.Labels {
			if l == name {
				if matches == 0 {
					found = f.Values[i]
				}
				matches++
			}
		}
		if matches > 0 {
			break
		}
	}
	return found, matches == 1, matches > 1
}

func (c *FilterContext) lookupQualified(alias, name string) (value.Value, bool) {
	for f := c; f != nil; f = f.Outer {
		if f.Alias != alias {
			continue
		}
		for i, l := range f.Labels {
			if l == name {
				return f.Values[i], true
			}
		}
		return value.Value{}, false
	}
	return value.Value{}, false
}

// AggregateContext exposes precomputed aggregate results keyed by the
// rendered SQL of the Aggregate expression (the evaluator looks an
// aggregate up rather than computing it inline, since GROUP BY already
// ran a pass over all rows in the group -- see projectGrouped in
// core/execute/select.go).
type AggregateContext struct {
	Results map[string]value.Value
}

// Storage is the minimal surface Evaluate needs from a Store to run
// correlated subqueries: enough to re-enter core/execute without an
// import cycle (core/execute depends on core/evaluate, not vice versa).
type Storage interface {
	RunQuery(ctx context.Context, q *ast.Query, outer *FilterContext) (labels []string, rows [][]value.Value, err error)
}

// Evaluate is the evaluator's single entry point.
func Evaluate(ctx context.Context, storage Storage, fc *FilterContext, ac *AggregateContext, expr ast.Expr) (Evaluated, error) {
	ev := &evaluator{ctx: ctx, storage: storage, fc: fc, ac: ac}
	return ev.eval(expr)
}

type evaluator struct {
	ctx     context.Context
	storage Storage
	fc      *FilterContext
	ac      *AggregateContext
}

func (ev *evaluator) eval(expr ast.Expr) (Evaluated, error) {
	switch e := expr.(type) {
	case ast.Identifier:
		return ev.identifier(e.Name)
	case ast.CompoundIdentifier:
		return ev.compoundIdentifier(e.Parts)
	case ast.LiteralExpr:
		return FromLiteral(e.Value), nil
	case ast.TypedString:
		return ev.typedString(e)
	case ast.Nested:
		return ev.eval(e.Expr)
	case ast.IsNull:
		v, err := ev.forceValue(e.Expr)
		if err != nil {
			return Evaluated{}, err
		}
		return FromValue(value.NewBool(v.IsNull())), nil
	case ast.IsNotNull:
		v, err := ev.forceValue(e.Expr)
		if err != nil {
			return Evaluated{}, err
		}
		return FromValue(value.NewBool(!v.IsNull())), nil
	case ast.Between:
		return ev.between(e)
	case ast.InList:
		return ev.inList(e)
	case ast.InSubquery:
		return ev.inSubquery(e)
	case ast.BinaryOp:
		return ev.binaryOp(e)
	case ast.UnaryOp:
		return ev.unaryOp(e)
	case ast.Cast:
		return ev.cast(e)
	case ast.Extract:
		return ev.extract(e)
	case ast.Case:
		return ev.caseExpr(e)
	case ast.Subquery:
		return ev.subquery(e.Query)
	case ast.Exists:
		return ev.exists(e)
	case ast.Function:
		return ev.function(e)
	case ast.Aggregate:
		return ev.aggregate(e)
	}
	return Evaluated{}, sqlerr.New(sqlerr.KindUnsupportedSyntax, "cannot evaluate expression of type %T", expr)
}

func (ev *evaluator) forceValue(expr ast.Expr) (value.Value, error) {
	res, err := ev.eval(expr)
	if err != nil {
		return value.Value{}, err
	}
	return res.Value()
}

func (ev *evaluator) identifier(name string) (Evaluated, error) {
	if ev.fc == nil {
		return Evaluated{}, sqlerr.New(sqlerr.KindIdentifierNotFound, "identifier %q not found", name)
	}
	v, ok, ambiguous := ev.fc.lookup(name)
	if ambiguous {
		return Evaluated{}, sqlerr.New(sqlerr.KindAmbiguousIdentifier, "identifier %q is ambiguous", name)
	}
	if !ok {
		return Evaluated{}, sqlerr.New(sqlerr.KindIdentifierNotFound, "identifier %q not found", name)
	}
	return FromValue(v), nil
}

func (ev *evaluator) compoundIdentifier(parts []string) (Evaluated, error) {
	if len(parts) != 2 || ev.fc == nil {
		return Evaluated{}, sqlerr.New(sqlerr.KindIdentifierNotFound, "identifier %v not found", parts)
	}
	v, ok := ev.fc.lookupQualified(parts[0], parts[1])
	if !ok {
		return Evaluated{}, sqlerr.New(sqlerr.KindIdentifierNotFound, "identifier %s.%s not found", parts[0], parts[1])
	}
	return FromValue(v), nil
}

func (ev *evaluator) typedString(e ast.TypedString) (Evaluated, error) {
	dt, err := dataTypeByName(e.DataType)
	if err != nil {
		return Evaluated{}, err
	}
	v, err := value.NewStr(e.Value).Cast(dt)
	if err != nil {
		return Evaluated{}, err
	}
	return FromValue(v), nil
}

func (ev *evaluator) between(e ast.Between) (Evaluated, error) {
	v, err := ev.forceValue(e.Expr)
	if err != nil {
		return Evaluated{}, err
	}
	lo, err := ev.forceValue(e.Low)
	if err != nil {
		return Evaluated{}, err
	}
	hi, err := ev.forceValue(e.High)
	if err != nil {
		return Evaluated{}, err
	}
	if v.IsNull() || lo.IsNull() || hi.IsNull() {
		return FromValue(value.Null()), nil
	}
	loCmp, ok1 := v.Compare(lo)
	hiCmp, ok2 := v.Compare(hi)
	if !ok1 || !ok2 {
		return Evaluated{}, sqlerr.New(sqlerr.KindUnsupportedBinaryOp, "BETWEEN operands are not comparable")
	}
	result := loCmp >= 0 && hiCmp <= 0
	if e.Negated {
		result = !result
	}
	return FromValue(value.NewBool(result)), nil
}

func (ev *evaluator) inList(e ast.InList) (Evaluated, error) {
	v, err := ev.forceValue(e.Expr)
	if err != nil {
		return Evaluated{}, err
	}
	if v.IsNull() {
		return FromValue(value.Null()), nil
	}
	sawNull := false
	for _, item := range e.List {
		iv, err := ev.forceValue(item)
		if err != nil {
			return Evaluated{}, err
		}
		if iv.IsNull() {
			sawNull = true
			continue
		}
		if v.Equal(iv) {
			return FromValue(value.NewBool(!e.Negated)), nil
		}
	}
	if sawNull {
		return FromValue(value.Null()), nil
	}
	return FromValue(value.NewBool(e.Negated)), nil
}

func (ev *evaluator) unaryOp(e ast.UnaryOp) (Evaluated, error) {
	v, err := ev.forceValue(e.Expr)
	if err != nil {
		return Evaluated{}, err
	}
	switch e.Op {
	case ast.OpUnaryPlus:
		r, err := v.UnaryPlus()
		return wrapValue(r, err)
	case ast.OpUnaryMinus:
		r, err := v.UnaryMinus()
		return wrapValue(r, err)
	case ast.OpFactorial:
		r, err := v.Factorial()
		return wrapValue(r, err)
	case ast.OpNot:
		if v.IsNull() {
			return FromValue(value.Null()), nil
		}
		b, ok := v.AsBool()
		if !ok {
			return Evaluated{}, sqlerr.New(sqlerr.KindBooleanRequired, "NOT requires a boolean operand")
		}
		return FromValue(value.NewBool(!b)), nil
	}
	return Evaluated{}, sqlerr.New(sqlerr.KindUnsupportedUnaryOp, "unsupported unary operator")
}

func wrapValue(v value.Value, err error) (Evaluated, error) {
	if err != nil {
		return Evaluated{}, err
	}
	return FromValue(v), nil
}

func (ev *evaluator) cast(e ast.Cast) (Evaluated, error) {
	v, err := ev.forceValue(e.Expr)
	if err != nil {
		return Evaluated{}, err
	}
	dt, err := dataTypeByName(e.DataType)
	if err != nil {
		return Evaluated{}, err
	}
	r, err := v.Cast(dt)
	return wrapValue(r, err)
}

func (ev *evaluator) extract(e ast.Extract) (Evaluated, error) {
	v, err := ev.forceValue(e.Expr)
	if err != nil {
		return Evaluated{}, err
	}
	r, err := extractField(e.Field, v)
	return wrapValue(r, err)
}

func (ev *evaluator) caseExpr(e ast.Case) (Evaluated, error) {
	var operand *value.Value
	if e.Operand != nil {
		v, err := ev.forceValue(e.Operand)
		if err != nil {
			return Evaluated{}, err
		}
		operand = &v
	}
	for _, wt := range e.WhenThen {
		if operand == nil {
			cond, err := ev.forceValue(wt.When)
			if err != nil {
				return Evaluated{}, err
			}
			b, ok := cond.AsBool()
			if ok && b {
				return ev.eval(wt.Then)
			}
			continue
		}
		whenVal, err := ev.forceValue(wt.When)
		if err != nil {
			return Evaluated{}, err
		}
		if operand.Equal(whenVal) {
			return ev.eval(wt.Then)
		}
	}
	if e.Else != nil {
		return ev.eval(e.Else)
	}
	return FromValue(value.Null()), nil
}

func (ev *evaluator) subquery(q *ast.Query) (Evaluated, error) {
	labels, rows, err := ev.storage.RunQuery(ev.ctx, q, ev.fc)
	if err != nil {
		return Evaluated{}, err
	}
	if len(rows) != 1 {
		return Evaluated{}, sqlerr.New(sqlerr.KindMoreThanOneRow, "subquery returned %d rows, expected exactly one", len(rows))
	}
	if len(labels) != 1 {
		return Evaluated{}, sqlerr.New(sqlerr.KindMoreThanOneColumn, "subquery returned %d columns, expected exactly one", len(labels))
	}
	return FromValue(rows[0][0]), nil
}

func (ev *evaluator) exists(e ast.Exists) (Evaluated, error) {
	_, rows, err := ev.storage.RunQuery(ev.ctx, e.Query, ev.fc)
	if err != nil {
		return Evaluated{}, err
	}
	result := len(rows) > 0
	if e.Negated {
		result = !result
	}
	return FromValue(value.NewBool(result)), nil
}

func (ev *evaluator) inSubquery(e ast.InSubquery) (Evaluated, error) {
	v, err := ev.forceValue(e.Expr)
	if err != nil {
		return Evaluated{}, err
	}
	labels, rows, err := ev.storage.RunQuery(ev.ctx, e.Subquery, ev.fc)
	if err != nil {
		return Evaluated{}, err
	}
	if len(labels) != 1 {
		return Evaluated{}, sqlerr.New(sqlerr.KindMoreThanOneColumn, "IN subquery returned %d columns, expected exactly one", len(labels))
	}
	if v.IsNull() {
		return FromValue(value.Null()), nil
	}
	sawNull := false
	for _, row := range rows {
		if row[0].IsNull() {
			sawNull = true
			continue
		}
		if v.Equal(row[0]) {
			return FromValue(value.NewBool(!e.Negated)), nil
		}
	}
	if sawNull {
		return FromValue(value.Null()), nil
	}
	return FromValue(value.NewBool(e.Negated)), nil
}
