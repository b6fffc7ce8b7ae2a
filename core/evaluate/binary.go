package evaluate

import (
	"github.com/gluesql/gluesql-sub000/core/ast"
	"github.com/gluesql/gluesql-sub000/core/sqlerr"
	"github.com/gluesql/gluesql-sub000/core/value"
)

func (ev *evaluator) binaryOp(e ast.BinaryOp) (Evaluated, error) {
	// AND/OR get three-valued short-circuit treatment
	// before either side is forced, since NULL AND FALSE = FALSE must
	// not require evaluating the NULL side as an error.
	switch e.Op {
	case ast.OpAnd:
		return ev.andOp(e.Left, e.Right)
	case ast.OpOr:
		return ev.orOp(e.Left, e.Right)
	}

	l, err := ev.forceValue(e.Left)
	if err != nil {
		return Evaluated{}, err
	}
	r, err := ev.forceValue(e.Right)
	if err != nil {
		return Evaluated{}, err
	}

	switch e.Op {
	case ast.OpPlus:
		return wrapValue(l.Add(r))
	case ast.OpMinus:
		return wrapValue(l.Subtract(r))
	case ast.OpMultiply:
		return wrapValue(l.Multiply(r))
	case ast.OpDivide:
		return wrapValue(l.Divide(r))
	case ast.OpModulo:
		return wrapValue(l.Modulo(r))
	case ast.OpStringConcat:
		return wrapValue(l.Concat(r))
	case ast.OpEq:
		return ev.eqOp(l, r, false)
	case ast.OpNotEq:
		return ev.eqOp(l, r, true)
	case ast.OpLt:
		return ev.cmpOp(l, r, func(c int) bool { return c < 0 })
	case ast.OpLtEq:
		return ev.cmpOp(l, r, func(c int) bool { return c <= 0 })
	case ast.OpGt:
		return ev.cmpOp(l, r, func(c int) bool { return c > 0 })
	case ast.OpGtEq:
		return ev.cmpOp(l, r, func(c int) bool { return c >= 0 })
	case ast.OpLike, ast.OpNotLike:
		return ev.likeOp(l, r, e.Op == ast.OpNotLike)
	}
	return Evaluated{}, sqlerr.New(sqlerr.KindUnsupportedBinaryOp, "unsupported binary operator")
}

func (ev *evaluator) andOp(left, right ast.Expr) (Evaluated, error) {
	l, err := ev.forceValue(left)
	if err != nil {
		return Evaluated{}, err
	}
	if b, ok := l.AsBool(); ok && !b {
		return FromValue(value.NewBool(false)), nil
	}
	r, err := ev.forceValue(right)
	if err != nil {
		return Evaluated{}, err
	}
	if b, ok := r.AsBool(); ok && !b {
		return FromValue(value.NewBool(false)), nil
	}
	if l.IsNull() || r.IsNull() {
		return FromValue(value.Null()), nil
	}
	lb, lok := l.AsBool()
	rb, rok := r.AsBool()
	if !lok || !rok {
		return Evaluated{}, sqlerr.New(sqlerr.KindBooleanRequired, "AND requires boolean operands")
	}
	return FromValue(value.NewBool(lb && rb)), nil
}

func (ev *evaluator) orOp(left, right ast.Expr) (Evaluated, error) {
	l, err := ev.forceValue(left)
	if err != nil {
		return Evaluated{}, err
	}
	if b, ok := l.AsBool(); ok && b {
		return FromValue(value.NewBool(true)), nil
	}
	r, err := ev.forceValue(right)
	if err != nil {
		return Evaluated{}, err
	}
	if b, ok := r.AsBool(); ok && b {
		return FromValue(value.NewBool(true)), nil
	}
	if l.IsNull() || r.IsNull() {
		return FromValue(value.Null()), nil
	}
	lb, lok := l.AsBool()
	rb, rok := r.AsBool()
	if !lok || !rok {
		return Evaluated{}, sqlerr.New(sqlerr.KindBooleanRequired, "OR requires boolean operands")
	}
	return FromValue(value.NewBool(lb || rb)), nil
}

// eqOp implements SQL three-valued equality: Null = Null is Null, not
// Value.Equal's raw false, which is
// why this is reintroduced here rather than delegated to value.Equal.
func (ev *evaluator) eqOp(l, r value.Value, negate bool) (Evaluated, error) {
	if l.IsNull() || r.IsNull() {
		return FromValue(value.Null()), nil
	}
	eq := l.Equal(r)
	if negate {
		eq = !eq
	}
	return FromValue(value.NewBool(eq)), nil
}

func (ev *evaluator) cmpOp(l, r value.Value, pred func(int) bool) (Evaluated, error) {
	if l.IsNull() || r.IsNull() {
		return FromValue(value.Null()), nil
	}
	c, ok := l.Compare(r)
	if !ok {
		return Evaluated{}, sqlerr.New(sqlerr.KindUnsupportedBinaryOp, "values are not comparable")
	}
	return FromValue(value.NewBool(pred(c))), nil
}

func (ev *evaluator) likeOp(l, r value.Value, negate bool) (Evaluated, error) {
	if l.IsNull() || r.IsNull() {
		return FromValue(value.Null()), nil
	}
	ls, lok := l.AsStr()
	rs, rok := r.AsStr()
	if !lok || !rok {
		return Evaluated{}, sqlerr.New(sqlerr.KindLikeOnNonString, "LIKE requires text operands")
	}
	match := value.Like(ls, rs, true)
	if negate {
		match = !match
	}
	return FromValue(value.NewBool(match)), nil
}
