package plan

import "github.com/gluesql/gluesql-sub000/core/ast"

// SchemaColumns resolves a table's column names so the planner can
// recognize real equi-join predicates against them. Execute supplies
// one backed by storage.Store.FetchSchema; a nil lookup (or one that
// returns nil) degrades every ast.Table/ast.Dictionary frame back to
// an empty scope, so callers that don't have a store handy still get
// a correct, if unoptimized, NestedLoop plan.
type SchemaColumns func(table string) []string

// Plan rewrites stmt in place (returning the rewritten copy): only
// Query statements are touched; every other statement kind passes
// through unchanged. Re-planning an already planned tree is idempotent
// (planning a Hash join is a no-op since
// checkEvaluable against the same contexts reproduces the same split).
func Plan(stmt ast.Statement, outer *Context, lookup SchemaColumns) ast.Statement {
	qs, ok := stmt.(ast.QueryStatement)
	if !ok {
		return stmt
	}
	return ast.QueryStatement{Query: planQuery(qs.Query, outer, lookup)}
}

func planQuery(q *ast.Query, outer *Context, lookup SchemaColumns) *ast.Query {
	if q == nil {
		return nil
	}
	body := q.Body
	if sel, ok := q.Body.(ast.Select); ok {
		body = planSelect(sel, outer, lookup)
	}
	return &ast.Query{Body: body, OrderBy: q.OrderBy, Limit: q.Limit, Offset: q.Offset}
}

func planSelect(sel ast.Select, outer *Context, lookup SchemaColumns) ast.Select {
	from, ctx := planTableWithJoins(sel.From, outer, lookup)
	sel.From = from
	_ = ctx
	return sel
}

// planTableWithJoins walks relation-then-joins left to right, so that
// each join's "left-side tables so far" context only contains frames
// already walked.
func planTableWithJoins(t ast.TableWithJoins, outer *Context, lookup SchemaColumns) (ast.TableWithJoins, *Context) {
	relCtx := contextFor(t.Relation, outer, lookup)
	leftSoFar := relCtx

	joins := make([]ast.Join, len(t.Joins))
	for i, j := range t.Joins {
		rightCtx := contextFor(j.Relation, outer, lookup)
		planned := planJoin(j, leftSoFar, rightCtx, outer)
		joins[i] = planned
		leftSoFar = Merge(rightCtx, leftSoFar)
	}
	return ast.TableWithJoins{Relation: t.Relation, Joins: joins}, leftSoFar
}

func contextFor(f ast.TableFactor, outer *Context, lookup SchemaColumns) *Context {
	switch v := f.(type) {
	case ast.Table:
		alias := v.Alias
		if alias == "" {
			alias = v.Name
		}
		return NewContext(alias, columnsFor(lookup, v.Name), nil)
	case ast.Derived:
		return NewContext(v.Alias, nil, nil)
	case ast.Series:
		return NewContext(v.Alias, []string{"N"}, nil)
	case ast.Dictionary:
		alias := v.Alias
		if alias == "" {
			alias = v.Name
		}
		return NewContext(alias, columnsFor(lookup, v.Name), nil)
	}
	return NewContext("", nil, nil)
}

func columnsFor(lookup SchemaColumns, name string) []string {
	if lookup == nil {
		return nil
	}
	return lookup(name)
}

func planJoin(j ast.Join, leftSoFar, rightCtx, outer *Context) ast.Join {
	pred := j.JoinOperator.Constraint
	if pred == nil {
		return j
	}
	keyCtx := Merge(rightCtx, outer)
	valueCtx := Merge(leftSoFar, outer)
	exec := planExpr(pred, keyCtx, valueCtx, outer)
	j.JoinExecutor = exec
	return j
}

// planExpr implements recursive algorithm over the ON
// predicate. keyCtx/valueCtx are the (right-table, outer) and
// (left-tables-so-far, outer) scopes, respectively.
func planExpr(expr ast.Expr, keyCtx, valueCtx, outer *Context) ast.JoinExecutor {
	switch e := expr.(type) {
	case ast.Nested:
		return planExpr(e.Expr, keyCtx, valueCtx, outer)
	case ast.BinaryOp:
		if e.Op == ast.OpEq {
			if checkEvaluable(keyCtx, e.Left) && checkEvaluable(valueCtx, e.Right) {
				return ast.Hash{KeyExpr: e.Left, ValueExpr: e.Right}
			}
			if checkEvaluable(keyCtx, e.Right) && checkEvaluable(valueCtx, e.Left) {
				return ast.Hash{KeyExpr: e.Right, ValueExpr: e.Left}
			}
			return ast.NestedLoop{Predicate: expr}
		}
		if e.Op == ast.OpAnd {
			left := planExpr(e.Left, keyCtx, valueCtx, outer)
			if hash, ok := left.(ast.Hash); ok {
				whereClause, residual := splitEvaluable(e.Right, keyCtx)
				hash.Where = andExprs(hash.Where, whereClause)
				if residual != nil {
					keyEq := ast.BinaryOp{Left: hash.KeyExpr, Op: ast.OpEq, Right: hash.ValueExpr}
					return ast.NestedLoop{Predicate: andExprs(andExprs(keyEq, residualExprOf(hash)), residual)}
				}
				return hash
			}
			right := planExpr(e.Right, keyCtx, valueCtx, outer)
			if hash, ok := right.(ast.Hash); ok {
				whereClause, residual := splitEvaluable(e.Left, keyCtx)
				hash.Where = andExprs(hash.Where, whereClause)
				if residual != nil {
					keyEq := ast.BinaryOp{Left: hash.KeyExpr, Op: ast.OpEq, Right: hash.ValueExpr}
					return ast.NestedLoop{Predicate: andExprs(residual, andExprs(keyEq, residualExprOf(hash)))}
				}
				return hash
			}
			return ast.NestedLoop{Predicate: expr}
		}
		return ast.NestedLoop{Predicate: expr}
	}
	return ast.NestedLoop{Predicate: expr}
}

// residualExprOf extracts the already-assigned Where clause of a Hash
// plan so a later AND-merge does not lose it (only used transitionally
// while combining a freshly split residual with an existing one).
func residualExprOf(h ast.Hash) ast.Expr { return h.Where }

// splitEvaluable partitions expr into (evaluable-in-ctx-part, residual)
// step 2's "find_evaluable(outer ∪ current)": an AND
// chain is split term-by-term; anything else is kept whole as residual
// unless fully evaluable.
func splitEvaluable(expr ast.Expr, ctx *Context) (evaluable ast.Expr, residual ast.Expr) {
	if and, ok := expr.(ast.BinaryOp); ok && and.Op == ast.OpAnd {
		le, lr := splitEvaluable(and.Left, ctx)
		re, rr := splitEvaluable(and.Right, ctx)
		return andExprs(le, re), andExprs(lr, rr)
	}
	if checkEvaluable(ctx, expr) {
		return expr, nil
	}
	return nil, expr
}

func andExprs(a, b ast.Expr) ast.Expr {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		return ast.BinaryOp{Left: a, Op: ast.OpAnd, Right: b}
	}
}

// checkEvaluable recursively returns true iff every identifier in expr
// is resolvable in ctx.
func checkEvaluable(ctx *Context, expr ast.Expr) bool {
	switch e := expr.(type) {
	case ast.Identifier:
		return ctx.Contains(e.Name)
	case ast.CompoundIdentifier:
		if len(e.Parts) != 2 {
			return false
		}
		return ctx.ContainsQualified(e.Parts[0], e.Parts[1])
	case ast.LiteralExpr:
		return true
	case ast.TypedString:
		return true
	case ast.IsNull:
		return checkEvaluable(ctx, e.Expr)
	case ast.IsNotNull:
		return checkEvaluable(ctx, e.Expr)
	case ast.Between:
		return checkEvaluable(ctx, e.Expr) && checkEvaluable(ctx, e.Low) && checkEvaluable(ctx, e.High)
	case ast.BinaryOp:
		return checkEvaluable(ctx, e.Left) && checkEvaluable(ctx, e.Right)
	case ast.UnaryOp:
		return checkEvaluable(ctx, e.Expr)
	case ast.Cast:
		return checkEvaluable(ctx, e.Expr)
	case ast.Extract:
		return checkEvaluable(ctx, e.Expr)
	case ast.Nested:
		return checkEvaluable(ctx, e.Expr)
	case ast.InList:
		if !checkEvaluable(ctx, e.Expr) {
			return false
		}
		for _, it := range e.List {
			if !checkEvaluable(ctx, it) {
				return false
			}
		}
		return true
	case ast.Case:
		if e.Operand != nil && !checkEvaluable(ctx, e.Operand) {
			return false
		}
		for _, wt := range e.WhenThen {
			if !checkEvaluable(ctx, wt.When) || !checkEvaluable(ctx, wt.Then) {
				return false
			}
		}
		if e.Else != nil {
			return checkEvaluable(ctx, e.Else)
		}
		return true
	case ast.Function:
		for _, a := range e.Args {
			if !checkEvaluable(ctx, a) {
				return false
			}
		}
		return true
	}
	// Subquery, InSubquery, Exists, Aggregate: evaluability depends on
	// storage/aggregate context, not the lexical scope alone, so the
	// planner conservatively treats them as not staticly evaluable here
	// and leaves the predicate to NestedLoop.
	return false
}
