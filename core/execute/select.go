package execute

import (
	"sort"
	"strconv"

	"github.com/gluesql/gluesql-sub000/core/ast"
	"github.com/gluesql/gluesql-sub000/core/evaluate"
	"github.com/gluesql/gluesql-sub000/core/plan"
	"github.com/gluesql/gluesql-sub000/core/sqlerr"
	"github.com/gluesql/gluesql-sub000/core/value"
)

// frame is one table's contribution to a joined row.
type frame struct {
	alias  string
	labels []string
	values []value.Value
}

// rowChain is a fully joined row, one frame per table contributing to it.
type rowChain []frame

func chainFC(chain rowChain, outer *evaluate.FilterContext) *evaluate.FilterContext {
	fc := outer
	for _, f := range chain {
		fc = evaluate.NewFilterContext(f.alias, f.labels, f.values, fc)
	}
	return fc
}

func planContextFromFC(fc *evaluate.FilterContext) *plan.Context {
	var frames []*evaluate.FilterContext
	for f := fc; f != nil; f = f.Outer {
		frames = append(frames, f)
	}
	var ctx *plan.Context
	for i := len(frames) - 1; i >= 0; i-- {
		ctx = plan.NewContext(frames[i].Alias, frames[i].Labels, ctx)
	}
	return ctx
}

// planSchemaColumns backs plan.SchemaColumns with the real schema, so
// the planner's checkEvaluable sees actual column names instead of an
// always-empty scope (a table/dictionary that isn't found just plans
// conservatively, as FetchSchema's error/nil case below falls through).
func (ex *executor) planSchemaColumns(name string) []string {
	schema, err := ex.store.FetchSchema(ex.ctx, name)
	if err != nil || schema == nil {
		return nil
	}
	return schema.ColumnNames()
}

func nullFrame(alias string, labels []string) frame {
	values := make([]value.Value, len(labels))
	for i := range values {
		values[i] = value.Null()
	}
	return frame{alias: alias, labels: labels, values: values}
}

func appendChain(chain rowChain, f frame) rowChain {
	out := make(rowChain, len(chain), len(chain)+1)
	copy(out, chain)
	return append(out, f)
}

// runQuery is the SELECT pipeline's entry point: plan the
// joins against the visible outer scope, then dispatch on the query's
// body (SELECT or VALUES).
func (ex *executor) runQuery(q *ast.Query, outer *evaluate.FilterContext) ([]string, [][]value.Value, error) {
	planned := plan.Plan(ast.QueryStatement{Query: q}, planContextFromFC(outer), ex.planSchemaColumns).(ast.QueryStatement)
	q = planned.Query

	switch body := q.Body.(type) {
	case ast.Values:
		return ex.runValues(body, q, outer)
	case ast.Select:
		return ex.runSelect(body, q, outer)
	}
	return nil, nil, sqlerr.New(sqlerr.KindUnsupportedSyntax, "unsupported query body %T", q.Body)
}

func (ex *executor) runValues(v ast.Values, q *ast.Query, outer *evaluate.FilterContext) ([]string, [][]value.Value, error) {
	if len(v.Rows) == 0 {
		return nil, nil, nil
	}
	rows := make([][]value.Value, len(v.Rows))
	for i, exprs := range v.Rows {
		row := make([]value.Value, len(exprs))
		for j, e := range exprs {
			val, err := ex.evalValue(outer, nil, e)
			if err != nil {
				return nil, nil, err
			}
			row[j] = val
		}
		rows[i] = row
	}
	labels := make([]string, len(v.Rows[0]))
	for i := range labels {
		labels[i] = "column" + strconv.Itoa(i+1)
	}
	rows, err := ex.limitOffset(rows, q, outer)
	return labels, rows, err
}

func (ex *executor) runSelect(sel ast.Select, q *ast.Query, outer *evaluate.FilterContext) ([]string, [][]value.Value, error) {
	chains, err := ex.scanFrom(sel.From, outer)
	if err != nil {
		return nil, nil, err
	}

	if sel.Selection != nil {
		filtered := chains[:0]
		for _, chain := range chains {
			fc := chainFC(chain, outer)
			ok, err := rowMatchesExpr(ex, fc, sel.Selection)
			if err != nil {
				return nil, nil, err
			}
			if ok {
				filtered = append(filtered, chain)
			}
		}
		chains = filtered
	}

	hasAgg := len(sel.GroupBy) > 0 || containsAggregate(sel.Projection) || containsAggregateExpr(sel.Having)
	if !hasAgg {
		return ex.project(sel, q, chains, outer)
	}
	return ex.projectGrouped(sel, q, chains, outer)
}

// scanFrom resolves the FROM clause into every joined combination of
// rows, honoring the join executor the planner chose.
func (ex *executor) scanFrom(from ast.TableWithJoins, outer *evaluate.FilterContext) ([]rowChain, error) {
	alias, labels, rows, err := ex.scanTableFactor(from.Relation, outer)
	if err != nil {
		return nil, err
	}
	chains := make([]rowChain, len(rows))
	for i, r := range rows {
		chains[i] = rowChain{{alias: alias, labels: labels, values: r}}
	}

	for _, j := range from.Joins {
		rAlias, rLabels, rRows, err := ex.scanTableFactor(j.Relation, outer)
		if err != nil {
			return nil, err
		}
		leftOuter := j.JoinOperator.Kind == ast.JoinLeftOuter
		chains, err = ex.applyJoin(chains, rAlias, rLabels, rRows, j.JoinExecutor, leftOuter, outer)
		if err != nil {
			return nil, err
		}
	}
	return chains, nil
}

func (ex *executor) applyJoin(left []rowChain, rAlias string, rLabels []string, rRows [][]value.Value, exec ast.JoinExecutor, leftOuter bool, outer *evaluate.FilterContext) ([]rowChain, error) {
	switch e := exec.(type) {
	case ast.Hash:
		return ex.applyHashJoin(left, rAlias, rLabels, rRows, e, leftOuter, outer)
	case ast.NestedLoop:
		return ex.applyNestedLoopJoin(left, rAlias, rLabels, rRows, e.Predicate, leftOuter, outer)
	}
	return ex.applyNestedLoopJoin(left, rAlias, rLabels, rRows, nil, leftOuter, outer)
}

func (ex *executor) applyNestedLoopJoin(left []rowChain, rAlias string, rLabels []string, rRows [][]value.Value, predicate ast.Expr, leftOuter bool, outer *evaluate.FilterContext) ([]rowChain, error) {
	out := make([]rowChain, 0, len(left))
	for _, chain := range left {
		matched := false
		for _, rrow := range rRows {
			combined := appendChain(chain, frame{alias: rAlias, labels: rLabels, values: rrow})
			if predicate != nil {
				ok, err := rowMatchesExpr(ex, chainFC(combined, outer), predicate)
				if err != nil {
					return nil, err
				}
				if !ok {
					continue
				}
			}
			matched = true
			out = append(out, combined)
		}
		if !matched && leftOuter {
			out = append(out, appendChain(chain, nullFrame(rAlias, rLabels)))
		}
	}
	return out, nil
}

func (ex *executor) applyHashJoin(left []rowChain, rAlias string, rLabels []string, rRows [][]value.Value, h ast.Hash, leftOuter bool, outer *evaluate.FilterContext) ([]rowChain, error) {
	buckets := map[string][]int{}
	for i, rrow := range rRows {
		fc := evaluate.NewFilterContext(rAlias, rLabels, rrow, outer)
		kv, err := ex.evalValue(fc, nil, h.KeyExpr)
		if err != nil {
			return nil, err
		}
		if kv.IsNull() {
			continue
		}
		key, err := kv.ToCmpBEBytes()
		if err != nil {
			return nil, err
		}
		buckets[string(key)] = append(buckets[string(key)], i)
	}

	out := make([]rowChain, 0, len(left))
	for _, chain := range left {
		vv, err := ex.evalValue(chainFC(chain, outer), nil, h.ValueExpr)
		if err != nil {
			return nil, err
		}
		var idxs []int
		if !vv.IsNull() {
			key, err := vv.ToCmpBEBytes()
			if err != nil {
				return nil, err
			}
			idxs = buckets[string(key)]
		}
		matched := false
		for _, idx := range idxs {
			combined := appendChain(chain, frame{alias: rAlias, labels: rLabels, values: rRows[idx]})
			if h.Where != nil {
				ok, err := rowMatchesExpr(ex, chainFC(combined, outer), h.Where)
				if err != nil {
					return nil, err
				}
				if !ok {
					continue
				}
			}
			matched = true
			out = append(out, combined)
		}
		if !matched && leftOuter {
			out = append(out, appendChain(chain, nullFrame(rAlias, rLabels)))
		}
	}
	return out, nil
}

func (ex *executor) scanTableFactor(tf ast.TableFactor, outer *evaluate.FilterContext) (string, []string, [][]value.Value, error) {
	switch t := tf.(type) {
	case ast.Table:
		schema, err := ex.store.FetchSchema(ex.ctx, t.Name)
		if err != nil {
			return "", nil, nil, err
		}
		if schema == nil {
			return "", nil, nil, sqlerr.New(sqlerr.KindTableNotFound, "table %q not found", t.Name)
		}
		keyed, err := ex.store.ScanData(ex.ctx, t.Name)
		if err != nil {
			return "", nil, nil, err
		}
		alias := t.Alias
		if alias == "" {
			alias = t.Name
		}
		rows := make([][]value.Value, len(keyed))
		for i, kr := range keyed {
			rows[i] = kr.Row.Values
		}
		return alias, schema.ColumnNames(), rows, nil
	case ast.Derived:
		labels, rows, err := ex.runQuery(t.Subquery, outer)
		return t.Alias, labels, rows, err
	case ast.Series:
		n, err := ex.evalValue(outer, nil, t.Size)
		if err != nil {
			return "", nil, nil, err
		}
		size, ok := n.AsI64()
		if !ok {
			return "", nil, nil, sqlerr.New(sqlerr.KindUnsupportedSyntax, "SERIES size must be an integer")
		}
		rows := make([][]value.Value, 0, size)
		for i := int64(0); i < size; i++ {
			rows = append(rows, []value.Value{value.NewI64(i)})
		}
		return t.Alias, []string{"N"}, rows, nil
	case ast.Dictionary:
		return ex.scanDictionary(t)
	}
	return "", nil, nil, sqlerr.New(sqlerr.KindUnsupportedSyntax, "unsupported table factor %T", tf)
}

// scanDictionary serves the built-in GLUE_* catalog tables, an addition
// over the dropped information-schema surface.
func (ex *executor) scanDictionary(d ast.Dictionary) (string, []string, [][]value.Value, error) {
	alias := d.Alias
	if alias == "" {
		alias = d.Name
	}
	if d.Name != "TABLES" {
		return alias, nil, nil, nil
	}
	schemas, err := ex.store.FetchAllSchemas(ex.ctx)
	if err != nil {
		return "", nil, nil, err
	}
	rows := make([][]value.Value, len(schemas))
	for i, s := range schemas {
		rows[i] = []value.Value{value.NewStr(s.TableName)}
	}
	return alias, []string{"TABLE_NAME"}, rows, nil
}

// scoredRow pairs a projected output row with its ORDER BY key values,
// computed once up front so sortScored never re-evaluates expressions.
type scoredRow struct {
	row  []value.Value
	keys []value.Value
}

func rowMatchesExpr(ex *executor, fc *evaluate.FilterContext, predicate ast.Expr) (bool, error) {
	v, err := ex.evalValue(fc, nil, predicate)
	if err != nil {
		return false, err
	}
	b, ok := v.AsBool()
	return ok && b, nil
}

func containsAggregate(items []ast.SelectItem) bool {
	for _, it := range items {
		if ewl, ok := it.(ast.ExprWithLabel); ok && containsAggregateExpr(ewl.Expr) {
			return true
		}
	}
	return false
}

// containsAggregateExpr walks expr for an Aggregate node without
// descending into nested subqueries (those have their own scope).
func containsAggregateExpr(expr ast.Expr) bool {
	switch e := expr.(type) {
	case nil:
		return false
	case ast.Aggregate:
		return true
	case ast.BinaryOp:
		return containsAggregateExpr(e.Left) || containsAggregateExpr(e.Right)
	case ast.UnaryOp:
		return containsAggregateExpr(e.Expr)
	case ast.Nested:
		return containsAggregateExpr(e.Expr)
	case ast.Cast:
		return containsAggregateExpr(e.Expr)
	case ast.Extract:
		return containsAggregateExpr(e.Expr)
	case ast.IsNull:
		return containsAggregateExpr(e.Expr)
	case ast.IsNotNull:
		return containsAggregateExpr(e.Expr)
	case ast.Between:
		return containsAggregateExpr(e.Expr) || containsAggregateExpr(e.Low) || containsAggregateExpr(e.High)
	case ast.InList:
		if containsAggregateExpr(e.Expr) {
			return true
		}
		for _, it := range e.List {
			if containsAggregateExpr(it) {
				return true
			}
		}
		return false
	case ast.Function:
		for _, a := range e.Args {
			if containsAggregateExpr(a) {
				return true
			}
		}
		return false
	case ast.Case:
		if e.Operand != nil && containsAggregateExpr(e.Operand) {
			return true
		}
		for _, wt := range e.WhenThen {
			if containsAggregateExpr(wt.When) || containsAggregateExpr(wt.Then) {
				return true
			}
		}
		if e.Else != nil {
			return containsAggregateExpr(e.Else)
		}
		return false
	}
	return false
}

// project implements the non-aggregate projection stage: blend each
// row's selection list, then order/limit/offset.
func (ex *executor) project(sel ast.Select, q *ast.Query, chains []rowChain, outer *evaluate.FilterContext) ([]string, [][]value.Value, error) {
	labels, err := projectionLabels(sel.Projection, chains)
	if err != nil {
		return nil, nil, err
	}

	scoredRows := make([]scoredRow, 0, len(chains))
	for _, chain := range chains {
		fc := chainFC(chain, outer)
		row, err := ex.blend(sel.Projection, fc, nil, chain)
		if err != nil {
			return nil, nil, err
		}
		keys, err := ex.orderKeys(q.OrderBy, fc, nil)
		if err != nil {
			return nil, nil, err
		}
		scoredRows = append(scoredRows, scoredRow{row: row, keys: keys})
	}

	sortScored(scoredRows, q.OrderBy)
	rows := make([][]value.Value, len(scoredRows))
	for i, s := range scoredRows {
		rows[i] = s.row
	}

	rows, err = ex.limitOffset(rows, q, outer)
	return labels, rows, err
}

// projectGrouped implements GROUP BY/aggregate projection: rows sharing
// a GROUP BY key become one group, each keyed aggregate is computed over
// its member rows, HAVING filters groups, then projection/order/limit
// proceed exactly as the non-aggregate path.
func (ex *executor) projectGrouped(sel ast.Select, q *ast.Query, chains []rowChain, outer *evaluate.FilterContext) ([]string, [][]value.Value, error) {
	type group struct {
		key     string
		rep     rowChain
		members []rowChain
	}
	order := make([]string, 0)
	groups := map[string]*group{}
	for _, chain := range chains {
		fc := chainFC(chain, outer)
		var keyBytes []byte
		for _, g := range sel.GroupBy {
			v, err := ex.evalValue(fc, nil, g)
			if err != nil {
				return nil, nil, err
			}
			b, err := v.ToCmpBEBytes()
			if err != nil {
				return nil, nil, err
			}
			keyBytes = append(keyBytes, b...)
		}
		key := string(keyBytes)
		grp, ok := groups[key]
		if !ok {
			grp = &group{key: key, rep: chain}
			groups[key] = grp
			order = append(order, key)
		}
		grp.members = append(grp.members, chain)
	}
	if len(groups) == 0 && len(sel.GroupBy) == 0 && containsAggregate(sel.Projection) {
		// No rows but an aggregate projection (e.g. COUNT(*)) still
		// produces exactly one row over the empty set.
		order = []string{""}
		groups[""] = &group{members: nil}
	}

	aggExprs := collectAggregates(sel.Projection, sel.Having)

	labels, err := projectionLabels(sel.Projection, nil)
	if err != nil {
		return nil, nil, err
	}

	scoredRows := make([]scoredRow, 0, len(groups))
	for _, key := range order {
		grp := groups[key]
		ac, err := ex.computeAggregates(aggExprs, grp.members, outer)
		if err != nil {
			return nil, nil, err
		}
		fc := chainFC(grp.rep, outer)
		if sel.Having != nil {
			ok, err := rowMatchesExpr(ex, fc, sel.Having)
			if err != nil {
				return nil, nil, err
			}
			if !ok {
				continue
			}
		}
		row, err := ex.blend(sel.Projection, fc, ac, grp.rep)
		if err != nil {
			return nil, nil, err
		}
		keys, err := ex.orderKeys(q.OrderBy, fc, ac)
		if err != nil {
			return nil, nil, err
		}
		scoredRows = append(scoredRows, scoredRow{row: row, keys: keys})
	}

	sortScored(scoredRows, q.OrderBy)
	rows := make([][]value.Value, len(scoredRows))
	for i, s := range scoredRows {
		rows[i] = s.row
	}
	rows, err = ex.limitOffset(rows, q, outer)
	return labels, rows, err
}

func collectAggregates(projection []ast.SelectItem, having ast.Expr) []ast.Aggregate {
	var out []ast.Aggregate
	seen := map[string]bool{}
	add := func(expr ast.Expr) {
		walkAggregates(expr, func(a ast.Aggregate) {
			key := a.ToSQL()
			if !seen[key] {
				seen[key] = true
				out = append(out, a)
			}
		})
	}
	for _, it := range projection {
		if ewl, ok := it.(ast.ExprWithLabel); ok {
			add(ewl.Expr)
		}
	}
	add(having)
	return out
}

func walkAggregates(expr ast.Expr, visit func(ast.Aggregate)) {
	switch e := expr.(type) {
	case nil:
		return
	case ast.Aggregate:
		visit(e)
	case ast.BinaryOp:
		walkAggregates(e.Left, visit)
		walkAggregates(e.Right, visit)
	case ast.UnaryOp:
		walkAggregates(e.Expr, visit)
	case ast.Nested:
		walkAggregates(e.Expr, visit)
	case ast.Cast:
		walkAggregates(e.Expr, visit)
	case ast.Extract:
		walkAggregates(e.Expr, visit)
	case ast.IsNull:
		walkAggregates(e.Expr, visit)
	case ast.IsNotNull:
		walkAggregates(e.Expr, visit)
	case ast.Between:
		walkAggregates(e.Expr, visit)
		walkAggregates(e.Low, visit)
		walkAggregates(e.High, visit)
	case ast.Function:
		for _, a := range e.Args {
			walkAggregates(a, visit)
		}
	case ast.Case:
		if e.Operand != nil {
			walkAggregates(e.Operand, visit)
		}
		for _, wt := range e.WhenThen {
			walkAggregates(wt.When, visit)
			walkAggregates(wt.Then, visit)
		}
		if e.Else != nil {
			walkAggregates(e.Else, visit)
		}
	}
}

// computeAggregates runs each distinct aggregate expression over a
// group's member rows, keyed by its rendered SQL text for
// evaluate.AggregateContext to look up during projection.
func (ex *executor) computeAggregates(aggs []ast.Aggregate, members []rowChain, outer *evaluate.FilterContext) (*evaluate.AggregateContext, error) {
	results := map[string]value.Value{}
	for _, agg := range aggs {
		v, err := ex.computeAggregate(agg, members, outer)
		if err != nil {
			return nil, err
		}
		results[agg.ToSQL()] = v
	}
	return &evaluate.AggregateContext{Results: results}, nil
}

func (ex *executor) computeAggregate(agg ast.Aggregate, members []rowChain, outer *evaluate.FilterContext) (value.Value, error) {
	if agg.Kind == ast.AggCount && agg.Expr == nil {
		return value.NewI64(int64(len(members))), nil
	}

	var vals []value.Value
	for _, chain := range members {
		fc := chainFC(chain, outer)
		v, err := ex.evalValue(fc, nil, agg.Expr)
		if err != nil {
			return value.Value{}, err
		}
		if v.IsNull() {
			continue
		}
		vals = append(vals, v)
	}
	if agg.Distinct {
		vals = dedupeValues(vals)
	}

	switch agg.Kind {
	case ast.AggCount:
		return value.NewI64(int64(len(vals))), nil
	case ast.AggSum:
		return foldValues(vals, func(a, b value.Value) (value.Value, error) { return a.Add(b) })
	case ast.AggMin:
		return foldValues(vals, func(a, b value.Value) (value.Value, error) {
			cmp, ok := a.Compare(b)
			if !ok {
				return value.Value{}, sqlerr.New(sqlerr.KindUnsupportedBinaryOp, "MIN operands are not comparable")
			}
			if cmp <= 0 {
				return a, nil
			}
			return b, nil
		})
	case ast.AggMax:
		return foldValues(vals, func(a, b value.Value) (value.Value, error) {
			cmp, ok := a.Compare(b)
			if !ok {
				return value.Value{}, sqlerr.New(sqlerr.KindUnsupportedBinaryOp, "MAX operands are not comparable")
			}
			if cmp >= 0 {
				return a, nil
			}
			return b, nil
		})
	case ast.AggAvg:
		if len(vals) == 0 {
			return value.Null(), nil
		}
		sum, err := foldValues(vals, func(a, b value.Value) (value.Value, error) { return a.Add(b) })
		if err != nil {
			return value.Value{}, err
		}
		return sum.Divide(value.NewI64(int64(len(vals))))
	}
	return value.Value{}, sqlerr.New(sqlerr.KindUnsupportedSyntax, "unsupported aggregate kind")
}

func dedupeValues(vals []value.Value) []value.Value {
	out := make([]value.Value, 0, len(vals))
	for _, v := range vals {
		dup := false
		for _, seen := range out {
			if v.Equal(seen) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}

func foldValues(vals []value.Value, op func(a, b value.Value) (value.Value, error)) (value.Value, error) {
	if len(vals) == 0 {
		return value.Null(), nil
	}
	acc := vals[0]
	for _, v := range vals[1:] {
		var err error
		acc, err = op(acc, v)
		if err != nil {
			return value.Value{}, err
		}
	}
	return acc, nil
}

// projectionLabels computes output column labels: wildcard expands to
// every visible column, qualified wildcard to one table's, and a plain
// item to its label (alias, or the expression's own text).
func projectionLabels(items []ast.SelectItem, chains []rowChain) ([]string, error) {
	var labels []string
	var sample rowChain
	if len(chains) > 0 {
		sample = chains[0]
	}
	for _, it := range items {
		switch v := it.(type) {
		case ast.Wildcard:
			for _, f := range sample {
				labels = append(labels, f.labels...)
			}
		case ast.QualifiedWildcard:
			for _, f := range sample {
				if f.alias == v.Table {
					labels = append(labels, f.labels...)
				}
			}
		case ast.ExprWithLabel:
			if v.Label != "" {
				labels = append(labels, v.Label)
			} else if ident, ok := v.Expr.(ast.Identifier); ok {
				labels = append(labels, ident.Name)
			} else {
				labels = append(labels, v.Expr.ToSQL())
			}
		}
	}
	return labels, nil
}

func (ex *executor) blend(items []ast.SelectItem, fc *evaluate.FilterContext, ac *evaluate.AggregateContext, chain rowChain) ([]value.Value, error) {
	var out []value.Value
	for _, it := range items {
		switch v := it.(type) {
		case ast.Wildcard:
			for _, f := range chain {
				out = append(out, f.values...)
			}
		case ast.QualifiedWildcard:
			for _, f := range chain {
				if f.alias == v.Table {
					out = append(out, f.values...)
				}
			}
		case ast.ExprWithLabel:
			val, err := ex.evalValue(fc, ac, v.Expr)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
	}
	return out, nil
}

func (ex *executor) orderKeys(orderBy []ast.OrderByExpr, fc *evaluate.FilterContext, ac *evaluate.AggregateContext) ([]value.Value, error) {
	if len(orderBy) == 0 {
		return nil, nil
	}
	keys := make([]value.Value, len(orderBy))
	for i, o := range orderBy {
		v, err := ex.evalValue(fc, ac, o.Expr)
		if err != nil {
			return nil, err
		}
		keys[i] = v
	}
	return keys, nil
}

func sortScored(rows []scoredRow, orderBy []ast.OrderByExpr) {
	if len(orderBy) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for k, o := range orderBy {
			a, b := rows[i].keys[k], rows[j].keys[k]
			if a.IsNull() && b.IsNull() {
				continue
			}
			if a.IsNull() {
				return o.Asc
			}
			if b.IsNull() {
				return !o.Asc
			}
			cmp, ok := a.Compare(b)
			if !ok || cmp == 0 {
				continue
			}
			if o.Asc {
				return cmp < 0
			}
			return cmp > 0
		}
		return false
	})
}

func (ex *executor) limitOffset(rows [][]value.Value, q *ast.Query, outer *evaluate.FilterContext) ([][]value.Value, error) {
	if q.Offset != nil {
		v, err := ex.evalValue(outer, nil, q.Offset)
		if err != nil {
			return nil, err
		}
		n, ok := v.AsI64()
		if !ok {
			return nil, sqlerr.New(sqlerr.KindUnsupportedSyntax, "OFFSET must be an integer")
		}
		if n < 0 {
			n = 0
		}
		if n > int64(len(rows)) {
			n = int64(len(rows))
		}
		rows = rows[n:]
	}
	if q.Limit != nil {
		v, err := ex.evalValue(outer, nil, q.Limit)
		if err != nil {
			return nil, err
		}
		n, ok := v.AsI64()
		if !ok {
			return nil, sqlerr.New(sqlerr.KindUnsupportedSyntax, "LIMIT must be an integer")
		}
		if n < 0 {
			n = 0
		}
		if n < int64(len(rows)) {
			rows = rows[:n]
		}
	}
	return rows, nil
}
