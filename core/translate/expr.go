package translate

import (
	"github.com/gluesql/gluesql-sub000/core/ast"
	"github.com/gluesql/gluesql-sub000/core/literal"
	"github.com/gluesql/gluesql-sub000/core/sqlerr"
)

var binOpNames = map[string]ast.BinaryOperator{
	"+": ast.OpPlus, "-": ast.OpMinus, "*": ast.OpMultiply, "/": ast.OpDivide, "%": ast.OpModulo,
	"=": ast.OpEq, "<>": ast.OpNotEq, "!=": ast.OpNotEq,
	"<": ast.OpLt, "<=": ast.OpLtEq, ">": ast.OpGt, ">=": ast.OpGtEq,
	"AND": ast.OpAnd, "OR": ast.OpOr, "LIKE": ast.OpLike, "NOT LIKE": ast.OpNotLike,
	"||": ast.OpStringConcat,
}

var unOpNames = map[string]ast.UnaryOperator{
	"+": ast.OpUnaryPlus, "-": ast.OpUnaryMinus, "NOT": ast.OpNot, "!": ast.OpFactorial,
}

var aggNames = map[string]ast.AggregateKind{
	"COUNT": ast.AggCount, "SUM": ast.AggSum, "MIN": ast.AggMin, "MAX": ast.AggMax, "AVG": ast.AggAvg,
}

func (t *translator) expr(p PExpr) (ast.Expr, error) {
	switch {
	case p.Param != 0:
		idx := p.Param - 1
		if idx < 0 || idx >= len(t.params) {
			return nil, sqlerr.New(sqlerr.KindInvalidParamPlaceholder,
				"parameter placeholder %q out of range (have %d params)", p.ParamRaw, len(t.params))
		}
		return ast.LiteralExpr{Value: t.params[idx]}, nil
	case len(p.Ident) == 1:
		return ast.Identifier{Name: p.Ident[0]}, nil
	case len(p.Ident) > 1:
		return ast.CompoundIdentifier{Parts: p.Ident}, nil
	case p.LiteralBool != nil:
		return ast.LiteralExpr{Value: literal.Boolean(*p.LiteralBool)}, nil
	case p.LiteralNumber != "":
		lit, err := literalFromNumber(p.LiteralNumber)
		if err != nil {
			return nil, err
		}
		return ast.LiteralExpr{Value: lit}, nil
	case p.LiteralText != nil:
		return ast.LiteralExpr{Value: literal.Text(*p.LiteralText)}, nil
	case p.LiteralIsNull:
		return ast.LiteralExpr{Value: literal.Null()}, nil
	case p.TypedStringTy != "":
		return ast.TypedString{DataType: p.TypedStringTy, Value: p.TypedStringVal}, nil
	case p.IsNullOf != nil:
		inner, err := t.expr(*p.IsNullOf)
		if err != nil {
			return nil, err
		}
		return ast.IsNull{Expr: inner}, nil
	case p.IsNotNullOf != nil:
		inner, err := t.expr(*p.IsNotNullOf)
		if err != nil {
			return nil, err
		}
		return ast.IsNotNull{Expr: inner}, nil
	case p.InList != nil:
		return t.inList(*p.InList)
	case p.InSubquery != nil:
		return t.inSubquery(*p.InSubquery)
	case p.Between != nil:
		return t.between(*p.Between)
	case p.BinaryOp != nil:
		return t.binaryOp(*p.BinaryOp)
	case p.UnaryOp != nil:
		return t.unaryOp(*p.UnaryOp)
	case p.Cast != nil:
		inner, err := t.expr(p.Cast.Expr)
		if err != nil {
			return nil, err
		}
		return ast.Cast{Expr: inner, DataType: p.Cast.DataType}, nil
	case p.Extract != nil:
		inner, err := t.expr(p.Extract.Expr)
		if err != nil {
			return nil, err
		}
		return ast.Extract{Field: p.Extract.Field, Expr: inner}, nil
	case p.Nested != nil:
		inner, err := t.expr(*p.Nested)
		if err != nil {
			return nil, err
		}
		return ast.Nested{Expr: inner}, nil
	case p.Case != nil:
		return t.caseExpr(*p.Case)
	case p.Subquery != nil:
		q, err := t.query(p.Subquery)
		if err != nil {
			return nil, err
		}
		return ast.Subquery{Query: q}, nil
	case p.Exists != nil:
		q, err := t.query(p.Exists.Query)
		if err != nil {
			return nil, err
		}
		return ast.Exists{Query: q, Negated: p.Exists.Negated}, nil
	case p.Function != nil:
		return t.function(*p.Function)
	case p.Aggregate != nil:
		return t.aggregate(*p.Aggregate)
	}
	return nil, sqlerr.New(sqlerr.KindUnsupportedSyntax, "expression has no recognized variant set")
}

func (t *translator) inList(p PInList) (ast.Expr, error) {
	inner, err := t.expr(p.Expr)
	if err != nil {
		return nil, err
	}
	items := make([]ast.Expr, 0, len(p.List))
	for _, e := range p.List {
		ie, err := t.expr(e)
		if err != nil {
			return nil, err
		}
		items = append(items, ie)
	}
	return ast.InList{Expr: inner, List: items, Negated: p.Negated}, nil
}

func (t *translator) inSubquery(p PInSubquery) (ast.Expr, error) {
	inner, err := t.expr(p.Expr)
	if err != nil {
		return nil, err
	}
	q, err := t.query(p.Subquery)
	if err != nil {
		return nil, err
	}
	return ast.InSubquery{Expr: inner, Subquery: q, Negated: p.Negated}, nil
}

func (t *translator) between(p PBetween) (ast.Expr, error) {
	e, err := t.expr(p.Expr)
	if err != nil {
		return nil, err
	}
	lo, err := t.expr(p.Low)
	if err != nil {
		return nil, err
	}
	hi, err := t.expr(p.High)
	if err != nil {
		return nil, err
	}
	return ast.Between{Expr: e, Negated: p.Negated, Low: lo, High: hi}, nil
}

func (t *translator) binaryOp(p PBinaryOp) (ast.Expr, error) {
	op, ok := binOpNames[p.Op]
	if !ok {
		return nil, sqlerr.New(sqlerr.KindUnsupportedSyntax, "unsupported binary operator %q", p.Op)
	}
	l, err := t.expr(p.Left)
	if err != nil {
		return nil, err
	}
	r, err := t.expr(p.Right)
	if err != nil {
		return nil, err
	}
	return ast.BinaryOp{Left: l, Op: op, Right: r}, nil
}

func (t *translator) unaryOp(p PUnaryOp) (ast.Expr, error) {
	op, ok := unOpNames[p.Op]
	if !ok {
		return nil, sqlerr.New(sqlerr.KindUnsupportedSyntax, "unsupported unary operator %q", p.Op)
	}
	e, err := t.expr(p.Expr)
	if err != nil {
		return nil, err
	}
	return ast.UnaryOp{Op: op, Expr: e}, nil
}

func (t *translator) caseExpr(p PCase) (ast.Expr, error) {
	var operand ast.Expr
	if p.Operand != nil {
		var err error
		operand, err = t.expr(*p.Operand)
		if err != nil {
			return nil, err
		}
	}
	wts := make([]ast.WhenThen, 0, len(p.WhenThen))
	for _, wt := range p.WhenThen {
		w, err := t.expr(wt.When)
		if err != nil {
			return nil, err
		}
		th, err := t.expr(wt.Then)
		if err != nil {
			return nil, err
		}
		wts = append(wts, ast.WhenThen{When: w, Then: th})
	}
	var elseExpr ast.Expr
	if p.Else != nil {
		var err error
		elseExpr, err = t.expr(*p.Else)
		if err != nil {
			return nil, err
		}
	}
	return ast.Case{Operand: operand, WhenThen: wts, Else: elseExpr}, nil
}

func (t *translator) function(p PFunction) (ast.Expr, error) {
	args := make([]ast.Expr, 0, len(p.Args))
	for _, a := range p.Args {
		ae, err := t.expr(a)
		if err != nil {
			return nil, err
		}
		args = append(args, ae)
	}
	return ast.Function{Name: p.Name, Args: args}, nil
}

func (t *translator) aggregate(p PAggregate) (ast.Expr, error) {
	kind, ok := aggNames[p.Name]
	if !ok {
		return nil, sqlerr.New(sqlerr.KindUnsupportedSyntax, "unsupported aggregate function %q", p.Name)
	}
	var inner ast.Expr
	if p.Expr != nil {
		var err error
		inner, err = t.expr(*p.Expr)
		if err != nil {
			return nil, err
		}
	}
	return ast.Aggregate{Kind: kind, Expr: inner, Distinct: p.Distinct}, nil
}

func (t *translator) query(p *PQuery) (*ast.Query, error) {
	body, err := t.setExpr(p.Body)
	if err != nil {
		return nil, err
	}
	obs := make([]ast.OrderByExpr, 0, len(p.OrderBy))
	for _, ob := range p.OrderBy {
		e, err := t.expr(ob.Expr)
		if err != nil {
			return nil, err
		}
		obs = append(obs, ast.OrderByExpr{Expr: e, Asc: ob.Asc})
	}
	var limit, offset ast.Expr
	if p.Limit != nil {
		limit, err = t.expr(*p.Limit)
		if err != nil {
			return nil, err
		}
	}
	if p.Offset != nil {
		offset, err = t.expr(*p.Offset)
		if err != nil {
			return nil, err
		}
	}
	return &ast.Query{Body: body, OrderBy: obs, Limit: limit, Offset: offset}, nil
}

func (t *translator) setExpr(p PSetExpr) (ast.SetExpr, error) {
	if p.Select != nil {
		return t.selectStmt(*p.Select)
	}
	rows := make([][]ast.Expr, 0, len(p.Values))
	for _, row := range p.Values {
		r := make([]ast.Expr, 0, len(row))
		for _, e := range row {
			ae, err := t.expr(e)
			if err != nil {
				return nil, err
			}
			r = append(r, ae)
		}
		rows = append(rows, r)
	}
	return ast.Values{Rows: rows}, nil
}

func (t *translator) selectStmt(p PSelect) (ast.Select, error) {
	items := make([]ast.SelectItem, 0, len(p.Projection))
	for _, it := range p.Projection {
		switch {
		case it.Wildcard:
			items = append(items, ast.Wildcard{})
		case it.QualifiedWildcard != "":
			items = append(items, ast.QualifiedWildcard{Table: it.QualifiedWildcard})
		default:
			e, err := t.expr(it.Expr)
			if err != nil {
				return ast.Select{}, err
			}
			items = append(items, ast.ExprWithLabel{Expr: e, Label: it.Label})
		}
	}
	from, err := t.tableWithJoins(p.From)
	if err != nil {
		return ast.Select{}, err
	}
	var sel ast.Expr
	if p.Selection != nil {
		sel, err = t.expr(*p.Selection)
		if err != nil {
			return ast.Select{}, err
		}
	}
	groupBy := make([]ast.Expr, 0, len(p.GroupBy))
	for _, g := range p.GroupBy {
		ge, err := t.expr(g)
		if err != nil {
			return ast.Select{}, err
		}
		groupBy = append(groupBy, ge)
	}
	var having ast.Expr
	if p.Having != nil {
		having, err = t.expr(*p.Having)
		if err != nil {
			return ast.Select{}, err
		}
	}
	return ast.Select{Projection: items, From: from, Selection: sel, GroupBy: groupBy, Having: having}, nil
}

func (t *translator) tableWithJoins(p PTableWithJoins) (ast.TableWithJoins, error) {
	rel, err := t.tableFactor(p.Relation)
	if err != nil {
		return ast.TableWithJoins{}, err
	}
	joins := make([]ast.Join, 0, len(p.Joins))
	for _, j := range p.Joins {
		if len(j.Using) > 0 {
			return ast.TableWithJoins{}, sqlerr.New(sqlerr.KindUnsupportedSyntax, "USING clause is not supported in JOIN")
		}
		jr, err := t.tableFactor(j.Relation)
		if err != nil {
			return ast.TableWithJoins{}, err
		}
		var constraint ast.Expr
		if j.Constraint != nil {
			constraint, err = t.expr(*j.Constraint)
			if err != nil {
				return ast.TableWithJoins{}, err
			}
		}
		kind := ast.JoinInner
		if j.LeftOuter {
			kind = ast.JoinLeftOuter
		}
		joins = append(joins, ast.Join{
			Relation:     jr,
			JoinOperator: ast.JoinOperator{Kind: kind, Constraint: constraint},
			JoinExecutor: ast.NestedLoop{Predicate: constraint},
		})
	}
	return ast.TableWithJoins{Relation: rel, Joins: joins}, nil
}

func (t *translator) tableFactor(p PTableFactor) (ast.TableFactor, error) {
	switch {
	case p.Derived != nil:
		q, err := t.query(p.Derived)
		if err != nil {
			return nil, err
		}
		return ast.Derived{Subquery: q, Alias: p.Alias}, nil
	case p.SeriesSize != nil:
		size, err := t.expr(*p.SeriesSize)
		if err != nil {
			return nil, err
		}
		return ast.Series{Size: size, Alias: p.Alias}, nil
	case p.DictionaryOf != "":
		return ast.Dictionary{Name: p.DictionaryOf, Alias: p.Alias}, nil
	default:
		if p.TableName == "" {
			return nil, sqlerr.New(sqlerr.KindUnsupportedSyntax, "table factor has no recognized variant set")
		}
		return ast.Table{Name: p.TableName, Alias: p.Alias, Index: p.IndexHint}, nil
	}
}

// CompoundObjectName rejects a qualified table name such as
// "schema.table" -- table names in this core are single identifiers.
func CompoundObjectName(name string) error {
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			return sqlerr.New(sqlerr.KindCompoundObjectName, "compound object name %q is not supported", name)
		}
	}
	return nil
}
