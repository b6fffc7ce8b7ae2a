package sqltext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gluesql/gluesql-sub000/core/translate"
)

// isTypeNameToken reports whether up is one of the identifiers
// parsePrimary treats as a possible typed-string-literal prefix (DATE '2024-01-01' style),
// reusing dataTypeAliases' key set.
func isTypeNameToken(up string) bool {
	_, ok := dataTypeAliases[up]
	return ok
}

func (p *parser) parseExpr() (translate.PExpr, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (translate.PExpr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return translate.PExpr{}, err
	}
	for p.at("OR") {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return translate.PExpr{}, err
		}
		left = translate.PExpr{BinaryOp: &translate.PBinaryOp{Left: left, Op: "OR", Right: right}}
	}
	return left, nil
}

func (p *parser) parseAnd() (translate.PExpr, error) {
	left, err := p.parseNot()
	if err != nil {
		return translate.PExpr{}, err
	}
	for p.at("AND") {
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return translate.PExpr{}, err
		}
		left = translate.PExpr{BinaryOp: &translate.PBinaryOp{Left: left, Op: "AND", Right: right}}
	}
	return left, nil
}

func (p *parser) parseNot() (translate.PExpr, error) {
	if p.at("NOT") {
		p.next()
		if p.at("EXISTS") {
			p.next()
			q, err := p.parseParenQuery()
			if err != nil {
				return translate.PExpr{}, err
			}
			return translate.PExpr{Exists: &translate.PExists{Query: q, Negated: true}}, nil
		}
		inner, err := p.parseNot()
		if err != nil {
			return translate.PExpr{}, err
		}
		return translate.PExpr{UnaryOp: &translate.PUnaryOp{Op: "NOT", Expr: inner}}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (translate.PExpr, error) {
	left, err := p.parseAddSub()
	if err != nil {
		return translate.PExpr{}, err
	}

	negated := false
	if p.at("NOT") {
		save := p.pos
		p.next()
		if p.at("IN") || p.at("BETWEEN") || p.at("LIKE") {
			negated = true
		} else {
			p.pos = save
			return left, nil
		}
	}

	switch {
	case p.at("IN"):
		p.next()
		if err := p.expectOp("("); err != nil {
			return translate.PExpr{}, err
		}
		if p.at("SELECT") {
			q, err := p.parseQuery()
			if err != nil {
				return translate.PExpr{}, err
			}
			if err := p.expectOp(")"); err != nil {
				return translate.PExpr{}, err
			}
			return translate.PExpr{InSubquery: &translate.PInSubquery{Expr: left, Subquery: q, Negated: negated}}, nil
		}
		var list []translate.PExpr
		for {
			e, err := p.parseExpr()
			if err != nil {
				return translate.PExpr{}, err
			}
			list = append(list, e)
			if p.at(",") {
				p.next()
				continue
			}
			break
		}
		if err := p.expectOp(")"); err != nil {
			return translate.PExpr{}, err
		}
		return translate.PExpr{InList: &translate.PInList{Expr: left, List: list, Negated: negated}}, nil

	case p.at("BETWEEN"):
		p.next()
		lo, err := p.parseAddSub()
		if err != nil {
			return translate.PExpr{}, err
		}
		if err := p.expectKw("AND"); err != nil {
			return translate.PExpr{}, err
		}
		hi, err := p.parseAddSub()
		if err != nil {
			return translate.PExpr{}, err
		}
		return translate.PExpr{Between: &translate.PBetween{Expr: left, Negated: negated, Low: lo, High: hi}}, nil

	case p.at("LIKE"):
		p.next()
		right, err := p.parseAddSub()
		if err != nil {
			return translate.PExpr{}, err
		}
		op := "LIKE"
		if negated {
			op = "NOT LIKE"
		}
		return translate.PExpr{BinaryOp: &translate.PBinaryOp{Left: left, Op: op, Right: right}}, nil
	}

	if negated {
		return translate.PExpr{}, fmt.Errorf("sqltext: expected IN, BETWEEN, or LIKE after NOT")
	}

	if p.at("IS") {
		p.next()
		isNot := false
		if p.at("NOT") {
			p.next()
			isNot = true
		}
		if err := p.expectKw("NULL"); err != nil {
			return translate.PExpr{}, err
		}
		if isNot {
			return translate.PExpr{IsNotNullOf: &left}, nil
		}
		return translate.PExpr{IsNullOf: &left}, nil
	}

	for _, op := range []string{"<>", "!=", "<=", ">=", "=", "<", ">"} {
		if p.at(op) {
			p.next()
			right, err := p.parseAddSub()
			if err != nil {
				return translate.PExpr{}, err
			}
			return translate.PExpr{BinaryOp: &translate.PBinaryOp{Left: left, Op: op, Right: right}}, nil
		}
	}
	return left, nil
}

func (p *parser) parseAddSub() (translate.PExpr, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return translate.PExpr{}, err
	}
	for {
		var op string
		switch {
		case p.at("+"):
			op = "+"
		case p.at("-"):
			op = "-"
		case p.at("||"):
			op = "||"
		default:
			return left, nil
		}
		p.next()
		right, err := p.parseMulDiv()
		if err != nil {
			return translate.PExpr{}, err
		}
		left = translate.PExpr{BinaryOp: &translate.PBinaryOp{Left: left, Op: op, Right: right}}
	}
}

func (p *parser) parseMulDiv() (translate.PExpr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return translate.PExpr{}, err
	}
	for {
		var op string
		switch {
		case p.at("*"):
			op = "*"
		case p.at("/"):
			op = "/"
		case p.at("%"):
			op = "%"
		default:
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return translate.PExpr{}, err
		}
		left = translate.PExpr{BinaryOp: &translate.PBinaryOp{Left: left, Op: op, Right: right}}
	}
}

func (p *parser) parseUnary() (translate.PExpr, error) {
	if p.at("-") {
		p.next()
		inner, err := p.parseUnary()
		if err != nil {
			return translate.PExpr{}, err
		}
		return translate.PExpr{UnaryOp: &translate.PUnaryOp{Op: "-", Expr: inner}}, nil
	}
	if p.at("+") {
		p.next()
		inner, err := p.parseUnary()
		if err != nil {
			return translate.PExpr{}, err
		}
		return translate.PExpr{UnaryOp: &translate.PUnaryOp{Op: "+", Expr: inner}}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (translate.PExpr, error) {
	tok := p.peek()
	switch tok.kind {
	case tokParam:
		p.next()
		if tok.val == "?" {
			p.paramSeq++
			return translate.PExpr{Param: p.paramSeq, ParamRaw: "?"}, nil
		}
		n, err := strconv.Atoi(tok.val[1:])
		if err != nil {
			return translate.PExpr{}, fmt.Errorf("sqltext: invalid placeholder %q", tok.val)
		}
		return translate.PExpr{Param: n, ParamRaw: tok.val}, nil

	case tokNumber:
		p.next()
		return translate.PExpr{LiteralNumber: tok.val}, nil

	case tokString:
		p.next()
		s := tok.val
		return translate.PExpr{LiteralText: &s}, nil

	case tokOp:
		if tok.val == "(" {
			p.next()
			if p.at("SELECT") {
				q, err := p.parseQuery()
				if err != nil {
					return translate.PExpr{}, err
				}
				if err := p.expectOp(")"); err != nil {
					return translate.PExpr{}, err
				}
				return translate.PExpr{Subquery: q}, nil
			}
			inner, err := p.parseExpr()
			if err != nil {
				return translate.PExpr{}, err
			}
			if err := p.expectOp(")"); err != nil {
				return translate.PExpr{}, err
			}
			return translate.PExpr{Nested: &inner}, nil
		}
		return translate.PExpr{}, fmt.Errorf("sqltext: unexpected token %q", tok.val)

	case tokIdent:
		up := strings.ToUpper(tok.val)
		switch up {
		case "TRUE":
			p.next()
			b := true
			return translate.PExpr{LiteralBool: &b}, nil
		case "FALSE":
			p.next()
			b := false
			return translate.PExpr{LiteralBool: &b}, nil
		case "NULL":
			p.next()
			return translate.PExpr{LiteralIsNull: true}, nil
		case "CASE":
			return p.parseCase()
		case "CAST":
			return p.parseCast()
		case "EXTRACT":
			return p.parseExtract()
		case "EXISTS":
			p.next()
			q, err := p.parseParenQuery()
			if err != nil {
				return translate.PExpr{}, err
			}
			return translate.PExpr{Exists: &translate.PExists{Query: q}}, nil
		case "COUNT", "SUM", "MIN", "MAX", "AVG":
			p.next()
			return p.parseAggregateRest(up)
		}
		if isTypeNameToken(up) && p.peekN(1).kind == tokString {
			p.next()
			strTok := p.next()
			return translate.PExpr{TypedStringTy: up, TypedStringVal: strTok.val}, nil
		}
		p.next()
		name := tok.val
		if p.at("(") {
			return p.parseFunctionCall(name)
		}
		parts := []string{name}
		for p.at(".") {
			p.next()
			nt := p.peek()
			if nt.kind != tokIdent {
				return translate.PExpr{}, fmt.Errorf("sqltext: expected identifier after '.'")
			}
			p.next()
			parts = append(parts, nt.val)
		}
		return translate.PExpr{Ident: parts}, nil
	}
	return translate.PExpr{}, fmt.Errorf("sqltext: unexpected end of input")
}

func (p *parser) parseParenQuery() (*translate.PQuery, error) {
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	q, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return q, nil
}

func (p *parser) parseFunctionCall(name string) (translate.PExpr, error) {
	p.next() // consume '('
	var args []translate.PExpr
	if !p.at(")") {
		for {
			e, err := p.parseExpr()
			if err != nil {
				return translate.PExpr{}, err
			}
			args = append(args, e)
			if p.at(",") {
				p.next()
				continue
			}
			break
		}
	}
	if err := p.expectOp(")"); err != nil {
		return translate.PExpr{}, err
	}
	return translate.PExpr{Function: &translate.PFunction{Name: name, Args: args}}, nil
}

func (p *parser) parseAggregateRest(name string) (translate.PExpr, error) {
	if err := p.expectOp("("); err != nil {
		return translate.PExpr{}, err
	}
	distinct := false
	if p.at("DISTINCT") {
		p.next()
		distinct = true
	}
	if p.at("*") {
		p.next()
		if err := p.expectOp(")"); err != nil {
			return translate.PExpr{}, err
		}
		return translate.PExpr{Aggregate: &translate.PAggregate{Name: name, Distinct: distinct}}, nil
	}
	e, err := p.parseExpr()
	if err != nil {
		return translate.PExpr{}, err
	}
	if err := p.expectOp(")"); err != nil {
		return translate.PExpr{}, err
	}
	return translate.PExpr{Aggregate: &translate.PAggregate{Name: name, Expr: &e, Distinct: distinct}}, nil
}

func (p *parser) parseCase() (translate.PExpr, error) {
	p.next() // CASE
	var operand *translate.PExpr
	if !p.at("WHEN") {
		e, err := p.parseExpr()
		if err != nil {
			return translate.PExpr{}, err
		}
		operand = &e
	}
	var whens []translate.PWhenThen
	for p.at("WHEN") {
		p.next()
		cond, err := p.parseExpr()
		if err != nil {
			return translate.PExpr{}, err
		}
		if err := p.expectKw("THEN"); err != nil {
			return translate.PExpr{}, err
		}
		then, err := p.parseExpr()
		if err != nil {
			return translate.PExpr{}, err
		}
		whens = append(whens, translate.PWhenThen{When: cond, Then: then})
	}
	if len(whens) == 0 {
		return translate.PExpr{}, fmt.Errorf("sqltext: CASE requires at least one WHEN clause")
	}
	var elseExpr *translate.PExpr
	if p.at("ELSE") {
		p.next()
		e, err := p.parseExpr()
		if err != nil {
			return translate.PExpr{}, err
		}
		elseExpr = &e
	}
	if err := p.expectKw("END"); err != nil {
		return translate.PExpr{}, err
	}
	return translate.PExpr{Case: &translate.PCase{Operand: operand, WhenThen: whens, Else: elseExpr}}, nil
}

func (p *parser) parseCast() (translate.PExpr, error) {
	p.next() // CAST
	if err := p.expectOp("("); err != nil {
		return translate.PExpr{}, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return translate.PExpr{}, err
	}
	if err := p.expectKw("AS"); err != nil {
		return translate.PExpr{}, err
	}
	typeName, err := p.identVal()
	if err != nil {
		return translate.PExpr{}, err
	}
	if p.at("(") {
		if err := p.skipParens(); err != nil {
			return translate.PExpr{}, err
		}
	}
	if err := p.expectOp(")"); err != nil {
		return translate.PExpr{}, err
	}
	return translate.PExpr{Cast: &translate.PCast{Expr: e, DataType: strings.ToUpper(typeName)}}, nil
}

func (p *parser) parseExtract() (translate.PExpr, error) {
	p.next() // EXTRACT
	if err := p.expectOp("("); err != nil {
		return translate.PExpr{}, err
	}
	fieldTok := p.peek()
	if fieldTok.kind != tokIdent {
		return translate.PExpr{}, fmt.Errorf("sqltext: expected a field name in EXTRACT(...)")
	}
	p.next()
	field := strings.ToUpper(fieldTok.val)
	if err := p.expectKw("FROM"); err != nil {
		return translate.PExpr{}, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return translate.PExpr{}, err
	}
	if err := p.expectOp(")"); err != nil {
		return translate.PExpr{}, err
	}
	return translate.PExpr{Extract: &translate.PExtract{Field: field, Expr: e}}, nil
}
