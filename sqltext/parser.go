package sqltext

import (
	"fmt"
	"strings"

	"github.com/gluesql/gluesql-sub000/core/translate"
)

// Parse turns one SQL statement's text into the parser-neutral tree
// core/translate.Translate consumes. Trailing ';' is optional; at most
// one statement per call.
func Parse(sql string) (*translate.PStatement, error) {
	toks, err := lex(sql)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if p.at(";") {
		p.next()
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("sqltext: unexpected trailing input near %q", p.peek().val)
	}
	return stmt, nil
}

type parser struct {
	toks     []token
	pos      int
	paramSeq int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) peekN(n int) token {
	if p.pos+n >= len(p.toks) {
		return token{kind: tokEOF}
	}
	return p.toks[p.pos+n]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) at(kw string) bool {
	return p.peek().is(kw)
}

func (p *parser) expectOp(op string) error {
	if !p.at(op) {
		return fmt.Errorf("sqltext: expected %q, got %q", op, p.peek().val)
	}
	p.next()
	return nil
}

func (p *parser) expectKw(kw string) error {
	if !p.at(kw) {
		return fmt.Errorf("sqltext: expected %s, got %q", kw, p.peek().val)
	}
	p.next()
	return nil
}

func (p *parser) identVal() (string, error) {
	t := p.peek()
	if t.kind != tokIdent {
		return "", fmt.Errorf("sqltext: expected identifier, got %q", t.val)
	}
	p.next()
	return t.val, nil
}

// skipParens consumes a balanced parenthesized group starting at '(',
// used to discard type-modifier precision lists like VARCHAR(255).
func (p *parser) skipParens() error {
	if err := p.expectOp("("); err != nil {
		return err
	}
	depth := 1
	for depth > 0 {
		t := p.next()
		switch {
		case t.kind == tokEOF:
			return fmt.Errorf("sqltext: unterminated parenthesized group")
		case t.kind == tokOp && t.val == "(":
			depth++
		case t.kind == tokOp && t.val == ")":
			depth--
		}
	}
	return nil
}

func (p *parser) identList() ([]string, error) {
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	var names []string
	for {
		n, err := p.identVal()
		if err != nil {
			return nil, err
		}
		names = append(names, n)
		if p.at(",") {
			p.next()
			continue
		}
		break
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return names, nil
}

func (p *parser) parseStatement() (*translate.PStatement, error) {
	switch {
	case p.at("SELECT") || p.at("VALUES"):
		q, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		return &translate.PStatement{Query: q}, nil
	case p.at("INSERT"):
		ins, err := p.parseInsert()
		if err != nil {
			return nil, err
		}
		return &translate.PStatement{Insert: ins}, nil
	case p.at("UPDATE"):
		upd, err := p.parseUpdate()
		if err != nil {
			return nil, err
		}
		return &translate.PStatement{Update: upd}, nil
	case p.at("DELETE"):
		del, err := p.parseDelete()
		if err != nil {
			return nil, err
		}
		return &translate.PStatement{Delete: del}, nil
	case p.at("CREATE"):
		return p.parseCreate()
	case p.at("ALTER"):
		alt, err := p.parseAlterTable()
		if err != nil {
			return nil, err
		}
		return &translate.PStatement{AlterTable: alt}, nil
	case p.at("DROP"):
		return p.parseDrop()
	case p.at("BEGIN"):
		p.next()
		return &translate.PStatement{StartTxn: true}, nil
	case p.at("START"):
		p.next()
		if err := p.expectKw("TRANSACTION"); err != nil {
			return nil, err
		}
		return &translate.PStatement{StartTxn: true}, nil
	case p.at("COMMIT"):
		p.next()
		return &translate.PStatement{Commit: true}, nil
	case p.at("ROLLBACK"):
		p.next()
		return &translate.PStatement{Rollback: true}, nil
	case p.at("SHOW"):
		return p.parseShow()
	}
	return nil, fmt.Errorf("sqltext: unrecognized statement starting at %q", p.peek().val)
}

func (p *parser) parseCreate() (*translate.PStatement, error) {
	p.next() // CREATE
	switch {
	case p.at("TABLE"):
		ct, err := p.parseCreateTable()
		if err != nil {
			return nil, err
		}
		return &translate.PStatement{CreateTable: ct}, nil
	case p.at("UNIQUE"):
		p.next()
		if err := p.expectKw("INDEX"); err != nil {
			return nil, err
		}
		ci, err := p.parseCreateIndexRest()
		if err != nil {
			return nil, err
		}
		return &translate.PStatement{CreateIndex: ci}, nil
	case p.at("INDEX"):
		p.next()
		ci, err := p.parseCreateIndexRest()
		if err != nil {
			return nil, err
		}
		return &translate.PStatement{CreateIndex: ci}, nil
	case p.at("FUNCTION"):
		cf, err := p.parseCreateFunction()
		if err != nil {
			return nil, err
		}
		return &translate.PStatement{CreateFunction: cf}, nil
	}
	return nil, fmt.Errorf("sqltext: expected TABLE, INDEX, or FUNCTION after CREATE, got %q", p.peek().val)
}

func (p *parser) parseDrop() (*translate.PStatement, error) {
	p.next() // DROP
	switch {
	case p.at("TABLE"):
		p.next()
		dt := &translate.PDropTable{}
		if p.at("IF") {
			p.next()
			if err := p.expectKw("EXISTS"); err != nil {
				return nil, err
			}
			dt.IfExists = true
		}
		for {
			n, err := p.identVal()
			if err != nil {
				return nil, err
			}
			dt.Names = append(dt.Names, n)
			if p.at(",") {
				p.next()
				continue
			}
			break
		}
		if p.at("CASCADE") {
			p.next()
			dt.Cascade = true
		}
		return &translate.PStatement{DropTable: dt}, nil
	case p.at("INDEX"):
		p.next()
		name, err := p.identVal()
		if err != nil {
			return nil, err
		}
		if err := p.expectKw("ON"); err != nil {
			return nil, err
		}
		table, err := p.identVal()
		if err != nil {
			return nil, err
		}
		return &translate.PStatement{DropIndex: &translate.PDropIndex{Table: table, Name: name}}, nil
	case p.at("FUNCTION"):
		p.next()
		df := &translate.PDropFunction{}
		if p.at("IF") {
			p.next()
			if err := p.expectKw("EXISTS"); err != nil {
				return nil, err
			}
			df.IfExists = true
		}
		name, err := p.identVal()
		if err != nil {
			return nil, err
		}
		df.Name = name
		return &translate.PStatement{DropFunction: df}, nil
	}
	return nil, fmt.Errorf("sqltext: expected TABLE, INDEX, or FUNCTION after DROP, got %q", p.peek().val)
}

func (p *parser) parseShow() (*translate.PStatement, error) {
	p.next() // SHOW
	switch {
	case p.at("COLUMNS"):
		p.next()
		if err := p.expectKw("FROM"); err != nil {
			return nil, err
		}
		table, err := p.identVal()
		if err != nil {
			return nil, err
		}
		return &translate.PStatement{ShowColumns: &translate.PShowColumns{Table: table}}, nil
	case p.at("INDEXES"):
		p.next()
		if err := p.expectKw("FROM"); err != nil {
			return nil, err
		}
		table, err := p.identVal()
		if err != nil {
			return nil, err
		}
		return &translate.PStatement{ShowIndexes: &translate.PShowIndexes{Table: table}}, nil
	}
	name, err := p.identVal()
	if err != nil {
		return nil, fmt.Errorf("sqltext: expected a variable name after SHOW")
	}
	return &translate.PStatement{ShowVariable: name}, nil
}

func (p *parser) parseQuery() (*translate.PQuery, error) {
	set, err := p.parseSetExpr()
	if err != nil {
		return nil, err
	}
	q := &translate.PQuery{Body: set}
	if p.at("ORDER") {
		p.next()
		if err := p.expectKw("BY"); err != nil {
			return nil, err
		}
		for {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			asc := true
			if p.at("ASC") {
				p.next()
			} else if p.at("DESC") {
				p.next()
				asc = false
			}
			q.OrderBy = append(q.OrderBy, translate.POrderBy{Expr: e, Asc: asc})
			if p.at(",") {
				p.next()
				continue
			}
			break
		}
	}
	if p.at("LIMIT") {
		p.next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		q.Limit = &e
	}
	if p.at("OFFSET") {
		p.next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		q.Offset = &e
	}
	return q, nil
}

func (p *parser) parseSetExpr() (translate.PSetExpr, error) {
	if p.at("VALUES") {
		p.next()
		var rows [][]translate.PExpr
		for {
			if err := p.expectOp("("); err != nil {
				return translate.PSetExpr{}, err
			}
			var row []translate.PExpr
			for {
				e, err := p.parseExpr()
				if err != nil {
					return translate.PSetExpr{}, err
				}
				row = append(row, e)
				if p.at(",") {
					p.next()
					continue
				}
				break
			}
			if err := p.expectOp(")"); err != nil {
				return translate.PSetExpr{}, err
			}
			rows = append(rows, row)
			if p.at(",") {
				p.next()
				continue
			}
			break
		}
		return translate.PSetExpr{Values: rows}, nil
	}
	sel, err := p.parseSelect()
	if err != nil {
		return translate.PSetExpr{}, err
	}
	return translate.PSetExpr{Select: sel}, nil
}

func (p *parser) parseSelect() (*translate.PSelect, error) {
	if err := p.expectKw("SELECT"); err != nil {
		return nil, err
	}
	sel := &translate.PSelect{}
	for {
		item, err := p.parseSelectItem()
		if err != nil {
			return nil, err
		}
		sel.Projection = append(sel.Projection, item)
		if p.at(",") {
			p.next()
			continue
		}
		break
	}
	if p.at("FROM") {
		p.next()
		from, err := p.parseTableWithJoins()
		if err != nil {
			return nil, err
		}
		sel.From = from
	} else {
		// A FROM-less SELECT reads one row from SERIES(1), so the
		// projection is evaluated exactly once.
		one := translate.PExpr{LiteralNumber: "1"}
		sel.From = translate.PTableWithJoins{Relation: translate.PTableFactor{TableName: "SERIES", SeriesSize: &one}}
	}
	if p.at("WHERE") {
		p.next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		sel.Selection = &e
	}
	if p.at("GROUP") {
		p.next()
		if err := p.expectKw("BY"); err != nil {
			return nil, err
		}
		for {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			sel.GroupBy = append(sel.GroupBy, e)
			if p.at(",") {
				p.next()
				continue
			}
			break
		}
	}
	if p.at("HAVING") {
		p.next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		sel.Having = &e
	}
	return sel, nil
}

func (p *parser) parseSelectItem() (translate.PSelectItem, error) {
	if p.at("*") {
		p.next()
		return translate.PSelectItem{Wildcard: true}, nil
	}
	if p.peek().kind == tokIdent && p.peekN(1).is(".") && p.peekN(2).is("*") {
		table := p.next().val
		p.next() // .
		p.next() // *
		return translate.PSelectItem{QualifiedWildcard: table}, nil
	}
	e, err := p.parseExpr()
	if err != nil {
		return translate.PSelectItem{}, err
	}
	item := translate.PSelectItem{Expr: e}
	if p.at("AS") {
		p.next()
		label, err := p.identVal()
		if err != nil {
			return translate.PSelectItem{}, err
		}
		item.Label = label
	}
	return item, nil
}

func (p *parser) parseTableWithJoins() (translate.PTableWithJoins, error) {
	rel, err := p.parseTableFactor()
	if err != nil {
		return translate.PTableWithJoins{}, err
	}
	t := translate.PTableWithJoins{Relation: rel}
	for {
		leftOuter := false
		switch {
		case p.at("JOIN") || p.at("INNER"):
			if p.at("INNER") {
				p.next()
			}
			p.next() // JOIN
		case p.at("LEFT"):
			p.next()
			if p.at("OUTER") {
				p.next()
			}
			if err := p.expectKw("JOIN"); err != nil {
				return translate.PTableWithJoins{}, err
			}
			leftOuter = true
		case p.at("CROSS"):
			p.next()
			if err := p.expectKw("JOIN"); err != nil {
				return translate.PTableWithJoins{}, err
			}
		default:
			return t, nil
		}
		joinRel, err := p.parseTableFactor()
		if err != nil {
			return translate.PTableWithJoins{}, err
		}
		join := translate.PJoin{Relation: joinRel, LeftOuter: leftOuter}
		if p.at("ON") {
			p.next()
			e, err := p.parseExpr()
			if err != nil {
				return translate.PTableWithJoins{}, err
			}
			join.Constraint = &e
		} else if p.at("USING") {
			p.next()
			names, err := p.identList()
			if err != nil {
				return translate.PTableWithJoins{}, err
			}
			join.Using = names
		}
		t.Joins = append(t.Joins, join)
	}
}

func (p *parser) parseTableFactor() (translate.PTableFactor, error) {
	if p.at("(") {
		p.next()
		q, err := p.parseQuery()
		if err != nil {
			return translate.PTableFactor{}, err
		}
		if err := p.expectOp(")"); err != nil {
			return translate.PTableFactor{}, err
		}
		tf := translate.PTableFactor{Derived: q}
		if p.at("AS") {
			p.next()
			alias, err := p.identVal()
			if err != nil {
				return translate.PTableFactor{}, err
			}
			tf.Alias = alias
		}
		return tf, nil
	}
	if p.at("SERIES") {
		p.next()
		if err := p.expectOp("("); err != nil {
			return translate.PTableFactor{}, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return translate.PTableFactor{}, err
		}
		if err := p.expectOp(")"); err != nil {
			return translate.PTableFactor{}, err
		}
		tf := translate.PTableFactor{TableName: "SERIES", SeriesSize: &e}
		if p.at("AS") {
			p.next()
			alias, err := p.identVal()
			if err != nil {
				return translate.PTableFactor{}, err
			}
			tf.Alias = alias
		}
		return tf, nil
	}
	name, err := p.identVal()
	if err != nil {
		return translate.PTableFactor{}, fmt.Errorf("sqltext: expected a table name")
	}
	tf := translate.PTableFactor{TableName: name}
	if p.at("AS") {
		p.next()
		alias, err := p.identVal()
		if err != nil {
			return translate.PTableFactor{}, err
		}
		tf.Alias = alias
	}
	return tf, nil
}

func (p *parser) parseInsert() (*translate.PInsert, error) {
	p.next() // INSERT
	if err := p.expectKw("INTO"); err != nil {
		return nil, err
	}
	table, err := p.identVal()
	if err != nil {
		return nil, err
	}
	ins := &translate.PInsert{Table: table}
	if p.at("(") {
		cols, err := p.identList()
		if err != nil {
			return nil, err
		}
		ins.Columns = cols
	}
	if p.at("DEFAULT") {
		p.next()
		if err := p.expectKw("VALUES"); err != nil {
			return nil, err
		}
		ins.DefaultValues = true
		return ins, nil
	}
	src, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	ins.Source = src
	if p.at("ON") {
		p.next()
		if err := p.expectKw("CONFLICT"); err != nil {
			return nil, err
		}
		if p.at("(") {
			if err := p.skipParens(); err != nil {
				return nil, err
			}
		}
		ins.OnConflict = true
		for !p.at(";") && p.peek().kind != tokEOF {
			p.next()
		}
	}
	if p.at("RETURNING") {
		p.next()
		var items []translate.PExpr
		for {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			items = append(items, e)
			if p.at(",") {
				p.next()
				continue
			}
			break
		}
		ins.Returning = items
	}
	return ins, nil
}

func (p *parser) parseUpdate() (*translate.PUpdate, error) {
	p.next() // UPDATE
	table, err := p.identVal()
	if err != nil {
		return nil, err
	}
	upd := &translate.PUpdate{Table: table}
	if err := p.expectKw("SET"); err != nil {
		return nil, err
	}
	for {
		a, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		upd.Assignments = append(upd.Assignments, a)
		if p.at(",") {
			p.next()
			continue
		}
		break
	}
	if p.at("FROM") || p.at("USING") {
		p.next()
		from, err := p.parseTableWithJoins()
		if err != nil {
			return nil, err
		}
		upd.From = &from
	}
	if p.at("WHERE") {
		p.next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		upd.Selection = e
		upd.HasSelection = true
	}
	return upd, nil
}

func (p *parser) parseAssignment() (translate.PAssignment, error) {
	if p.at("(") {
		names, err := p.identList()
		if err != nil {
			return translate.PAssignment{}, err
		}
		if err := p.expectOp("="); err != nil {
			return translate.PAssignment{}, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return translate.PAssignment{}, err
		}
		return translate.PAssignment{TupleTargets: names, Value: val}, nil
	}
	name, err := p.identVal()
	if err != nil {
		return translate.PAssignment{}, err
	}
	a := translate.PAssignment{Target: name}
	if p.at(".") {
		p.next()
		col, err := p.identVal()
		if err != nil {
			return translate.PAssignment{}, err
		}
		a.Target = col
		a.TargetQualified = true
	}
	if err := p.expectOp("="); err != nil {
		return translate.PAssignment{}, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return translate.PAssignment{}, err
	}
	a.Value = val
	return a, nil
}

func (p *parser) parseDelete() (*translate.PDelete, error) {
	p.next() // DELETE
	if err := p.expectKw("FROM"); err != nil {
		return nil, err
	}
	table, err := p.identVal()
	if err != nil {
		return nil, err
	}
	del := &translate.PDelete{Table: table}
	if p.at("WHERE") {
		p.next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		del.Selection = e
		del.HasSelection = true
	}
	return del, nil
}

func (p *parser) parseCreateTable() (*translate.PCreateTable, error) {
	p.next() // TABLE
	ct := &translate.PCreateTable{}
	if p.at("IF") {
		p.next()
		if err := p.expectKw("NOT"); err != nil {
			return nil, err
		}
		if err := p.expectKw("EXISTS"); err != nil {
			return nil, err
		}
		ct.IfNotExists = true
	}
	name, err := p.identVal()
	if err != nil {
		return nil, err
	}
	ct.Name = name
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	for {
		if err := p.parseTableElement(ct); err != nil {
			return nil, err
		}
		if p.at(",") {
			p.next()
			continue
		}
		break
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return ct, nil
}

func (p *parser) parseTableElement(ct *translate.PCreateTable) error {
	switch {
	case p.at("PRIMARY"):
		p.next()
		if err := p.expectKw("KEY"); err != nil {
			return err
		}
		cols, err := p.identList()
		if err != nil {
			return err
		}
		ct.PrimaryKey = cols
		return nil
	case p.at("UNIQUE"):
		p.next()
		uc := translate.PUniqueConstraint{}
		cols, err := p.identList()
		if err != nil {
			return err
		}
		uc.Columns = cols
		ct.UniqueConstraints = append(ct.UniqueConstraints, uc)
		return nil
	case p.at("FOREIGN"):
		p.next()
		if err := p.expectKw("KEY"); err != nil {
			return err
		}
		cols, err := p.identList()
		if err != nil {
			return err
		}
		if err := p.expectKw("REFERENCES"); err != nil {
			return err
		}
		refTable, err := p.identVal()
		if err != nil {
			return err
		}
		refCols, err := p.identList()
		if err != nil {
			return err
		}
		fk := translate.PForeignKey{Columns: cols, RefTable: refTable, RefColumns: refCols}
		for p.at("ON") {
			p.next()
			isDelete := false
			switch {
			case p.at("DELETE"):
				p.next()
				isDelete = true
			case p.at("UPDATE"):
				p.next()
			default:
				return fmt.Errorf("sqltext: expected DELETE or UPDATE after ON in FOREIGN KEY")
			}
			var action string
			switch {
			case p.at("CASCADE"):
				p.next()
				action = "CASCADE"
			case p.at("RESTRICT"):
				p.next()
				action = "RESTRICT"
			case p.at("NO"):
				p.next()
				if err := p.expectKw("ACTION"); err != nil {
					return err
				}
				action = "NO ACTION"
			case p.at("SET"):
				p.next()
				if p.at("NULL") {
					p.next()
					action = "SET NULL"
				} else {
					if err := p.expectKw("DEFAULT"); err != nil {
						return err
					}
					action = "SET DEFAULT"
				}
			default:
				return fmt.Errorf("sqltext: unrecognized referential action %q", p.peek().val)
			}
			if isDelete {
				fk.OnDelete = action
			} else {
				fk.OnUpdate = action
			}
		}
		ct.ForeignKeys = append(ct.ForeignKeys, fk)
		return nil
	}
	cd, err := p.parseColumnDef()
	if err != nil {
		return err
	}
	ct.Columns = append(ct.Columns, *cd)
	return nil
}

func (p *parser) parseColumnDef() (*translate.PColumnDef, error) {
	name, err := p.identVal()
	if err != nil {
		return nil, err
	}
	typeName, err := p.identVal()
	if err != nil {
		return nil, err
	}
	dt, ok := dataTypeAliases[strings.ToUpper(typeName)]
	if !ok {
		return nil, fmt.Errorf("sqltext: unrecognized column type %q", typeName)
	}
	if p.at("(") {
		if err := p.skipParens(); err != nil {
			return nil, err
		}
	}
	cd := &translate.PColumnDef{Name: name, DataType: dt}
	for {
		switch {
		case p.at("NOT"):
			p.next()
			if err := p.expectKw("NULL"); err != nil {
				return nil, err
			}
			cd.NotNull = true
			continue
		case p.at("NULL"):
			p.next()
			continue
		case p.at("DEFAULT"):
			p.next()
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			cd.Default = e
			cd.HasDefault = true
			continue
		case p.at("UNIQUE"):
			p.next()
			cd.Unique = true
			continue
		case p.at("PRIMARY"):
			p.next()
			if err := p.expectKw("KEY"); err != nil {
				return nil, err
			}
			cd.PrimaryKey = true
			continue
		}
		break
	}
	return cd, nil
}

func (p *parser) parseAlterTable() (*translate.PAlterTable, error) {
	p.next() // ALTER
	if err := p.expectKw("TABLE"); err != nil {
		return nil, err
	}
	name, err := p.identVal()
	if err != nil {
		return nil, err
	}
	at := &translate.PAlterTable{Name: name}
	for {
		op, err := p.parseAlterOp()
		if err != nil {
			return nil, err
		}
		at.Ops = append(at.Ops, op)
		if p.at(",") {
			p.next()
			continue
		}
		break
	}
	return at, nil
}

func (p *parser) parseAlterOp() (translate.PAlterOp, error) {
	switch {
	case p.at("ADD"):
		p.next()
		if p.at("COLUMN") {
			p.next()
		}
		cd, err := p.parseColumnDef()
		if err != nil {
			return translate.PAlterOp{}, err
		}
		return translate.PAlterOp{AddColumn: cd}, nil
	case p.at("DROP"):
		p.next()
		if p.at("COLUMN") {
			p.next()
		}
		ifExists := false
		if p.at("IF") {
			p.next()
			if err := p.expectKw("EXISTS"); err != nil {
				return translate.PAlterOp{}, err
			}
			ifExists = true
		}
		name, err := p.identVal()
		if err != nil {
			return translate.PAlterOp{}, err
		}
		return translate.PAlterOp{DropColumn: name, DropIfExists: ifExists}, nil
	case p.at("RENAME"):
		p.next()
		if p.at("COLUMN") {
			p.next()
			from, err := p.identVal()
			if err != nil {
				return translate.PAlterOp{}, err
			}
			if err := p.expectKw("TO"); err != nil {
				return translate.PAlterOp{}, err
			}
			to, err := p.identVal()
			if err != nil {
				return translate.PAlterOp{}, err
			}
			return translate.PAlterOp{RenameColumn: &[2]string{from, to}}, nil
		}
		if p.at("TO") {
			p.next()
			to, err := p.identVal()
			if err != nil {
				return translate.PAlterOp{}, err
			}
			return translate.PAlterOp{RenameTable: to}, nil
		}
		return translate.PAlterOp{}, fmt.Errorf("sqltext: expected COLUMN or TO after RENAME")
	}
	return translate.PAlterOp{}, fmt.Errorf("sqltext: expected ADD, DROP, or RENAME in ALTER TABLE, got %q", p.peek().val)
}

func (p *parser) parseCreateIndexRest() (*translate.PCreateIndex, error) {
	name, err := p.identVal()
	if err != nil {
		return nil, err
	}
	if err := p.expectKw("ON"); err != nil {
		return nil, err
	}
	table, err := p.identVal()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	var cols []translate.PExpr
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		cols = append(cols, e)
		if p.at(",") {
			p.next()
			continue
		}
		break
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return &translate.PCreateIndex{Name: name, Table: table, Columns: cols}, nil
}

func (p *parser) parseCreateFunction() (*translate.PCreateFunction, error) {
	p.next() // FUNCTION
	name, err := p.identVal()
	if err != nil {
		return nil, err
	}
	cf := &translate.PCreateFunction{Name: name}
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	if !p.at(")") {
		for {
			argName, err := p.identVal()
			if err != nil {
				return nil, err
			}
			arg := translate.PFunctionArg{Name: argName}
			if p.at("DEFAULT") {
				p.next()
				e, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				arg.Default = e
				arg.HasDefault = true
			}
			cf.Args = append(cf.Args, arg)
			if p.at(",") {
				p.next()
				continue
			}
			break
		}
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	if err := p.expectKw("RETURN"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	cf.Body = body
	return cf, nil
}
