package execute

import (
	"context"

	"github.com/gluesql/gluesql-sub000/core/ast"
	"github.com/gluesql/gluesql-sub000/core/evaluate"
	"github.com/gluesql/gluesql-sub000/core/literal"
	"github.com/gluesql/gluesql-sub000/core/sqlerr"
	"github.com/gluesql/gluesql-sub000/core/value"
	"github.com/gluesql/gluesql-sub000/storage"
)

// Execute dispatches stmt by statement kind, driving
// storage through the storage.Store interface. Translate already
// substitutes `$n` placeholders with LiteralExpr values, so Execute
// never sees a placeholder; params is kept on the executor, but no
// statement path reads it.
func Execute(ctx context.Context, store storage.Store, stmt ast.Statement, params []literal.Literal) (Payload, error) {
	ex := &executor{ctx: ctx, store: store, params: params}
	switch s := stmt.(type) {
	case ast.QueryStatement:
		labels, rows, err := ex.runQuery(s.Query, nil)
		if err != nil {
			return Payload{}, err
		}
		return Payload{Kind: PayloadSelect, Labels: labels, Rows: rows}, nil
	case ast.InsertStatement:
		return ex.insert(s)
	case ast.UpdateStatement:
		return ex.update(s)
	case ast.DeleteStatement:
		return ex.deleteStmt(s)
	case ast.CreateTableStatement:
		return ex.createTable(s)
	case ast.AlterTableStatement:
		return ex.alterTable(s)
	case ast.DropTableStatement:
		return ex.dropTable(s)
	case ast.CreateIndexStatement:
		return ex.createIndex(s)
	case ast.DropIndexStatement:
		if err := store.DropIndex(ctx, s.Table, s.Name); err != nil {
			return Payload{}, err
		}
		return Payload{Kind: PayloadDropIndex}, nil
	case ast.CreateFunctionStatement:
		return ex.createFunction(s)
	case ast.DropFunctionStatement:
		return ex.dropFunction(s)
	case ast.StartTransactionStatement:
		if err := store.Begin(ctx); err != nil {
			return Payload{}, err
		}
		return Payload{Kind: PayloadStartTransaction}, nil
	case ast.CommitStatement:
		if err := store.Commit(ctx); err != nil {
			return Payload{}, err
		}
		return Payload{Kind: PayloadCommit}, nil
	case ast.RollbackStatement:
		if err := store.Rollback(ctx); err != nil {
			return Payload{}, err
		}
		return Payload{Kind: PayloadRollback}, nil
	case ast.ShowColumnsStatement:
		return ex.showColumns(s)
	case ast.ShowVariableStatement:
		return Payload{Kind: PayloadShowVariable, Variable: value.NewStr(s.Name)}, nil
	case ast.ShowIndexesStatement:
		return ex.showIndexes(s)
	}
	return Payload{}, sqlerr.New(sqlerr.KindUnsupportedSyntax, "unrecognized statement %T", stmt)
}

type executor struct {
	ctx    context.Context
	store  storage.Store
	params []literal.Literal
}

// storageAdapter implements evaluate.Storage so the evaluator can run
// correlated subqueries by re-entering runQuery, without core/evaluate
// importing core/execute (which would cycle back through evaluate).
type storageAdapter struct{ ex *executor }

func (a storageAdapter) RunQuery(ctx context.Context, q *ast.Query, outer *evaluate.FilterContext) ([]string, [][]value.Value, error) {
	return a.ex.runQuery(q, outer)
}

func (ex *executor) adapter() evaluate.Storage { return storageAdapter{ex: ex} }

func (ex *executor) eval(fc *evaluate.FilterContext, ac *evaluate.AggregateContext, expr ast.Expr) (evaluate.Evaluated, error) {
	return evaluate.Evaluate(ex.ctx, ex.adapter(), fc, ac, expr)
}

func (ex *executor) evalValue(fc *evaluate.FilterContext, ac *evaluate.AggregateContext, expr ast.Expr) (value.Value, error) {
	res, err := ex.eval(fc, ac, expr)
	if err != nil {
		return value.Value{}, err
	}
	return res.Value()
}
