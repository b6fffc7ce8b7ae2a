package ast

import "encoding/gob"

// init registers every concrete Expr variant so a schema's DEFAULT and
// CREATE INDEX column expressions survive a gob round trip when
// embedded in an interface-typed field (storage/kvsqlite persists a
// table's *ast.Schema this way).
func init() {
	gob.Register(Identifier{})
	gob.Register(CompoundIdentifier{})
	gob.Register(LiteralExpr{})
	gob.Register(TypedString{})
	gob.Register(IsNull{})
	gob.Register(IsNotNull{})
	gob.Register(InList{})
	gob.Register(InSubquery{})
	gob.Register(Between{})
	gob.Register(BinaryOp{})
	gob.Register(UnaryOp{})
	gob.Register(Cast{})
	gob.Register(Extract{})
	gob.Register(Nested{})
	gob.Register(Case{})
	gob.Register(Subquery{})
	gob.Register(Exists{})
	gob.Register(Function{})
	gob.Register(Aggregate{})
}
