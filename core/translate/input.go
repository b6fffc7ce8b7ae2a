// Package translate maps a parser-neutral statement tree ("isomorphic
// to Statement{Query|Insert|Update|...}") into core/ast, rejecting
// syntax the core does not support.
package translate

import (
	"github.com/gluesql/gluesql-sub000/core/literal"
	"github.com/gluesql/gluesql-sub000/core/value"
)

// The types below are the "parser tree" input contract: the shape an
// external SQL parser is expected to hand the core, keeping SQL text
// parsing itself out of the core. Field names intentionally
// mirror the richer surface a real parser exposes (RETURNING, USING,
// ON CONFLICT, tuple targets, ...) so Translate has something concrete
// to reject.

type PStatement struct {
	Query           *PQuery
	Insert          *PInsert
	Update          *PUpdate
	Delete          *PDelete
	CreateTable     *PCreateTable
	AlterTable      *PAlterTable
	DropTable       *PDropTable
	CreateFunction  *PCreateFunction
	DropFunction    *PDropFunction
	CreateIndex     *PCreateIndex
	DropIndex       *PDropIndex
	StartTxn        bool
	Commit          bool
	Rollback        bool
	ShowColumns     *PShowColumns
	ShowVariable    string
	ShowIndexes     *PShowIndexes
}

type PQuery struct {
	Body    PSetExpr
	OrderBy []POrderBy
	Limit   *PExpr
	Offset  *PExpr
}

type PSetExpr struct {
	Select *PSelect
	Values [][]PExpr
}

type POrderBy struct {
	Expr PExpr
	Asc  bool
}

type PSelectItem struct {
	Wildcard          bool
	QualifiedWildcard string // table name, "" if not qualified-wildcard
	Expr              PExpr
	Label             string
}

type PTableFactor struct {
	TableName    string
	Alias        string
	IndexHint    string
	Derived      *PQuery
	SeriesSize   *PExpr
	DictionaryOf string
}

type PJoin struct {
	Relation   PTableFactor
	LeftOuter  bool
	Constraint *PExpr // ON predicate; nil = cross join
	Using      []string // non-nil => rejected (USING not supported)
}

type PTableWithJoins struct {
	Relation PTableFactor
	Joins    []PJoin
}

type PSelect struct {
	Projection []PSelectItem
	From       PTableWithJoins
	Selection  *PExpr
	GroupBy    []PExpr
	Having     *PExpr
}

// PExpr mirrors core/ast.Expr one level up, carrying raw parser-level
// constructs (param placeholders, generic Ident lists) that Translate
// resolves against the caller-supplied parameter list.
type PExpr struct {
	Ident          []string // len 1 = Identifier, len >1 = CompoundIdentifier
	LiteralBool    *bool
	LiteralNumber  string // decimal text, "" if not a number literal
	LiteralText    *string
	LiteralIsNull  bool
	TypedStringTy  string
	TypedStringVal string
	IsNullOf       *PExpr
	IsNotNullOf    *PExpr
	InList         *PInList
	InSubquery     *PInSubquery
	Between        *PBetween
	BinaryOp       *PBinaryOp
	UnaryOp        *PUnaryOp
	Cast           *PCast
	Extract        *PExtract
	Nested         *PExpr
	Case           *PCase
	Subquery       *PQuery
	Exists         *PExists
	Function       *PFunction
	Aggregate      *PAggregate
	Param          int // 1-based placeholder index; 0 = not a placeholder
	ParamRaw       string // original placeholder text, for error messages
}

type PInList struct {
	Expr    PExpr
	List    []PExpr
	Negated bool
}

type PInSubquery struct {
	Expr     PExpr
	Subquery *PQuery
	Negated  bool
}

type PBetween struct {
	Expr    PExpr
	Negated bool
	Low     PExpr
	High    PExpr
}

type PBinaryOp struct {
	Left  PExpr
	Op    string
	Right PExpr
}

type PUnaryOp struct {
	Op   string
	Expr PExpr
}

type PCast struct {
	Expr     PExpr
	DataType string
}

type PExtract struct {
	Field string
	Expr  PExpr
}

type PWhenThen struct {
	When PExpr
	Then PExpr
}

type PCase struct {
	Operand  *PExpr
	WhenThen []PWhenThen
	Else     *PExpr
}

type PExists struct {
	Query   *PQuery
	Negated bool
}

type PFunction struct {
	Name string
	Args []PExpr
}

type PAggregate struct {
	Name     string
	Expr     *PExpr // nil for COUNT(*)
	Distinct bool
}

type PColumnDef struct {
	Name       string
	DataType   value.DataType
	NotNull    bool
	Default    PExpr
	HasDefault bool
	Unique     bool
	UniqueName string
	PrimaryKey bool
	Comment    string
}

type PUniqueConstraint struct {
	Name    string
	Columns []string
}

type PForeignKey struct {
	Name       string
	Columns    []string
	RefTable   string
	RefColumns []string
	OnDelete   string // "", "NO ACTION", "RESTRICT", "CASCADE", "SET NULL", "SET DEFAULT"
	OnUpdate   string
}

type PCreateTable struct {
	IfNotExists       bool
	Name              string
	Columns           []PColumnDef
	PrimaryKey        []string // table-level PRIMARY KEY(cols)
	UniqueConstraints []PUniqueConstraint
	ForeignKeys       []PForeignKey
	Engine            string
	Comment           string
}

type PAlterTable struct {
	Name string
	Ops  []PAlterOp // len>1 triggers MultiOperationAlter rejection
}

type PAlterOp struct {
	AddColumn    *PColumnDef
	DropColumn   string
	DropIfExists bool
	RenameColumn *[2]string
	RenameTable  string
}

type PDropTable struct {
	IfExists bool
	Names    []string
	Cascade  bool
}

type PCreateFunction struct {
	Name string
	Args []PFunctionArg
	Body PExpr
}

type PFunctionArg struct {
	Name         string
	HasDefault   bool
	Default      PExpr
}

type PDropFunction struct {
	IfExists bool
	Name     string
}

type PCreateIndex struct {
	Name    string
	Table   string
	Columns []PExpr // len 0 triggers UnnamedIndex, len > 1 CompositeIndex rejection
}

type PDropIndex struct {
	Table string
	Name  string
}

type PShowColumns struct{ Table string }
type PShowIndexes struct{ Table string }

type PInsert struct {
	Table        string
	Columns      []string
	Source       *PQuery
	Returning    []PExpr // non-nil => rejected (RETURNING not supported)
	OnConflict   bool    // => rejected (ON CONFLICT not supported)
	DefaultValues bool   // => rejected (DEFAULT VALUES not supported)
}

type PAssignment struct {
	TupleTargets    []string // non-empty => rejected (tuple assignment not supported)
	Target          string
	TargetQualified bool // true => LHS was "alias.col" => rejected (compound identifier on UPDATE)
	Value           PExpr
}

type PUpdate struct {
	Table        string
	Assignments  []PAssignment
	Selection    PExpr
	HasSelection bool
	From         *PTableWithJoins // non-nil => rejected (USING not supported)
}

type PDelete struct {
	Table        string
	Selection    PExpr
	HasSelection bool
}

// literalFromNumber parses a decimal-text number into a literal.Literal.
func literalFromNumber(s string) (literal.Literal, error) { return literal.NumberFromString(s) }
