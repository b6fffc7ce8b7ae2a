// Package sqlerr provides the single tagged error taxonomy shared by every
// layer of the query engine: translate, plan, evaluate, execute, and value.
//
// Each family below corresponds to one of the groups in the error taxonomy:
// translation rejects unsupported syntax, schema/alter errors concern DDL,
// evaluate/value errors concern expression evaluation, and so on. A caller
// that only cares about the family can use errors.Is against the family
// sentinel; a caller that wants the structured context can type-assert to
// *Error and read Kind/Fields.
package sqlerr

import (
	"errors"
	"fmt"
)

// Family sentinels. Every *Error.Unwrap returns the sentinel for its Kind's
// family, so errors.Is(err, ErrEvaluate) matches any evaluate-layer error.
var (
	ErrTranslate = errors.New("translate error")
	ErrSchema    = errors.New("schema error")
	ErrEvaluate  = errors.New("evaluate error")
	ErrValue     = errors.New("value error")
	ErrValidate  = errors.New("validate error")
	ErrExecute   = errors.New("execute error")
	ErrStore     = errors.New("store error")
)

// Kind enumerates every distinct error variant the core can raise.
type Kind int

const (
	// Translate
	KindUnsupportedSyntax Kind = iota
	KindCompoundIdentifierOnUpdate
	KindUnnamedIndex
	KindCompositeIndex
	KindColumnNotFoundInConstraint
	KindMultiplePrimaryKeys
	KindEmptyPrimaryKey
	KindDuplicateUniqueConstraint
	KindEmptyUniqueConstraint
	KindRepeatedUniqueConstraint
	KindInvalidParamPlaceholder
	KindTooManyValues
	KindDefaultValuesNotSupported
	KindMultiOperationAlter
	KindCompoundObjectName

	// Schema / alter
	KindTableNotFound
	KindTableAlreadyExists
	KindFunctionAlreadyExists
	KindDuplicateColumn
	KindUnsupportedUniqueDataType
	KindIdentifierNotFoundInIndex

	// Evaluate
	KindIdentifierNotFound
	KindAmbiguousIdentifier
	KindMoreThanOneRow
	KindMoreThanOneColumn
	KindDivisorIsZero
	KindNonNumericArithmetic
	KindLikeOnNonString
	KindExtractFormatMismatch
	KindUnsupportedBinaryOp
	KindUnsupportedUnaryOp
	KindBooleanRequired
	KindSubqueryContextRequired
	KindAggregateContextRequired

	// Value
	KindIncompatibleDataType
	KindNullOnNotNull
	KindFailedToParseNumber
	KindFailedToParseDate
	KindFailedToParseTime
	KindFailedToParseTimestamp
	KindFailedToParseUUID
	KindFailedToParseHex
	KindFailedToParseInet
	KindFailedToParseInterval
	KindBinaryOperationOverflow
	KindImpossibleCast
	KindFactorialOnNegative
	KindFactorialOnNonInteger
	KindFactorialOnNonNumeric
	KindSqrtOnNonNumeric
	KindIncompatibleIntervalKind

	// Validate
	KindDuplicateEntryOnUnique
	KindDuplicateEntryOnPrimaryKey
	KindConflictOnStorageColumnIndex

	// Execute
	KindColumnNotFound
	KindUpdateOnPrimaryKey
	KindConflictOnSchema

	// Row conversion (§4.8)
	KindNullNotAllowed
	KindTypeMismatch

	// Store (opaque passthrough)
	KindStore
)

var familyOf = map[Kind]error{
	KindUnsupportedSyntax:           ErrTranslate,
	KindCompoundIdentifierOnUpdate:  ErrTranslate,
	KindUnnamedIndex:                ErrTranslate,
	KindCompositeIndex:              ErrTranslate,
	KindColumnNotFoundInConstraint:  ErrTranslate,
	KindMultiplePrimaryKeys:         ErrTranslate,
	KindEmptyPrimaryKey:             ErrTranslate,
	KindDuplicateUniqueConstraint:   ErrTranslate,
	KindEmptyUniqueConstraint:       ErrTranslate,
	KindRepeatedUniqueConstraint:    ErrTranslate,
	KindInvalidParamPlaceholder:     ErrTranslate,
	KindTooManyValues:               ErrTranslate,
	KindDefaultValuesNotSupported:   ErrTranslate,
	KindMultiOperationAlter:         ErrTranslate,
	KindCompoundObjectName:          ErrTranslate,
	KindTableNotFound:               ErrSchema,
	KindTableAlreadyExists:          ErrSchema,
	KindFunctionAlreadyExists:       ErrSchema,
	KindDuplicateColumn:             ErrSchema,
	KindUnsupportedUniqueDataType:   ErrSchema,
	KindIdentifierNotFoundInIndex:   ErrSchema,
	KindIdentifierNotFound:          ErrEvaluate,
	KindAmbiguousIdentifier:         ErrEvaluate,
	KindMoreThanOneRow:              ErrEvaluate,
	KindMoreThanOneColumn:           ErrEvaluate,
	KindDivisorIsZero:               ErrEvaluate,
	KindNonNumericArithmetic:        ErrEvaluate,
	KindLikeOnNonString:             ErrEvaluate,
	KindExtractFormatMismatch:       ErrEvaluate,
	KindUnsupportedBinaryOp:         ErrEvaluate,
	KindUnsupportedUnaryOp:          ErrEvaluate,
	KindBooleanRequired:             ErrEvaluate,
	KindSubqueryContextRequired:     ErrEvaluate,
	KindAggregateContextRequired:    ErrEvaluate,
	KindIncompatibleDataType:        ErrValue,
	KindNullOnNotNull:               ErrValue,
	KindFailedToParseNumber:         ErrValue,
	KindFailedToParseDate:           ErrValue,
	KindFailedToParseTime:           ErrValue,
	KindFailedToParseTimestamp:      ErrValue,
	KindFailedToParseUUID:           ErrValue,
	KindFailedToParseHex:            ErrValue,
	KindFailedToParseInet:           ErrValue,
	KindFailedToParseInterval:       ErrValue,
	KindBinaryOperationOverflow:     ErrValue,
	KindImpossibleCast:              ErrValue,
	KindFactorialOnNegative:         ErrValue,
	KindFactorialOnNonInteger:       ErrValue,
	KindFactorialOnNonNumeric:       ErrValue,
	KindSqrtOnNonNumeric:            ErrValue,
	KindIncompatibleIntervalKind:    ErrValue,
	KindDuplicateEntryOnUnique:      ErrValidate,
	KindDuplicateEntryOnPrimaryKey:  ErrValidate,
	KindConflictOnStorageColumnIndex: ErrValidate,
	KindColumnNotFound:              ErrExecute,
	KindUpdateOnPrimaryKey:          ErrExecute,
	KindConflictOnSchema:            ErrExecute,
	KindNullNotAllowed:              ErrExecute,
	KindTypeMismatch:                ErrExecute,
	KindStore:                       ErrStore,
}

// Error is the single structured error type returned from every layer of
// the engine. Fields carries whatever context the producing call site had
// on hand (column names, operator symbols, operand values' string forms)
// so a caller can reconstruct a user-facing message without re-evaluating
// the query.
type Error struct {
	Kind   Kind
	Msg    string
	Fields map[string]any
}

// New builds an *Error for kind with a formatted message and no extra
// fields. Use With to attach fields to the built error.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// With attaches key/value context to e and returns e for chaining.
func (e *Error) With(key string, value any) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = value
	return e
}

func (e *Error) Error() string {
	return e.Msg
}

// Unwrap lets errors.Is match the family sentinel for e.Kind.
func (e *Error) Unwrap() error {
	if family, ok := familyOf[e.Kind]; ok {
		return family
	}
	return nil
}

// Is reports whether target is the same Kind as e, so errors.Is can also
// match exact variants (not just families) when the caller has a *Error
// constant to compare against.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}
