package evaluate

import (
	"strings"
	"time"

	"github.com/gluesql/gluesql-sub000/core/ast"
	"github.com/gluesql/gluesql-sub000/core/sqlerr"
	"github.com/gluesql/gluesql-sub000/core/value"
)

// function resolves a scalar Function(...) call through a small
// representative registry: UPPER, LOWER, LENGTH, COALESCE (the set the
// planner's projection/filter stages need without pulling in a full
// builtin-function library, which is treated as an out-of-core
// concern).
func (ev *evaluator) function(e ast.Function) (Evaluated, error) {
	name := strings.ToUpper(e.Name)
	switch name {
	case "UPPER":
		return ev.unaryTextFn(e, strings.ToUpper)
	case "LOWER":
		return ev.unaryTextFn(e, strings.ToLower)
	case "LENGTH":
		if len(e.Args) != 1 {
			return Evaluated{}, sqlerr.New(sqlerr.KindUnsupportedSyntax, "LENGTH takes exactly one argument")
		}
		v, err := ev.forceValue(e.Args[0])
		if err != nil {
			return Evaluated{}, err
		}
		if v.IsNull() {
			return FromValue(value.Null()), nil
		}
		s, ok := v.AsStr()
		if !ok {
			return Evaluated{}, sqlerr.New(sqlerr.KindUnsupportedSyntax, "LENGTH requires a text argument")
		}
		return FromValue(value.NewI64(int64(len([]rune(s))))), nil
	case "COALESCE":
		for _, arg := range e.Args {
			v, err := ev.forceValue(arg)
			if err != nil {
				return Evaluated{}, err
			}
			if !v.IsNull() {
				return FromValue(v), nil
			}
		}
		return FromValue(value.Null()), nil
	}
	return Evaluated{}, sqlerr.New(sqlerr.KindUnsupportedSyntax, "unsupported function %q", e.Name)
}

func (ev *evaluator) unaryTextFn(e ast.Function, f func(string) string) (Evaluated, error) {
	if len(e.Args) != 1 {
		return Evaluated{}, sqlerr.New(sqlerr.KindUnsupportedSyntax, "%s takes exactly one argument", e.Name)
	}
	v, err := ev.forceValue(e.Args[0])
	if err != nil {
		return Evaluated{}, err
	}
	if v.IsNull() {
		return FromValue(value.Null()), nil
	}
	s, ok := v.AsStr()
	if !ok {
		return Evaluated{}, sqlerr.New(sqlerr.KindUnsupportedSyntax, "%s requires a text argument", e.Name)
	}
	return FromValue(value.NewStr(f(s))), nil
}

// aggregate looks the aggregate's precomputed result up in ac by the
// expression's own rendered SQL text: requires evaluating
// an aggregate outside its context to error, and inside a GROUP BY this
// is simplest as a lookup keyed by the canonical projection text, since
// core/execute's group-by stage has already walked every row of the
// group by the time projection runs.
func (ev *evaluator) aggregate(e ast.Aggregate) (Evaluated, error) {
	if ev.ac == nil {
		return Evaluated{}, sqlerr.New(sqlerr.KindAggregateContextRequired, "aggregate function used outside an aggregate context")
	}
	key := ast.Aggregate(e).ToSQL()
	v, ok := ev.ac.Results[key]
	if !ok {
		return Evaluated{}, sqlerr.New(sqlerr.KindAggregateContextRequired, "no aggregate result computed for %s", key)
	}
	return FromValue(v), nil
}

// extractField implements EXTRACT(field FROM expr) for Date/Time/
// Timestamp values, the minimal set needed once Cast/Extract round-trip
// through core/ast's ToSQL.
func extractField(field string, v value.Value) (value.Value, error) {
	if v.IsNull() {
		return value.Null(), nil
	}
	var t time.Time
	switch v.Kind() {
	case value.KindDate, value.KindTimestamp, value.KindTime:
		var err error
		t, err = timeOf(v)
		if err != nil {
			return value.Value{}, err
		}
	default:
		return value.Value{}, sqlerr.New(sqlerr.KindExtractFormatMismatch, "EXTRACT requires a date/time/timestamp value")
	}
	switch strings.ToUpper(field) {
	case "YEAR":
		return value.NewI64(int64(t.Year())), nil
	case "MONTH":
		return value.NewI64(int64(t.Month())), nil
	case "DAY":
		return value.NewI64(int64(t.Day())), nil
	case "HOUR":
		return value.NewI64(int64(t.Hour())), nil
	case "MINUTE":
		return value.NewI64(int64(t.Minute())), nil
	case "SECOND":
		return value.NewI64(int64(t.Second())), nil
	}
	return value.Value{}, sqlerr.New(sqlerr.KindExtractFormatMismatch, "unsupported EXTRACT field %q", field)
}

func timeOf(v value.Value) (time.Time, error) {
	return v.ToGoTime()
}
