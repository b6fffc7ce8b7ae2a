package value

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Interval text literals look like "3 days" or "2 years 3 months":
// repeated "<number> <unit>" terms; clock-style fragments such as
// "04:30:00" are not accepted. This is a small participle grammar, the same shape used
// elsewhere for other "amount plus unit keyword" reference formats: a
// handful of terms, each an amount plus a unit keyword.
type intervalLiteral struct {
	Terms []*intervalTerm `parser:"@@+"`
}

type intervalTerm struct {
	Amount float64 `parser:"@Number"`
	Unit   string  `parser:"@Ident"`
}

var intervalLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `-?[0-9]+(\.[0-9]+)?`},
	{Name: "Ident", Pattern: `[A-Za-z]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var intervalParser = participle.MustBuild[intervalLiteral](
	participle.Lexer(intervalLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

var monthUnits = map[string]int32{
	"year": 12, "years": 12, "y": 12,
	"month": 1, "months": 1, "mon": 1,
}

var microUnits = map[string]int64{
	"day": int64(24 * 3600 * 1e6), "days": int64(24 * 3600 * 1e6), "d": int64(24 * 3600 * 1e6),
	"hour": int64(3600 * 1e6), "hours": int64(3600 * 1e6), "h": int64(3600 * 1e6),
	"minute": int64(60 * 1e6), "minutes": int64(60 * 1e6), "min": int64(60 * 1e6),
	"second": int64(1e6), "seconds": int64(1e6), "sec": int64(1e6), "s": int64(1e6),
	"millisecond": int64(1e3), "milliseconds": int64(1e3), "ms": int64(1e3),
	"microsecond": 1, "microseconds": 1, "us": 1,
}

// ParseIntervalText parses a SQL-style interval literal string into an
// Interval, determining IntervalMonth vs IntervalMicrosecond from the
// unit keywords used: the two kinds are disjoint, so a literal may not
// mix YEAR/MONTH units with DAY-through-MICROSECOND units.
func ParseIntervalText(s string) (Interval, error) {
	lit, err := intervalParser.ParseString("", s)
	if err != nil {
		return Interval{}, err
	}
	if len(lit.Terms) == 0 {
		return Interval{}, fmt.Errorf("empty interval literal")
	}

	var months int32
	var micros int64
	sawMonth, sawMicro := false, false

	for _, term := range lit.Terms {
		unit := normalizeUnit(term.Unit)
		if factor, ok := monthUnits[unit]; ok {
			sawMonth = true
			months += int32(term.Amount) * factor
			continue
		}
		if factor, ok := microUnits[unit]; ok {
			sawMicro = true
			micros += int64(term.Amount * float64(factor))
			continue
		}
		return Interval{}, fmt.Errorf("unrecognized interval unit %q", term.Unit)
	}

	if sawMonth && sawMicro {
		return Interval{}, fmt.Errorf("cannot mix year-month and day-through-microsecond interval units")
	}
	if sawMonth {
		return Interval{Kind: IntervalMonth, Month: months}, nil
	}
	return Interval{Kind: IntervalMicrosecond, Micro: micros}, nil
}

func normalizeUnit(u string) string {
	out := make([]byte, len(u))
	for i := 0; i < len(u); i++ {
		c := u[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
