package query

import (
	"math"
	"strconv"

	"github.com/Konsultn-Engineering/bookworm/lexicon"
)

// Between adds field BETWEEN begin AND end, joined with AND. In compat mode
// the bounds are coerced to integers and written into the SQL; a bound
// that is not numeric becomes 0.
func (b *Builder) Between(field string, begin, end any) *Builder {
	b.stats.Between++
	b.push(ClauseBetween, b.RenderBetween(field, begin, end, false))
	return b
}

// NotBetween adds field NOT BETWEEN begin AND end with bound parameters.
func (b *Builder) NotBetween(field string, begin, end any) *Builder {
	b.stats.Between++
	b.push(ClauseNotBetween, b.RenderBetween(field, begin, end, true))
	return b
}

// OrBetween is Between joined with OR.
func (b *Builder) OrBetween(field string, begin, end any) *Builder {
	b.stats.Between++
	b.push(ClauseOrBetween, b.RenderBetween(field, begin, end, false))
	return b
}

// OrNotBetween is NotBetween joined with OR.
func (b *Builder) OrNotBetween(field string, begin, end any) *Builder {
	b.stats.Between++
	b.push(ClauseOrNotBetween, b.RenderBetween(field, begin, end, true))
	return b
}

// RenderBetween renders a range predicate without registering it.
func (b *Builder) RenderBetween(field string, begin, end any, negate bool) string {
	kw := "between"
	if negate {
		kw = "notbetween"
	}

	var low, high string
	if negate || b.opts.mode == ModeStrict {
		low, high = b.bind(begin), b.bind(end)
	} else {
		low = strconv.FormatInt(toNumber(begin), 10)
		high = strconv.FormatInt(toNumber(end), 10)
	}

	return QuoteDotted(field) + " " + lexicon.MustKeyword(kw) + " " + low + " " +
		lexicon.MustKeyword("and") + " " + high
}

// toNumber converts integers, floats (truncated) and strings made only of
// ASCII digits. Unsigned values above MaxInt64 and everything else are 0.
func toNumber(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0
		}
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		if n > math.MaxInt64 {
			return 0
		}
		return int64(n)
	case float32:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		if !isDigits(n) {
			return 0
		}
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
