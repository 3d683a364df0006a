package query

import (
	"strings"

	"github.com/Konsultn-Engineering/bookworm/lexicon"
)

// Cond is one side of a grouped predicate. Op is an equality operator or
// one of the kinds between, notbetween, like and notlike. For between kinds
// Value and Extra are the bounds; for like kinds Value is the argument and
// Extra the optional pattern.
type Cond struct {
	Field string
	Op    string
	Value any
	Extra any
}

// C builds a Cond.
func C(field, op string, value any, extra ...any) Cond {
	c := Cond{Field: field, Op: op, Value: value}
	if len(extra) > 0 {
		c.Extra = extra[0]
	}
	return c
}

// Where adds field OP value, joined to other where predicates with AND.
// Unknown operators fall back to =.
func (b *Builder) Where(field, op string, value any) *Builder {
	b.stats.Where++
	b.push(ClauseWhere, b.RenderWhere(field, op, value))
	return b
}

// OrWhere adds field OP value, joined with OR.
func (b *Builder) OrWhere(field, op string, value any) *Builder {
	b.stats.Where++
	b.push(ClauseOrWhere, b.RenderWhere(field, op, value))
	return b
}

// WhereGroup adds (a CONNECTOR b) joined with AND. The connector is AND or
// OR and defaults to AND.
func (b *Builder) WhereGroup(a Cond, connector string, c Cond) *Builder {
	b.stats.Where++
	b.push(ClauseWhere, b.RenderGroup(a, connector, c))
	return b
}

// OrWhereGroup adds (a CONNECTOR b) joined with OR.
func (b *Builder) OrWhereGroup(a Cond, connector string, c Cond) *Builder {
	b.stats.Where++
	b.push(ClauseOrWhere, b.RenderGroup(a, connector, c))
	return b
}

// RenderWhere renders a simple predicate and binds its value without
// registering it.
func (b *Builder) RenderWhere(field, op string, value any) string {
	op, _ = lexicon.Validate(op, lexicon.Equality)
	return QuoteDotted(field) + " " + op + " " + b.bind(value)
}

// RenderGroup renders two conditions joined by a validated connector.
func (b *Builder) RenderGroup(a Cond, connector string, c Cond) string {
	logical, _ := lexicon.Validate(connector, lexicon.Logical)
	return "(" + b.RenderCond(a) + " " + logical + " " + b.RenderCond(c) + ")"
}

// RenderCond dispatches on c.Op: between kinds render through
// RenderBetween, like kinds through RenderLike, anything else is a simple
// predicate.
func (b *Builder) RenderCond(c Cond) string {
	switch strings.ToLower(c.Op) {
	case lexicon.KindBetween:
		return b.RenderBetween(c.Field, c.Value, c.Extra, false)
	case lexicon.KindNotBetween:
		return b.RenderBetween(c.Field, c.Value, c.Extra, true)
	case lexicon.KindLike:
		return b.RenderLike(c.Field, argument(c.Value), false, pattern(c.Extra)...)
	case lexicon.KindNotLike:
		return b.RenderLike(c.Field, argument(c.Value), true, pattern(c.Extra)...)
	default:
		return b.RenderWhere(c.Field, c.Op, c.Value)
	}
}

func argument(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmtValue(v)
}

func pattern(v any) []string {
	if s, ok := v.(string); ok && s != "" {
		return []string{s}
	}
	return nil
}
