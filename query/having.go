package query

import "github.com/Konsultn-Engineering/bookworm/lexicon"

// Having adds HAVING field OP value, joined with AND.
func (b *Builder) Having(field, op string, value any) *Builder {
	b.stats.Having++
	b.push(ClauseHaving, b.RenderHaving(field, op, value))
	return b
}

// OrHaving adds HAVING field OP value, joined with OR.
func (b *Builder) OrHaving(field, op string, value any) *Builder {
	b.stats.Having++
	b.push(ClauseOrHaving, b.RenderHaving(field, op, value))
	return b
}

// RenderHaving renders a having fragment, keyword included.
func (b *Builder) RenderHaving(field, op string, value any) string {
	op, _ = lexicon.Validate(op, lexicon.Equality)
	return lexicon.MustKeyword("having") + " " + QuoteDotted(field) + " " + op + " " + b.bind(value)
}
