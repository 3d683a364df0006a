package query

import (
	"fmt"
	"strings"

	"github.com/Konsultn-Engineering/bookworm/lexicon"
)

// Like adds field LIKE "pattern" joined with AND. The letter a in pattern
// (%a%, a% or %a, default %a%) is replaced by argument. In compat mode the
// result is written into the SQL as a double-quoted literal and is not
// escaped; strict mode binds it instead.
func (b *Builder) Like(field, argument string, pattern ...string) *Builder {
	b.stats.Like++
	b.push(ClauseLike, b.RenderLike(field, argument, false, pattern...))
	return b
}

// OrLike is Like joined with OR.
func (b *Builder) OrLike(field, argument string, pattern ...string) *Builder {
	b.stats.Like++
	b.push(ClauseOrLike, b.RenderLike(field, argument, false, pattern...))
	return b
}

// NotLike adds field NOT LIKE "pattern" joined with AND.
func (b *Builder) NotLike(field, argument string, pattern ...string) *Builder {
	b.stats.Like++
	b.push(ClauseNotLike, b.RenderLike(field, argument, true, pattern...))
	return b
}

// OrNotLike is NotLike joined with OR.
func (b *Builder) OrNotLike(field, argument string, pattern ...string) *Builder {
	b.stats.Like++
	b.push(ClauseOrNotLike, b.RenderLike(field, argument, true, pattern...))
	return b
}

// RenderLike renders a pattern predicate without registering it.
func (b *Builder) RenderLike(field, argument string, negate bool, pattern ...string) string {
	p := ""
	if len(pattern) > 0 {
		p = pattern[0]
	}
	p, _ = lexicon.Canonical(p, lexicon.Like)
	literal := strings.Replace(p, "a", argument, 1)

	kw := "like"
	if negate {
		kw = "notlike"
	}

	rhs := `"` + literal + `"`
	if b.opts.mode == ModeStrict {
		rhs = b.bind(literal)
	}
	return QuoteDotted(field) + " " + lexicon.MustKeyword(kw) + " " + rhs
}

func fmtValue(v any) string {
	return fmt.Sprint(v)
}
