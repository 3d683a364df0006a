package query

import (
	"strconv"

	"github.com/Konsultn-Engineering/bookworm/lexicon"
)

// GroupBy appends a grouping term. With a table the term is `table`.`field`.
func (b *Builder) GroupBy(field string, table ...string) *Builder {
	b.push(ClauseGroupBy, qualify(field, table))
	return b
}

// OrderBy appends an ordering term. direction is asc or desc, default asc.
func (b *Builder) OrderBy(field, direction string, table ...string) *Builder {
	dir, _ := lexicon.Validate(direction, lexicon.Directions)
	b.push(ClauseOrderBy, qualify(field, table)+" "+dir)
	return b
}

func qualify(field string, table []string) string {
	if len(table) > 0 && table[0] != "" {
		return Quote(table[0], field)
	}
	return QuoteDotted(field)
}

// Limit sets LIMIT count, or LIMIT count, offset when a page is given,
// where offset = page*count - count. A negative count or a page below 1
// leaves the clause untouched.
func (b *Builder) Limit(count int, page ...int) *Builder {
	if count < 0 {
		return b
	}
	if len(page) == 0 {
		b.limit = &limitClause{count: count}
		return b
	}
	if page[0] < 1 {
		return b
	}
	b.limit = &limitClause{
		count:  count,
		offset: page[0]*count - count,
		hasOff: true,
	}
	return b
}

// LimitOffset sets LIMIT count, offset with a raw row offset.
func (b *Builder) LimitOffset(count, offset int) *Builder {
	if count < 0 || offset < 0 {
		return b
	}
	b.limit = &limitClause{count: count, offset: offset, hasOff: true}
	return b
}

// GetLimit returns the last count passed to Limit or LimitOffset.
func (b *Builder) GetLimit() (int, bool) {
	if b.limit == nil {
		return 0, false
	}
	return b.limit.count, true
}

// Offset returns the row offset of the limit clause, if any.
func (b *Builder) Offset() (int, bool) {
	if b.limit == nil || !b.limit.hasOff {
		return 0, false
	}
	return b.limit.offset, true
}

// LimitText returns the rendered limit arguments, such as "10, 20".
func (b *Builder) LimitText() string {
	if b.limit == nil {
		return ""
	}
	s := strconv.Itoa(b.limit.count)
	if b.limit.hasOff {
		s += ", " + strconv.Itoa(b.limit.offset)
	}
	return s
}
