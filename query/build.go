package query

import (
	"strings"

	"github.com/Konsultn-Engineering/bookworm/lexicon"
)

type predicateGroup struct {
	clause    Clause
	connector string
}

// Order of the predicate families after WHERE. Each group is joined
// internally by its connector and introduced by it.
var (
	whereGroups = []predicateGroup{
		{ClauseWhere, "and"},
		{ClauseOrWhere, "or"},
	}
	betweenGroups = []predicateGroup{
		{ClauseBetween, "and"},
		{ClauseNotBetween, "and"},
		{ClauseOrBetween, "or"},
		{ClauseOrNotBetween, "or"},
	}
	likeGroups = []predicateGroup{
		{ClauseLike, "and"},
		{ClauseOrLike, "or"},
		{ClauseNotLike, "and"},
		{ClauseOrNotLike, "or"},
	}
	havingGroups = []predicateGroup{
		{ClauseHaving, "and"},
		{ClauseOrHaving, "or"},
	}
)

// Get applies an optional limit and builds the statement.
func (b *Builder) Get(limit ...int) (string, error) {
	if len(limit) > 0 {
		b.Limit(limit[0])
	}
	return b.Build()
}

// Build renders the statement. The result is trimmed and terminated by a
// semicolon. Build does not modify the clause set and may be called again.
func (b *Builder) Build() (string, error) {
	if err := b.Err(); err != nil {
		return "", err
	}

	var (
		sql string
		err error
	)
	switch {
	case b.shape == ShapeSelect, b.shape == ShapeNone && len(b.clauses[ClauseSelect]) > 0:
		sql = b.buildSelect()
	case b.shape == ShapeUpdate:
		sql, err = b.buildUpdate()
	case b.shape == ShapeInsert:
		sql, err = b.buildInsert()
	case b.shape == ShapeDelete:
		sql, err = b.buildDelete()
	default:
		err = ErrNoShape
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(sql) + ";", nil
}

func (b *Builder) buildSelect() string {
	var sb strings.Builder

	sb.WriteString(lexicon.MustKeyword("select"))
	sb.WriteString(" ")
	sb.WriteString(strings.Join(b.clauses[ClauseSelect], ", "))
	if from := b.clauses[ClauseFrom]; len(from) > 0 {
		sb.WriteString(" ")
		sb.WriteString(lexicon.MustKeyword("from"))
		sb.WriteString(" ")
		sb.WriteString(strings.Join(from, ", "))
	}

	if b.stats.Joins > 0 {
		writePart(&sb, b.buildJoins())
	}
	writePart(&sb, b.buildPredicates())

	if group := b.clauses[ClauseGroupBy]; len(group) > 0 {
		writePart(&sb, lexicon.MustKeyword("groupby")+" "+strings.Join(group, ", "))
	}
	if b.stats.Having > 0 {
		writePart(&sb, b.buildHaving())
	}
	if order := b.clauses[ClauseOrderBy]; len(order) > 0 {
		writePart(&sb, lexicon.MustKeyword("orderby")+" "+strings.Join(order, ", "))
	}
	writePart(&sb, b.buildLimit())

	return sb.String()
}

func (b *Builder) buildUpdate() (string, error) {
	set := b.clauses[ClauseSet]
	if len(set) == 0 {
		return "", ErrEmptySet
	}

	var sb strings.Builder
	sb.WriteString(lexicon.MustKeyword("update"))
	sb.WriteString(" ")
	sb.WriteString(QuoteDotted(b.target))
	sb.WriteString(" ")
	sb.WriteString(lexicon.MustKeyword("set"))
	sb.WriteString(" ")
	sb.WriteString(strings.Join(set, ", "))

	writePart(&sb, b.buildPredicates())
	writePart(&sb, b.buildLimit())

	return sb.String(), nil
}

func (b *Builder) buildInsert() (string, error) {
	values := b.clauses[ClauseValues]
	if len(values) == 0 {
		return "", ErrNoValues
	}

	var sb strings.Builder
	sb.WriteString(lexicon.MustKeyword("insert"))
	sb.WriteString(" ")
	sb.WriteString(QuoteDotted(b.target))
	if names := b.clauses[ClauseFieldNames]; len(names) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(names, ", "))
		sb.WriteString(")")
	}
	sb.WriteString(" ")
	sb.WriteString(lexicon.MustKeyword("values"))
	sb.WriteString(" ")
	sb.WriteString(strings.Join(values, ", "))

	return sb.String(), nil
}

func (b *Builder) buildDelete() (string, error) {
	predicates := b.buildPredicates()
	if predicates == "" && !b.opts.unqualifiedDelete {
		return "", ErrUnqualifiedDelete
	}

	var sb strings.Builder
	sb.WriteString(lexicon.MustKeyword("delete"))
	sb.WriteString(" ")
	sb.WriteString(lexicon.MustKeyword("from"))
	sb.WriteString(" ")
	sb.WriteString(QuoteDotted(b.target))

	writePart(&sb, predicates)
	writePart(&sb, b.buildLimit())

	return sb.String(), nil
}

// buildJoins emits inner, left and right joins in that order.
func (b *Builder) buildJoins() string {
	var parts []string
	for _, c := range []Clause{ClauseInnerJoin, ClauseLeftJoin, ClauseRightJoin} {
		parts = append(parts, b.clauses[c]...)
	}
	return strings.Join(parts, " ")
}

// buildPredicates renders the where, between and like families. The first
// non-empty group is introduced by WHERE and every later group by its own
// connector, so a chain that starts with an OR predicate never yields
// "WHERE OR".
func (b *Builder) buildPredicates() string {
	var groups []predicateGroup
	if b.stats.Where > 0 {
		groups = append(groups, whereGroups...)
	}
	if b.stats.Between > 0 {
		groups = append(groups, betweenGroups...)
	}
	if b.stats.Like > 0 {
		groups = append(groups, likeGroups...)
	}

	var sb strings.Builder
	for _, g := range groups {
		fragments := b.clauses[g.clause]
		if len(fragments) == 0 {
			continue
		}
		conn := lexicon.MustKeyword(g.connector)
		if sb.Len() == 0 {
			sb.WriteString(lexicon.MustKeyword("where"))
		} else {
			sb.WriteString(" ")
			sb.WriteString(conn)
		}
		sb.WriteString(" ")
		sb.WriteString(strings.Join(fragments, " "+conn+" "))
	}
	return sb.String()
}

// buildHaving keeps the first fragment as registered and joins the rest
// by their connector without repeating the HAVING keyword.
func (b *Builder) buildHaving() string {
	prefix := lexicon.MustKeyword("having") + " "

	var sb strings.Builder
	for _, g := range havingGroups {
		conn := lexicon.MustKeyword(g.connector)
		for _, f := range b.clauses[g.clause] {
			if sb.Len() == 0 {
				sb.WriteString(f)
				continue
			}
			sb.WriteString(" ")
			sb.WriteString(conn)
			sb.WriteString(" ")
			sb.WriteString(strings.TrimPrefix(f, prefix))
		}
	}
	return sb.String()
}

func (b *Builder) buildLimit() string {
	text := b.LimitText()
	if text == "" {
		return ""
	}
	return lexicon.MustKeyword("limit") + " " + text
}

func writePart(sb *strings.Builder, part string) {
	if part == "" {
		return
	}
	sb.WriteString(" ")
	sb.WriteString(part)
}
