package query

import "github.com/Konsultn-Engineering/bookworm/lexicon"

var joinClauses = [3]Clause{
	JoinInner: ClauseInnerJoin,
	JoinLeft:  ClauseLeftJoin,
	JoinRight: ClauseRightJoin,
}

var joinKeywords = [3]string{
	JoinInner: "innerjoin",
	JoinLeft:  "leftjoin",
	JoinRight: "rightjoin",
}

// Join adds INNER JOIN table ON rightField = leftField.
func (b *Builder) Join(table, leftField, rightField string) *Builder {
	return b.addJoin(JoinInner, table, leftField, rightField)
}

// LeftJoin adds LEFT JOIN table ON rightField = leftField.
func (b *Builder) LeftJoin(table, leftField, rightField string) *Builder {
	return b.addJoin(JoinLeft, table, leftField, rightField)
}

// RightJoin adds RIGHT JOIN table ON rightField = leftField.
func (b *Builder) RightJoin(table, leftField, rightField string) *Builder {
	return b.addJoin(JoinRight, table, leftField, rightField)
}

func (b *Builder) addJoin(kind JoinKind, table, leftField, rightField string) *Builder {
	b.stats.Joins++
	b.push(joinClauses[kind], b.RenderJoin(kind, table, leftField, rightField))
	return b
}

// RenderJoin renders a join fragment using the quoting configured for kind.
// Inner joins quote aliases and dotted fields by default; left and right
// joins quote each argument as a single identifier.
func (b *Builder) RenderJoin(kind JoinKind, table, leftField, rightField string) string {
	if kind < JoinInner || kind > JoinRight {
		kind = JoinInner
	}
	style := b.opts.joinQuoting[kind]
	return lexicon.MustKeyword(joinKeywords[kind]) + " " +
		quoteSourceWith(style, table) + " " +
		lexicon.MustKeyword("on") + " " +
		quoteWith(style, rightField) + " = " + quoteWith(style, leftField)
}
