// Package lexicon holds the fixed keyword table and operator whitelists
// consumed by the statement builder.
package lexicon

import "strings"

// Group names a whitelist.
type Group string

const (
	Directions Group = "directions"
	Logical    Group = "logical"
	Equality   Group = "equality"
	Like       Group = "like"
)

var keywords = map[string]string{
	"or":         "or",
	"and":        "and",
	"set":        "set",
	"where":      "where",
	"like":       "like",
	"notlike":    "not like",
	"from":       "from",
	"select":     "select",
	"update":     "update",
	"delete":     "delete",
	"values":     "values",
	"insert":     "insert into",
	"having":     "having",
	"between":    "between",
	"nothaving":  "not having",
	"notbetween": "not between",
	"groupby":    "group by",
	"orderby":    "order by",
	"notin":      "not in",
	"limit":      "limit",
	"not":        "not",
	"in":         "in",
	"on":         "on",
	"innot":      "in not",
	"innerjoin":  "inner join",
	"leftjoin":   "left join",
	"rightjoin":  "right join",
}

type whitelist struct {
	members []string
	def     string
}

var whitelists = map[Group]whitelist{
	Directions: {members: []string{strings.ToLower(Asc), strings.ToLower(Desc)}, def: strings.ToLower(Asc)},
	Logical:    {members: []string{strings.ToLower(OpAnd), strings.ToLower(OpOr)}, def: strings.ToLower(OpAnd)},
	Equality: {
		members: []string{
			OpGreaterThan, OpGreaterThanOrEqual, OpEqual, OpLessThanOrEqual,
			OpLessThan, OpNotEqual, OpIn, OpNotIn,
		},
		def: OpEqual,
	},
	Like: {members: []string{PatternContains, PatternStartsWith, PatternEndsWith}, def: PatternContains},
}

// Keyword returns the upper-cased SQL text for a clause name such as
// "notbetween" or "leftjoin". Lookup is case-insensitive.
func Keyword(name string) (string, bool) {
	text, ok := keywords[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	return strings.ToUpper(text), true
}

// MustKeyword is Keyword for names known at compile time. An unknown name
// yields the empty string.
func MustKeyword(name string) string {
	text, _ := Keyword(name)
	return text
}

// Validate returns the upper-cased candidate if it belongs to the group,
// or the group's default otherwise. Membership ignores case and
// surrounding whitespace. The boolean is false only for unknown groups.
func Validate(candidate string, group Group) (string, bool) {
	wl, ok := whitelists[group]
	if !ok {
		return "", false
	}
	c := strings.ToLower(strings.TrimSpace(candidate))
	for _, m := range wl.members {
		if strings.ToLower(m) == c {
			return strings.ToUpper(m), true
		}
	}
	return strings.ToUpper(wl.def), true
}

// Canonical is Validate without upper-casing: it returns the whitelist
// member as declared, or the declared default. Like patterns go through
// here because their substitution letter is lower-case.
func Canonical(candidate string, group Group) (string, bool) {
	wl, ok := whitelists[group]
	if !ok {
		return "", false
	}
	c := strings.ToLower(strings.TrimSpace(candidate))
	for _, m := range wl.members {
		if strings.ToLower(m) == c {
			return m, true
		}
	}
	return wl.def, true
}

// Default returns the upper-cased default of a group.
func Default(group Group) (string, bool) {
	wl, ok := whitelists[group]
	if !ok {
		return "", false
	}
	return strings.ToUpper(wl.def), true
}
