package lexicon

// Comparison operators accepted by the equality whitelist.
const (
	OpEqual              = "="
	OpNotEqual           = "!="
	OpLessThan           = "<"
	OpLessThanOrEqual    = "<="
	OpGreaterThan        = ">"
	OpGreaterThanOrEqual = ">="
	OpIn                 = "IN"
	OpNotIn              = "NOT IN"
)

// Logical connectors
const (
	OpAnd = "AND"
	OpOr  = "OR"
)

// Sort directions
const (
	Asc  = "ASC"
	Desc = "DESC"
)

// Like patterns. The letter a is replaced by the search argument.
const (
	PatternContains   = "%a%"
	PatternStartsWith = "a%"
	PatternEndsWith   = "%a"
)

// Tuple kinds understood by grouped predicates in addition to the
// equality operators.
const (
	KindBetween    = "between"
	KindNotBetween = "notbetween"
	KindLike       = "like"
	KindNotLike    = "notlike"
)
