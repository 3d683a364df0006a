package query

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Set appends `field` = token to the SET list. Nil values are skipped.
func (b *Builder) Set(field string, value any) *Builder {
	if field == "" || value == nil {
		return b
	}
	b.push(ClauseSet, QuoteDotted(field)+" = "+b.bind(value))
	return b
}

// SetMap calls Set for every pair, in key order.
func (b *Builder) SetMap(values map[string]any) *Builder {
	keys := lo.Keys(values)
	sort.Strings(keys)
	for _, k := range keys {
		b.Set(k, values[k])
	}
	return b
}

// FieldNames merges names into the insert column list, dropping duplicates.
func (b *Builder) FieldNames(names ...string) *Builder {
	b.clauses[ClauseFieldNames] = lo.Uniq(append(b.clauses[ClauseFieldNames], names...))
	return b
}

// Values binds one row of insert values. types, when given, declares the
// bind type per position. Repeated calls add rows.
func (b *Builder) Values(values []any, types ...BindType) *Builder {
	if len(values) == 0 {
		return b
	}
	tokens := make([]string, len(values))
	for i, v := range values {
		if i < len(types) {
			tokens[i] = b.bind(v, types[i])
		} else {
			tokens[i] = b.bind(v)
		}
	}
	b.push(ClauseValues, "("+strings.Join(tokens, ", ")+")")
	return b
}
