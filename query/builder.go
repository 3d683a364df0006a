// Package query implements a fluent SQL statement builder. A Builder
// accumulates clause fragments and renders them into one SELECT, UPDATE,
// INSERT or DELETE statement. Every scalar literal is replaced by an opaque
// placeholder token recorded in the builder's binding table.
package query

import (
	"errors"

	"github.com/Konsultn-Engineering/bookworm/ids"
)

// Shape is the statement kind a builder is locked to.
type Shape int

const (
	ShapeNone Shape = iota
	ShapeSelect
	ShapeUpdate
	ShapeInsert
	ShapeDelete
)

func (s Shape) String() string {
	switch s {
	case ShapeSelect:
		return "select"
	case ShapeUpdate:
		return "update"
	case ShapeInsert:
		return "insert"
	case ShapeDelete:
		return "delete"
	default:
		return "none"
	}
}

// Clause identifies one sequence of the clause set.
type Clause int

const (
	ClauseSelect Clause = iota
	ClauseFrom
	ClauseInnerJoin
	ClauseLeftJoin
	ClauseRightJoin
	ClauseWhere
	ClauseOrWhere
	ClauseBetween
	ClauseNotBetween
	ClauseOrBetween
	ClauseOrNotBetween
	ClauseLike
	ClauseOrLike
	ClauseNotLike
	ClauseOrNotLike
	ClauseHaving
	ClauseOrHaving
	ClauseGroupBy
	ClauseOrderBy
	ClauseSet
	ClauseFieldNames
	ClauseValues
)

// Statistics counts registration calls per predicate family. Build uses
// them to skip families that were never touched.
type Statistics struct {
	Joins   int
	Where   int
	Between int
	Like    int
	Having  int
}

type limitClause struct {
	count  int
	offset int
	hasOff bool
}

// Builder accumulates one statement. It is not safe for concurrent use.
type Builder struct {
	id      string
	opts    options
	tokens  ids.Generator
	shape   Shape
	target  string
	clauses map[Clause][]string
	limit   *limitClause
	stats   Statistics

	bindings []Binding
	index    map[string]int
	typed    int

	errors []error
}

// New returns an empty builder.
func New(opts ...Option) *Builder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := &Builder{
		id:     o.id,
		opts:   o,
		tokens: o.tokens,
	}
	if b.tokens == nil {
		b.tokens = ids.NewNanoIDGenerator(o.tokenLength, ids.Lowercase)
	}
	b.clear()
	return b
}

func (b *Builder) clear() {
	b.shape = ShapeNone
	b.target = ""
	b.clauses = make(map[Clause][]string)
	b.limit = nil
	b.stats = Statistics{}
	b.bindings = nil
	b.index = make(map[string]int)
	b.typed = 0
	b.errors = nil
}

// Reset empties the clause set, bindings and statistics. The identifier and
// options are kept.
func (b *Builder) Reset() *Builder {
	b.clear()
	return b
}

// ID returns the identifier the builder was created with.
func (b *Builder) ID() string {
	return b.id
}

// Shape returns the locked statement shape.
func (b *Builder) Shape() Shape {
	return b.shape
}

// Mode returns the compat/strict setting.
func (b *Builder) Mode() Mode {
	return b.opts.mode
}

// Stats returns the registration counters.
func (b *Builder) Stats() Statistics {
	return b.stats
}

// Fragments returns a copy of one clause sequence.
func (b *Builder) Fragments(c Clause) []string {
	src := b.clauses[c]
	if len(src) == 0 {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func (b *Builder) push(c Clause, fragments ...string) {
	b.clauses[c] = append(b.clauses[c], fragments...)
}

func (b *Builder) addError(err error) {
	if err != nil {
		b.errors = append(b.errors, err)
	}
}

// Err returns the accumulated registration errors, if any.
func (b *Builder) Err() error {
	return errors.Join(b.errors...)
}

// lock claims the shape on first use. It reports whether the caller won.
func (b *Builder) lock(s Shape) bool {
	if b.shape != ShapeNone {
		return false
	}
	b.shape = s
	return true
}
