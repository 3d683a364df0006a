package query

import (
	"github.com/Konsultn-Engineering/bookworm/schema"
)

// Select locks the builder to SELECT and appends fields verbatim. It does
// nothing once any shape is locked.
func (b *Builder) Select(fields ...string) *Builder {
	if b.lock(ShapeSelect) {
		b.push(ClauseSelect, fields...)
	}
	return b
}

// AddSelect appends fields to the select list whatever the lock state.
func (b *Builder) AddSelect(fields ...string) *Builder {
	b.push(ClauseSelect, fields...)
	return b
}

// Update locks the builder to UPDATE on table.
func (b *Builder) Update(table string) *Builder {
	if b.lock(ShapeUpdate) {
		b.target = table
	}
	return b
}

// Insert locks the builder to INSERT into table.
func (b *Builder) Insert(table string) *Builder {
	if b.lock(ShapeInsert) {
		b.target = table
	}
	return b
}

// Delete locks the builder to DELETE from table.
func (b *Builder) Delete(table string) *Builder {
	if b.lock(ShapeDelete) {
		b.target = table
	}
	return b
}

// Target returns the table of an update, insert or delete.
func (b *Builder) Target() string {
	return b.target
}

// From appends source tables. "users u" is quoted as `users` `u`.
func (b *Builder) From(tables ...string) *Builder {
	for _, t := range tables {
		b.push(ClauseFrom, QuoteAliased(t))
	}
	return b
}

// FromModel appends the inflected table name of each model, see
// schema.TableName.
func (b *Builder) FromModel(models ...any) *Builder {
	for _, m := range models {
		b.push(ClauseFrom, Quote(schema.TableName(m)))
	}
	return b
}
