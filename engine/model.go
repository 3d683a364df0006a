package engine

import (
	"context"
	"database/sql"
	"reflect"

	"github.com/Konsultn-Engineering/bookworm/query"
	"github.com/Konsultn-Engineering/bookworm/schema"
)

// FindAll runs b and scans each row into a T by column name, see
// schema.Introspect for the mapping rules.
func FindAll[T any](ctx context.Context, e *Engine, b *query.Builder) ([]T, error) {
	meta, err := schema.Introspect(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}

	rows, err := e.Query(ctx, b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []T
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		var item T
		if err := meta.ScanRow(&item, cols, values); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// FindOne limits b to one row and scans it. sql.ErrNoRows is returned when
// nothing matches.
func FindOne[T any](ctx context.Context, e *Engine, b *query.Builder) (T, error) {
	var zero T
	items, err := FindAll[T](ctx, e, b.Limit(1))
	if err != nil {
		return zero, err
	}
	if len(items) == 0 {
		return zero, sql.ErrNoRows
	}
	return items[0], nil
}
