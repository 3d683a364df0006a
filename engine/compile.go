package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Konsultn-Engineering/bookworm/cache"
	"github.com/Konsultn-Engineering/bookworm/dialect"
	"github.com/Konsultn-Engineering/bookworm/query"
)

// Statement is SQL ready for a driver.
type Statement struct {
	SQL  string
	Args []any
}

// rewrite walks builder output once. Backtick identifiers go through
// QuoteIdentifier, double-quoted literals through QuoteString, single
// quoted literals are copied, and each placeholder token is replaced by
// whatever emit returns for it.
func rewrite(sql string, d dialect.Dialect, known func(string) bool, emit func(string) string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(sql) + 16)

	for i := 0; i < len(sql); {
		c := sql[i]
		switch c {
		case '`', '"', '\'':
			end := strings.IndexByte(sql[i+1:], c)
			if end < 0 {
				return "", fmt.Errorf("%w at offset %d", ErrUnterminated, i)
			}
			body := sql[i+1 : i+1+end]
			switch c {
			case '`':
				sb.WriteString(d.QuoteIdentifier(body))
			case '"':
				sb.WriteString(d.QuoteString(body))
			default:
				sb.WriteString(sql[i : i+end+2])
			}
			i += end + 2
		case ':':
			j := i + 1
			for j < len(sql) && sql[j] >= 'a' && sql[j] <= 'z' {
				j++
			}
			tok := sql[i:j]
			switch {
			case known(tok):
				sb.WriteString(emit(tok))
			case query.IsToken(tok) && (i == 0 || sql[i-1] != ':'):
				return "", fmt.Errorf("%w: %s", ErrUnboundToken, tok)
			default:
				sb.WriteString(tok)
			}
			i = j
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String(), nil
}

// compileTemplate rewrites sql for d and records the token order. On
// dialects with numbered placeholders a repeated token reuses its number.
func compileTemplate(sql string, d dialect.Dialect, known func(string) bool) (*cache.CachedQuery, error) {
	numbered := d.Placeholder(1) != d.Placeholder(2)
	positions := make(map[string]int)
	var order []string

	out, err := rewrite(sql, d, known, func(tok string) string {
		if numbered {
			if n, ok := positions[tok]; ok {
				return d.Placeholder(n)
			}
		}
		order = append(order, tok)
		positions[tok] = len(order)
		return d.Placeholder(len(order))
	})
	if err != nil {
		return nil, err
	}
	return &cache.CachedQuery{SQL: out, Tokens: order}, nil
}

// Interpolate renders bindings inline as dialect literals. The result is
// for display and logging, never for execution.
func Interpolate(sql string, d dialect.Dialect, bindings []query.Binding) (string, error) {
	values := indexBindings(bindings)
	return rewrite(sql, d, func(tok string) bool {
		_, ok := values[tok]
		return ok
	}, func(tok string) string {
		b := values[tok]
		return d.RenderValue(coerce(b.Value, b.Type))
	})
}

func indexBindings(bindings []query.Binding) map[string]query.Binding {
	m := make(map[string]query.Binding, len(bindings))
	for _, b := range bindings {
		m[b.Token] = b
	}
	return m
}

// coerce converts string values to their declared bind type. Values that
// do not parse are passed through for the driver to reject.
func coerce(v any, t query.BindType) any {
	if t == query.BindNull {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		if t == query.BindString && v != nil {
			return fmt.Sprint(v)
		}
		return v
	}
	switch t {
	case query.BindInt:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	case query.BindFloat:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	case query.BindBool:
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	case query.BindBytes:
		return []byte(s)
	}
	return v
}

// normalizeLimit turns the trailing "LIMIT count, offset" written by the
// builder into "LIMIT count OFFSET offset", which every supported dialect
// reads the same way.
func normalizeLimit(sql string, b *query.Builder) string {
	offset, ok := b.Offset()
	if !ok {
		return sql
	}
	count, _ := b.GetLimit()
	legacy := " LIMIT " + strconv.Itoa(count) + ", " + strconv.Itoa(offset) + ";"
	if !strings.HasSuffix(sql, legacy) {
		return sql
	}
	return strings.TrimSuffix(sql, legacy) +
		" LIMIT " + strconv.Itoa(count) + " OFFSET " + strconv.Itoa(offset) + ";"
}
