// Package dialect describes how a target database quotes identifiers and
// strings and how it spells positional placeholders.
package dialect

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

type Dialect interface {
	Name() string
	QuoteIdentifier(name string) string
	QuoteString(s string) string
	Placeholder(n int) string
	RenderValue(v any) string
}

// ByName returns the dialect registered under name: mysql, tidb, postgres
// (or pgx) and sqlite.
func ByName(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "mysql":
		return NewMySQLDialect(), nil
	case "tidb":
		return NewTiDBDialect(), nil
	case "postgres", "postgresql", "pgx":
		return NewPostgresDialect(), nil
	case "sqlite", "sqlite3":
		return NewSQLiteDialect(), nil
	default:
		return nil, fmt.Errorf("unknown dialect %q", name)
	}
}

func quoteWith(q, name string) string {
	return q + strings.ReplaceAll(name, q, q+q) + q
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// renderLiteral writes v as a SQL literal. bytes formats []byte values.
func renderLiteral(v any, bytes func([]byte) string) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return quoteString(val)
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64)
	case time.Time:
		return "'" + val.Format("2006-01-02 15:04:05.000000") + "'"
	case []byte:
		return bytes(val)
	default:
		return quoteString(fmt.Sprint(val))
	}
}
