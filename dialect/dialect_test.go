package dialect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"mysql", "mysql"},
		{"TiDB", "tidb"},
		{"postgres", "postgres"},
		{"pgx", "postgres"},
		{"sqlite3", "sqlite"},
	}
	for _, tt := range tests {
		d, err := ByName(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, d.Name())
	}

	_, err := ByName("oracle")
	assert.EqualError(t, err, `unknown dialect "oracle"`)
}

func TestQuoting(t *testing.T) {
	tests := []struct {
		name    string
		d       Dialect
		ident   string
		wantID  string
		wantPH1 string
		wantPH3 string
	}{
		{"mysql", NewMySQLDialect(), "na`me", "`na``me`", "?", "?"},
		{"tidb", NewTiDBDialect(), "users", "`users`", "?", "?"},
		{"postgres", NewPostgresDialect(), `we"ird`, `"we""ird"`, "$1", "$3"},
		{"sqlite", NewSQLiteDialect(), "users", `"users"`, "?", "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantID, tt.d.QuoteIdentifier(tt.ident))
			assert.Equal(t, tt.wantPH1, tt.d.Placeholder(1))
			assert.Equal(t, tt.wantPH3, tt.d.Placeholder(3))
			assert.Equal(t, "'it''s'", tt.d.QuoteString("it's"))
		})
	}
}

func TestRenderValue(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		d    Dialect
		v    any
		want string
	}{
		{"nil", NewMySQLDialect(), nil, "NULL"},
		{"string", NewMySQLDialect(), "o'neil", "'o''neil'"},
		{"bool", NewPostgresDialect(), true, "TRUE"},
		{"int", NewSQLiteDialect(), int64(-4), "-4"},
		{"uint", NewSQLiteDialect(), uint8(9), "9"},
		{"float", NewMySQLDialect(), 1.25, "1.25"},
		{"time", NewPostgresDialect(), ts, "'2024-05-01 12:30:00.000000'"},
		{"bytes mysql", NewMySQLDialect(), []byte{0xab, 0x01}, "X'ab01'"},
		{"bytes postgres", NewPostgresDialect(), []byte{0xab}, `'\xab'::bytea`},
		{"stringer fallback", NewMySQLDialect(), struct{ A int }{1}, "'{1}'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.RenderValue(tt.v))
		})
	}
}
