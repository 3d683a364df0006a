package engine

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/bookworm/database"
	"github.com/Konsultn-Engineering/bookworm/dialect"
	"github.com/Konsultn-Engineering/bookworm/internal/testutil"
	"github.com/Konsultn-Engineering/bookworm/query"
)

type sequence struct {
	mu sync.Mutex
	n  int
}

func (s *sequence) Generate() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("tok%c%c", 'a'+rune(s.n/26%26), 'a'+rune(s.n%26))
	s.n++
	return id, nil
}

func (s *sequence) Type() string { return "sequence" }

func newBuilder() *query.Builder {
	return query.New(query.WithTokenGenerator(&sequence{}))
}

func TestPrepareDialects(t *testing.T) {
	chain := func() *query.Builder {
		return newBuilder().Select("*").From("users u").
			Where("u.id", "=", 5).
			Like("name", "o'b").
			Limit(10, 2)
	}

	tests := []struct {
		name    string
		dialect dialect.Dialect
		want    string
	}{
		{"mysql", dialect.NewMySQLDialect(),
			"SELECT * FROM `users` `u` WHERE `u`.`id` = ? AND `name` LIKE '%o''b%' LIMIT 10 OFFSET 10;"},
		{"postgres", dialect.NewPostgresDialect(),
			`SELECT * FROM "users" "u" WHERE "u"."id" = $1 AND "name" LIKE '%o''b%' LIMIT 10 OFFSET 10;`},
		{"sqlite", dialect.NewSQLiteDialect(),
			`SELECT * FROM "users" "u" WHERE "u"."id" = ? AND "name" LIKE '%o''b%' LIMIT 10 OFFSET 10;`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(nil, tt.dialect)
			stmt, err := e.Prepare(chain())
			require.NoError(t, err)
			assert.Equal(t, tt.want, stmt.SQL)
			assert.Equal(t, []any{5}, stmt.Args)
		})
	}
}

func TestCompileOrdersArgsByAppearance(t *testing.T) {
	b := newBuilder().Update("users").Set("name", "ann").Where("id", "=", 7)
	b.Set("age", 31)

	e := New(nil, dialect.NewPostgresDialect())
	stmt, err := e.Prepare(b)
	require.NoError(t, err)
	assert.Equal(t, `UPDATE "users" SET "name" = $1, "age" = $2 WHERE "id" = $3;`, stmt.SQL)
	assert.Equal(t, []any{"ann", 31, 7}, stmt.Args)
}

func TestCompileRepeatedToken(t *testing.T) {
	bindings := []query.Binding{{Token: ":abcd", Value: 1}}

	pg, err := New(nil, dialect.NewPostgresDialect()).Compile("SELECT :abcd, :abcd;", bindings)
	require.NoError(t, err)
	assert.Equal(t, "SELECT $1, $1;", pg.SQL)
	assert.Equal(t, []any{1}, pg.Args)

	my, err := New(nil, dialect.NewMySQLDialect()).Compile("SELECT :abcd, :abcd;", bindings)
	require.NoError(t, err)
	assert.Equal(t, "SELECT ?, ?;", my.SQL)
	assert.Equal(t, []any{1, 1}, my.Args)
}

func TestCompileErrors(t *testing.T) {
	e := New(nil, dialect.NewMySQLDialect())

	_, err := e.Compile("SELECT * FROM `t` WHERE `a` = :abcdef;", nil)
	assert.ErrorIs(t, err, ErrUnboundToken)

	_, err = e.Compile("SELECT `a FROM t;", nil)
	assert.ErrorIs(t, err, ErrUnterminated)

	_, err = New(nil, nil).Compile("SELECT 1;", nil)
	assert.ErrorIs(t, err, ErrNoDialect)
}

func TestCompileLeavesCastsAndLiterals(t *testing.T) {
	e := New(nil, dialect.NewPostgresDialect())

	stmt, err := e.Compile("SELECT `a`::text, 'x:abcd' FROM `t`;", nil)
	require.NoError(t, err)
	assert.Equal(t, `SELECT "a"::text, 'x:abcd' FROM "t";`, stmt.SQL)
	assert.Empty(t, stmt.Args)
}

func TestCompileUsesCache(t *testing.T) {
	e := New(nil, dialect.NewMySQLDialect())
	b := newBuilder().Select("*").From("t").Where("id", "=", 1)

	for i := 0; i < 3; i++ {
		_, err := e.Prepare(b)
		require.NoError(t, err)
	}

	st := e.Cache().Stats()
	assert.Equal(t, uint64(2), st.Hits)
	assert.Equal(t, uint64(1), st.Misses)
}

func TestCoerceDeclaredTypes(t *testing.T) {
	b := newBuilder().Insert("flags").FieldNames("n", "on", "ratio", "label", "gone").
		Values([]any{"5", "true", "0.5", 12, "x"},
			query.BindInt, query.BindBool, query.BindFloat, query.BindString, query.BindNull)

	stmt, err := New(nil, dialect.NewMySQLDialect()).Prepare(b)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(5), true, 0.5, "12", nil}, stmt.Args)
}

func TestInterpolate(t *testing.T) {
	b := newBuilder().Select("*").From("t").Where("name", "=", "o'neil").Where("n", "=", 3)
	sql, err := b.Build()
	require.NoError(t, err)

	out, err := Interpolate(sql, dialect.NewMySQLDialect(), b.Bindings())
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `t` WHERE `name` = 'o''neil' AND `n` = 3;", out)
}

func TestExecWithSqlmock(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	mock.ExpectExec("UPDATE `users` SET `name` = ? WHERE `id` = ?;").
		WithArgs("ann", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	logger, logs := testutil.NewCaptureLogger()
	e := New(database.NewSqlDatabase(db), dialect.NewMySQLDialect(), WithLogger(logger))

	res, err := e.Exec(context.Background(), newBuilder().Update("users").Set("name", "ann").Where("id", "=", 7))
	require.NoError(t, err)

	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, logs.String(), "statement executed")
}

func TestQueryWithSqlmock(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, name FROM `users` WHERE `id` IN (1,2) LIMIT 2;").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "ann").
			AddRow(int64(2), "bob"))

	e := New(database.NewSqlDatabase(db), dialect.NewMySQLDialect(), WithLogger(testutil.NewTestLogger(t)))
	rows, err := e.QueryMaps(context.Background(),
		newBuilder().Select("id", "name").From("users").Where("id", "in", []int{1, 2}).Limit(2))
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{
		{"id": int64(1), "name": "ann"},
		{"id": int64(2), "name": "bob"},
	}, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecDriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	boom := fmt.Errorf("deadlock")
	mock.ExpectExec("DELETE FROM").WillReturnError(boom)

	logger, logs := testutil.NewCaptureLogger()
	e := New(database.NewSqlDatabase(db), dialect.NewMySQLDialect(), WithLogger(logger))

	_, err = e.Exec(context.Background(), newBuilder().Delete("sessions").Where("id", "=", 1))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, logs.String(), "statement failed")
}

func TestHardAndSoftFailures(t *testing.T) {
	ctx := context.Background()

	_, err := New(nil, dialect.NewMySQLDialect()).Exec(ctx, newBuilder().Delete("t").Where("id", "=", 1))
	assert.ErrorIs(t, err, ErrNoDatabase)

	_, err = New(nil, dialect.NewMySQLDialect()).Query(ctx, newBuilder().Select("*").From("t"))
	assert.ErrorIs(t, err, ErrNoDatabase)

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	e := New(database.NewSqlDatabase(db), dialect.NewMySQLDialect())

	_, err = e.Exec(ctx, newBuilder().Update("users").Where("id", "=", 1))
	assert.ErrorIs(t, err, query.ErrEmptySet)
}
