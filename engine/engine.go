// Package engine executes builder output against a database. It rewrites
// placeholder tokens into the dialect's positional parameters and passes
// the bound values in the matching order.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Konsultn-Engineering/bookworm/cache"
	"github.com/Konsultn-Engineering/bookworm/database"
	"github.com/Konsultn-Engineering/bookworm/dialect"
	"github.com/Konsultn-Engineering/bookworm/query"
)

var (
	ErrNoDatabase   = errors.New("engine: no database")
	ErrNoDialect    = errors.New("engine: no dialect")
	ErrUnboundToken = errors.New("engine: placeholder has no binding")
	ErrUnterminated = errors.New("engine: unterminated quoted span")
)

type Engine struct {
	db      database.Database
	dialect dialect.Dialect
	cache   *cache.StatementCache
	logger  *slog.Logger
}

type Option func(*Engine)

// WithCache shares a statement cache between engines.
func WithCache(c *cache.StatementCache) Option {
	return func(e *Engine) { e.cache = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New returns an engine. db may be nil for compile-only use.
func New(db database.Database, d dialect.Dialect, opts ...Option) *Engine {
	e := &Engine{
		db:      db,
		dialect: d,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cache == nil {
		e.cache = cache.NewStatementCache(cache.DefaultSize)
	}
	return e
}

func (e *Engine) Dialect() dialect.Dialect { return e.dialect }

func (e *Engine) Cache() *cache.StatementCache { return e.cache }

// Compile rewrites rendered builder SQL for the engine's dialect and
// collects the arguments in placeholder order.
func (e *Engine) Compile(sql string, bindings []query.Binding) (*Statement, error) {
	if e.dialect == nil {
		return nil, ErrNoDialect
	}

	values := indexBindings(bindings)
	known := func(tok string) bool {
		_, ok := values[tok]
		return ok
	}

	key := cache.Key(e.dialect.Name(), sql)
	tmpl, err := e.cache.GetOrCompile(key, func() (*cache.CachedQuery, error) {
		return compileTemplate(sql, e.dialect, known)
	})
	if err != nil {
		return nil, err
	}

	args := make([]any, len(tmpl.Tokens))
	for i, tok := range tmpl.Tokens {
		b, ok := values[tok]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnboundToken, tok)
		}
		args[i] = coerce(b.Value, b.Type)
	}
	return &Statement{SQL: tmpl.SQL, Args: args}, nil
}

// Prepare builds b and compiles the result.
func (e *Engine) Prepare(b *query.Builder) (*Statement, error) {
	sql, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("build statement: %w", err)
	}
	return e.Compile(normalizeLimit(sql, b), b.Bindings())
}

// Exec runs a statement that returns no rows.
func (e *Engine) Exec(ctx context.Context, b *query.Builder) (database.Result, error) {
	if e.db == nil {
		return nil, ErrNoDatabase
	}
	stmt, err := e.Prepare(b)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := e.db.ExecContext(ctx, stmt.SQL, stmt.Args...)
	e.log(ctx, "exec", stmt, start, err)
	if err != nil {
		return nil, fmt.Errorf("exec %s: %w", b.Shape(), err)
	}
	return res, nil
}

// Query runs a statement that returns rows. The caller closes them.
func (e *Engine) Query(ctx context.Context, b *query.Builder) (database.Rows, error) {
	if e.db == nil {
		return nil, ErrNoDatabase
	}
	stmt, err := e.Prepare(b)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := e.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	e.log(ctx, "query", stmt, start, err)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", b.Shape(), err)
	}
	return rows, nil
}

// QueryMaps runs Query and reads every row into a map.
func (e *Engine) QueryMaps(ctx context.Context, b *query.Builder) ([]map[string]any, error) {
	rows, err := e.Query(ctx, b)
	if err != nil {
		return nil, err
	}
	return database.ScanMaps(rows)
}

func (e *Engine) log(ctx context.Context, op string, stmt *Statement, start time.Time, err error) {
	attrs := []slog.Attr{
		slog.String("op", op),
		slog.String("sql", stmt.SQL),
		slog.Int("args", len(stmt.Args)),
		slog.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		e.logger.LogAttrs(ctx, slog.LevelError, "statement failed", append(attrs, slog.String("error", err.Error()))...)
		return
	}
	e.logger.LogAttrs(ctx, slog.LevelDebug, "statement executed", attrs...)
}
