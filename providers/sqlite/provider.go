// Package sqlite registers the "sqlite" provider backed by modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/Konsultn-Engineering/bookworm/connector"
	"github.com/Konsultn-Engineering/bookworm/dialect"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

type Provider struct{}

func init() {
	connector.Register("sqlite", &Provider{})
}

func (p *Provider) path(cfg connector.Config) string {
	switch {
	case cfg.Path != "":
		return cfg.Path
	case cfg.Database != "":
		return cfg.Database
	default:
		return MemoryPath
	}
}

func (p *Provider) Connect(ctx context.Context, cfg connector.Config) (connector.Connection, error) {
	path := p.path(cfg)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	pool := cfg.Pool.WithDefaults()
	// every connection to :memory: is a separate database
	if path == MemoryPath {
		pool.MaxOpen = 1
		pool.MaxIdle = 1
		pool.MaxLifetime = 0
		pool.MaxIdleTime = 0
	}
	connector.ApplyPool(db, pool)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return connector.NewSQLConnection(db, p.Dialect()), nil
}

func (p *Provider) Dialect() dialect.Dialect {
	return dialect.NewSQLiteDialect()
}
