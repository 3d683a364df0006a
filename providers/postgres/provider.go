// Package postgres registers the "postgres" provider backed by pgxpool.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/Konsultn-Engineering/bookworm/connector"
	"github.com/Konsultn-Engineering/bookworm/database"
	"github.com/Konsultn-Engineering/bookworm/dialect"
)

type Provider struct{}

func init() {
	connector.Register("postgres", &Provider{})
}

var dsnDefaults = map[string]string{
	"sslmode":         "prefer",
	"connect_timeout": "10",
}

func (p *Provider) buildDSN(cfg connector.Config) string {
	return connector.URLDSN("postgres", cfg, dsnDefaults)
}

func (p *Provider) poolConfig(cfg connector.Config) (*pgxpool.Config, error) {
	if err := cfg.ValidateNetwork(); err != nil {
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(p.buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool := cfg.Pool.WithDefaults()
	poolCfg.MaxConns = int32(pool.MaxOpen)
	poolCfg.MinConns = int32(pool.MaxIdle)
	poolCfg.MaxConnLifetime = pool.MaxLifetime
	poolCfg.MaxConnIdleTime = pool.MaxIdleTime
	return poolCfg, nil
}

func (p *Provider) Connect(ctx context.Context, cfg connector.Config) (connector.Connection, error) {
	poolCfg, err := p.poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &connection{pool: pool, db: database.NewPgxDatabase(pool), dialect: p.Dialect()}, nil
}

func (p *Provider) Dialect() dialect.Dialect {
	return dialect.NewPostgresDialect()
}

type connection struct {
	pool    *pgxpool.Pool
	db      *database.PgxDatabase
	dialect dialect.Dialect
}

func (c *connection) Database() database.Database {
	return c.db
}

// SQLDB exposes the pool as a *sql.DB for database/sql based tooling.
// Closing it does not close the pool.
func (c *connection) SQLDB() *sql.DB {
	return stdlib.OpenDBFromPool(c.pool)
}

func (c *connection) Dialect() dialect.Dialect {
	return c.dialect
}

func (c *connection) Health(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

func (c *connection) Stats() connector.ConnectionStats {
	s := c.pool.Stat()
	return connector.ConnectionStats{
		OpenConnections: int(s.TotalConns()),
		InUse:           int(s.AcquiredConns()),
		Idle:            int(s.IdleConns()),
	}
}

func (c *connection) Close() error {
	c.pool.Close()
	return nil
}
