package connector

import (
	"context"
	"database/sql"

	"github.com/Konsultn-Engineering/bookworm/database"
	"github.com/Konsultn-Engineering/bookworm/dialect"
)

// SQLConnection adapts a *sql.DB pool to Connection.
type SQLConnection struct {
	db      *sql.DB
	wrapped *database.SqlDatabase
	dialect dialect.Dialect
}

func NewSQLConnection(db *sql.DB, d dialect.Dialect) *SQLConnection {
	return &SQLConnection{db: db, wrapped: database.NewSqlDatabase(db), dialect: d}
}

// ApplyPool copies pool settings onto db.
func ApplyPool(db *sql.DB, pool PoolConfig) {
	db.SetMaxOpenConns(pool.MaxOpen)
	db.SetMaxIdleConns(pool.MaxIdle)
	db.SetConnMaxLifetime(pool.MaxLifetime)
	db.SetConnMaxIdleTime(pool.MaxIdleTime)
}

func (c *SQLConnection) Database() database.Database { return c.wrapped }

func (c *SQLConnection) Dialect() dialect.Dialect { return c.dialect }

func (c *SQLConnection) Health(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *SQLConnection) Stats() ConnectionStats {
	s := c.db.Stats()
	return ConnectionStats{
		OpenConnections: s.OpenConnections,
		InUse:           s.InUse,
		Idle:            s.Idle,
	}
}

func (c *SQLConnection) Close() error { return c.db.Close() }
func (c *SQLConnection) DB() *sql.DB { return c.db }
