// Package connector opens database connections through registered
// providers.
package connector

import (
	"context"

	"github.com/Konsultn-Engineering/bookworm/database"
	"github.com/Konsultn-Engineering/bookworm/dialect"
)

type Connection interface {
	Database() database.Database
	Dialect() dialect.Dialect
	Health(ctx context.Context) error
	Stats() ConnectionStats
	Close() error
}

type Provider interface {
	Connect(ctx context.Context, config Config) (Connection, error)
	Dialect() dialect.Dialect
}

// ConnectionStats represents database connection pool statistics.
type ConnectionStats struct {
	OpenConnections int
	InUse           int
	Idle            int
}
