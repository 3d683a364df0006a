// Package mysql registers the "mysql" and "tidb" providers backed by
// go-sql-driver/mysql.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/Konsultn-Engineering/bookworm/connector"
	"github.com/Konsultn-Engineering/bookworm/dialect"
)

type Provider struct {
	dialect dialect.Dialect
}

func init() {
	connector.Register("mysql", &Provider{dialect: dialect.NewMySQLDialect()})
	connector.Register("tidb", &Provider{dialect: dialect.NewTiDBDialect()})
}

func (p *Provider) buildDSN(cfg connector.Config) string {
	mc := mysql.NewConfig()
	mc.User = cfg.Username
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Database
	mc.ParseTime = true
	if cfg.ConnectTimeout > 0 {
		mc.Timeout = cfg.ConnectTimeout
	} else {
		mc.Timeout = 10 * time.Second
	}
	if len(cfg.Params) > 0 {
		mc.Params = make(map[string]string, len(cfg.Params))
		for k, v := range cfg.Params {
			mc.Params[k] = v
		}
	}
	return mc.FormatDSN()
}

func (p *Provider) Connect(ctx context.Context, cfg connector.Config) (connector.Connection, error) {
	if err := cfg.ValidateNetwork(); err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", p.buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	connector.ApplyPool(db, cfg.Pool.WithDefaults())

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return connector.NewSQLConnection(db, p.Dialect()), nil
}

func (p *Provider) Dialect() dialect.Dialect {
	if p.dialect == nil {
		return dialect.NewMySQLDialect()
	}
	return p.dialect
}
