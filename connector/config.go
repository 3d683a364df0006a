package connector

import (
	"fmt"
	"time"
)

// Config represents database connection configuration.
type Config struct {
	Host           string            `json:"host" yaml:"host" koanf:"host"`
	Port           int               `json:"port" yaml:"port" koanf:"port"`
	Database       string            `json:"database" yaml:"database" koanf:"database"`
	Username       string            `json:"username" yaml:"username" koanf:"username"`
	Password       string            `json:"password" yaml:"password" koanf:"password"`
	SSLMode        string            `json:"ssl_mode" yaml:"ssl_mode" koanf:"ssl_mode"`
	Path           string            `json:"path" yaml:"path" koanf:"path"`
	Params         map[string]string `json:"params" yaml:"params" koanf:"params"`
	Pool           PoolConfig        `json:"pool" yaml:"pool" koanf:"pool"`
	ConnectTimeout time.Duration     `json:"connect_timeout" yaml:"connect_timeout" koanf:"connect_timeout"`
	Retry          *RetryConfig      `json:"retry,omitempty" yaml:"retry,omitempty" koanf:"retry"`
}

// PoolConfig defines connection pool settings.
type PoolConfig struct {
	MaxOpen     int           `json:"max_open" yaml:"max_open" koanf:"max_open"`
	MaxIdle     int           `json:"max_idle" yaml:"max_idle" koanf:"max_idle"`
	MaxLifetime time.Duration `json:"max_lifetime" yaml:"max_lifetime" koanf:"max_lifetime"`
	MaxIdleTime time.Duration `json:"max_idle_time" yaml:"max_idle_time" koanf:"max_idle_time"`
}

// RetryConfig defines connection retry behavior.
type RetryConfig struct {
	MaxRetries int           `json:"max_retries" yaml:"max_retries" koanf:"max_retries"`
	BaseDelay  time.Duration `json:"base_delay" yaml:"base_delay" koanf:"base_delay"`
	MaxDelay   time.Duration `json:"max_delay" yaml:"max_delay" koanf:"max_delay"`
	Backoff    float64       `json:"backoff" yaml:"backoff" koanf:"backoff"`
}

// Pool defaults
const (
	DefaultMaxOpen     = 10
	DefaultMaxIdle     = 5
	DefaultMaxLifetime = time.Hour
	DefaultMaxIdleTime = 30 * time.Minute
)

// WithDefaults fills unset pool settings.
func (p PoolConfig) WithDefaults() PoolConfig {
	if p.MaxOpen <= 0 {
		p.MaxOpen = DefaultMaxOpen
	}
	if p.MaxIdle <= 0 {
		p.MaxIdle = DefaultMaxIdle
	}
	if p.MaxIdle > p.MaxOpen {
		p.MaxIdle = p.MaxOpen
	}
	if p.MaxLifetime == 0 {
		p.MaxLifetime = DefaultMaxLifetime
	}
	if p.MaxIdleTime == 0 {
		p.MaxIdleTime = DefaultMaxIdleTime
	}
	return p
}

// ValidateNetwork checks the fields a networked server needs.
func (c Config) ValidateNetwork() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	return nil
}
