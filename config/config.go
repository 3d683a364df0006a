// Package config loads bookworm settings from defaults, a YAML file,
// BOOKWORM_ environment variables and command-line flags.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Konsultn-Engineering/bookworm/cache"
	"github.com/Konsultn-Engineering/bookworm/connector"
	"github.com/Konsultn-Engineering/bookworm/ids"
	"github.com/Konsultn-Engineering/bookworm/query"
)

// Defaults
const (
	DefaultDriver      = "sqlite"
	DefaultMode        = "compat"
	DefaultIDGenerator = "ulid"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	EnvPrefix          = "BOOKWORM_"
)

type Config struct {
	Driver     string           `koanf:"driver"`
	Connection connector.Config `koanf:"connection"`
	Builder    BuilderConfig    `koanf:"builder"`
	Cache      CacheConfig      `koanf:"cache"`
	Log        LogConfig        `koanf:"log"`
}

type BuilderConfig struct {
	Mode                   string `koanf:"mode"`
	TokenLength            int    `koanf:"token_length"`
	IDGenerator            string `koanf:"id_generator"`
	AllowUnqualifiedDelete bool   `koanf:"allow_unqualified_delete"`
}

type CacheConfig struct {
	Size int `koanf:"size"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaults() map[string]any {
	return map[string]any{
		"driver":               DefaultDriver,
		"builder.mode":         DefaultMode,
		"builder.token_length": query.DefaultTokenLength,
		"builder.id_generator": DefaultIDGenerator,
		"cache.size":           cache.DefaultSize,
		"log.level":            DefaultLogLevel,
		"log.format":           DefaultLogFormat,
	}
}

// BuilderOptions translates the builder section into query options.
func (c *Config) BuilderOptions() ([]query.Option, error) {
	mode, err := query.ParseMode(c.Builder.Mode)
	if err != nil {
		return nil, err
	}
	opts := []query.Option{
		query.WithMode(mode),
		query.WithTokenLength(c.Builder.TokenLength),
	}
	if c.Builder.AllowUnqualifiedDelete {
		opts = append(opts, query.WithUnqualifiedDelete())
	}
	return opts, nil
}

// Registry returns a builder registry configured from the builder section.
func (c *Config) Registry(logger *slog.Logger) (*query.Registry, error) {
	opts, err := c.BuilderOptions()
	if err != nil {
		return nil, err
	}
	gen, ok := ids.Lookup(c.Builder.IDGenerator)
	if !ok {
		return nil, fmt.Errorf("unknown id generator: %s", c.Builder.IDGenerator)
	}
	return query.NewRegistry(
		query.WithIDGenerator(gen),
		query.WithBuilderOptions(opts...),
		query.WithLogger(logger),
	), nil
}

// StatementCache returns a statement cache sized from the cache section.
func (c *Config) StatementCache() *cache.StatementCache {
	return cache.NewStatementCache(c.Cache.Size)
}

// Logger builds a slog logger writing to w.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(c.Log.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format: %s", c.Log.Format)
	}
}
