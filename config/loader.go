package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/Konsultn-Engineering/bookworm/query"
)

// DefaultFiles are tried in order when no config file is given.
var DefaultFiles = []string{"bookworm.yaml", "bookworm.yml"}

// flagKeys maps command-line flag names onto config keys.
var flagKeys = map[string]string{
	"driver":     "driver",
	"mode":       "builder.mode",
	"log-level":  "log.level",
	"log-format": "log.format",
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range DefaultFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// EnvKey turns BOOKWORM_CONNECTION__HOST into connection.host.
func EnvKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Load reads configuration. Precedence from lowest to highest: defaults,
// config file, environment, flags that were set explicitly.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if used := findConfigFile(path); used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", used, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", EnvKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values koanf cannot type-check.
func (c *Config) Validate() error {
	var errs []error
	if c.Driver == "" {
		errs = append(errs, errors.New("driver is required"))
	}
	if _, err := query.ParseMode(c.Builder.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.Builder.TokenLength < query.MinTokenLength || c.Builder.TokenLength > query.MaxTokenLength {
		errs = append(errs, fmt.Errorf("builder.token_length must be between %d and %d, got %d",
			query.MinTokenLength, query.MaxTokenLength, c.Builder.TokenLength))
	}
	return errors.Join(errs...)
}
