// Package cli provides the bookworm command-line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Konsultn-Engineering/bookworm/config"
	"github.com/Konsultn-Engineering/bookworm/query"

	// providers register themselves with the connector
	_ "github.com/Konsultn-Engineering/bookworm/providers/mysql"
	_ "github.com/Konsultn-Engineering/bookworm/providers/postgres"
	_ "github.com/Konsultn-Engineering/bookworm/providers/sqlite"
)

// Version is set at build time.
var Version = "0.1.0"

type configKey struct{}

type loggerKey struct{}

// NewRootCmd creates the root command and its subcommands.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:     "bookworm",
		Short:   "Build SQL statements from YAML plans",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			logger, err := cfg.Logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = context.WithValue(ctx, loggerKey{}, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./bookworm.yaml)")
	flags.String("driver", "", "database provider (sqlite|mysql|tidb|postgres)")
	flags.String("mode", "", "builder mode (compat|strict)")
	flags.String("log-level", "", "log level (debug|info|warn|error)")
	flags.String("log-format", "", "log format (text|json)")

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newExecCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func getConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		Driver:  config.DefaultDriver,
		Builder: config.BuilderConfig{
			Mode:        config.DefaultMode,
			TokenLength: query.DefaultTokenLength,
			IDGenerator: config.DefaultIDGenerator,
		},
	}
}

func getLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
