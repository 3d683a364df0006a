package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Konsultn-Engineering/bookworm/connector"
	"github.com/Konsultn-Engineering/bookworm/engine"
	"github.com/Konsultn-Engineering/bookworm/internal/plan"
	"github.com/Konsultn-Engineering/bookworm/query"
)

func newExecCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "exec <plan.yaml>",
		Short: "Run a plan against the configured database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validOutput(output); err != nil {
				return err
			}

			ctx := cmd.Context()
			cfg := getConfig(ctx)
			logger := getLogger(ctx)

			p, err := plan.ParseFile(args[0])
			if err != nil {
				return err
			}
			opts, err := cfg.BuilderOptions()
			if err != nil {
				return err
			}
			b := p.Apply(query.New(opts...))

			connector.SetLogger(logger)
			conn, err := connector.Open(ctx, cfg.Driver, cfg.Connection)
			if err != nil {
				return err
			}
			defer conn.Close()

			eng := engine.New(conn.Database(), conn.Dialect(),
				engine.WithCache(cfg.StatementCache()),
				engine.WithLogger(logger))

			w := cmd.OutOrStdout()
			if b.Shape() == query.ShapeSelect || b.Shape() == query.ShapeNone {
				rows, err := eng.QueryMaps(ctx, b)
				if err != nil {
					return err
				}
				if output == OutputJSON {
					return renderJSON(w, rows)
				}
				renderRows(w, rows)
				return nil
			}

			res, err := eng.Exec(ctx, b)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if output == OutputJSON {
				return renderJSON(w, map[string]int64{"rows_affected": n})
			}
			_, _ = fmt.Fprintf(w, "%d rows affected\n", n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", OutputText, "output format (text|json)")
	return cmd
}
