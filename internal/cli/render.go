package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Konsultn-Engineering/bookworm/dialect"
	"github.com/Konsultn-Engineering/bookworm/engine"
	"github.com/Konsultn-Engineering/bookworm/internal/plan"
	"github.com/Konsultn-Engineering/bookworm/query"
)

// Rendered is the output of one plan.
type Rendered struct {
	Plan     string          `json:"plan"`
	Name     string          `json:"name,omitempty"`
	SQL      string          `json:"sql"`
	Args     []any           `json:"args,omitempty"`
	Bindings []query.Binding `json:"bindings,omitempty"`
}

type renderOptions struct {
	output  string
	dialect string
	inline  bool
}

func newRenderCommand() *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <plan.yaml>...",
		Short: "Render plans to SQL without touching a database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validOutput(opts.output); err != nil {
				return err
			}
			results, err := renderPlans(cmd, args, opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if opts.output == OutputJSON {
				return renderJSON(w, results)
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(w, "-- %s\n%s\n", r.Plan, r.SQL)
				if opts.dialect == "" {
					renderBindings(w, r.Bindings)
				} else if len(r.Args) > 0 {
					_, _ = fmt.Fprintf(w, "-- args: %v\n", r.Args)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", OutputText, "output format (text|json)")
	cmd.Flags().StringVar(&opts.dialect, "dialect", "", "compile for a dialect (mysql|tidb|postgres|sqlite)")
	cmd.Flags().BoolVar(&opts.inline, "inline", false, "inline bound values as literals (requires --dialect)")

	return cmd
}

// renderPlans builds every plan concurrently. Results keep argument order.
func renderPlans(cmd *cobra.Command, paths []string, opts renderOptions) ([]Rendered, error) {
	ctx := cmd.Context()
	cfg := getConfig(ctx)
	logger := getLogger(ctx)

	if opts.inline && opts.dialect == "" {
		return nil, fmt.Errorf("--inline requires --dialect")
	}

	var eng *engine.Engine
	if opts.dialect != "" {
		d, err := dialect.ByName(opts.dialect)
		if err != nil {
			return nil, err
		}
		eng = engine.New(nil, d, engine.WithCache(cfg.StatementCache()), engine.WithLogger(logger))
	}

	registry, err := cfg.Registry(logger)
	if err != nil {
		return nil, err
	}

	results := make([]Rendered, len(paths))
	g, _ := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			p, err := plan.ParseFile(path)
			if err != nil {
				return err
			}

			id, b, err := registry.Create()
			if err != nil {
				return err
			}
			defer registry.Release(id)

			sql, err := p.Apply(b).Build()
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			r := Rendered{Plan: path, Name: p.Name, SQL: sql, Bindings: b.Bindings()}

			if eng != nil {
				if opts.inline {
					r.SQL, err = engine.Interpolate(sql, eng.Dialect(), b.Bindings())
					r.Bindings = nil
				} else {
					var stmt *engine.Statement
					stmt, err = eng.Prepare(b)
					if stmt != nil {
						r.SQL, r.Args, r.Bindings = stmt.SQL, stmt.Args, nil
					}
				}
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}

			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
