package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/Konsultn-Engineering/bookworm/query"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

func validOutput(format string) error {
	if format != OutputText && format != OutputJSON {
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderBindings(w io.Writer, bindings []query.Binding) {
	if len(bindings) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Token", "Value", "Type"})
	for _, b := range bindings {
		t.AppendRow(table.Row{b.Token, formatValue(b.Value), string(b.Type)})
	}
	t.Render()
}

func renderRows(w io.Writer, rows []map[string]any) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	cols := lo.Keys(rows[0])
	sort.Strings(cols)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(lo.Map(cols, func(c string, _ int) any { return c }))
	for _, r := range rows {
		t.AppendRow(lo.Map(cols, func(c string, _ int) any { return formatValue(r[c]) }))
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(rows))
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}
