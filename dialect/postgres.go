package dialect

import (
	"fmt"
	"strconv"
)

type Postgres struct{}

func NewPostgresDialect() Dialect {
	return &Postgres{}
}

func (p *Postgres) Name() string {
	return "postgres"
}

func (p *Postgres) QuoteIdentifier(name string) string {
	return quoteWith(`"`, name)
}

func (p *Postgres) QuoteString(s string) string {
	return quoteString(s)
}

func (p *Postgres) Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func (p *Postgres) RenderValue(v any) string {
	return renderLiteral(v, func(b []byte) string {
		return fmt.Sprintf(`'\x%x'::bytea`, b)
	})
}
