// Package plan decodes YAML statement plans and replays them onto a
// query.Builder.
package plan

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Konsultn-Engineering/bookworm/lexicon"
	"github.com/Konsultn-Engineering/bookworm/query"
)

var ErrAmbiguousShape = errors.New("plan: at most one of update, insert, delete may be set")

// Plan is the YAML form of a statement.
type Plan struct {
	Name       string         `yaml:"name"`
	Select     []string       `yaml:"select"`
	From       []string       `yaml:"from"`
	Update     string         `yaml:"update"`
	Insert     string         `yaml:"insert"`
	Delete     string         `yaml:"delete"`
	Set        map[string]any `yaml:"set"`
	FieldNames []string       `yaml:"fieldnames"`
	Values     [][]any        `yaml:"values"`
	Joins      []Join         `yaml:"joins"`
	Where      []Where        `yaml:"where"`
	Between    []Between      `yaml:"between"`
	Like       []Like         `yaml:"like"`
	Having     []Where        `yaml:"having"`
	GroupBy    []string       `yaml:"group_by"`
	OrderBy    []Order        `yaml:"order_by"`
	Limit      *Limit         `yaml:"limit"`
}

type Join struct {
	Kind  string `yaml:"kind"`
	Table string `yaml:"table"`
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
}

// Where is a simple predicate, or a parenthesised pair when Group is set.
type Where struct {
	Field string `yaml:"field"`
	Op    string `yaml:"op"`
	Value any    `yaml:"value"`
	Or    bool   `yaml:"or"`
	Group *Group `yaml:"group"`
}

// Group is (a CONNECTOR b). Op on either side may also be between,
// notbetween, like or notlike; extra carries the upper bound or the like
// pattern.
type Group struct {
	A         Cond   `yaml:"a"`
	Connector string `yaml:"connector"`
	B         Cond   `yaml:"b"`
}

type Cond struct {
	Field string `yaml:"field"`
	Op    string `yaml:"op"`
	Value any    `yaml:"value"`
	Extra any    `yaml:"extra"`
}

func (c Cond) query() query.Cond {
	op := c.Op
	if op == "" {
		op = lexicon.OpEqual
	}
	return query.C(c.Field, op, c.Value, c.Extra)
}

type Between struct {
	Field string `yaml:"field"`
	Begin any    `yaml:"begin"`
	End   any    `yaml:"end"`
	Not   bool   `yaml:"not"`
	Or    bool   `yaml:"or"`
}

type Like struct {
	Field   string `yaml:"field"`
	Arg     string `yaml:"arg"`
	Pattern string `yaml:"pattern"`
	Not     bool   `yaml:"not"`
	Or      bool   `yaml:"or"`
}

type Order struct {
	Field string `yaml:"field"`
	Dir   string `yaml:"dir"`
}

type Limit struct {
	Count  int  `yaml:"count"`
	Page   int  `yaml:"page"`
	Offset *int `yaml:"offset"`
}

// Parse decodes a single plan. Unknown keys are rejected.
func Parse(data []byte) (*Plan, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Plan
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParseFile reads and decodes the plan at path.
func ParseFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func (p *Plan) Validate() error {
	var errs []error

	shapes := 0
	for _, t := range []string{p.Update, p.Insert, p.Delete} {
		if t != "" {
			shapes++
		}
	}
	if shapes > 1 {
		errs = append(errs, ErrAmbiguousShape)
	}

	for i, j := range p.Joins {
		if _, err := joinKind(j.Kind); err != nil {
			errs = append(errs, fmt.Errorf("joins[%d]: %w", i, err))
		}
		if j.Table == "" || j.Left == "" || j.Right == "" {
			errs = append(errs, fmt.Errorf("joins[%d]: table, left and right are required", i))
		}
	}
	for i, w := range p.Where {
		if w.Group != nil {
			if err := w.Group.validate(); err != nil {
				errs = append(errs, fmt.Errorf("where[%d]: %w", i, err))
			}
			if w.Field != "" {
				errs = append(errs, fmt.Errorf("where[%d]: field and group are exclusive", i))
			}
			continue
		}
		if w.Field == "" {
			errs = append(errs, fmt.Errorf("where[%d]: field is required", i))
		}
	}
	for i, h := range p.Having {
		if h.Group != nil {
			errs = append(errs, fmt.Errorf("having[%d]: groups are not supported", i))
		}
	}
	for i, b := range p.Between {
		if b.Field == "" {
			errs = append(errs, fmt.Errorf("between[%d]: field is required", i))
		}
	}
	for i, l := range p.Like {
		if l.Field == "" {
			errs = append(errs, fmt.Errorf("like[%d]: field is required", i))
		}
	}
	return errors.Join(errs...)
}

func (g *Group) validate() error {
	if g.A.Field == "" || g.B.Field == "" {
		return errors.New("group: a.field and b.field are required")
	}
	switch {
	case g.Connector == "",
		strings.EqualFold(g.Connector, lexicon.OpAnd),
		strings.EqualFold(g.Connector, lexicon.OpOr):
		return nil
	}
	return fmt.Errorf("group: unknown connector %q", g.Connector)
}

func joinKind(s string) (query.JoinKind, error) {
	switch strings.ToLower(s) {
	case "", "inner":
		return query.JoinInner, nil
	case "left":
		return query.JoinLeft, nil
	case "right":
		return query.JoinRight, nil
	default:
		return 0, fmt.Errorf("unknown join kind %q", s)
	}
}

// Apply registers every clause of the plan on b and returns b.
func (p *Plan) Apply(b *query.Builder) *query.Builder {
	switch {
	case p.Update != "":
		b.Update(p.Update)
	case p.Insert != "":
		b.Insert(p.Insert)
	case p.Delete != "":
		b.Delete(p.Delete)
	}
	if len(p.Select) > 0 {
		if b.Shape() == query.ShapeNone {
			b.Select(p.Select...)
		} else {
			b.AddSelect(p.Select...)
		}
	}
	if len(p.From) > 0 {
		b.From(p.From...)
	}

	for _, j := range p.Joins {
		kind, _ := joinKind(j.Kind)
		switch kind {
		case query.JoinLeft:
			b.LeftJoin(j.Table, j.Left, j.Right)
		case query.JoinRight:
			b.RightJoin(j.Table, j.Left, j.Right)
		default:
			b.Join(j.Table, j.Left, j.Right)
		}
	}

	if len(p.Set) > 0 {
		b.SetMap(p.Set)
	}
	if len(p.FieldNames) > 0 {
		b.FieldNames(p.FieldNames...)
	}
	for _, row := range p.Values {
		b.Values(row)
	}

	for _, w := range p.Where {
		if g := w.Group; g != nil {
			connector := g.Connector
			if connector == "" {
				connector = lexicon.OpAnd
			}
			if w.Or {
				b.OrWhereGroup(g.A.query(), connector, g.B.query())
			} else {
				b.WhereGroup(g.A.query(), connector, g.B.query())
			}
			continue
		}
		op := w.Op
		if op == "" {
			op = lexicon.OpEqual
		}
		if w.Or {
			b.OrWhere(w.Field, op, w.Value)
		} else {
			b.Where(w.Field, op, w.Value)
		}
	}

	for _, r := range p.Between {
		switch {
		case r.Or && r.Not:
			b.OrNotBetween(r.Field, r.Begin, r.End)
		case r.Or:
			b.OrBetween(r.Field, r.Begin, r.End)
		case r.Not:
			b.NotBetween(r.Field, r.Begin, r.End)
		default:
			b.Between(r.Field, r.Begin, r.End)
		}
	}

	for _, l := range p.Like {
		var pattern []string
		if l.Pattern != "" {
			pattern = []string{l.Pattern}
		}
		switch {
		case l.Or && l.Not:
			b.OrNotLike(l.Field, l.Arg, pattern...)
		case l.Or:
			b.OrLike(l.Field, l.Arg, pattern...)
		case l.Not:
			b.NotLike(l.Field, l.Arg, pattern...)
		default:
			b.Like(l.Field, l.Arg, pattern...)
		}
	}

	for _, g := range p.GroupBy {
		b.GroupBy(g)
	}
	for _, h := range p.Having {
		op := h.Op
		if op == "" {
			op = lexicon.OpEqual
		}
		if h.Or {
			b.OrHaving(h.Field, op, h.Value)
		} else {
			b.Having(h.Field, op, h.Value)
		}
	}
	for _, o := range p.OrderBy {
		dir := o.Dir
		if dir == "" {
			dir = lexicon.Asc
		}
		b.OrderBy(o.Field, dir)
	}

	if l := p.Limit; l != nil {
		switch {
		case l.Offset != nil:
			b.LimitOffset(l.Count, *l.Offset)
		case l.Page > 0:
			b.Limit(l.Count, l.Page)
		default:
			b.Limit(l.Count)
		}
	}
	return b
}
