package query

import (
	"fmt"
	"strings"

	"github.com/Konsultn-Engineering/bookworm/ids"
)

// Mode selects how the LIKE and numeric BETWEEN predicates treat data.
type Mode int

const (
	// ModeCompat embeds LIKE literals and numeric BETWEEN bounds in the SQL
	// text. Non-numeric BETWEEN bounds become 0.
	ModeCompat Mode = iota
	// ModeStrict binds LIKE patterns, BETWEEN bounds and list elements as
	// placeholders.
	ModeStrict
)

func (m Mode) String() string {
	switch m {
	case ModeCompat:
		return "compat"
	case ModeStrict:
		return "strict"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps "compat" or "strict" to a Mode. The empty string is compat.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "compat":
		return ModeCompat, nil
	case "strict":
		return ModeStrict, nil
	default:
		return ModeCompat, fmt.Errorf("unknown builder mode %q", s)
	}
}

// JoinKind identifies a join clause.
type JoinKind int

const (
	JoinInner JoinKind = iota
	JoinLeft
	JoinRight
)

// QuoteStyle decides how join tables and fields are quoted.
type QuoteStyle int

const (
	// StyleAliased splits tables on spaces and fields on dots:
	// "users u" becomes `users` `u`, "u.id" becomes `u`.`id`.
	StyleAliased QuoteStyle = iota
	// StyleSimple wraps the whole identifier once: "u.id" becomes `u.id`.
	StyleSimple
)

type options struct {
	mode              Mode
	tokenLength       int
	tokens            ids.Generator
	joinQuoting       [3]QuoteStyle
	id                string
	unqualifiedDelete bool
}

func defaultOptions() options {
	return options{
		mode:        ModeCompat,
		tokenLength: DefaultTokenLength,
		joinQuoting: [3]QuoteStyle{
			JoinInner: StyleAliased,
			JoinLeft:  StyleSimple,
			JoinRight: StyleSimple,
		},
	}
}

// Option configures a Builder.
type Option func(*options)

// WithMode sets compat or strict handling of LIKE and BETWEEN.
func WithMode(m Mode) Option {
	return func(o *options) { o.mode = m }
}

// WithTokenLength sets the placeholder length, clamped to [4, 12].
func WithTokenLength(n int) Option {
	return func(o *options) { o.tokenLength = clampTokenLength(n) }
}

// WithTokenGenerator replaces the placeholder generator. Generated ids must
// consist of lowercase ASCII letters; the builder adds the ':' prefix.
func WithTokenGenerator(g ids.Generator) Option {
	return func(o *options) { o.tokens = g }
}

// WithJoinQuoting overrides the quoting style of one join kind.
func WithJoinQuoting(kind JoinKind, style QuoteStyle) Option {
	return func(o *options) {
		if kind >= JoinInner && kind <= JoinRight {
			o.joinQuoting[kind] = style
		}
	}
}

// WithID sets the builder identifier.
func WithID(id string) Option {
	return func(o *options) { o.id = id }
}

// WithUnqualifiedDelete allows DELETE statements without a WHERE clause.
func WithUnqualifiedDelete() Option {
	return func(o *options) { o.unqualifiedDelete = true }
}
