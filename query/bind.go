package query

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/samber/lo"
)

// BindType is an optional declared type for a bound value.
type BindType string

const (
	BindNone   BindType = ""
	BindInt    BindType = "int"
	BindFloat  BindType = "float"
	BindString BindType = "string"
	BindBool   BindType = "bool"
	BindBytes  BindType = "bytes"
	BindTime   BindType = "time"
	BindNull   BindType = "null"
)

// Binding pairs a placeholder token with its value.
type Binding struct {
	Token string   `json:"token"`
	Value any      `json:"value"`
	Type  BindType `json:"type,omitempty"`
}

// Placeholder token limits.
const (
	TokenPrefix        = ":"
	MinTokenLength     = 4
	MaxTokenLength     = 12
	DefaultTokenLength = 6
)

const maxMintAttempts = 16

func clampTokenLength(n int) int {
	return lo.Clamp(n, MinTokenLength, MaxTokenLength)
}

// IsToken reports whether s has the shape of a placeholder token.
func IsToken(s string) bool {
	if !strings.HasPrefix(s, TokenPrefix) {
		return false
	}
	return validTokenBody(s[len(TokenPrefix):])
}

func validTokenBody(s string) bool {
	if len(s) < MinTokenLength || len(s) > MaxTokenLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// bind records value under a fresh token and returns the token. Lists are
// rendered inline instead, see renderList.
func (b *Builder) bind(value any, typ ...BindType) string {
	if list, ok := asList(value); ok {
		return b.renderList(list)
	}

	tok := b.mint()
	if tok == "" {
		return ""
	}

	bt := BindNone
	if len(typ) > 0 {
		bt = typ[0]
	}
	b.bindings = append(b.bindings, Binding{Token: tok, Value: value, Type: bt})
	b.index[tok] = len(b.bindings) - 1
	if bt != BindNone {
		b.typed++
	}
	return tok
}

func (b *Builder) mint() string {
	for attempt := 0; attempt < maxMintAttempts; attempt++ {
		body, err := b.tokens.Generate()
		if err != nil {
			b.addError(fmt.Errorf("mint placeholder: %w", err))
			return ""
		}
		if !validTokenBody(body) {
			b.addError(fmt.Errorf("%w: %q", ErrInvalidToken, body))
			return ""
		}
		tok := TokenPrefix + body
		if _, dup := b.index[tok]; !dup {
			return tok
		}
	}
	b.addError(ErrTokenCollision)
	return ""
}

// renderList writes a slice as a parenthesized list. Compat mode embeds the
// elements verbatim; strict mode binds each one.
func (b *Builder) renderList(list []any) string {
	if b.opts.mode == ModeStrict {
		return "(" + strings.Join(lo.Map(list, func(v any, _ int) string {
			return b.bind(v)
		}), ", ") + ")"
	}
	return "(" + strings.Join(lo.Map(list, func(v any, _ int) string {
		return fmt.Sprint(v)
	}), ",") + ")"
}

// asList unpacks slices and arrays other than byte slices.
func asList(value any) ([]any, bool) {
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// Bindings returns the bindings in the order they were created.
func (b *Builder) Bindings() []Binding {
	out := make([]Binding, len(b.bindings))
	copy(out, b.bindings)
	return out
}

// BindingMap returns token to value.
func (b *Builder) BindingMap() map[string]any {
	out := make(map[string]any, len(b.bindings))
	for _, bd := range b.bindings {
		out[bd.Token] = bd.Value
	}
	return out
}

// BindingTypes returns token to declared type, or nil when no binding was
// registered with a type.
func (b *Builder) BindingTypes() map[string]BindType {
	if b.typed == 0 {
		return nil
	}
	out := make(map[string]BindType, b.typed)
	for _, bd := range b.bindings {
		if bd.Type != BindNone {
			out[bd.Token] = bd.Type
		}
	}
	return out
}

// Value returns the value bound to token.
func (b *Builder) Value(token string) (any, bool) {
	i, ok := b.index[token]
	if !ok {
		return nil, false
	}
	return b.bindings[i].Value, true
}
