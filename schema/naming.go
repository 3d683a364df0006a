// Package schema maps Go model types onto tables and columns.
package schema

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	pluralizer "github.com/gertd/go-pluralize"
)

var pluralizeClient = pluralizer.NewClient()

// Tabler lets a model name its own table.
type Tabler interface {
	TableName() string
}

var tableNames sync.Map // reflect.Type -> string

// TableName returns the table for model: the snake_case form of its type
// name with the last word pluralized, so BlogPost maps to blog_posts.
// Pointers are dereferenced. A string is treated as a type name. Models
// implementing Tabler are asked directly.
func TableName(model any) string {
	switch m := model.(type) {
	case nil:
		return ""
	case Tabler:
		return m.TableName()
	case string:
		return Pluralize(ToSnakeCase(m))
	}

	t := reflect.TypeOf(model)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := tableNames.Load(t); ok {
		return cached.(string)
	}

	name := Pluralize(ToSnakeCase(t.Name()))
	tableNames.Store(t, name)
	return name
}

// Pluralize pluralizes the last underscore-separated word of name.
func Pluralize(name string) string {
	if name == "" {
		return ""
	}
	i := strings.LastIndexByte(name, '_')
	head, last := name[:i+1], name[i+1:]
	if last == "" {
		return name
	}
	return head + preserveCase(last, pluralizeClient.Pluralize(last, 2, false))
}

// Singularize is the inverse of Pluralize.
func Singularize(name string) string {
	if name == "" {
		return ""
	}
	i := strings.LastIndexByte(name, '_')
	head, last := name[:i+1], name[i+1:]
	if last == "" {
		return name
	}
	return head + preserveCase(last, pluralizeClient.Pluralize(last, 1, false))
}

// ToSnakeCase converts CamelCase and mixedCase to snake_case. Acronyms stay
// together: HTTPServer becomes http_server.
func ToSnakeCase(name string) string {
	if name == "" {
		return ""
	}
	if strings.Contains(name, "_") && !hasUpperCase(name) {
		return name
	}

	var sb strings.Builder
	sb.Grow(len(name) + 4)

	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			switch {
			case unicode.IsLower(prev), unicode.IsDigit(prev):
				sb.WriteByte('_')
			case unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				sb.WriteByte('_')
			}
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}

func hasUpperCase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// preserveCase applies the case pattern of original to result.
func preserveCase(original, result string) string {
	if original == "" || result == "" {
		return result
	}
	if strings.ToLower(original) == original {
		return strings.ToLower(result)
	}
	if strings.ToUpper(original) == original {
		return strings.ToUpper(result)
	}
	if unicode.IsUpper(rune(original[0])) {
		return strings.ToUpper(result[:1]) + strings.ToLower(result[1:])
	}
	return strings.ToLower(result)
}
