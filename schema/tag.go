package schema

import (
	"reflect"
	"strings"
	"sync"
)

// ParsedTag is the parsed form of a `db` struct tag.
//
// Supported syntax:
//
//	`db:"column_name"`             // column name
//	`db:"column:name;primary"`     // options separated by ';'
//	`db:"primary;auto"`            // database assigns the value on insert
//	`db:"generator:ulid"`          // value generated by a registered ids generator
//	`db:"-"`                       // skip field
type ParsedTag struct {
	ColumnName string
	Skip       bool
	Primary    bool
	Auto       bool
	Generator  string
}

var tagCache sync.Map // string -> *ParsedTag

// ParseTag parses the db tag of a struct field. Fields without a tag map
// to the snake_case form of their name.
func ParseTag(fieldName string, tag reflect.StructTag) *ParsedTag {
	value := tag.Get("db")
	if value == "" {
		return &ParsedTag{ColumnName: ToSnakeCase(fieldName)}
	}

	key := fieldName + ":" + value
	if cached, ok := tagCache.Load(key); ok {
		return cached.(*ParsedTag)
	}

	parsed := parseTagValue(fieldName, value)
	tagCache.Store(key, parsed)
	return parsed
}

func parseTagValue(fieldName, value string) *ParsedTag {
	if value == "-" {
		return &ParsedTag{Skip: true}
	}

	parsed := &ParsedTag{ColumnName: ToSnakeCase(fieldName)}
	if !strings.ContainsAny(value, ";:") {
		switch value {
		case "primary", "primary_key", "auto", "auto_generate":
			parseFlag(parsed, value)
		default:
			parsed.ColumnName = value
		}
		return parsed
	}

	for _, option := range strings.Split(value, ";") {
		option = strings.TrimSpace(option)
		if option == "" {
			continue
		}
		if k, v, ok := strings.Cut(option, ":"); ok {
			parseKeyValue(parsed, strings.TrimSpace(k), strings.TrimSpace(v))
			continue
		}
		parseFlag(parsed, option)
	}
	return parsed
}

func parseFlag(tag *ParsedTag, flag string) {
	switch flag {
	case "primary", "primary_key":
		tag.Primary = true
	case "auto", "auto_generate", "auto_increment":
		tag.Auto = true
	}
}

func parseKeyValue(tag *ParsedTag, key, value string) {
	switch key {
	case "column", "name":
		tag.ColumnName = value
	case "generator", "gen":
		tag.Generator = value
	}
}
