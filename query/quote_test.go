package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"quote plain", func(s string) string { return Quote(s) }, "id", "`id`"},
		{"quote keeps dots", func(s string) string { return Quote(s) }, "users.id", "`users.id`"},
		{"dotted plain", QuoteDotted, "id", "`id`"},
		{"dotted split", QuoteDotted, "users.id", "`users`.`id`"},
		{"dotted three parts", QuoteDotted, "db.users.id", "`db`.`users`.`id`"},
		{"dotted leading dot", QuoteDotted, ".id", "`.id`"},
		{"aliased single", QuoteAliased, "users", "`users`"},
		{"aliased alias", QuoteAliased, "users u", "`users` `u`"},
		{"aliased schema", QuoteAliased, "app.users u", "`app`.`users` `u`"},
		{"aliased extra spaces", QuoteAliased, "  users   u ", "`users` `u`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.in))
		})
	}
}

func TestQuoteSegments(t *testing.T) {
	assert.Equal(t, "`users`.`id`", Quote("users", "id"))
}

func TestIsToken(t *testing.T) {
	assert.True(t, IsToken(":abcd"))
	assert.True(t, IsToken(":abcdefghijkl"))
	assert.False(t, IsToken(":abc"))
	assert.False(t, IsToken(":abcdefghijklm"))
	assert.False(t, IsToken("abcd"))
	assert.False(t, IsToken(":abCd"))
	assert.False(t, IsToken(":ab1d"))
}

func TestQuoteStyles(t *testing.T) {
	assert.Equal(t, "`app`.`users` `u`", quoteSourceWith(StyleAliased, "app.users u"))
	assert.Equal(t, "`app.users u`", quoteSourceWith(StyleSimple, "app.users u"))
	assert.Equal(t, "`u`.`id`", quoteWith(StyleAliased, "u.id"))
	assert.Equal(t, "`u.id`", quoteWith(StyleSimple, "u.id"))
	assert.Equal(t, "`users` `u`", QuoteAliased("users u"))
}
