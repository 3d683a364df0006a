package query

import (
	"strings"

	"github.com/samber/lo"
)

const identQuote = "`"

// Quote wraps identifier segments in backticks, joined by dots:
// Quote("users", "id") is `users`.`id`.
func Quote(segments ...string) string {
	return identQuote + strings.Join(segments, identQuote+"."+identQuote) + identQuote
}

// QuoteDotted quotes each dot-separated part of identifier, so users.id
// becomes `users`.`id` and id becomes `id`. A leading dot is not a separator.
func QuoteDotted(identifier string) string {
	if strings.Index(identifier, ".") <= 0 {
		return Quote(identifier)
	}
	parts := strings.Split(identifier, ".")
	return strings.Join(lo.Map(parts, func(p string, _ int) string {
		return Quote(p)
	}), ".")
}

// QuoteAliased quotes each space-separated token of a source expression,
// so "users u" becomes `users` `u`.
func QuoteAliased(source string) string {
	tokens := strings.Fields(source)
	if len(tokens) < 2 {
		return QuoteDotted(strings.TrimSpace(source))
	}
	return strings.Join(lo.Map(tokens, func(t string, _ int) string {
		return QuoteDotted(t)
	}), " ")
}

func quoteWith(style QuoteStyle, identifier string) string {
	if style == StyleSimple {
		return Quote(identifier)
	}
	return QuoteDotted(identifier)
}

func quoteSourceWith(style QuoteStyle, source string) string {
	if style == StyleSimple {
		return Quote(source)
	}
	return QuoteAliased(source)
}
