package textutil

import "strings"

// stopwords are dropped when building a TokenList (spec §3).
var stopwords = map[string]bool{
	"AND": true,
	"THE": true,
	"OF":  true,
	"&":   true,
}

// NormalizedName produces the spec §3 NormalizedName: casefold to
// upper, strip diacritics (extended policy), then remove everything
// outside {A-Z, 0-9, space}.
func NormalizedName(s string) string {
	return NormalizeStripped(s)
}

// isTokenSep reports whether r separates tokens: whitespace, hyphen,
// slash or ampersand.
func isTokenSep(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '-', '/', '&':
		return true
	default:
		return false
	}
}

// TokenList splits a NormalizedName on whitespace, hyphens, slashes and
// ampersands, removes stopwords, and keeps the remaining tokens in
// order (spec §3).
func TokenList(normalized string) []string {
	fields := strings.FieldsFunc(normalized, isTokenSep)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" || stopwords[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// BlockKey is the concatenation of the first character of each token
// in the TokenList, truncated to at most 4 characters. An empty
// TokenList yields an empty key (spec §3).
func BlockKey(tokens []string) string {
	var b strings.Builder
	for _, t := range tokens {
		if t == "" {
			continue
		}
		b.WriteByte(t[0])
		if b.Len() >= 4 {
			break
		}
	}
	key := b.String()
	if len(key) > 4 {
		key = key[:4]
	}
	return key
}

// IsBlank reports whether s is empty or whitespace-only after trimming.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
