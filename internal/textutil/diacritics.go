// Package textutil implements the diacritic-folding, case-folding and
// alphabetic-filtering primitives shared by every other package in this
// module: the legal-form cleaner/retriever, the word comparator, the
// corporate name matcher and the duplicate finder all normalize through
// here first.
package textutil

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// extendedMap implements the "extended" diacritic policy: Ä->AE, Ø->OE,
// ß->SS. Looked up against the upper-cased rune.
var extendedMap = map[rune]string{
	'Ä': "AE", 'Æ': "AE",
	'Ø': "OE", 'Ö': "OE",
	'ß': "SS",
	'Ü': "UE",
	'Ł': "L",
	'Đ': "D",
}

// simpleMap implements the "simple" diacritic policy: Ø->O, Ł->L, Đ->D.
var simpleMap = map[rune]string{
	'Ä': "A", 'Æ': "A",
	'Ø': "O", 'Ö': "O",
	'ß': "SS",
	'Ü': "U",
	'Ł': "L",
	'Đ': "D",
}

var alnumSpace = func(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == ' '
}

// keepAlnumSpace filters a string down to {A-Z, 0-9, space}.
func keepAlnumSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if alnumSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func applyRuneMap(s string, m map[rune]string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if rep, ok := m[r]; ok {
			b.WriteString(rep)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripCombiningMarks decomposes to NFD and drops combining marks,
// leaving the base letters behind (the "raw NFD" diacritic policy).
func stripCombiningMarks(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func isMn(r rune) bool { return unicode.Is(unicode.Mn, r) }

// NormalizeStripped applies the extended diacritic map, NFD-decomposes,
// drops combining marks, and strips to {A-Z, 0-9, space}. This is
// normalize_stripped from spec §4.1; spaces are kept, and
// NormalizedName relies on them to split tokens.
func NormalizeStripped(s string) string {
	upper := strings.ToUpper(strings.TrimSpace(s))
	extended := applyRuneMap(upper, extendedMap)
	decomposed := stripCombiningMarks(extended)
	return keepAlnumSpace(strings.ToUpper(decomposed))
}

// NormalizePreserveSpecials behaves like NormalizeStripped but retains
// non-alphabetic characters, used where token shape (e.g. trailing
// punctuation) still matters to the caller.
func NormalizePreserveSpecials(s string) string {
	upper := strings.ToUpper(strings.TrimSpace(s))
	extended := applyRuneMap(upper, extendedMap)
	return strings.ToUpper(stripCombiningMarks(extended))
}

// diacriticVariants returns s under the four normalization policies
// used by EqualDiacriticInsensitive, each reduced to {A-Z, 0-9}.
func diacriticVariants(s string) [4]string {
	upper := strings.ToUpper(strings.TrimSpace(s))

	raw := keepAlnumSpace(strings.ToUpper(stripCombiningMarks(upper)))
	extended := keepAlnumSpace(strings.ToUpper(stripCombiningMarks(applyRuneMap(upper, extendedMap))))
	simple := keepAlnumSpace(strings.ToUpper(stripCombiningMarks(applyRuneMap(upper, simpleMap))))
	// NFD + combining-mark removal misses stroke letters that aren't
	// combining-mark decompositions, e.g. Vietnamese "đ"/"Đ". Unidecode
	// catches those as a fourth, looser fallback policy.
	translit := keepAlnumSpace(strings.ToUpper(unidecode.Unidecode(upper)))

	noSpace := func(v string) string { return strings.ReplaceAll(v, " ", "") }
	return [4]string{noSpace(raw), noSpace(extended), noSpace(simple), noSpace(translit)}
}

// EqualDiacriticInsensitive reports whether a and b are equal under any
// combination of the four diacritic policies (raw NFD, extended,
// simple, transliterated), after case-folding to upper and reducing to
// {A-Z, 0-9}.
func EqualDiacriticInsensitive(a, b string) bool {
	va := diacriticVariants(a)
	vb := diacriticVariants(b)
	for _, x := range va {
		for _, y := range vb {
			if x == y {
				return true
			}
		}
	}
	return false
}
