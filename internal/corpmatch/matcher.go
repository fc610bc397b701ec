// Package corpmatch implements the corporate name matcher (spec §4.5):
// a layered scorer combining diacritic-insensitive equality, stretched
// string-distance metrics, legal-form-aware cleaning, and word-level
// comparison.
package corpmatch

import (
	"strings"
	"unicode"

	"github.com/corpresolve/corpmatch/internal/legalform"
	"github.com/corpresolve/corpmatch/internal/textutil"
	"github.com/corpresolve/corpmatch/internal/wordmatch"
)

// Matcher scores pairs of company names, optionally qualified by
// country code, using a shared legal-form retriever.
type Matcher struct {
	retriever *legalform.Retriever
}

// NewMatcher builds a Matcher over a ready legal-form retriever.
func NewMatcher(retriever *legalform.Retriever) *Matcher {
	return &Matcher{retriever: retriever}
}

const defaultCountry = "DE"

// Match scores two company names (spec §4.5). The second return value
// reports whether a score was produced at all ("no opinion" otherwise).
func (m *Matcher) Match(name1, name2, country1, country2 string) (float64, bool) {
	if country1 == "" {
		country1 = defaultCountry
	}
	if country2 == "" {
		country2 = defaultCountry
	}

	u1 := strings.ToUpper(strings.TrimSpace(name1))
	u2 := strings.ToUpper(strings.TrimSpace(name2))
	if u1 == "" || u2 == "" {
		return 0, false
	}

	if textutil.EqualDiacriticInsensitive(u1, u2) {
		return 1.0, true
	}

	stretchedJW := 1 - 2.5*(1-textutil.JaroWinkler(u1, u2))
	if stretchedJW >= 0.95 {
		return stretchedJW, true
	}

	rawLev := 0.0
	haveRawLev := len(u1) > 2 && len(u2) > 2
	if haveRawLev {
		rawLev = textutil.LevenshteinSimilarity(u1, u2)
		if rawLev >= 0.95 {
			rawLev = 0.95
			return rawLev, true
		}
	}

	c1, c2 := reconcileCountries(country1, country2)

	form1, ok1 := m.retriever.Retrieve(u1, c1)
	form2, ok2 := m.retriever.Retrieve(u2, c2)

	mismatchPenalty := 1.0
	var cleaned1, cleaned2 string
	switch {
	case ok1 && ok2 && form1 == form2:
		cleaned1 = m.retriever.WithoutLegalForm(u1, c1)
		cleaned2 = m.retriever.WithoutLegalForm(u2, c2)
	case ok1 && ok2:
		cleaned1 = m.retriever.WithoutLegalForm(u1, c1)
		cleaned2 = m.retriever.WithoutLegalForm(u2, c2)
		mismatchPenalty = 0.9
	case ok1 && !ok2:
		cleaned1 = m.retriever.WithoutLegalForm(u1, c1)
		cleaned2 = legalform.Clean(u2)
	case ok2 && !ok1:
		cleaned2 = m.retriever.WithoutLegalForm(u2, c2)
		cleaned1 = legalform.Clean(u1)
	default:
		cleaned1 = legalform.Clean(u1)
		cleaned2 = legalform.Clean(u2)
	}

	if cleaned1 == "" || cleaned2 == "" {
		return 0, false
	}

	if textutil.EqualDiacriticInsensitive(cleaned1, cleaned2) {
		return 0.99, true
	}

	if score, ok := matchWordSequenceBest(cleaned1, cleaned2); ok && score >= 0.85 {
		return score, true
	}

	wordScoreL := wordmatch.CompareByWords(cleaned1, cleaned2)

	if initialLetterMatch(cleaned1, cleaned2) {
		return 0.5, true
	}

	penalizedJW := 1 - 2.5*(1-textutil.JaroWinkler(cleaned1, cleaned2))
	cleanedLev := textutil.LevenshteinSimilarity(cleaned1, cleaned2)
	if !haveRawLev {
		rawLev = textutil.LevenshteinSimilarity(u1, u2)
	}

	switch {
	case penalizedJW*mismatchPenalty >= 0.9 && cleanedLev >= wordScoreL:
		return penalizedJW * mismatchPenalty, true
	case wordScoreL >= cleanedLev && wordScoreL >= rawLev && wordScoreL >= 0.85:
		return wordScoreL * mismatchPenalty, true
	case rawLev >= 0.85:
		return rawLev * mismatchPenalty, true
	case cleanedLev >= 0.85:
		return cleanedLev * mismatchPenalty, true
	}

	return 0, false
}

// reconcileCountries implements spec §4.5 step 5: copy the present
// side when one is missing; fall back to "DE" on both sides when they
// disagree.
func reconcileCountries(c1, c2 string) (string, string) {
	if c1 == "" && c2 != "" {
		c1 = c2
	}
	if c2 == "" && c1 != "" {
		c2 = c1
	}
	if c1 != "" && c2 != "" && c1 != c2 {
		return defaultCountry, defaultCountry
	}
	return c1, c2
}

// tokenizeDotAware splits on whitespace/hyphen, then further splits
// each piece on '.' while keeping the dot attached to its preceding
// fragment (spec §4.5.1).
func tokenizeDotAware(s string) []string {
	var macro []string
	start := 0
	for i, r := range s {
		if r == ' ' || r == '-' {
			if i > start {
				macro = append(macro, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		macro = append(macro, s[start:])
	}

	var out []string
	for _, tok := range macro {
		var b strings.Builder
		for i := 0; i < len(tok); i++ {
			b.WriteByte(tok[i])
			if tok[i] == '.' {
				out = append(out, b.String())
				b.Reset()
			}
		}
		if b.Len() > 0 {
			out = append(out, b.String())
		}
	}
	return out
}

func isAbbrevToken(t string) bool {
	return len(t) == 1 || (len(t) == 2 && t[len(t)-1] == '.')
}

func abbreviationPair(a, b string) bool {
	if isAbbrevToken(a) && len(b) > 0 && strings.EqualFold(a[:1], b[:1]) {
		return true
	}
	if isAbbrevToken(b) && len(a) > 0 && strings.EqualFold(b[:1], a[:1]) {
		return true
	}
	return false
}

// matchWordSequence implements one direction of spec §4.5.1.
func matchWordSequence(a, b []string) (float64, bool) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		w1, w2 := a[i], b[i]
		switch {
		case strings.EqualFold(w1, w2) || textutil.EqualDiacriticInsensitive(w1, w2):
			sum += 1.0
		case abbreviationPair(w1, w2):
			sum += 0.9
		default:
			jw := textutil.JaroWinkler(w1, w2)
			if jw >= 0.95 {
				sum += jw
			} else {
				return 0, false
			}
		}
	}

	minLen, maxLen := len(a), len(b)
	if maxLen < minLen {
		minLen, maxLen = maxLen, minLen
	}
	if minLen <= maxLen/2 {
		return 0, false
	}

	return sum / (float64(minLen) + float64(maxLen-minLen)*0.2), true
}

func matchWordSequenceBest(name1, name2 string) (float64, bool) {
	a := tokenizeDotAware(name1)
	b := tokenizeDotAware(name2)
	if len(a) <= 1 || len(b) <= 1 {
		return 0, false
	}

	scoreAB, okAB := matchWordSequence(a, b)
	scoreBA, okBA := matchWordSequence(b, a)
	if !okAB && !okBA {
		return 0, false
	}
	best := scoreAB
	if okBA && (!okAB || scoreBA > scoreAB) {
		best = scoreBA
	}
	return best, true
}

// initialLetterMatch implements spec §4.5.2.
func initialLetterMatch(a, b string) bool {
	return alphaOnlyUpper(a) == initials(b) || alphaOnlyUpper(b) == initials(a)
}

func initials(s string) string {
	var b strings.Builder
	for _, tok := range strings.Fields(s) {
		if tok == "" {
			continue
		}
		b.WriteRune(unicode.ToUpper(rune(tok[0])))
	}
	return b.String()
}

func alphaOnlyUpper(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}
