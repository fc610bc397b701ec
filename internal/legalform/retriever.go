package legalform

import (
	"strings"

	"github.com/corpresolve/corpmatch/internal/textutil"
)

// Retriever identifies which catalog legal form (if any) appears in a
// company name, and can strip it while restoring surrounding tokens to
// their original casing/shape (spec §4.3).
type Retriever struct {
	catalog *Catalog
	rules   []ReplacementRule
}

// NewRetriever builds a retriever over a loaded catalog and its
// replacement rule set.
func NewRetriever(catalog *Catalog, rules []ReplacementRule) *Retriever {
	return &Retriever{catalog: catalog, rules: rules}
}

// normToken is one token of a normalized alternative. OrigIdx points
// back into the pre-normalization cleaned token list so the matched
// region can later be mapped back for restoration; a token produced by
// splitting an original token's head off before a rule match keeps the
// same OrigIdx but is marked isSplit so restoration knows not to emit
// the original token verbatim.
type normToken struct {
	text    string
	origIdx int
	isSplit bool
}

const maxNormalizationDepth = 50

var punctClass = ";$.,_#+*§\"!?-"

// normalizeRaw performs step 1 of Normalize: ampersand/plus folding,
// punctuation stripping, parenthesis stripping, whitespace collapse and
// tokenization — producing the "original cleaned tokens" used later for
// restoration. These tokens keep the input's casing; foldToken
// case-folds them for matching.
func normalizeRaw(name string) []string {
	s := name
	s = strings.ReplaceAll(s, "&", " U ")
	s = strings.ReplaceAll(s, "+", " U ")
	s = StripParenthesizedTail(s)
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(punctClass, r) {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}
	return strings.Fields(b.String())
}

// foldToken applies step 2: diacritic-strip, lower-case, UND -> U.
func foldToken(tok string) string {
	folded := strings.ToLower(textutil.NormalizeStripped(tok))
	if folded == "und" {
		return "u"
	}
	return folded
}

// tokenSim compares two tokens with the rule-matching threshold: exact
// equality for short tokens, Levenshtein similarity >= 0.85 otherwise.
func tokenSim(a, b string) bool {
	if len(a) <= 2 || len(b) <= 2 {
		return a == b
	}
	return textutil.LevenshteinSimilarity(a, b) >= 0.85
}

// canonicalState joins normalized tokens into a single string used for
// cycle detection across normalization iterations.
func canonicalState(toks []normToken) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.text
	}
	return strings.Join(parts, "\x1f")
}

// Normalize runs the replacement-rule pass of spec §4.3 and returns the
// best normalized token sequence together with the original cleaned
// tokens it was derived from. Rules are pre-sorted longest-pattern
// first by LoadReplacementRules, so a single right-to-left greedy pass
// that always prefers the earliest-matching (hence largest) rule is a
// faithful single-alternative approximation of the full alternative-set
// algorithm the spec describes; see DESIGN.md for the simplification
// rationale.
func (r *Retriever) Normalize(name string) (normalized []normToken, original []string) {
	origTokens := normalizeRaw(name)
	toks := make([]normToken, len(origTokens))
	for i, ot := range origTokens {
		toks[i] = normToken{text: foldToken(ot), origIdx: i}
	}

	visited := map[string]bool{canonicalState(toks): true}
	for depth := 0; depth < maxNormalizationDepth; depth++ {
		applied := false
		for pos := len(toks) - 1; pos >= 0 && !applied; pos-- {
			for _, rule := range r.rules {
				n := len(rule.PatternTokens)
				start := pos - n + 1
				if start < 0 {
					continue
				}
				if !ruleMatchesAt(toks, start, rule) {
					continue
				}
				toks = applyRule(toks, start, pos, rule)
				applied = true
				break
			}
			if applied {
				break
			}
		}
		if !applied {
			break
		}
		state := canonicalState(toks)
		if visited[state] {
			break
		}
		visited[state] = true
	}

	return toks, origTokens
}

// ruleMatchesAt reports whether rule matches toks[start:start+len(rule.PatternTokens)].
func ruleMatchesAt(toks []normToken, start int, rule ReplacementRule) bool {
	for k, patTok := range rule.PatternTokens {
		idx := start + k
		if idx >= len(toks) {
			return false
		}
		if k == 0 {
			if !tokenSuffixMatches(toks[idx].text, patTok) {
				return false
			}
			continue
		}
		if !tokenSim(toks[idx].text, patTok) {
			return false
		}
	}
	return true
}

// tokenSuffixMatches handles the leftmost pattern token, which may
// match only a suffix of a longer input token (spec §4.3 step 4).
func tokenSuffixMatches(input, pattern string) bool {
	if len(pattern) <= 2 {
		return strings.HasSuffix(input, pattern)
	}
	if len(input) <= len(pattern) {
		return textutil.LevenshteinSimilarity(input, pattern) >= 0.85
	}
	window := input[len(input)-len(pattern):]
	return textutil.LevenshteinSimilarity(window, pattern) >= 0.85
}

// applyRule replaces toks[start:end+1] with the rule's canonical
// replacement, splitting off a non-matching head of the leftmost token
// when it is longer than the rule's first pattern token.
func applyRule(toks []normToken, start, end int, rule ReplacementRule) []normToken {
	out := make([]normToken, 0, len(toks))
	out = append(out, toks[:start]...)

	first := toks[start]
	firstPat := rule.PatternTokens[0]
	if len(first.text) > len(firstPat) && !strings.HasSuffix(firstPat, first.text) {
		head := strings.TrimSuffix(first.text, first.text[len(first.text)-len(firstPat):])
		if head != "" {
			out = append(out, normToken{text: head, origIdx: first.origIdx, isSplit: true})
		}
	}

	out = append(out, normToken{text: rule.Replacement, origIdx: first.origIdx, isSplit: true})
	out = append(out, toks[end+1:]...)
	return out
}

// candidate is a window-based legal-form match over a normalized token
// sequence (spec §4.3 Match step 2).
type candidate struct {
	start, end     int // token indices, inclusive
	cleanedLen     int
	trailingChars  int // chars of token `end` past the candidate's own text
	fallback       bool
	fallbackChars  int // chars of the concatenation before the matched suffix (fallback path)
	canonicalForm  string
}

// Match finds the best legal-form match for a normalized token
// sequence against the catalog's entries for country (spec §4.3 Match).
func (r *Retriever) Match(toks []normToken, country string) (candidate, bool) {
	entries := r.catalog.EntriesForCountry(country)
	if len(entries) == 0 {
		return candidate{}, false
	}

	var best candidate
	found := false
	for _, entry := range entries {
		entryTokens := tokenizeRulePattern(entry)
		if len(entryTokens) == 0 {
			continue
		}
		entryConcat := strings.Join(entryTokens, "")

		for end := len(toks) - 1; end >= 0; end-- {
			built := ""
			for start := end; start >= 0; start-- {
				built = toks[start].text + built
				if len(built) < len(entryConcat) {
					continue
				}
				if !strings.HasPrefix(built, entryConcat) {
					break
				}
				cand := candidate{
					start:         start,
					end:           end,
					cleanedLen:    len(entryConcat),
					trailingChars: len(built) - len(entryConcat),
					canonicalForm: entry,
				}
				if !found || betterCandidate(cand, best) {
					best = cand
					found = true
				}
				break
			}
		}
	}
	if found {
		return best, true
	}

	// Fallback: suffix-of-concatenation match.
	concat := ""
	for _, t := range toks {
		concat += t.text
	}
	for _, entry := range entries {
		entryTokens := tokenizeRulePattern(entry)
		entryConcat := strings.Join(entryTokens, "")
		if entryConcat == "" || !strings.HasSuffix(concat, entryConcat) {
			continue
		}
		cand := candidate{
			start:         0,
			end:           len(toks) - 1,
			cleanedLen:    len(entryConcat),
			fallback:      true,
			fallbackChars: len(concat) - len(entryConcat),
			canonicalForm: entry,
		}
		if !found || cand.cleanedLen > best.cleanedLen {
			best = cand
			found = true
		}
	}
	return best, found
}

// betterCandidate implements the selection rule of spec §4.3 Match
// step 3: highest end index wins; ties broken by greater cleaned
// length. No separate overlap-elimination pass runs: a longer match
// beats an overlapping shorter one only when both end at the same
// token, and substring relations between matches are not checked.
func betterCandidate(a, b candidate) bool {
	if a.end != b.end {
		return a.end > b.end
	}
	return a.cleanedLen > b.cleanedLen
}

// Retrieve returns the canonical legal-form string found in name for
// country, or ("", false) if none is recognized.
func (r *Retriever) Retrieve(name, country string) (string, bool) {
	if r.catalog.Empty() {
		return "", false
	}
	toks, _ := r.Normalize(name)
	cand, ok := r.Match(toks, country)
	if !ok {
		return "", false
	}
	return cand.canonicalForm, true
}

// WithoutLegalForm returns name with its recognized legal-form suffix
// removed and surrounding tokens restored to their original shape
// (spec §4.3 Remove), or name's cleaned form unchanged if no legal form
// is recognized.
func (r *Retriever) WithoutLegalForm(name, country string) string {
	if r.catalog.Empty() {
		return Clean(name)
	}
	toks, orig := r.Normalize(name)
	cand, ok := r.Match(toks, country)
	if !ok {
		return Clean(name)
	}

	var survivors []normToken
	if cand.fallback {
		// The matched suffix covers the last cleanedLen characters of
		// the token concatenation; drop them from the tail, keeping
		// every token before them.
		survivors = append(survivors, toks...)
		remaining := cand.cleanedLen
		for remaining > 0 && len(survivors) > 0 {
			last := survivors[len(survivors)-1]
			if len(last.text) <= remaining {
				remaining -= len(last.text)
				survivors = survivors[:len(survivors)-1]
				continue
			}
			survivors[len(survivors)-1] = normToken{text: trimTail(last.text, remaining), origIdx: last.origIdx, isSplit: true}
			remaining = 0
		}
	} else {
		survivors = append(survivors, toks[:cand.start]...)
		if cand.trailingChars > 0 {
			tail := trimHeadKeepSuffix(toks[cand.end].text, cand.trailingChars)
			if tail != "" {
				survivors = append(survivors, normToken{text: tail, origIdx: toks[cand.end].origIdx, isSplit: true})
			}
		}
		survivors = append(survivors, toks[cand.end+1:]...)
	}

	return restoreTokens(survivors, orig)
}

func trimTail(s string, cleanedLen int) string {
	if cleanedLen >= len(s) {
		return ""
	}
	return s[:len(s)-cleanedLen]
}

func trimHeadKeepSuffix(s string, keep int) string {
	if keep >= len(s) {
		return s
	}
	return s[len(s)-keep:]
}

// restoreTokens walks surviving normalized tokens and, where a
// contiguous run maps back to an un-split original token, restores
// that original token's surface form verbatim; split-derived fragments
// are emitted as-is.
func restoreTokens(survivors []normToken, orig []string) string {
	var out []string
	i := 0
	for i < len(survivors) {
		t := survivors[i]
		if !t.isSplit && t.origIdx >= 0 && t.origIdx < len(orig) {
			out = append(out, orig[t.origIdx])
			i++
			continue
		}
		out = append(out, t.text)
		i++
	}
	result := strings.Join(out, " ")
	return strings.TrimSpace(result)
}
