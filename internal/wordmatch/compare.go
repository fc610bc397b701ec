// Package wordmatch implements the fuzzy word-list comparator used by
// the corporate name matcher: best-effort assignment between two token
// sequences under progressively looser similarity passes.
package wordmatch

import (
	"math"
	"regexp"
	"strings"

	"github.com/corpresolve/corpmatch/internal/textutil"
)

var trailingNoise = ".;:/$%&\"!"

// IsLikelyAbbreviation reports whether the shorter of a/b could be an
// abbreviation of the longer: same first character, and every
// subsequent character of the shorter appears in order within the
// longer at strictly increasing positions.
func IsLikelyAbbreviation(a, b string) bool {
	short, long := strings.TrimRight(a, "."), strings.TrimRight(b, ".")
	if len(long) < len(short) {
		short, long = long, short
	}
	if short == "" || long == "" {
		return false
	}
	if short[0] != long[0] {
		return false
	}
	pos := 1
	for i := 1; i < len(short); i++ {
		idx := strings.IndexByte(long[pos:], short[i])
		if idx < 0 {
			return false
		}
		pos += idx + 1
	}
	return true
}

// CompareWord scores two already-normalized tokens (spec §4.4).
func CompareWord(w1, w2 string, allowPrefix, canUseAbbrev bool) float64 {
	score, _ := compareWordDetail(w1, w2, allowPrefix, canUseAbbrev)
	return score
}

// compareWordDetail scores two already-normalized tokens and reports
// whether the winning score actually came from the prefix-comparison
// path, as opposed to merely being computed during a prefix-enabled
// pass (the base min(JW,Lev)/abbreviation paths can still win even
// when allowPrefix is true).
func compareWordDetail(w1, w2 string, allowPrefix, canUseAbbrev bool) (float64, bool) {
	if w1 == "" && w2 == "" {
		return 1, false
	}
	if w1 == "" || w2 == "" {
		return 0, false
	}
	if len(w1) <= 2 && len(w2) <= 2 {
		if w1 == w2 {
			return 1, false
		}
		return 0, false
	}

	best := textutil.MinFloat(textutil.JaroWinkler(w1, w2), textutil.LevenshteinSimilarity(w1, w2))
	usedPrefix := false

	if allowPrefix {
		if score, ok := prefixScore(w1, w2); ok && score > best {
			best = score
			usedPrefix = true
		}
	}

	if canUseAbbrev && IsLikelyAbbreviation(w1, w2) && 0.95 > best {
		best = 0.95
		usedPrefix = false
	}

	if best < 0.6 {
		return 0, false
	}
	return best, usedPrefix
}

// prefixScore implements the "one side at least 20% longer" prefix
// comparison branch of compare_word.
func prefixScore(w1, w2 string) (float64, bool) {
	longer, shorter := w1, w2
	if len(w2) > len(w1) {
		longer, shorter = w2, w1
	}
	if float64(len(longer)) < 1.2*float64(len(shorter)) {
		return 0, false
	}

	trimmed := strings.TrimRight(longer, trailingNoise)
	prefix := trimmed
	if len(prefix) > len(shorter) {
		prefix = prefix[:len(shorter)]
	}

	var score float64
	if len(shorter) <= 3 {
		if prefix == shorter {
			score = 1
		} else {
			score = 0
		}
	} else {
		score = textutil.MinFloat(textutil.JaroWinkler(prefix, shorter), textutil.LevenshteinSimilarity(prefix, shorter))
	}

	tail := longer[len(prefix):]
	lastChar := shorter[len(shorter)-1]
	if !strings.ContainsRune(tail, rune(lastChar)) {
		score *= 0.8
	}
	return score, true
}

// Match is one assignment produced by MatchWordLists.
type Match struct {
	AIdx, BIdx int
	Score      float64
	Prefix     bool
}

type passSpec struct {
	min    float64
	prefix bool
}

var passes = []passSpec{
	{0.98, false},
	{0.98, true},
	{0.95, true},
	{0.90, true},
	{0.80, true},
	{0.60, true},
}

// MatchWordLists finds a best assignment from A to B under six passes
// of decreasing strictness (spec §4.4).
func MatchWordLists(a, b []string) []Match {
	matchedA := make([]bool, len(a))
	matchedB := make([]bool, len(b))
	var matches []Match

	isInOrder := true
	lastBIdx := -1

	for _, pass := range passes {
		for ai := range a {
			if matchedA[ai] {
				continue
			}
			bestBi := -1
			bestScore := 0.0
			bestPrefix := false
			for bi := range b {
				if matchedB[bi] {
					continue
				}
				score, usedPrefix := compareWordDetail(a[ai], b[bi], pass.prefix, isInOrder)
				if score >= pass.min && score > bestScore {
					bestScore = score
					bestBi = bi
					bestPrefix = usedPrefix
				}
			}
			if bestBi < 0 {
				continue
			}
			matchedA[ai] = true
			matchedB[bestBi] = true
			if bestBi < lastBIdx {
				isInOrder = false
			}
			lastBIdx = bestBi
			matches = append(matches, Match{AIdx: ai, BIdx: bestBi, Score: bestScore, Prefix: bestPrefix})
		}
	}

	return matches
}

var wordSplitRe = regexp.MustCompile(`[\s\-/]+`)

func tokenizeForWords(s string) []string {
	s = strings.ReplaceAll(s, "&", "")
	fields := wordSplitRe.Split(strings.TrimSpace(s), -1)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		out = append(out, strings.ToLower(textutil.NormalizePreserveSpecials(f)))
	}
	return out
}

// CompareByWords compares two names token-by-token with an
// order-aware, length-tolerant scheme (spec §4.4 compare_by_words).
// Returns 0 when the names are rejected outright.
func CompareByWords(name1, name2 string) float64 {
	tokA := tokenizeForWords(name1)
	tokB := tokenizeForWords(name2)

	a, b := tokA, tokB
	if len(b) < len(a) {
		a, b = b, a
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if 2*len(a) <= len(b) {
		return 0
	}

	matches := MatchWordLists(a, b)
	minMatched := int(math.Ceil(float64(len(a)) / 2))
	if len(matches) < minMatched {
		return 0
	}

	hasNonPrefix := false
	matchedChars := 0
	for _, m := range matches {
		if !m.Prefix {
			hasNonPrefix = true
		}
		matchedChars += len(a[m.AIdx])
	}
	if !hasNonPrefix {
		return 0
	}

	totalChars := 0
	for _, t := range a {
		totalChars += len(t)
	}
	if totalChars == 0 || float64(matchedChars)/float64(totalChars) < 0.5 {
		return 0
	}

	matchedA := make(map[int]bool, len(matches))
	sum := 0.0
	for _, m := range matches {
		score := m.Score
		if m.Prefix {
			score -= 0.1
		}
		sum += score
		matchedA[m.AIdx] = true
	}
	for i := range a {
		if !matchedA[i] {
			sum += 0.4
		}
	}
	avg := sum / float64(len(a))

	unmatchedB := len(b) - len(matches)
	freeUnmatched := len(matches) / 3
	excess := unmatchedB - freeUnmatched
	if excess > 0 {
		avg *= math.Pow(0.95, float64(excess))
	}

	orderViolations := countOrderViolations(matches)
	if orderViolations > 0 {
		avg *= math.Pow(0.98, float64(orderViolations))
	}

	return avg
}

// countOrderViolations counts matches whose B index is less than the
// maximum B index seen among earlier matches (in A order).
func countOrderViolations(matches []Match) int {
	byA := append([]Match{}, matches...)
	// matches is already produced in A-ascending order per pass, but
	// passes interleave; sort defensively by AIdx.
	for i := 1; i < len(byA); i++ {
		for j := i; j > 0 && byA[j].AIdx < byA[j-1].AIdx; j-- {
			byA[j], byA[j-1] = byA[j-1], byA[j]
		}
	}
	violations := 0
	maxSeen := -1
	for _, m := range byA {
		if m.BIdx < maxSeen {
			violations++
		} else {
			maxSeen = m.BIdx
		}
	}
	return violations
}
