package legalform

import (
	"bytes"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/corpresolve/corpmatch/internal/textutil"
)

// replacementRow is the raw CSV row shape loaded by gocsv from
// legal_form_replacements.csv (spec §6): "search_pattern,replacement".
type replacementRow struct {
	SearchPattern string `csv:"search_pattern"`
	Replacement   string `csv:"replacement"`
}

// ReplacementRule is (multiword search pattern, canonical replacement)
// per spec §3. PatternTokens are tokenized, diacritic-stripped and
// lower-cased at load time.
type ReplacementRule struct {
	PatternTokens []string
	Replacement   string
	charLen       int
}

// LoadReplacementRules parses legal_form_replacements.csv and returns
// the rules sorted by token count descending, then by total character
// length descending (spec §3). Rows with an empty pattern or
// replacement are skipped. A CSV syntax error, such as a row with the
// wrong number of fields, is not skipped: it is returned as an error
// and no rules are loaded.
func LoadReplacementRules(csvData []byte) ([]ReplacementRule, error) {
	if len(csvData) == 0 {
		return nil, nil
	}

	var rows []*replacementRow
	if err := gocsv.Unmarshal(bytes.NewReader(csvData), &rows); err != nil {
		return nil, err
	}

	rules := make([]ReplacementRule, 0, len(rows))
	for _, row := range rows {
		pattern := strings.TrimSpace(row.SearchPattern)
		replacement := strings.TrimSpace(row.Replacement)
		if pattern == "" || replacement == "" {
			continue
		}
		tokens := tokenizeRulePattern(pattern)
		if len(tokens) == 0 {
			continue
		}
		charLen := 0
		for _, t := range tokens {
			charLen += len(t)
		}
		rules = append(rules, ReplacementRule{
			PatternTokens: tokens,
			Replacement:   strings.ToLower(replacement),
			charLen:       charLen,
		})
	}

	sort.SliceStable(rules, func(i, j int) bool {
		if len(rules[i].PatternTokens) != len(rules[j].PatternTokens) {
			return len(rules[i].PatternTokens) > len(rules[j].PatternTokens)
		}
		return rules[i].charLen > rules[j].charLen
	})

	return rules, nil
}

func tokenizeRulePattern(pattern string) []string {
	fields := strings.Fields(pattern)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		stripped := strings.ToLower(textutil.NormalizeStripped(f))
		if stripped == "" {
			continue
		}
		out = append(out, stripped)
	}
	return out
}
