// Package tests runs the end-to-end scenarios against the loaded
// corpmatch facade, exercising the full legal-form catalog and
// replacement-rule set exactly as a deployed process would.
package tests

import (
	"context"
	"testing"

	corpmatch "github.com/corpresolve/corpmatch"
	"github.com/corpresolve/corpmatch/data"
)

func loadCore(t *testing.T) *corpmatch.Core {
	t.Helper()
	core, err := corpmatch.Load(corpmatch.Resources{
		LegalFormsJSON:      data.LegalFormsJSON,
		LegalFormAdditions:  data.AdditionLegalFormsTXT,
		ReplacementRulesCSV: data.LegalFormReplacementsCSV,
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return core
}

// TestGoldenScenarios checks the literal end-to-end scenarios table:
// each pair must score inside its documented acceptable range.
func TestGoldenScenarios(t *testing.T) {
	core := loadCore(t)

	cases := []struct {
		name1, name2 string
		minScore     float64
		maxScore     float64
		requireOK    bool
	}{
		{"Warner Brothers Discovery", "Warner Bros. Discovery", 0.85, 1.0, true},
		{"Johnson & Johnson", "Johnson and Jonson", 0.85, 1.0, true},
		{"PNC Financial Services Group", "PNC Financial Service G.", 0.85, 1.0, true},
		{"PayPal Holdings", "PayPal Holding", 0.85, 1.0, true},
		{"Siemens AG", "Siemens GmbH", 0.85, 1.0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name1+"/"+tc.name2, func(t *testing.T) {
			score, ok := core.MatchCorporateNames(tc.name1, tc.name2, "", "")
			if tc.requireOK && !ok {
				t.Fatalf("MatchCorporateNames(%q, %q) returned no opinion, want a score", tc.name1, tc.name2)
			}
			if score < tc.minScore || score > tc.maxScore {
				t.Errorf("MatchCorporateNames(%q, %q) = %.4f, want in [%.2f, %.2f]", tc.name1, tc.name2, score, tc.minScore, tc.maxScore)
			}
		})
	}
}

// TestGoldenBelowThreshold checks the documented below-threshold
// scenario: an acronym against its expansion scores near 0.5, well
// under the 0.85 emission cutoff.
func TestGoldenBelowThreshold(t *testing.T) {
	core := loadCore(t)

	score, ok := core.MatchCorporateNames("International Business Machines", "IBM", "", "")
	if ok && score >= 0.85 {
		t.Errorf("MatchCorporateNames(IBM expansion) = %.4f (opinion=%v), want below 0.85", score, ok)
	}
}

// TestGoldenAllowedFalsePositive documents the one scenario spec.md
// explicitly permits either outcome for: implementations may or may
// not report American Electric Power / American Tower as a duplicate.
// This test only records the score for visibility, it never fails.
func TestGoldenAllowedFalsePositive(t *testing.T) {
	core := loadCore(t)
	score, ok := core.MatchCorporateNames("American Electric Power", "American Tower", "", "")
	t.Logf("American Electric Power / American Tower scored %.4f (opinion=%v)", score, ok)
}

// TestGoldenCommutativity spot-checks score(a,b) = score(b,a) across
// every required scenario pair.
func TestGoldenCommutativity(t *testing.T) {
	core := loadCore(t)

	pairs := [][2]string{
		{"Warner Brothers Discovery", "Warner Bros. Discovery"},
		{"Johnson & Johnson", "Johnson and Jonson"},
		{"PNC Financial Services Group", "PNC Financial Service G."},
		{"PayPal Holdings", "PayPal Holding"},
		{"Siemens AG", "Siemens GmbH"},
		{"International Business Machines", "IBM"},
	}

	for _, p := range pairs {
		forward, okF := core.MatchCorporateNames(p[0], p[1], "", "")
		backward, okB := core.MatchCorporateNames(p[1], p[0], "", "")
		if okF != okB {
			t.Errorf("opinion mismatch for (%q, %q): forward=%v backward=%v", p[0], p[1], okF, okB)
			continue
		}
		if okF && forward != backward {
			t.Errorf("score(%q, %q)=%.4f != score(%q, %q)=%.4f", p[0], p[1], forward, p[1], p[0], backward)
		}
	}
}

// TestGoldenFindDuplicatesOverScenarios runs find_duplicates over the
// full scenario name set and checks that at least four pairs surface,
// all above threshold, with no self-pairs or reversed duplicates (spec
// §8 invariants). Siemens AG and Siemens GmbH fall into different
// blocks, so they are not among the four.
func TestGoldenFindDuplicatesOverScenarios(t *testing.T) {
	core := loadCore(t)

	names := []string{
		"Warner Brothers Discovery", "Warner Bros. Discovery",
		"Johnson & Johnson", "Johnson and Jonson",
		"PNC Financial Services Group", "PNC Financial Service G.",
		"PayPal Holdings", "PayPal Holding",
		"Siemens AG", "Siemens GmbH",
		"International Business Machines", "IBM",
	}

	pairs, err := core.FindDuplicates(context.Background(), names)
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}

	seen := make(map[[2]string]bool)
	for _, p := range pairs {
		if p.Name1 == p.Name2 {
			t.Errorf("FindDuplicates returned a self-pair: %q", p.Name1)
		}
		key := [2]string{p.Name1, p.Name2}
		rev := [2]string{p.Name2, p.Name1}
		if seen[rev] {
			t.Errorf("FindDuplicates returned both (%q,%q) and (%q,%q)", p.Name1, p.Name2, p.Name2, p.Name1)
		}
		seen[key] = true
		if p.Score <= 0.85 {
			t.Errorf("FindDuplicates emitted (%q, %q) at score %.4f, at or below the 0.85 threshold", p.Name1, p.Name2, p.Score)
		}
	}

	if len(pairs) < 4 {
		t.Errorf("FindDuplicates found %d pairs over the scenario set, expected at least the 4 high-confidence duplicates", len(pairs))
	}
}
