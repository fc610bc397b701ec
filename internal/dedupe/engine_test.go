package dedupe

import (
	"context"
	"testing"

	"github.com/corpresolve/corpmatch/internal/corpmatch"
	"github.com/corpresolve/corpmatch/internal/legalform"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	c, err := legalform.LoadCatalog(
		[]byte(`[
			{"legal_form_id":"1","short_name":"INC","country":"US"},
			{"legal_form_id":"2","short_name":"HOLDINGS","country":"US"},
			{"legal_form_id":"3","short_name":"GROUP","country":"US"}
		]`),
		nil,
	)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	r := legalform.NewRetriever(c, nil)
	return NewEngine(corpmatch.NewMatcher(r))
}

func TestFindDuplicatesBasic(t *testing.T) {
	e := testEngine(t)
	names := []string{
		"PayPal Holdings",
		"PayPal Holding",
		"Completely Unrelated Company",
	}
	pairs, err := e.FindDuplicates(context.Background(), names)
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("expected exactly one duplicate pair, got %d: %v", len(pairs), pairs)
	}
}

func TestFindDuplicatesNoSelfOrDuplicatePairs(t *testing.T) {
	e := testEngine(t)
	names := []string{"Acme Holdings", "Acme Holdings"}
	pairs, err := e.FindDuplicates(context.Background(), names)
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	seen := map[[2]string]bool{}
	for _, p := range pairs {
		if p.Name1 == p.Name2 {
			t.Errorf("unexpected self pair: %v", p)
		}
		key := [2]string{p.Name1, p.Name2}
		rev := [2]string{p.Name2, p.Name1}
		if seen[key] || seen[rev] {
			t.Errorf("duplicate pair emitted: %v", p)
		}
		seen[key] = true
	}
}

func TestFindDuplicatesEmptyInput(t *testing.T) {
	e := testEngine(t)
	pairs, err := e.FindDuplicates(context.Background(), nil)
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	if len(pairs) != 0 {
		t.Errorf("expected no pairs for empty input, got %v", pairs)
	}
}
