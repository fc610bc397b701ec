package legalform

import "testing"

func testRetriever(t *testing.T) *Retriever {
	t.Helper()
	c, err := LoadCatalog(
		[]byte(`[
			{"legal_form_id":"1","short_name":"LLC","country":"US"},
			{"legal_form_id":"2","short_name":"INC","country":"US"},
			{"legal_form_id":"3","short_name":"GMBH","country":"DE"},
			{"legal_form_id":"4","short_name":"AG","country":"DE"}
		]`),
		nil,
	)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	rules, err := LoadReplacementRules([]byte("search_pattern,replacement\nGESELLSCHAFT,GMBH\n"))
	if err != nil {
		t.Fatalf("LoadReplacementRules: %v", err)
	}
	return NewRetriever(c, rules)
}

func TestRetrieveLegalForm(t *testing.T) {
	r := testRetriever(t)
	if form, ok := r.Retrieve("Siemens AG", "DE"); !ok || form != "AG" {
		t.Errorf("Retrieve(Siemens AG) = %q, %v", form, ok)
	}
}

func TestRetrieveLegalFormMissingCountry(t *testing.T) {
	r := testRetriever(t)
	if _, ok := r.Retrieve("Acme LLC", "FR"); ok {
		t.Error("expected no legal form for unknown country")
	}
}

func TestRetrieveLegalFormEmptyCatalog(t *testing.T) {
	r := NewRetriever(NewCatalog(), nil)
	if _, ok := r.Retrieve("Acme LLC", "US"); ok {
		t.Error("expected no legal form on empty catalog")
	}
}

func TestWithoutLegalForm(t *testing.T) {
	r := testRetriever(t)
	if got := r.WithoutLegalForm("Siemens AG", "DE"); got != "Siemens" {
		t.Errorf("WithoutLegalForm(Siemens AG) = %q, want Siemens", got)
	}
}

func TestWithoutLegalFormNoMatch(t *testing.T) {
	r := testRetriever(t)
	if got := r.WithoutLegalForm("Acme Industries", "DE"); got != "Acme Industries" {
		t.Errorf("WithoutLegalForm(Acme Industries) = %q, want Acme Industries", got)
	}
}

func TestNormalizationNeverThrowsOnCycles(t *testing.T) {
	r := testRetriever(t)
	toks, _ := r.Normalize("AG AG AG AG AG AG")
	if len(toks) == 0 {
		t.Error("expected at least one normalized token")
	}
}
