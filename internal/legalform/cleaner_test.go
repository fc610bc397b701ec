package legalform

import "testing"

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadCatalog(
		[]byte(`[
			{"legal_form_id":"1","short_name":"LLC","country":"US"},
			{"legal_form_id":"2","short_name":"INC","country":"US"},
			{"legal_form_id":"3","short_name":"GMBH","country":"DE"},
			{"legal_form_id":"4","short_name":"AG","country":"DE"},
			{"legal_form_id":"5","short_name":"GROUP","long_name":"THE GROUP","country":"US"}
		]`),
		[]byte("CO\nCORP\n"),
	)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	return c
}

func TestStripParenthesizedTail(t *testing.T) {
	cases := map[string]string{
		"Acme Corp (formerly Acme Inc)": "Acme Corp",
		"Acme Corp":                     "Acme Corp",
		"Acme (US) (EU)":                "Acme (US)",
	}
	for in, want := range cases {
		if got := StripParenthesizedTail(in); got != want {
			t.Errorf("StripParenthesizedTail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStripPunctuation(t *testing.T) {
	if got := StripPunctuation("Acme, Inc.; a Co: Ltd"); got != "Acme Inc. a Co Ltd" {
		t.Errorf("StripPunctuation = %q", got)
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	in := "  Acme Corp (us) , "
	once := Clean(in)
	twice := Clean(once)
	if once != twice {
		t.Errorf("Clean not idempotent: %q vs %q", once, twice)
	}
}

func TestCleanAndRemoveLegalForm(t *testing.T) {
	c := testCatalog(t)
	cases := map[string]string{
		"Acme LLC":         "Acme",
		"Acme Inc":         "Acme",
		"Siemens AG":       "Siemens",
		"Acme Group":       "Acme",
		"Acme Co Corp":     "Acme",
		"LLC":              "",
		"Acme Industries":  "Acme Industries",
	}
	for in, want := range cases {
		if got := c.CleanAndRemoveLegalForm(in); got != want {
			t.Errorf("CleanAndRemoveLegalForm(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanAndRemoveLegalFormEmptyCatalog(t *testing.T) {
	c := NewCatalog()
	if got := c.CleanAndRemoveLegalForm("Acme LLC"); got != "Acme LLC" {
		t.Errorf("expected passthrough on empty catalog, got %q", got)
	}
}
