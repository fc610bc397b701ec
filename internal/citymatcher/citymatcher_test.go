package citymatcher

import (
	"context"
	"testing"
)

func testMapper() *Mapper {
	return NewMapper([]byte(`# city aliases
input_name,canonical
NYC,New York City
New York,New York City
Munchen,Munich
`))
}

func TestCanonicalizeExactAlias(t *testing.T) {
	m := testMapper()
	got, ok := m.Canonicalize(context.Background(), "NYC")
	if !ok || got != "New York City" {
		t.Errorf("Canonicalize(NYC) = %q, %v", got, ok)
	}
}

func TestCanonicalizeCaseInsensitive(t *testing.T) {
	m := testMapper()
	got, ok := m.Canonicalize(context.Background(), "munchen")
	if !ok || got != "Munich" {
		t.Errorf("Canonicalize(munchen) = %q, %v", got, ok)
	}
}

func TestCanonicalizeEmpty(t *testing.T) {
	m := testMapper()
	if _, ok := m.Canonicalize(context.Background(), "   "); ok {
		t.Error("expected no resolution for blank input")
	}
}

func TestCanonicalizeUnknownFallsBackToFuzzy(t *testing.T) {
	m := testMapper()
	_, ok := m.Canonicalize(context.Background(), "Completely Unknown Place")
	if ok {
		t.Error("expected no confident resolution for an unrelated name")
	}
}
