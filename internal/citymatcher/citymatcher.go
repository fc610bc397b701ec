// Package citymatcher resolves free-text city names to a canonical
// form, the collaborator referenced by spec §1/§6: an out-of-spec
// algorithm living behind an in-spec interface. Exact aliases come from
// cityMappings.txt; unmapped input optionally falls back to a
// Meilisearch-backed fuzzy search, or to an in-process fuzzy scan over
// the known canonical forms when no search backend is configured.
package citymatcher

import (
	"context"
	"strings"

	"github.com/corpresolve/corpmatch/internal/msclient"
	"github.com/corpresolve/corpmatch/internal/textutil"
	"github.com/corpresolve/corpmatch/internal/titles"
	"github.com/corpresolve/corpmatch/internal/wordmatch"
)

// Mapper resolves city aliases to canonical names.
type Mapper struct {
	exact      map[string]string
	canonicals []string

	client      *msclient.ClientWrapper
	searchIndex string
	titles      *titles.Set
}

// NewMapper parses cityMappings.txt: "input_name,canonical" per line;
// lines starting with "#" or equal to the literal header "input_name,"
// are ignored (spec §6).
func NewMapper(mappingsTxt []byte) *Mapper {
	m := &Mapper{exact: make(map[string]string)}
	seenCanon := make(map[string]bool)

	for _, line := range strings.Split(string(mappingsTxt), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "input_name,") {
			continue
		}
		parts := strings.SplitN(line, ",", 2)
		if len(parts) != 2 {
			continue
		}
		input := strings.TrimSpace(parts[0])
		canonical := strings.TrimSpace(parts[1])
		if input == "" || canonical == "" {
			continue
		}

		key := textutil.NormalizeStripped(input)
		m.exact[key] = canonical
		if !seenCanon[canonical] {
			seenCanon[canonical] = true
			m.canonicals = append(m.canonicals, canonical)
		}
	}

	return m
}

// WithSearch attaches a Meilisearch-backed candidate search for input
// that the exact alias table misses.
func (m *Mapper) WithSearch(client *msclient.ClientWrapper, index string) *Mapper {
	m.client = client
	m.searchIndex = index
	return m
}

// WithTitles attaches the generic-prefix / nobility-particle set (spec
// §6 nobility-titles.txt, titles.txt) so a leading "Saint", "Fort", or
// "von" can be tried both attached and stripped when nothing else
// resolves the input.
func (m *Mapper) WithTitles(set *titles.Set) *Mapper {
	m.titles = set
	return m
}

// Canonicalize resolves city to its canonical form. The second return
// value reports whether a confident resolution was found.
func (m *Mapper) Canonicalize(ctx context.Context, city string) (string, bool) {
	if strings.TrimSpace(city) == "" {
		return "", false
	}

	key := textutil.NormalizeStripped(city)
	if canon, ok := m.exact[key]; ok {
		return canon, true
	}
	if canon, ok := m.exact[textutil.NormalizeStripped(canonicalSelf(city))]; ok {
		return canon, true
	}

	if m.client != nil {
		if canon, ok := m.searchCanonical(city); ok {
			return canon, true
		}
	}

	if stripped, ok := m.canonicalizeStripped(city); ok {
		return stripped, true
	}

	return m.fuzzyCanonical(city)
}

// canonicalizeStripped retries exact lookup and search after removing a
// single leading title/particle, so "St Louis" resolves against an
// alias table keyed on "Louis". Titles are only removed, never added.
func (m *Mapper) canonicalizeStripped(city string) (string, bool) {
	if m.titles == nil {
		return "", false
	}
	stripped := m.titles.StripLeading(city)
	if stripped == city || stripped == "" {
		return "", false
	}
	key := textutil.NormalizeStripped(stripped)
	if canon, ok := m.exact[key]; ok {
		return canon, true
	}
	if m.client != nil {
		if canon, ok := m.searchCanonical(stripped); ok {
			return canon, true
		}
	}
	return "", false
}

// canonicalSelf returns city unchanged, so the lookup it feeds in
// Canonicalize repeats the alias lookup. An input spelled as a
// canonical name that is not also listed as an alias resolves only
// through search or the fuzzy scan over canonicals.
func canonicalSelf(city string) string {
	return city
}

func (m *Mapper) searchCanonical(city string) (string, bool) {
	resp, err := m.client.SearchIndex(m.searchIndex, city, "", 1)
	if err != nil || resp == nil || len(resp.Hits) == 0 {
		return "", false
	}
	hit, ok := resp.Hits[0].(map[string]interface{})
	if !ok {
		return "", false
	}
	canon, ok := hit["canonical"].(string)
	if !ok || canon == "" {
		return "", false
	}
	return canon, true
}

func (m *Mapper) fuzzyCanonical(city string) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, canon := range m.canonicals {
		score := wordmatch.CompareByWords(city, canon)
		if score > bestScore {
			bestScore = score
			best = canon
		}
	}
	if bestScore >= 0.85 {
		return best, true
	}
	return "", false
}
