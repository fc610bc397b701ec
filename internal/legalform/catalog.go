// Package legalform loads the legal-form catalog and replacement rules,
// and implements the cleaner and retriever described in spec §4.2/§4.3:
// stripping known legal-form suffixes from a company name and,
// separately, identifying exactly which legal-form variant a name
// carries.
package legalform

import (
	"encoding/json"
	"sort"
	"strings"
)

// Entry is one recognized legal-form record, as loaded from
// legal_forms.json (spec §6).
type Entry struct {
	LegalFormID string `json:"legal_form_id"`
	ShortName   string `json:"short_name"`
	LongName    string `json:"long_name,omitempty"`
	Country     string `json:"country"`
}

// Catalog is the immutable, process-lifetime set of recognized
// legal-form strings, grouped by country plus a country-agnostic
// appendix (spec §3 LegalFormCatalog).
type Catalog struct {
	byCountry map[string][]string // upper-cased short/long names, per ISO country code
	appendix  []string            // upper-cased extra suffixes, apply to every country
	all       []string            // union, deduped, sorted longest-first
	allSet    map[string]bool
}

// NewCatalog builds an empty catalog; LoadCatalog builds a populated
// one once at process start.
func NewCatalog() *Catalog {
	return &Catalog{
		byCountry: make(map[string][]string),
		allSet:    make(map[string]bool),
	}
}

// LoadCatalog parses legal_forms.json and addition_legal_forms.txt and
// returns a ready-to-use Catalog. Either input may be nil/empty: a
// missing resource reduces catalog coverage but is not fatal (spec §6,
// §7 Catalog-missing).
func LoadCatalog(legalFormsJSON []byte, additionsTxt []byte) (*Catalog, error) {
	c := NewCatalog()

	if len(legalFormsJSON) > 0 {
		var entries []Entry
		if err := json.Unmarshal(legalFormsJSON, &entries); err != nil {
			return nil, err
		}
		for _, e := range entries {
			c.addEntry(e.Country, e.ShortName)
			if e.LongName != "" {
				c.addEntry(e.Country, e.LongName)
			}
		}
	}

	if len(additionsTxt) > 0 {
		for _, line := range strings.Split(string(additionsTxt), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			c.addAppendix(line)
		}
	}

	c.rebuildAll()
	return c, nil
}

func (c *Catalog) addEntry(country, name string) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return
	}
	country = strings.ToUpper(strings.TrimSpace(country))
	for _, existing := range c.byCountry[country] {
		if existing == name {
			return
		}
	}
	c.byCountry[country] = append(c.byCountry[country], name)
}

func (c *Catalog) addAppendix(name string) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return
	}
	for _, existing := range c.appendix {
		if existing == name {
			return
		}
	}
	c.appendix = append(c.appendix, name)
}

func (c *Catalog) rebuildAll() {
	seen := make(map[string]bool)
	var all []string
	for _, names := range c.byCountry {
		for _, n := range names {
			if !seen[n] {
				seen[n] = true
				all = append(all, n)
			}
		}
	}
	for _, n := range c.appendix {
		if !seen[n] {
			seen[n] = true
			all = append(all, n)
		}
	}
	sort.Slice(all, func(i, j int) bool { return len(all[i]) > len(all[j]) })
	c.all = all
	c.allSet = seen
}

// EntriesForCountry returns the upper-cased legal-form strings
// recognized for a country, including the country-agnostic appendix,
// sorted by length descending (longest match preferred first).
func (c *Catalog) EntriesForCountry(country string) []string {
	country = strings.ToUpper(strings.TrimSpace(country))
	out := append([]string{}, c.byCountry[country]...)
	out = append(out, c.appendix...)
	sort.Slice(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

// AllEntries returns every recognized legal-form string across every
// country plus the appendix, deduped and sorted longest-first.
func (c *Catalog) AllEntries() []string {
	return c.all
}

// Contains reports case-insensitive membership of s in the catalog,
// used by Clean/CleanAndRemoveLegalForm which are country-agnostic.
func (c *Catalog) Contains(s string) bool {
	return c.allSet[strings.ToUpper(strings.TrimSpace(s))]
}

// Empty reports whether the catalog carries no entries at all — a
// valid, fully-defined state per spec §7 (Catalog-missing).
func (c *Catalog) Empty() bool {
	return len(c.all) == 0
}
