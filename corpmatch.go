// Package corpmatch is the public facade over the corporate-name
// duplicate-detection core (spec §6 External Interfaces): a single
// load-once entry point plus the six language-neutral operations the
// spec names, re-exported as thin wrappers over the internal packages
// that do the real work. Application code (app/services) wraps this
// facade the same way the teacher's app/services wraps its
// internal/parser.
package corpmatch

import (
	"context"

	"github.com/corpresolve/corpmatch/internal/citymatcher"
	"github.com/corpresolve/corpmatch/internal/corpmatch"
	"github.com/corpresolve/corpmatch/internal/dedupe"
	"github.com/corpresolve/corpmatch/internal/legalform"
	"github.com/corpresolve/corpmatch/internal/msclient"
	"github.com/corpresolve/corpmatch/internal/titles"
)

// MatchResult is one surviving duplicate pair from FindDuplicates (spec
// §3 MatchResult), scored strictly above the 0.85 emission threshold.
type MatchResult struct {
	Name1 string
	Name2 string
	Score float64
}

// Core bundles every loaded, process-lifetime component the public API
// needs: the legal-form catalog and retriever, the pairwise matcher,
// the duplicate-finder engine, and (optionally) the city-matcher
// collaborator. Build one with Load at process start and reuse it for
// every call — construction is the only synchronous I/O step (spec
// §5).
type Core struct {
	catalog    *legalform.Catalog
	retriever  *legalform.Retriever
	matcher    *corpmatch.Matcher
	engine     *dedupe.Engine
	cityMapper *citymatcher.Mapper
}

// Resources bundles the raw file contents Load needs. Any field may be
// nil/empty — a missing resource reduces catalog coverage rather than
// failing the load (spec §7 Catalog-missing), except where Load itself
// documents a required input.
type Resources struct {
	LegalFormsJSON       []byte
	LegalFormAdditions   []byte
	ReplacementRulesCSV  []byte
	CityMappings         []byte
	NobilityTitles       []byte
	PlaceTitles          []byte
	MeiliClient          *msclient.ClientWrapper
	MeiliCityIndex       string
}

// Load builds a Core from the catalog/rule/alias resources, the one
// explicit synchronous initialization step the rest of the core
// depends on (spec §5: catalog loading is sequenced before any scoring
// call, never a side effect of first use). A malformed legal_forms.json
// or legal_form_replacements.csv makes Load return an error; the
// remaining resources are best-effort.
func Load(r Resources) (*Core, error) {
	catalog, err := legalform.LoadCatalog(r.LegalFormsJSON, r.LegalFormAdditions)
	if err != nil {
		return nil, err
	}

	rules, err := legalform.LoadReplacementRules(r.ReplacementRulesCSV)
	if err != nil {
		return nil, err
	}

	retriever := legalform.NewRetriever(catalog, rules)
	matcher := corpmatch.NewMatcher(retriever)
	engine := dedupe.NewEngine(matcher)

	var cityMapper *citymatcher.Mapper
	if len(r.CityMappings) > 0 {
		cityMapper = citymatcher.NewMapper(r.CityMappings)
		if len(r.NobilityTitles) > 0 || len(r.PlaceTitles) > 0 {
			var sets []*titles.Set
			if len(r.NobilityTitles) > 0 {
				sets = append(sets, titles.Load(r.NobilityTitles))
			}
			if len(r.PlaceTitles) > 0 {
				sets = append(sets, titles.Load(r.PlaceTitles))
			}
			cityMapper = cityMapper.WithTitles(titles.Merge(sets...))
		}
		if r.MeiliClient != nil {
			cityMapper = cityMapper.WithSearch(r.MeiliClient, r.MeiliCityIndex)
		}
	}

	return &Core{
		catalog:    catalog,
		retriever:  retriever,
		matcher:    matcher,
		engine:     engine,
		cityMapper: cityMapper,
	}, nil
}

// FindDuplicates runs the blocked, parallel duplicate-finder over names
// and returns every unordered pair scored above 0.85 (spec §4.6, §6
// find_duplicates). Order is not defined.
func (c *Core) FindDuplicates(ctx context.Context, names []string) ([]MatchResult, error) {
	pairs, err := c.engine.FindDuplicates(ctx, names)
	if err != nil {
		return nil, err
	}
	out := make([]MatchResult, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, MatchResult{Name1: p.Name1, Name2: p.Name2, Score: p.Score})
	}
	return out, nil
}

// MatchCorporateNames scores one pair of company names (spec §4.5, §6
// match_corporate_names). country1/country2 default to "DE" when
// empty. The second return value is false when the matcher has "no
// opinion".
func (c *Core) MatchCorporateNames(name1, name2, country1, country2 string) (float64, bool) {
	return c.matcher.Match(name1, name2, country1, country2)
}

// RetrieveLegalForm returns the canonical legal-form string recognized
// in name for countryCode, if any (spec §4.3, §6 retrieve_legal_form).
func (c *Core) RetrieveLegalForm(name, countryCode string) (string, bool) {
	return c.retriever.Retrieve(name, countryCode)
}

// CompanyNameWithoutLegalForm strips the recognized legal-form suffix
// from name for countryCode, restoring surrounding tokens where
// possible (spec §4.3 Remove, §6 company_name_without_legal_form).
func (c *Core) CompanyNameWithoutLegalForm(name, countryCode string) string {
	return c.retriever.WithoutLegalForm(name, countryCode)
}

// CleanCompanyName applies the static cleaner only: trim, strip a
// trailing parenthesized tail, strip punctuation (spec §4.2, §6
// clean_company_name).
func (c *Core) CleanCompanyName(name string) string {
	return legalform.Clean(name)
}

// CleanCompanyNameAndRemoveLegalForm cleans name and iteratively strips
// any catalog-recognized legal-form suffix, independent of country
// (spec §4.2, §6 clean_company_name_and_remove_legal_form).
func (c *Core) CleanCompanyNameAndRemoveLegalForm(name string) string {
	return c.catalog.CleanAndRemoveLegalForm(name)
}

// CanonicalCity resolves a free-text place name to its canonical form
// via the city-matcher collaborator (spec §1), or ("", false) if no
// city mapper was configured or nothing resolved confidently.
func (c *Core) CanonicalCity(ctx context.Context, city string) (string, bool) {
	if c.cityMapper == nil {
		return "", false
	}
	return c.cityMapper.Canonicalize(ctx, city)
}
