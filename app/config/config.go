// Package config loads the YAML-configured scoring thresholds and
// weights for the corporate-name matcher, the way the teacher loads
// its parser config: a package-level struct populated once from a
// YAML file at startup; no environment overrides are applied.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ScoringThresholds holds the score cutoffs the core algorithms treat
// as fixed constants (spec §4.5 steps 3/4/9/12, §4.6 step 4). The
// scorer and duplicate finder use their own literal constants; of these
// fields only ReviewBandLow is read at runtime (by DedupeService), so
// setting the others in YAML changes no score.
type ScoringThresholds struct {
	// DuplicateEmission is the minimum score for find_duplicates to
	// emit a pair (spec §4.6 step 4): 0.85.
	DuplicateEmission float64 `yaml:"duplicate_emission"`
	// StretchedJWAccept is the minimum stretched Jaro-Winkler score
	// accepted without further comparison (spec §4.5 step 3): 0.95.
	StretchedJWAccept float64 `yaml:"stretched_jw_accept"`
	// LevenshteinAccept is the minimum raw/cleaned Levenshtein
	// similarity accepted as a high-confidence match (spec §4.5 steps
	// 4/12): 0.95 (clamped) / 0.85 (fallback branch).
	LevenshteinAccept      float64 `yaml:"levenshtein_accept"`
	LevenshteinAcceptClamp float64 `yaml:"levenshtein_accept_clamp"`
	// OrderedWordAccept is the minimum ordered word-with-abbreviation
	// score accepted (spec §4.5 step 9): 0.85.
	OrderedWordAccept float64 `yaml:"ordered_word_accept"`
	// ReviewBandLow is the lower bound of the borderline band queued
	// for human review rather than dropped outright.
	ReviewBandLow float64 `yaml:"review_band_low"`
}

// ScoringWeights records the multipliers the scorer uses (spec §4.5,
// glossary). The scorer uses its own literal constants and does not
// read these fields.
type ScoringWeights struct {
	// JWStretchFactor is the 2.5 in `1 - 2.5*(1-s)` (spec §4.5 step 3,
	// §9 Open Question a).
	JWStretchFactor float64 `yaml:"jw_stretch_factor"`
	// LegalFormMismatchPenalty is the 0.9 factor applied when both
	// names carry legal forms that differ (spec §4.5 step 6, glossary
	// "Mismatch penalty").
	LegalFormMismatchPenalty float64 `yaml:"legal_form_mismatch_penalty"`
	// InitialLetterScore is the fixed score returned by initial-letter
	// matching (spec §4.5.2): 0.5.
	InitialLetterScore float64 `yaml:"initial_letter_score"`
}

// Config is the full scoring configuration loaded from YAML.
type Config struct {
	Thresholds ScoringThresholds `yaml:"thresholds"`
	Weights    ScoringWeights    `yaml:"weights"`
}

// Defaults returns the spec-faithful configuration, used when no YAML
// file is present (spec §7 Catalog-missing is not applicable here, but
// the same "degrade, don't fail" posture applies to this ambient
// config layer).
func Defaults() Config {
	return Config{
		Thresholds: ScoringThresholds{
			DuplicateEmission:      0.85,
			StretchedJWAccept:      0.95,
			LevenshteinAccept:      0.95,
			LevenshteinAcceptClamp: 0.95,
			OrderedWordAccept:      0.85,
			ReviewBandLow:          0.70,
		},
		Weights: ScoringWeights{
			JWStretchFactor:          2.5,
			LegalFormMismatchPenalty: 0.9,
			InitialLetterScore:       0.5,
		},
	}
}

// C is the process-wide loaded configuration, populated by Load before
// any request is served (mirrors the teacher's package-level `C`).
var C = Defaults()

// Load reads a YAML file into C, falling back to Defaults() fields the
// file doesn't set. A missing file is not an error: C is reset to
// Defaults() and nil is returned.
func Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			C = Defaults()
			return nil
		}
		return err
	}
	cfg := Defaults()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return err
	}
	C = cfg
	return nil
}
