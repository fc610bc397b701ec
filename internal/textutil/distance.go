package textutil

import (
	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"
)

// JaroWinkler returns the Jaro-Winkler similarity of a and b in [0, 1],
// using the same boost threshold/prefix-length the teacher uses for
// admin-unit similarity.
func JaroWinkler(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	return smetrics.JaroWinkler(a, b, 0.7, 4)
}

// LevenshteinSimilarity returns 1 - edit_distance/max_length, in [0, 1].
func LevenshteinSimilarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(dist)/float64(maxLen)
}

// MinFloat and MaxFloat are tiny helpers kept local to avoid pulling in
// a math helper package for two-argument min/max of float64s.
func MinFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func MaxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
