// Package titles loads the nobility-particle and generic place-name
// prefix lists (nobility-titles.txt, titles.txt — spec §6) into
// case-insensitive membership sets, used by the city matcher to strip
// a leading particle before comparing two place names.
package titles

import "strings"

// Set is a case-insensitive membership set of title/particle strings,
// longest-first so a multi-word particle like "von der" is tried
// before its shorter prefix "von".
type Set struct {
	entries []string // upper-cased, longest first
}

// Load parses one title-list file: one entry per line, blank lines and
// lines starting with "#" ignored, case-insensitive membership (spec
// §6).
func Load(raw []byte) *Set {
	s := &Set{}
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s.entries = append(s.entries, strings.ToUpper(line))
	}
	// Stable longest-first so "von der" matches before "von".
	for i := 1; i < len(s.entries); i++ {
		for j := i; j > 0 && len(s.entries[j]) > len(s.entries[j-1]); j-- {
			s.entries[j], s.entries[j-1] = s.entries[j-1], s.entries[j]
		}
	}
	return s
}

// Merge combines entries from other sets into a single longest-first
// set, used when both nobility-titles.txt and titles.txt should be
// tried against the same input.
func Merge(sets ...*Set) *Set {
	merged := &Set{}
	for _, s := range sets {
		merged.entries = append(merged.entries, s.entries...)
	}
	for i := 1; i < len(merged.entries); i++ {
		for j := i; j > 0 && len(merged.entries[j]) > len(merged.entries[j-1]); j-- {
			merged.entries[j], merged.entries[j-1] = merged.entries[j-1], merged.entries[j]
		}
	}
	return merged
}

// Contains reports case-insensitive membership of s in the set.
func (s *Set) Contains(word string) bool {
	if s == nil {
		return false
	}
	upper := strings.ToUpper(word)
	for _, e := range s.entries {
		if e == upper {
			return true
		}
	}
	return false
}

// StripLeading removes a single leading particle/title from name, if
// one of the set's entries appears as the first whitespace-delimited
// token(s). Returns name with surrounding whitespace trimmed if no
// entry matches.
func (s *Set) StripLeading(name string) string {
	if s == nil {
		return name
	}
	trimmed := strings.TrimSpace(name)
	upper := strings.ToUpper(trimmed)
	for _, e := range s.entries {
		prefix := e + " "
		if strings.HasPrefix(upper, prefix) {
			return strings.TrimSpace(trimmed[len(prefix):])
		}
	}
	return trimmed
}
