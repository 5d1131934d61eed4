package services

import "strings"

// DefaultNeighborhoods is the ordered matcher list for the current dispatch
// radius. More specific multi-word names come before the generic substrings
// they contain, so "Lekki Phase 1" is never miscategorized as plain "Lekki".
func DefaultNeighborhoods() []string {
	return []string{
		"Lekki Phase 1",
		"Lekki Phase 2",
		"Abraham Adesanya",
		"Chevron",
		"Ikota",
		"Sangotedo",
		"Ajah",
		"Lekki",
	}
}

// NeighborhoodExtractor derives a coarse, stable cluster key from a free-text
// delivery address. The matcher list is ordered by descending specificity and
// is scanned in order; the first match wins. When no known neighborhood
// matches, the first comma-delimited address segment serves as an ad-hoc key.
//
// Extraction is pure: the same address always yields the same key.
type NeighborhoodExtractor struct {
	neighborhoods []string
}

// NewNeighborhoodExtractor creates a NeighborhoodExtractor over an ordered
// matcher list. An empty list falls back to DefaultNeighborhoods.
func NewNeighborhoodExtractor(neighborhoods []string) NeighborhoodExtractor {
	if len(neighborhoods) == 0 {
		neighborhoods = DefaultNeighborhoods()
	}

	matchers := make([]string, len(neighborhoods))
	copy(matchers, neighborhoods)
	return NeighborhoodExtractor{neighborhoods: matchers}
}

// Extract returns the neighborhood key for address, or "" only when the
// address is blank.
func (e NeighborhoodExtractor) Extract(address string) string {
	address = strings.TrimSpace(address)
	if address == "" {
		return ""
	}

	lowered := strings.ToLower(address)
	for _, neighborhood := range e.neighborhoods {
		if strings.Contains(lowered, strings.ToLower(neighborhood)) {
			return neighborhood
		}
	}

	segment, _, _ := strings.Cut(address, ",")
	return strings.TrimSpace(segment)
}

// IsKnown reports whether neighborhood is one of the configured matcher
// names. Ad-hoc keys extracted from unrecognized addresses are not known;
// they mark orders outside the dispatch radius.
func (e NeighborhoodExtractor) IsKnown(neighborhood string) bool {
	for _, known := range e.neighborhoods {
		if strings.EqualFold(known, neighborhood) {
			return true
		}
	}
	return false
}
