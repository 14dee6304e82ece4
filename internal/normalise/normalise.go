// Package normalise prepares text for substring matching.
//
// Stored field values and user queries pass through the same pipeline
// before comparison: canonical decomposition (NFD), lowercasing, and
// whitespace trimming. Queries against Armenian product names must match
// regardless of letter case or stray whitespace in the workbook cells.
package normalise

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normaliser applies the matching normalisation pipeline.
//
// StripMarks additionally removes combining diacritical marks after
// decomposition, making matching fully diacritic-insensitive. The default
// keeps marks, which matches the historical matching behaviour; both are
// pinned by tests.
type Normaliser struct {
	StripMarks bool
}

// New creates a Normaliser that keeps combining marks.
func New() *Normaliser {
	return &Normaliser{}
}

// Apply normalises text for comparison. Empty input yields an empty
// string; Apply never fails.
func (n *Normaliser) Apply(text string) string {
	if text == "" {
		return ""
	}

	var decomposed string
	if n.StripMarks {
		t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
		out, _, err := transform.String(t, text)
		if err != nil {
			// Malformed input passes through undecomposed rather than failing.
			out = text
		}
		decomposed = out
	} else {
		decomposed = norm.NFD.String(text)
	}

	return strings.TrimSpace(strings.ToLower(decomposed))
}

// Contains reports whether needle appears contiguously within haystack
// after both are normalised. An empty needle never matches.
func (n *Normaliser) Contains(haystack, needle string) bool {
	q := n.Apply(needle)
	if q == "" {
		return false
	}
	return strings.Contains(n.Apply(haystack), q)
}
