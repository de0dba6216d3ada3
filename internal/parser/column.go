package parser

import "strings"

// ColumnNotFound is the sentinel index for a column whose header could not
// be resolved. Grid.Cell treats it as "always empty", so extraction keeps
// working with whatever columns the export did carry.
const ColumnNotFound = -1

// ResolveColumn finds the index of the header cell matching any of the
// candidate labels, in candidate priority order: the first candidate that
// matches anywhere wins, even if a later candidate matches an earlier
// column. Matching is substring-based with whitespace ignored, which
// tolerates the padded labels ("성  명") the exports are fond of.
func ResolveColumn(headerRow []string, candidates ...string) int {
	for _, cand := range candidates {
		want := stripSpace(cand)
		for idx, cell := range headerRow {
			if strings.Contains(stripSpace(cell), want) {
				return idx
			}
		}
	}
	return ColumnNotFound
}

// ResolveColumns maps each label set to a column index in one pass. Keys of
// the result mirror the keys of wanted; missing columns resolve to
// ColumnNotFound.
func ResolveColumns(headerRow []string, wanted map[string][]string) map[string]int {
	out := make(map[string]int, len(wanted))
	for key, candidates := range wanted {
		out[key] = ResolveColumn(headerRow, candidates...)
	}
	return out
}
