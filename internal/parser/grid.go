package parser

import "strings"

// Grid is a rectangular view over one worksheet: rows of raw cell strings.
// Rows may be ragged; Cell pads reads so "no value" is always the empty
// string and an unresolved column index (-1) never faults.
type Grid [][]string

// Cell returns the trimmed value at (row, col), or "" when either index is
// out of range or negative.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) || col < 0 {
		return ""
	}
	r := g[row]
	if col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// Row returns the raw row slice, or nil when out of range.
func (g Grid) Row(row int) []string {
	if row < 0 || row >= len(g) {
		return nil
	}
	return g[row]
}

// IsEmptyRow reports whether every cell of the row is blank.
func (g Grid) IsEmptyRow(row int) bool {
	for _, cell := range g.Row(row) {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
