package parser

import "strings"

// HeaderScan reports where a sheet's header row was found. FellBack is set
// when no row reached the match threshold and the caller-supplied default row
// was used instead; consumers surface that in parse warnings rather than
// failing the upload.
type HeaderScan struct {
	Row      int
	Matched  int
	FellBack bool
}

// headerScanDepth bounds the search. Roster exports put the header within
// the first few rows; scanning further only finds data rows that happen to
// contain keyword-like values.
const headerScanDepth = 10

// LocateHeader scans the top of the grid for the first row containing at
// least threshold of the given keywords (substring match, whitespace
// ignored). When none qualifies it falls back to fallbackRow.
func LocateHeader(g Grid, keywords []string, threshold, fallbackRow int) HeaderScan {
	depth := headerScanDepth
	if len(g) < depth {
		depth = len(g)
	}
	best := HeaderScan{Row: fallbackRow, FellBack: true}
	for row := 0; row < depth; row++ {
		matched := countKeywords(g.Row(row), keywords)
		if matched >= threshold {
			return HeaderScan{Row: row, Matched: matched}
		}
		if matched > best.Matched {
			best.Matched = matched
		}
	}
	return best
}

func countKeywords(cells, keywords []string) int {
	stripped := make([]string, 0, len(cells))
	for _, c := range cells {
		if s := stripSpace(c); s != "" {
			stripped = append(stripped, s)
		}
	}
	matched := 0
	for _, kw := range keywords {
		kw = stripSpace(kw)
		for _, cell := range stripped {
			if strings.Contains(cell, kw) {
				matched++
				break
			}
		}
	}
	return matched
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == ' ' {
			return -1
		}
		return r
	}, s)
}
