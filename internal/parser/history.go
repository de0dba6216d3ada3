package parser

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// RangedRecord is one dated roster row for a person who may appear several
// times (one row per leave or appointment spell).
type RangedRecord struct {
	Name    string
	Dept    string
	College string
	Kind    string
	Status  string
	Start   string
	End     string
}

// Period renders the record's date range, tolerating an open end.
func (r RangedRecord) Period() string {
	switch {
	case r.Start != "" && r.End != "":
		return FormatPeriod(r.Start, r.End)
	case r.Start != "":
		return r.Start + " ~"
	case r.End != "":
		return "~ " + r.End
	default:
		return ""
	}
}

// SelectCurrent picks the record whose span contains today, preferring the
// most recent start when several qualify. Records with unparsable dates
// never qualify. Returns nil when the person has no active spell.
func SelectCurrent(records []RangedRecord, today time.Time) *RangedRecord {
	today = today.Truncate(24 * time.Hour)
	sorted := make([]RangedRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, _ := ParseDate(sorted[i].Start)
		b, _ := ParseDate(sorted[j].Start)
		return a.After(b)
	})
	for i := range sorted {
		start, okS := ParseDate(sorted[i].Start)
		end, okE := ParseDate(sorted[i].End)
		if !okS || !okE {
			continue
		}
		if !start.After(today) && !end.Before(today) {
			return &sorted[i]
		}
	}
	return nil
}

// PriorPeriods returns the fully-dated records other than current, oldest
// first, for the remarks history.
func PriorPeriods(records []RangedRecord, current *RangedRecord) []RangedRecord {
	prior := make([]RangedRecord, 0, len(records))
	for _, r := range records {
		if current != nil && r == *current {
			continue
		}
		if r.Start == "" || r.End == "" {
			continue
		}
		prior = append(prior, r)
	}
	sort.SliceStable(prior, func(i, j int) bool {
		a, _ := ParseDate(prior[i].Start)
		b, _ := ParseDate(prior[j].Start)
		return a.Before(b)
	})
	return prior
}

// SummarizePrior renders prior spells as "1차: start ~ end 2차: ...".
func SummarizePrior(prior []RangedRecord) string {
	parts := make([]string, 0, len(prior))
	for i, r := range prior {
		parts = append(parts, fmt.Sprintf("%d차: %s", i+1, FormatPeriod(r.Start, r.End)))
	}
	return strings.Join(parts, " ")
}

// ComposeRemarks combines the current spell's kind with the prior history:
// "육아휴직 (1차: ...)" when both exist, either alone otherwise.
func ComposeRemarks(kind, history string) string {
	switch {
	case kind != "" && history != "":
		return fmt.Sprintf("%s (%s)", kind, history)
	case kind != "":
		return kind
	default:
		return history
	}
}
