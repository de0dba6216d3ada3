package parser

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yongin-adm/roster-adp-api/internal/models"
)

var dispatchHeaderKeywords = []string{"성명", "학과", "파견시작일"}

// DispatchParser extracts sabbatical and leave faculty from the dispatch
// export: grouped per person, current spell selected by today's date, prior
// spells summarized year-only behind the dispatching institution.
type DispatchParser struct {
	now func() time.Time
}

func NewDispatchParser(now func() time.Time) *DispatchParser {
	if now == nil {
		now = time.Now
	}
	return &DispatchParser{now: now}
}

func (p *DispatchParser) Parse(data []byte) (*models.DispatchParseResult, error) {
	grid, err := DecodeWorkbook(data)
	if err != nil {
		return nil, err
	}
	return p.ParseGrid(grid), nil
}

func (p *DispatchParser) ParseGrid(grid Grid) *models.DispatchParseResult {
	scan := LocateHeader(grid, dispatchHeaderKeywords, 2, 0)
	cols := ResolveColumns(grid.Row(scan.Row), map[string][]string{
		"college": {"대학"},
		"dept":    {"학과", "소속"},
		"name":    {"성명", "이름"},
		"status":  {"재직구분", "구분"},
		"start":   {"파견시작일", "시작일"},
		"end":     {"파견종료일", "종료일"},
		"org":     {"파견교/파견기관", "파견교", "파견기관"},
	})

	result := &models.DispatchParseResult{
		Research: models.ResearchHalves{First: []models.LeaveEntry{}, Second: []models.LeaveEntry{}},
		Leave:    []models.LeaveEntry{},
		Warnings: models.NewParseWarnings(scan.Row, scan.FellBack),
	}

	grouped := map[string][]RangedRecord{}
	var names []string
	for i := scan.Row + 1; i < len(grid); i++ {
		if grid.IsEmptyRow(i) {
			continue
		}
		name := grid.Cell(i, cols["name"])
		if name == "" {
			result.Warnings.SkippedRows++
			continue
		}
		start, okS := NormalizeDate(grid.Cell(i, cols["start"]))
		end, okE := NormalizeDate(grid.Cell(i, cols["end"]))
		if !okS || !okE {
			result.Warnings.UnparsableDates++
		}
		if _, ok := grouped[name]; !ok {
			names = append(names, name)
		}
		grouped[name] = append(grouped[name], RangedRecord{
			Name:    name,
			Dept:    grid.Cell(i, cols["dept"]),
			College: grid.Cell(i, cols["college"]),
			Kind:    grid.Cell(i, cols["org"]),
			Status:  grid.Cell(i, cols["status"]),
			Start:   start,
			End:     end,
		})
	}
	sort.Strings(names)

	today := p.now()
	for _, name := range names {
		records := grouped[name]
		current := SelectCurrent(records, today)
		if current == nil {
			continue
		}
		dept := current.Dept
		if dept == "" {
			dept = current.College
		}
		if dept == "" {
			dept = models.UnassignedDept
		}
		entry := models.LeaveEntry{
			Dept:    dept,
			Name:    current.Name,
			Period:  current.Period(),
			Remarks: dispatchRemarks(current, PriorPeriods(records, current)),
			Source:  models.LeaveSourceResearch,
		}
		if strings.Contains(current.Status, "휴직") {
			result.Leave = append(result.Leave, entry)
			continue
		}
		if month := startMonth(current.Start); month >= 9 || (month >= 1 && month <= 2) {
			result.Research.Second = append(result.Research.Second, entry)
		} else {
			result.Research.First = append(result.Research.First, entry)
		}
	}
	return result
}

// dispatchRemarks renders "기관명 (2019년, 2021년)": the institution the
// person is dispatched to, plus the years of prior spells.
func dispatchRemarks(current *RangedRecord, prior []RangedRecord) string {
	years := make([]string, 0, len(prior))
	for _, r := range prior {
		if t, ok := ParseDate(r.Start); ok {
			years = append(years, fmt.Sprintf("%d년", t.Year()))
		}
	}
	if len(years) == 0 {
		return current.Kind
	}
	summary := "(" + strings.Join(years, ", ") + ")"
	if current.Kind == "" {
		return summary
	}
	return current.Kind + " " + summary
}

func startMonth(s string) int {
	t, ok := ParseDate(s)
	if !ok {
		return 0
	}
	return int(t.Month())
}
