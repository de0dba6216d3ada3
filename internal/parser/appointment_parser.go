package parser

import (
	"sort"
	"strings"
	"time"

	"github.com/yongin-adm/roster-adp-api/internal/models"
)

var appointmentHeaderKeywords = []string{"성명", "재직구분", "휴직구분"}

// AppointmentParser extracts the currently-on-leave faculty from the
// appointment-history export. A person can appear on many rows (one per
// spell); only the spell containing today survives, with prior spells folded
// into the remarks.
type AppointmentParser struct {
	now func() time.Time
}

func NewAppointmentParser(now func() time.Time) *AppointmentParser {
	if now == nil {
		now = time.Now
	}
	return &AppointmentParser{now: now}
}

func (p *AppointmentParser) Parse(data []byte) (*models.AppointmentParseResult, error) {
	grid, err := DecodeWorkbook(data)
	if err != nil {
		return nil, err
	}
	return p.ParseGrid(grid), nil
}

func (p *AppointmentParser) ParseGrid(grid Grid) *models.AppointmentParseResult {
	scan := LocateHeader(grid, appointmentHeaderKeywords, 2, assistantHeaderFallback)
	cols := ResolveColumns(grid.Row(scan.Row), map[string][]string{
		"college":    {"대학"},
		"dept":       {"소속"},
		"name":       {"성명", "이름"},
		"status":     {"재직구분"},
		"leaveType":  {"휴직구분"},
		"leaveStart": {"휴직시작일"},
		"leaveEnd":   {"휴직종료일"},
	})

	result := &models.AppointmentParseResult{
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
		status := grid.Cell(i, cols["status"])
		if name == "" || !strings.Contains(status, "휴직") {
			result.Warnings.SkippedRows++
			continue
		}
		if strings.Contains(status, "명예") {
			result.Warnings.SkippedRows++
			continue
		}
		start, okS := NormalizeDate(grid.Cell(i, cols["leaveStart"]))
		end, okE := NormalizeDate(grid.Cell(i, cols["leaveEnd"]))
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
			Kind:    grid.Cell(i, cols["leaveType"]),
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
		history := SummarizePrior(PriorPeriods(records, current))
		result.Leave = append(result.Leave, models.LeaveEntry{
			Dept:    dept,
			Name:    current.Name,
			Period:  current.Period(),
			Remarks: ComposeRemarks(current.Kind, history),
			Source:  models.LeaveSourceAppointment,
		})
	}
	return result
}
