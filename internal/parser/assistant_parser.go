package parser

import (
	"sort"
	"strings"

	"github.com/yongin-adm/roster-adp-api/internal/models"
)

// Display order of the staffing table. Categories absent from the upload are
// omitted; categories not listed here go to the end.
var collegeOrder = []string{
	"무도대학",
	"체육과학대학",
	"문화예술대학",
	"인문사회융합대학",
	"AI융합대학",
	"보건복지과학대학",
	"AI바이오융합대학",
	"용오름대학",
	"교육대학원",
}

var adminOrder = []string{
	"부총장실",
	"기획처",
	"교무처",
	"사무처",
	"국제교류교육원",
	"중앙도서관",
	"생활관",
	"미래인재교육원",
	"체육지원실",
	"교육혁신처",
	"학생생활상담센터",
}

var assistantHeaderKeywords = []string{"성명", "직렬", "발령구분", "재직구분"}

// assistantHeaderFallback: the appointment export carries a three-row title
// block above the header.
const assistantHeaderFallback = 3

// AssistantParser extracts assistant (조교) staffing from the appointment
// export, in two shapes: a flat de-duplicated person list and the
// hierarchical college/administrative staffing table.
type AssistantParser struct{}

func NewAssistantParser() *AssistantParser {
	return &AssistantParser{}
}

// Parse decodes the workbook and runs both extraction variants over the same
// grid, so one upload always yields a consistent pair.
func (p *AssistantParser) Parse(data []byte) (*models.AssistantSnapshot, error) {
	grid, err := DecodeWorkbook(data)
	if err != nil {
		return nil, err
	}
	scan := LocateHeader(grid, assistantHeaderKeywords, 2, assistantHeaderFallback)
	cols := p.resolveColumns(grid.Row(scan.Row))
	warnings := models.NewParseWarnings(scan.Row, scan.FellBack)

	snapshot := &models.AssistantSnapshot{
		Flat:     p.parseFlat(grid, scan.Row, cols, &warnings),
		Table:    p.parseTable(grid, scan.Row, cols, &warnings),
		Warnings: warnings,
	}
	return snapshot, nil
}

func (p *AssistantParser) resolveColumns(header []string) map[string]int {
	return ResolveColumns(header, map[string][]string{
		"college":  {"대학"},
		"dept":     {"소속"},
		"name":     {"성명", "이름"},
		"serial":   {"직렬"},
		"position": {"직급"},
		"status":   {"재직구분"},
		"apptType": {"발령구분"},
		"start":    {"발령시작일"},
		"end":      {"발령종료일"},
	})
}

type assistantRow struct {
	college  string
	dept     string
	name     string
	position string
	status   string
	apptType string
	start    string
	end      string
}

func (p *AssistantParser) rows(grid Grid, headerRow int, cols map[string]int, w *models.ParseWarnings) []assistantRow {
	date := func(row int, key string) string {
		v, ok := NormalizeDateDash(grid.Cell(row, cols[key]))
		if !ok {
			w.UnparsableDates++
		}
		return v
	}
	out := make([]assistantRow, 0, len(grid))
	for i := headerRow + 1; i < len(grid); i++ {
		if grid.IsEmptyRow(i) {
			continue
		}
		if grid.Cell(i, cols["serial"]) != "조교" {
			continue
		}
		r := assistantRow{
			college:  grid.Cell(i, cols["college"]),
			dept:     grid.Cell(i, cols["dept"]),
			name:     grid.Cell(i, cols["name"]),
			position: grid.Cell(i, cols["position"]),
			status:   grid.Cell(i, cols["status"]),
			apptType: grid.Cell(i, cols["apptType"]),
			start:    date(i, "start"),
			end:      date(i, "end"),
		}
		if r.name == "" {
			w.SkippedRows++
			continue
		}
		out = append(out, r)
	}
	return out
}

// parseFlat builds the de-duplicated person list. Duplicate name+college
// pairs keep the record with the greatest start date; the comparison is
// lexicographic, which is why start dates are normalized to dashed ISO form.
func (p *AssistantParser) parseFlat(grid Grid, headerRow int, cols map[string]int, w *models.ParseWarnings) models.AssistantFlatResult {
	type keyed struct {
		order int
		rec   models.Assistant
	}
	byKey := map[string]*keyed{}
	order := 0
	for _, r := range p.rows(grid, headerRow, cols, w) {
		rec := models.Assistant{
			Name:               r.name,
			College:            r.college,
			Department:         r.dept,
			Position:           r.position,
			EmploymentStatus:   r.status,
			AppointmentType:    r.apptType,
			StartDate:          r.start,
			EndDate:            r.end,
			IsActive:           r.status == "재직",
			IsFirstAppointment: r.apptType == "최초임용",
		}
		key := r.name + "|" + r.college
		existing, ok := byKey[key]
		if !ok {
			byKey[key] = &keyed{order: order, rec: rec}
			order++
			continue
		}
		if rec.StartDate > existing.rec.StartDate {
			existing.rec = rec
		}
	}

	entries := make([]*keyed, 0, len(byKey))
	for _, k := range byKey {
		entries = append(entries, k)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].order < entries[j].order })

	result := models.AssistantFlatResult{
		Assistants:   make([]models.Assistant, 0, len(entries)),
		ActualCounts: map[string]int{},
	}
	for _, e := range entries {
		result.Assistants = append(result.Assistants, e.rec)
		result.Summary.TotalRecords++
		if e.rec.IsActive {
			result.Summary.TotalActive++
			result.ActualCounts[e.rec.College]++
		}
		if e.rec.IsFirstAppointment {
			result.Summary.TotalFirstAppointments++
		}
	}
	return result
}

// parseTable builds the hierarchical staffing table: active assistants only,
// grouped by college|department, split into academic and administrative
// categories in canonical display order.
func (p *AssistantParser) parseTable(grid Grid, headerRow int, cols map[string]int, w *models.ParseWarnings) models.AssistantTableResult {
	type group struct {
		college    string
		department string
		assistants []models.AssistantRosterEntry
	}
	groups := map[string]*group{}
	var keys []string

	for _, r := range p.rows(grid, headerRow, cols, w) {
		if r.status != "재직" || r.dept == "" {
			continue
		}
		college := normalizeCollege(r.college)
		key := college + "|" + r.dept
		g, ok := groups[key]
		if !ok {
			g = &group{college: college, department: r.dept}
			groups[key] = g
			keys = append(keys, key)
		}
		g.assistants = append(g.assistants, models.AssistantRosterEntry{
			Name:      r.name,
			IsNew:     r.apptType == "최초임용",
			StartDate: r.start,
		})
	}

	collegeMap := map[string][]models.AssistantDepartment{}
	adminMap := map[string][]models.AssistantDepartment{}
	for _, key := range keys {
		g := groups[key]
		mainDept, subDepts := splitDepartmentLabel(g.department)
		dept := models.AssistantDepartment{
			MainDept:   mainDept,
			SubDepts:   subDepts,
			Allocated:  len(g.assistants),
			Current:    len(g.assistants),
			Assistants: g.assistants,
		}
		if category, ok := adminCategory(g.college, g.department); ok {
			adminMap[category] = append(adminMap[category], dept)
		} else {
			collegeMap[g.college] = append(collegeMap[g.college], dept)
		}
	}

	result := models.AssistantTableResult{
		Colleges:       orderCategories(collegeMap, collegeOrder),
		Administrative: orderCategories(adminMap, adminOrder),
	}
	result.Summary.TotalColleges = countCurrent(result.Colleges)
	result.Summary.TotalAdmin = countCurrent(result.Administrative)
	result.Summary.GrandTotal = result.Summary.TotalColleges + result.Summary.TotalAdmin
	return result
}

// normalizeCollege folds the renamed-college aliases the exports still carry.
func normalizeCollege(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.CatchAllUnitName
	}
	if strings.Contains(name, "보건복지") || strings.Contains(name, "AI바이오") {
		return "AI바이오융합대학"
	}
	if strings.Contains(name, "AI융합") || strings.Contains(name, "인문사회") {
		return "인문사회융합대학"
	}
	return name
}

// splitDepartmentLabel separates a multi-line department cell into the main
// department and its co-appointment ("(겸)") sub-departments.
func splitDepartmentLabel(label string) (string, []string) {
	var parts []string
	for _, p := range strings.Split(label, "\n") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return label, nil
	}
	main := ""
	subs := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.HasPrefix(p, "(겸)") {
			subs = append(subs, p)
		} else if main == "" {
			main = p
		}
	}
	if main == "" {
		main = parts[0]
	}
	return main, subs
}

func adminCategory(college, department string) (string, bool) {
	for _, admin := range adminOrder {
		if strings.Contains(college, admin) || strings.Contains(department, admin) {
			return admin, true
		}
	}
	return "", false
}

func orderCategories(m map[string][]models.AssistantDepartment, order []string) []models.AssistantCategory {
	out := make([]models.AssistantCategory, 0, len(m))
	seen := map[string]bool{}
	for _, name := range order {
		if depts, ok := m[name]; ok {
			out = append(out, models.AssistantCategory{CategoryName: name, Departments: depts})
			seen[name] = true
		}
	}
	var extras []string
	for name := range m {
		if !seen[name] {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	for _, name := range extras {
		out = append(out, models.AssistantCategory{CategoryName: name, Departments: m[name]})
	}
	return out
}

func countCurrent(categories []models.AssistantCategory) int {
	total := 0
	for _, c := range categories {
		for _, d := range c.Departments {
			total += d.Current
		}
	}
	return total
}
