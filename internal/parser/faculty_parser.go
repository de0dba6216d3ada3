package parser

import (
	"fmt"
	"strings"

	"github.com/yongin-adm/roster-adp-api/internal/models"
)

// specialUnits are organizational units that take precedence over the
// college/department hierarchy: when a row's 소속 or 대학 names one of
// these, the person belongs there regardless of anything else in the row.
var specialUnits = map[string]bool{
	"평가성과분석센터": true, "산학협력단": true, "용오름대학": true,
	"교육혁신원": true, "원격교육지원센터": true, "박물관": true,
	"체육지원실": true, "교수학습지원센터": true, "스포츠.웰니스연구센터": true,
	"특수체육연구소": true, "무도연구소": true, "혁신사업추진단": true,
	"학생생활상담센터": true, "취창업지원센터": true, "인권센터": true,
}

var facultyHeaderKeywords = []string{"성명", "직급", "소속", "대학", "재직구분"}

// FacultyParser turns the HR faculty-status export into the department tree
// the dashboard renders, plus research-year/leave rosters and gender stats.
type FacultyParser struct {
	positions *PositionTable
	structure []models.Department
}

func NewFacultyParser(positions *PositionTable, structure []models.Department) *FacultyParser {
	if positions == nil {
		positions = DefaultPositionTable()
	}
	if structure == nil {
		structure = models.DefaultStructure()
	}
	return &FacultyParser{positions: positions, structure: structure}
}

// Parse decodes and processes a faculty roster workbook.
func (p *FacultyParser) Parse(data []byte) (*models.FacultyParseResult, error) {
	grid, err := DecodeWorkbook(data)
	if err != nil {
		return nil, err
	}
	return p.ParseGrid(grid), nil
}

// ParseGrid processes an already-decoded sheet.
func (p *FacultyParser) ParseGrid(grid Grid) *models.FacultyParseResult {
	scan := LocateHeader(grid, facultyHeaderKeywords, 3, 0)
	cols := p.resolveColumns(grid.Row(scan.Row))

	result := &models.FacultyParseResult{
		Tree:              p.emptyTree(),
		DeptStructure:     p.structure,
		FullTimePositions: p.positions.FullTime,
		PartTimePositions: p.positions.PartTime,
		OtherPositions:    p.positions.Other,
		Warnings:          models.NewParseWarnings(scan.Row, scan.FellBack),
	}
	leave := models.ResearchLeaveSet{
		Research: models.ResearchHalves{First: []models.LeaveEntry{}, Second: []models.LeaveEntry{}},
		Leave:    []models.LeaveEntry{},
	}

	for i := scan.Row + 1; i < len(grid); i++ {
		if grid.IsEmptyRow(i) {
			continue
		}
		member, raw := p.extractMember(grid, i, cols, &result.Warnings)
		if member.Name == "" || !isActiveStatus(raw.status) {
			result.Warnings.SkippedRows++
			continue
		}
		result.Stats.Total++
		p.place(member, raw, result)
		result.Stats.Processed++
		p.collectLeave(member, raw, &leave)
	}

	result.ResearchLeave = leave
	result.GenderStats = p.genderStats(result.Tree)
	return result
}

type facultyRow struct {
	status   string
	position string
	serial   string
	salary   string
}

func (p *FacultyParser) resolveColumns(header []string) map[string]int {
	return ResolveColumns(header, map[string][]string{
		"college":    {"대학"},
		"dept":       {"소속"},
		"empNo":      {"직번"},
		"name":       {"성명", "성명(한글)"},
		"serialType": {"직렬"},
		"position":   {"직급"},
		"gender":     {"성별"},
		"status":     {"재직구분"},
		"salary":     {"호봉"},
		"apptStart":  {"최초임용 시작일", "전임교원 최초임용일"},
		"apptEnd":    {"최초임용 종료일"},
		"reapptEnd":  {"재임용종료일"},
		"birth":      {"생년월일"},
		"retirement": {"정년일자"},
	})
}

func (p *FacultyParser) extractMember(grid Grid, row int, cols map[string]int, w *models.ParseWarnings) (models.FacultyMember, facultyRow) {
	date := func(key string) string {
		v, ok := NormalizeDate(grid.Cell(row, cols[key]))
		if !ok {
			w.UnparsableDates++
		}
		return v
	}
	raw := facultyRow{
		status:   grid.Cell(row, cols["status"]),
		position: grid.Cell(row, cols["position"]),
		serial:   grid.Cell(row, cols["serialType"]),
		salary:   grid.Cell(row, cols["salary"]),
	}
	m := models.FacultyMember{
		Name:                  grid.Cell(row, cols["name"]),
		Status:                statusLabel(raw.status),
		IsSalary:              raw.serial == "전임교원" && raw.salary == "",
		Gender:                grid.Cell(row, cols["gender"]),
		BirthDate:             date("birth"),
		FirstAppointmentStart: date("apptStart"),
		FirstAppointmentEnd:   date("apptEnd"),
		ReappointmentEnd:      date("reapptEnd"),
		RetirementDate:        date("retirement"),
		Position:              raw.position,
		Dept:                  grid.Cell(row, cols["dept"]),
		College:               grid.Cell(row, cols["college"]),
		SerialType:            raw.serial,
	}
	m.IsTenureGuaranteed = m.ReappointmentEnd != "" &&
		m.RetirementDate != "" &&
		m.ReappointmentEnd == m.RetirementDate &&
		raw.position != "명예교수"
	return m, raw
}

func isActiveStatus(status string) bool {
	return strings.Contains(status, "재직") ||
		strings.Contains(status, "연구년") ||
		strings.Contains(status, "휴직")
}

func statusLabel(status string) string {
	switch {
	case strings.Contains(status, "휴직"):
		return "휴직"
	case strings.Contains(status, "연구년"):
		return "연구"
	default:
		return ""
	}
}

// place slots a member under the best-matching unit. Priority: special unit
// by department, special unit by college, graduate school (three spellings),
// college+department, then the catch-all bucket with an annotated display
// name. Buckets are created on demand so an unmapped position label never
// drops a person.
func (p *FacultyParser) place(m models.FacultyMember, raw facultyRow, result *models.FacultyParseResult) {
	position, mapped := p.positions.Canonical(raw.position)
	if !mapped {
		// Unrecognized titles group under the generic bucket; the
		// per-label warning keeps the raw title visible.
		position = models.CatchAllUnitName
		result.Warnings.UnmappedPositions[raw.position]++
	}
	tree := result.Tree

	if specialUnits[m.Dept] {
		appendFlat(tree, m.Dept, position, m)
		return
	}
	if specialUnits[m.College] {
		appendFlat(tree, m.College, position, m)
		return
	}

	grads := p.graduateSchools()
	if contains(grads, m.College) {
		appendNested(tree, models.GraduateSchoolName, m.College, position, m)
		return
	}
	if m.College == models.GraduateSchoolName && contains(grads, m.Dept) {
		appendNested(tree, models.GraduateSchoolName, m.Dept, position, m)
		return
	}
	for _, g := range grads {
		if m.Dept != "" && strings.Contains(m.Dept, g) {
			appendNested(tree, models.GraduateSchoolName, g, position, m)
			return
		}
	}

	if unit, ok := tree[m.College]; ok && m.Dept != "" {
		if _, ok := unit.SubUnits[m.Dept]; ok {
			appendNested(tree, m.College, m.Dept, position, m)
			return
		}
	}

	origin := m.Dept
	if origin == "" {
		origin = m.College
	}
	label := raw.position
	if label == "" {
		label = raw.serial
	}
	m.DisplayName = fmt.Sprintf("%s(%s, %s)", m.Name, label, origin)
	result.Warnings.CatchAllMembers = append(result.Warnings.CatchAllMembers, m.Name)
	if m.Dept != "" && !knownDept(tree, m.Dept) {
		result.Warnings.UnknownDepartments[m.Dept]++
	}
	appendFlat(tree, models.CatchAllUnitName, position, m)
}

func (p *FacultyParser) collectLeave(m models.FacultyMember, raw facultyRow, set *models.ResearchLeaveSet) {
	dept := m.Dept
	if dept == "" {
		dept = models.UnassignedDept
	}
	entry := models.LeaveEntry{
		Dept:   dept,
		Name:   m.Name,
		Period: FormatPeriod(m.FirstAppointmentStart, m.ReappointmentEnd),
		Source: models.LeaveSourceFaculty,
	}
	switch {
	case strings.Contains(raw.status, "연구년"):
		month := Month(m.ReappointmentEnd)
		if month == "08" || month == "09" {
			set.Research.Second = append(set.Research.Second, entry)
		} else {
			set.Research.First = append(set.Research.First, entry)
		}
	case strings.Contains(raw.status, "휴직"):
		set.Leave = append(set.Leave, entry)
	}
}

func (p *FacultyParser) emptyTree() models.FacultyTree {
	tree := models.FacultyTree{}
	for _, dept := range p.structure {
		unit := &models.FacultyUnit{}
		if dept.Name == models.GraduateSchoolName || len(dept.SubDepartments) > 0 {
			unit.SubUnits = make(map[string]models.PositionBuckets, len(dept.SubDepartments))
			for _, sub := range dept.SubDepartments {
				unit.SubUnits[sub] = p.emptyBuckets()
			}
		} else {
			unit.Positions = p.emptyBuckets()
		}
		tree[dept.Name] = unit
	}
	tree[models.CatchAllUnitName] = &models.FacultyUnit{Positions: p.emptyBuckets()}
	return tree
}

func (p *FacultyParser) emptyBuckets() models.PositionBuckets {
	buckets := make(models.PositionBuckets)
	for _, pos := range p.positions.All() {
		buckets[pos] = []models.FacultyMember{}
	}
	return buckets
}

func (p *FacultyParser) graduateSchools() []string {
	for _, dept := range p.structure {
		if dept.Name == models.GraduateSchoolName {
			return dept.SubDepartments
		}
	}
	return nil
}

func (p *FacultyParser) genderStats(tree models.FacultyTree) []models.GenderStat {
	tally := make(map[string]*models.GenderStat, len(p.positions.FullTime))
	for _, pos := range p.positions.FullTime {
		tally[pos] = &models.GenderStat{Rank: pos}
	}
	count := func(buckets models.PositionBuckets) {
		for _, pos := range p.positions.FullTime {
			for _, person := range buckets[pos] {
				stat := tally[pos]
				switch person.Gender {
				case "남", "남성", "M":
					stat.Male++
				case "여", "여성", "F":
					stat.Female++
				default:
					stat.Unknown++
				}
			}
		}
	}
	for _, unit := range tree {
		if unit.Positions != nil {
			count(unit.Positions)
		}
		for _, buckets := range unit.SubUnits {
			count(buckets)
		}
	}
	stats := make([]models.GenderStat, 0, len(p.positions.FullTime))
	for _, pos := range p.positions.FullTime {
		s := tally[pos]
		s.Total = s.Male + s.Female + s.Unknown
		stats = append(stats, *s)
	}
	return stats
}

func appendFlat(tree models.FacultyTree, unit, position string, m models.FacultyMember) {
	u := ensureUnit(tree, unit)
	if u.Positions == nil {
		u.Positions = make(models.PositionBuckets)
	}
	u.Positions[position] = append(u.Positions[position], m)
}

func appendNested(tree models.FacultyTree, unit, sub, position string, m models.FacultyMember) {
	u := ensureUnit(tree, unit)
	if u.SubUnits == nil {
		u.SubUnits = make(map[string]models.PositionBuckets)
	}
	if u.SubUnits[sub] == nil {
		u.SubUnits[sub] = make(models.PositionBuckets)
	}
	u.SubUnits[sub][position] = append(u.SubUnits[sub][position], m)
}

func ensureUnit(tree models.FacultyTree, name string) *models.FacultyUnit {
	if u, ok := tree[name]; ok {
		return u
	}
	u := &models.FacultyUnit{}
	tree[name] = u
	return u
}

func knownDept(tree models.FacultyTree, dept string) bool {
	for _, unit := range tree {
		if _, ok := unit.SubUnits[dept]; ok {
			return true
		}
	}
	_, ok := tree[dept]
	return ok
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
