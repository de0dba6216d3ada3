package models

// FacultyMember is one classified roster row. Date fields are display strings
// normalized to YYYY.MM.DD; empty when the source column was absent or blank.
type FacultyMember struct {
	Name                  string `json:"name"`
	Status                string `json:"status"`
	Gender                string `json:"gender"`
	BirthDate             string `json:"birthDate"`
	FirstAppointmentStart string `json:"firstAppointmentStart"`
	FirstAppointmentEnd   string `json:"firstAppointmentEnd"`
	ReappointmentEnd      string `json:"reappointmentEnd"`
	RetirementDate        string `json:"retirementDate"`
	Position              string `json:"position"`
	Dept                  string `json:"dept"`
	College               string `json:"college"`
	SerialType            string `json:"serialType"`
	DisplayName           string `json:"displayName,omitempty"`

	// Derived once at parse time, never recomputed downstream.
	IsSalary           bool `json:"isSalary"`
	IsTenureGuaranteed bool `json:"isRetirementGuaranteed"`
}

// PositionBuckets groups members of one unit by canonical position label.
type PositionBuckets map[string][]FacultyMember

// FacultyUnit is one top-level node of the classification tree. Flat units
// carry Positions directly; grouped units (colleges, the graduate school)
// carry SubUnits keyed by sub-department name.
type FacultyUnit struct {
	Positions PositionBuckets            `json:"positions,omitempty"`
	SubUnits  map[string]PositionBuckets `json:"subUnits,omitempty"`
}

// FacultyTree is the full classification result keyed by unit name,
// including the catch-all unit.
type FacultyTree map[string]*FacultyUnit

// LeaveEntry is one person currently on leave, sabbatical, or dispatch.
// Every field defaults to a safe fallback, never absent.
type LeaveEntry struct {
	Dept    string `json:"dept"`
	Name    string `json:"name"`
	Period  string `json:"period"`
	Remarks string `json:"remarks"`
	Source  string `json:"source,omitempty"`
}

// ResearchHalves splits sabbatical entries into academic-year halves.
type ResearchHalves struct {
	First  []LeaveEntry `json:"first"`
	Second []LeaveEntry `json:"second"`
}

// ResearchLeaveSet bundles sabbatical halves with plain leave entries.
type ResearchLeaveSet struct {
	Research ResearchHalves `json:"research"`
	Leave    []LeaveEntry   `json:"leave"`
}

// GenderStat tallies one full-time position tier.
type GenderStat struct {
	Rank    string `json:"rank"`
	Male    int    `json:"male"`
	Female  int    `json:"female"`
	Unknown int    `json:"unknown"`
	Total   int    `json:"total"`
}

// ParseStats summarizes one parse run.
type ParseStats struct {
	Total     int `json:"total"`
	Processed int `json:"processed"`
}

// ParseWarnings accumulates non-fatal per-row issues so no row is ever lost
// silently. Returned alongside the main output and surfaced to the operator.
type ParseWarnings struct {
	HeaderRow          int            `json:"headerRow"`
	HeaderFallback     bool           `json:"headerFallback,omitempty"`
	UnmappedPositions  map[string]int `json:"unmappedPositions,omitempty"`
	UnknownDepartments map[string]int `json:"unknownDepartments,omitempty"`
	CatchAllMembers    []string       `json:"catchAllMembers,omitempty"`
	SkippedRows        int            `json:"skippedRows,omitempty"`
	UnparsableDates    int            `json:"unparsableDates,omitempty"`
}

// NewParseWarnings returns a warning set with its maps ready for counting.
func NewParseWarnings(headerRow int, fellBack bool) ParseWarnings {
	return ParseWarnings{
		HeaderRow:          headerRow,
		HeaderFallback:     fellBack,
		UnmappedPositions:  map[string]int{},
		UnknownDepartments: map[string]int{},
	}
}

// FacultyParseResult is the atomic output of one faculty roster parse.
type FacultyParseResult struct {
	Tree              FacultyTree      `json:"facultyData"`
	DeptStructure     []Department     `json:"deptStructure"`
	FullTimePositions []string         `json:"fullTimePositions"`
	PartTimePositions []string         `json:"partTimePositions"`
	OtherPositions    []string         `json:"otherPositions"`
	ResearchLeave     ResearchLeaveSet `json:"researchLeaveData"`
	GenderStats       []GenderStat     `json:"genderStats"`
	Stats             ParseStats       `json:"stats"`
	Warnings          ParseWarnings    `json:"warnings"`
}

// FacultyStats is the aggregate view computed at read time.
type FacultyStats struct {
	FullTime     int                        `json:"fullTime"`
	PartTime     int                        `json:"partTime"`
	Other        int                        `json:"other"`
	Total        int                        `json:"total"`
	ByPosition   map[string]int             `json:"byPosition"`
	ByDepartment map[string]DepartmentStats `json:"byDepartment"`
}

// DepartmentStats is the per-unit slice of FacultyStats.
type DepartmentStats struct {
	FullTime int `json:"fullTime"`
	PartTime int `json:"partTime"`
	Other    int `json:"other"`
	Total    int `json:"total"`
}
