package models

// Assistant is one flat roster record from the appointment export.
// Dates use YYYY-MM-DD, matching the export's own formatting, so that the
// lexicographic de-duplication comparison stays valid.
type Assistant struct {
	Name               string `json:"name"`
	College            string `json:"college"`
	Department         string `json:"department"`
	Position           string `json:"position"`
	EmploymentStatus   string `json:"employmentStatus"`
	AppointmentType    string `json:"appointmentType"`
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate"`
	IsActive           bool   `json:"isActive"`
	IsFirstAppointment bool   `json:"isFirstAppointment"`
}

// AssistantSummary totals the flat extraction.
type AssistantSummary struct {
	TotalRecords           int `json:"totalRecords"`
	TotalActive            int `json:"totalActive"`
	TotalFirstAppointments int `json:"totalFirstAppointments"`
}

// AssistantFlatResult is the variant-A parse output.
type AssistantFlatResult struct {
	Assistants   []Assistant      `json:"assistants"`
	ActualCounts map[string]int   `json:"actualCounts"`
	Summary      AssistantSummary `json:"summary"`
}

// AssistantRosterEntry is one person within a staffing-table department.
type AssistantRosterEntry struct {
	Name      string `json:"name"`
	IsNew     bool   `json:"isNew"`
	StartDate string `json:"startDate"`
}

// AssistantDepartment is one staffing-table row: a main department, its
// co-appointment sub-departments, capacity, and current members.
type AssistantDepartment struct {
	MainDept   string                 `json:"mainDept"`
	SubDepts   []string               `json:"subDepts"`
	Allocated  int                    `json:"allocated"`
	Current    int                    `json:"current"`
	Assistants []AssistantRosterEntry `json:"assistants"`
}

// AssistantCategory groups staffing-table departments under one college or
// administrative category.
type AssistantCategory struct {
	CategoryName string                `json:"categoryName"`
	Departments  []AssistantDepartment `json:"departments"`
}

// AssistantTableSummary totals the hierarchical table.
type AssistantTableSummary struct {
	TotalColleges int `json:"totalColleges"`
	TotalAdmin    int `json:"totalAdmin"`
	GrandTotal    int `json:"grandTotal"`
}

// AssistantTableResult is the variant-B parse output.
type AssistantTableResult struct {
	Colleges       []AssistantCategory   `json:"colleges"`
	Administrative []AssistantCategory   `json:"administrative"`
	Summary        AssistantTableSummary `json:"summary"`
}

// AssistantSnapshot is the persisted assistant document. Allocations is keyed
// by "category|mainDept" and survives re-uploads: parsed headcounts never
// overwrite administrator-entered capacity.
type AssistantSnapshot struct {
	Flat        AssistantFlatResult  `json:"flat"`
	Table       AssistantTableResult `json:"table"`
	Allocations map[string]int       `json:"allocations"`
	Warnings    ParseWarnings        `json:"warnings"`
}
