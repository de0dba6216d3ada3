package models

// AppointmentParseResult is the output of the appointment-history parse:
// only the people whose leave range contains today, one entry each.
type AppointmentParseResult struct {
	Leave    []LeaveEntry  `json:"leave"`
	Warnings ParseWarnings `json:"warnings"`
}

// DispatchParseResult is the output of the sabbatical/dispatch parse.
type DispatchParseResult struct {
	Research ResearchHalves `json:"research"`
	Leave    []LeaveEntry   `json:"leave"`
	Warnings ParseWarnings  `json:"warnings"`
}

// MergedLeaveView is the read-time reconciliation of the three leave sources.
// It is computed fresh on every request and never persisted or cached.
type MergedLeaveView struct {
	Research ResearchHalves `json:"research"`
	Leave    []LeaveEntry   `json:"leave"`
}

// Leave source tags, lowest to highest precedence.
const (
	LeaveSourceFaculty     = "faculty"
	LeaveSourceResearch    = "research"
	LeaveSourceAppointment = "appointment"
)
