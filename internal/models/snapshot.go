package models

import (
	"encoding/json"
	"time"
)

// Snapshot categories. Each category holds at most one latest document.
const (
	CategoryFaculty       = "faculty"
	CategoryAssistant     = "assistant"
	CategoryAppointment   = "appointment"
	CategoryResearchLeave = "research_leave"
	CategoryOrganization  = "organization"
)

// Snapshot is the singleton-per-category persisted document. Payload carries
// the parser's full structured output as JSONB.
type Snapshot struct {
	Category   string          `db:"category" json:"category"`
	Payload    json.RawMessage `db:"payload" json:"payload"`
	Filename   string          `db:"filename" json:"filename"`
	FileSize   int64           `db:"file_size" json:"fileSize"`
	UploadedBy string          `db:"uploaded_by" json:"uploadedBy"`
	UploadedAt time.Time       `db:"uploaded_at" json:"uploadedAt"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updatedAt"`
}

// UploadRecord is one entry of the bounded upload history.
type UploadRecord struct {
	ID         int64           `db:"id" json:"id"`
	Category   string          `db:"category" json:"category"`
	Filename   string          `db:"filename" json:"filename"`
	FileSize   int64           `db:"file_size" json:"fileSize"`
	UploadedBy string          `db:"uploaded_by" json:"uploadedBy"`
	Stats      json.RawMessage `db:"stats" json:"stats"`
	UploadedAt time.Time       `db:"uploaded_at" json:"uploadedAt"`
}
