package schema

import "time"

// Payload is the wire form of a FormState.
// Selections are stored as lists of checked option keys; a list holding only "na" marks an NA group.
type Payload struct {
	Fields     map[string]string              `json:"fields,omitempty"`
	Answers    map[string]map[string]string   `json:"answers,omitempty"`
	Selections map[string]map[string][]string `json:"selections,omitempty"`
}

// SelectionNA is the wire marker of a multi-select group that does not apply.
const SelectionNA = "na"

// Actor is the identity attached to saved records as authorship metadata.
type Actor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RecordMeta identifies which course and participant an assessment belongs to.
type RecordMeta struct {
	CourseID      string `json:"course_id"`
	ParticipantID string `json:"participant_id"`
}

// Record is a persisted assessment snapshot.
type Record struct {
	ID            string                  `json:"id,omitempty"`
	ChecklistID   string                  `json:"checklist_id"`
	CourseID      string                  `json:"course_id,omitempty"`
	ParticipantID string                  `json:"participant_id,omitempty"`
	Status        RecordStatus            `json:"status,omitempty"`
	Payload       Payload                 `json:"payload"`
	Scores        map[string]SectionScore `json:"scores,omitempty"`
	Overall       SectionScore            `json:"overall"`
	MentorName    string                  `json:"mentor_name,omitempty"`
	MentorEmail   string                  `json:"mentor_email,omitempty"`
	EditedByName  string                  `json:"edited_by_name,omitempty"`
	EditedByEmail string                  `json:"edited_by_email,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// RecordFilter narrows a record listing. Empty fields match everything.
type RecordFilter struct {
	ChecklistID   string
	CourseID      string
	ParticipantID string
	Status        RecordStatus
	Limit         int
	Offset        int
}

// StoreStatus represents the status of the record store.
type StoreStatus struct {
	Backend         string               `json:"backend"`
	Connected       bool                 `json:"connected"`
	TotalRecords    int                  `json:"total_records"`
	ByStatus        map[RecordStatus]int `json:"by_status"`
	LastUpdateTime  time.Time            `json:"last_update_time"`
	OldestEntryTime time.Time            `json:"oldest_entry_time"`
	TableSizeBytes  int64                `json:"table_size_bytes"`
}
