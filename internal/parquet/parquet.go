// Package parquet provides data structures and functions for exporting assessment
// records to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/nfi-health/assess/schema"
	"github.com/parquet-go/parquet-go"
)

// AssessmentRecord represents one saved assessment with its overall score.
// This struct maps to the assessment_records database table.
type AssessmentRecord struct {
	// RecordID is the unique identifier of the record
	RecordID string `parquet:"record_id,snappy"`

	// ChecklistID names the checklist the assessment was taken against
	ChecklistID string `parquet:"checklist_id,snappy,dict"`

	// CourseID and ParticipantID identify who was assessed
	CourseID      string `parquet:"course_id,snappy,dict"`
	ParticipantID string `parquet:"participant_id,snappy"`

	// Status is draft or complete
	Status string `parquet:"status,snappy,dict"`

	// Score and MaxScore are the overall points across scored sections
	Score    int32 `parquet:"score,snappy"`
	MaxScore int32 `parquet:"max_score,snappy"`

	// Percent is the rounded overall percentage (nullable when nothing was scored)
	Percent *int32 `parquet:"percent,optional,snappy"`

	// MentorName and MentorEmail identify who created the record
	MentorName  string `parquet:"mentor_name,snappy"`
	MentorEmail string `parquet:"mentor_email,snappy"`

	// EditedByEmail identifies who last edited the record (nullable)
	EditedByEmail *string `parquet:"edited_by_email,optional,snappy"`

	// CreatedAt and UpdatedAt are stored as TIMESTAMP
	CreatedAt time.Time `parquet:"created_at,snappy"`
	UpdatedAt time.Time `parquet:"updated_at,snappy"`

	// Payload is the JSON-encoded form state
	Payload string `parquet:"payload,snappy"`
}

// SectionScore represents the score of one section of a saved assessment.
type SectionScore struct {
	// RecordID references the parent record
	RecordID string `parquet:"record_id,snappy"`

	// Section is the section name
	Section string `parquet:"section,snappy,dict"`

	Score    int32  `parquet:"score,snappy"`
	MaxScore int32  `parquet:"max_score,snappy"`
	Percent  *int32 `parquet:"percent,optional,snappy"`
}

// ConvertRecords converts schema.Record values to AssessmentRecord rows for Parquet export.
func ConvertRecords(records []schema.Record) ([]AssessmentRecord, error) {
	result := make([]AssessmentRecord, len(records))
	for i, rec := range records {
		payload, err := json.Marshal(rec.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload of %s: %w", rec.ID, err)
		}
		row := AssessmentRecord{
			RecordID:      rec.ID,
			ChecklistID:   rec.ChecklistID,
			CourseID:      rec.CourseID,
			ParticipantID: rec.ParticipantID,
			Status:        string(rec.Status),
			Score:         int32(rec.Overall.Score),
			MaxScore:      int32(rec.Overall.MaxScore),
			Percent:       percentOf(rec.Overall),
			MentorName:    rec.MentorName,
			MentorEmail:   rec.MentorEmail,
			CreatedAt:     rec.CreatedAt,
			UpdatedAt:     rec.UpdatedAt,
			Payload:       string(payload),
		}
		if rec.EditedByEmail != "" {
			editedBy := rec.EditedByEmail
			row.EditedByEmail = &editedBy
		}
		result[i] = row
	}
	return result, nil
}

// ConvertSectionScores flattens the per-section scores of each record, sections sorted by name.
func ConvertSectionScores(records []schema.Record) []SectionScore {
	var result []SectionScore
	for _, rec := range records {
		names := make([]string, 0, len(rec.Scores))
		for name := range rec.Scores {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			s := rec.Scores[name]
			result = append(result, SectionScore{
				RecordID: rec.ID,
				Section:  name,
				Score:    int32(s.Score),
				MaxScore: int32(s.MaxScore),
				Percent:  percentOf(s),
			})
		}
	}
	return result
}

func percentOf(s schema.SectionScore) *int32 {
	p, ok := s.Percent()
	if !ok {
		return nil
	}
	v := int32(p)
	return &v
}

// WriteRecordsParquet writes a slice of AssessmentRecord structs to a Parquet file.
func WriteRecordsParquet(data []AssessmentRecord, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSectionScoresParquet writes a slice of SectionScore structs to a Parquet file.
func WriteSectionScoresParquet(data []SectionScore, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows using the schema derived from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}
