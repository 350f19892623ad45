package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/nfi-health/assess/internal/contract"
	"github.com/nfi-health/assess/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// shortIDLength is the number of record ID characters shown in tables.
const shortIDLength = 8

// PrintRecords outputs saved records, dispatching based on the output format configured.
func PrintRecords(records []schema.Record, cfg *contract.Config) error {
	return dispatch(cfg, "records",
		func(w io.Writer) error { return writeRecordsJSON(w, records, cfg) },
		func(w io.Writer) error { return writeRecordsCSV(w, records, cfg) },
		func(w io.Writer) error { return writeRecordsTable(w, records, cfg) },
	)
}

// writeRecordsTable generates and writes the human-readable record table.
func writeRecordsTable(w io.Writer, records []schema.Record, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Checklist", "Participant", "Status", "Score", "Rating", "Mentor", "Updated"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignLeft
	})

	participantWidth := getMaxTableTextWidth(cfg, 85) // every other column with borders/padding
	var data [][]string
	for _, rec := range records {
		id := rec.ID
		if len(id) > shortIDLength {
			id = id[:shortIDLength]
		}
		data = append(data, []string{
			id,
			rec.ChecklistID,
			contract.TruncateText(rec.ParticipantID, participantWidth),
			string(rec.Status),
			schema.FormatPercent(rec.Overall),
			labelFor(rec.Overall, cfg),
			schema.AbbreviateName(rec.MentorName),
			rec.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d records (backend: %s)\n", len(records), cfg.RecordBackend)
	return err
}

// writeRecordsCSV writes one row per record with its overall score.
func writeRecordsCSV(w io.Writer, records []schema.Record, cfg *contract.Config) error {
	header := []string{
		"id", "checklist_id", "course_id", "participant_id", "status",
		"score", "max_score", "percent", "rating",
		"mentor_name", "mentor_email", "edited_by_email", "created_at", "updated_at",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, rec := range records {
			percent := ""
			if p, ok := rec.Overall.Percent(); ok {
				percent = strconv.Itoa(p)
			}
			row := []string{
				rec.ID,
				rec.ChecklistID,
				rec.CourseID,
				rec.ParticipantID,
				string(rec.Status),
				strconv.Itoa(rec.Overall.Score),
				strconv.Itoa(rec.Overall.MaxScore),
				percent,
				contract.GetPlainLabel(rec.Overall, cfg.LabelThresholds),
				rec.MentorName,
				rec.MentorEmail,
				rec.EditedByEmail,
				rec.CreatedAt.Format(contract.DateTimeFormat),
				rec.UpdatedAt.Format(contract.DateTimeFormat),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// writeRecordsJSON writes the records with their overall rating added.
func writeRecordsJSON(w io.Writer, records []schema.Record, cfg *contract.Config) error {
	type JSONRecord struct {
		Rating string `json:"rating"`
		schema.Record
	}

	output := make([]JSONRecord, len(records))
	for i, rec := range records {
		output[i] = JSONRecord{
			Rating: contract.GetPlainLabel(rec.Overall, cfg.LabelThresholds),
			Record: rec,
		}
	}
	return writeJSON(w, output)
}
