package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nfi-health/assess/internal/contract"
	"github.com/nfi-health/assess/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// SectionRow is the rendered score of one section.
type SectionRow struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Score    int    `json:"score"`
	MaxScore int    `json:"max_score"`
	Percent  *int   `json:"percent"`
	Rating   string `json:"rating"`
}

// ScoreReport is the render model of a scored form.
type ScoreReport struct {
	ChecklistID string            `json:"checklist_id"`
	Title       string            `json:"title,omitempty"`
	Sections    []SectionRow      `json:"sections"`
	Overall     SectionRow        `json:"overall"`
	Completion  schema.Completion `json:"completion"`
}

// NewScoreReport builds the render model of a scorecard in scorecard order.
func NewScoreReport(cl *schema.Checklist, card schema.Scorecard, completion schema.Completion, thresholds map[string]int) ScoreReport {
	report := ScoreReport{
		ChecklistID: cl.ID,
		Title:       cl.Title,
		Sections:    make([]SectionRow, 0, len(card.Order)),
		Overall:     newSectionRow("overall", "Overall", card.Overall, thresholds),
		Completion:  completion,
	}
	for _, name := range card.Order {
		report.Sections = append(report.Sections, newSectionRow(name, sectionTitle(cl, name), card.Sections[name], thresholds))
	}
	return report
}

func newSectionRow(name, title string, s schema.SectionScore, thresholds map[string]int) SectionRow {
	row := SectionRow{
		Name:     name,
		Title:    title,
		Score:    s.Score,
		MaxScore: s.MaxScore,
		Rating:   contract.GetPlainLabel(s, thresholds),
	}
	if p, ok := s.Percent(); ok {
		row.Percent = &p
	}
	return row
}

// sectionTitle returns the display label of a section, falling back to its name.
func sectionTitle(cl *schema.Checklist, name string) string {
	if s, ok := cl.SectionByName(name); ok && s.Label != "" {
		return s.Label
	}
	return name
}

// PrintScoreReport outputs a score report, dispatching based on the output format configured.
func PrintScoreReport(report ScoreReport, cfg *contract.Config) error {
	return dispatch(cfg, "scorecard",
		func(w io.Writer) error { return writeJSON(w, report) },
		func(w io.Writer) error { return writeScoreReportCSV(w, report) },
		func(w io.Writer) error { return writeScoreReportTable(w, report, cfg) },
	)
}

// writeScoreReportTable generates and writes the human-readable scorecard table.
func writeScoreReportTable(w io.Writer, report ScoreReport, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Section", "Score", "Percent", "Rating"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
		c.Row.Alignment.PerColumn = []tw.Align{tw.AlignLeft}
	})

	titleWidth := getMaxTableTextWidth(cfg, 30) // Score + Percent + Rating with borders/padding
	var data [][]string
	for _, row := range report.Sections {
		s := schema.SectionScore{Score: row.Score, MaxScore: row.MaxScore}
		data = append(data, []string{
			contract.TruncateText(row.Title, titleWidth),
			schema.FormatRatio(s),
			schema.FormatPercent(s),
			labelFor(s, cfg),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	overall := schema.SectionScore{Score: report.Overall.Score, MaxScore: report.Overall.MaxScore}
	table.Footer([]string{"Overall", schema.FormatRatio(overall), schema.FormatPercent(overall), labelFor(overall, cfg)})
	if err := table.Render(); err != nil {
		return err
	}

	title := report.Title
	if title == "" {
		title = report.ChecklistID
	}
	if _, err := fmt.Fprintf(w, "Checklist: %s\n", title); err != nil {
		return err
	}
	return writeCompletionLine(w, report.Completion)
}

// writeCompletionLine writes a one-line summary of the completion state.
func writeCompletionLine(w io.Writer, c schema.Completion) error {
	if c.Complete {
		_, err := fmt.Fprintln(w, "✅ Ready to finalize")
		return err
	}
	_, err := fmt.Fprintf(w, "❌ Incomplete: %s\n", strings.Join(c.Incomplete, ", "))
	return err
}

// writeScoreReportCSV writes the scorecard in CSV format, overall row last.
func writeScoreReportCSV(w io.Writer, report ScoreReport) error {
	header := []string{"section", "title", "score", "max_score", "percent", "rating"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		rows := append(append([]SectionRow{}, report.Sections...), report.Overall)
		for _, row := range rows {
			percent := ""
			if row.Percent != nil {
				percent = strconv.Itoa(*row.Percent)
			}
			rec := []string{
				row.Name,
				row.Title,
				strconv.Itoa(row.Score),
				strconv.Itoa(row.MaxScore),
				percent,
				row.Rating,
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
