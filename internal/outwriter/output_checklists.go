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

// ChecklistSummary describes a checklist definition.
type ChecklistSummary struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Sections []string `json:"sections"`
	Items    int      `json:"items"`
	Choices  int      `json:"choices"`
	Required []string `json:"required_fields"`
}

// SummarizeChecklist counts the elements of a checklist definition.
func SummarizeChecklist(cl *schema.Checklist) ChecklistSummary {
	summary := ChecklistSummary{ID: cl.ID, Title: cl.Title, Sections: []string{}, Required: []string{}}
	for _, s := range cl.Sections {
		summary.Sections = append(summary.Sections, s.Name)
	}
	for _, e := range cl.Elements() {
		if e.Kind == schema.ChoiceElement {
			summary.Choices++
		} else {
			summary.Items++
		}
	}
	for _, f := range cl.Fields {
		if f.Required {
			summary.Required = append(summary.Required, f.Name)
		}
	}
	return summary
}

// PrintChecklists outputs checklist summaries, dispatching based on the output format configured.
func PrintChecklists(checklists []*schema.Checklist, cfg *contract.Config) error {
	summaries := make([]ChecklistSummary, len(checklists))
	for i, cl := range checklists {
		summaries[i] = SummarizeChecklist(cl)
	}
	return dispatch(cfg, "checklists",
		func(w io.Writer) error { return writeJSON(w, summaries) },
		func(w io.Writer) error { return writeChecklistsCSV(w, summaries) },
		func(w io.Writer) error { return writeChecklistsTable(w, summaries, cfg) },
	)
}

// writeChecklistsTable generates and writes the human-readable checklist table.
func writeChecklistsTable(w io.Writer, summaries []ChecklistSummary, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Title", "Sections", "Items", "Choices"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignLeft
	})

	titleWidth := getMaxTableTextWidth(cfg, 40)
	var data [][]string
	for _, s := range summaries {
		data = append(data, []string{
			s.ID,
			contract.TruncateText(s.Title, titleWidth),
			strconv.Itoa(len(s.Sections)),
			strconv.Itoa(s.Items),
			strconv.Itoa(s.Choices),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeChecklistsCSV writes one row per checklist.
func writeChecklistsCSV(w io.Writer, summaries []ChecklistSummary) error {
	header := []string{"id", "title", "sections", "items", "choices"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range summaries {
			row := []string{s.ID, s.Title, strconv.Itoa(len(s.Sections)), strconv.Itoa(s.Items), strconv.Itoa(s.Choices)}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
