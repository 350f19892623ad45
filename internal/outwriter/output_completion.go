package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/nfi-health/assess/internal/contract"
	"github.com/nfi-health/assess/schema"
)

// completionJSON is the JSON shape of a completion check.
type completionJSON struct {
	ChecklistID string   `json:"checklist_id"`
	Complete    bool     `json:"complete"`
	Incomplete  []string `json:"incomplete"`
}

// PrintCompletion outputs a completion check, dispatching based on the output format configured.
func PrintCompletion(cl *schema.Checklist, c schema.Completion, cfg *contract.Config) error {
	return dispatch(cfg, "completion",
		func(w io.Writer) error {
			missing := c.Incomplete
			if missing == nil {
				missing = []string{}
			}
			return writeJSON(w, completionJSON{ChecklistID: cl.ID, Complete: c.Complete, Incomplete: missing})
		},
		func(w io.Writer) error { return writeCompletionCSV(w, cl, c) },
		func(w io.Writer) error { return writeCompletionText(w, cl, c) },
	)
}

// writeCompletionText lists each incomplete field or section with its label.
func writeCompletionText(w io.Writer, cl *schema.Checklist, c schema.Completion) error {
	if err := writeCompletionLine(w, c); err != nil {
		return err
	}
	for _, name := range c.Incomplete {
		if _, err := fmt.Fprintf(w, "  - %s\n", incompleteTitle(cl, name)); err != nil {
			return err
		}
	}
	return nil
}

// writeCompletionCSV writes one row per incomplete field or section.
func writeCompletionCSV(w io.Writer, cl *schema.Checklist, c schema.Completion) error {
	return writeCSVWithHeader(w, []string{"name", "kind", "title"}, func(cw *csv.Writer) error {
		for _, name := range c.Incomplete {
			kind := "section"
			if _, ok := cl.FieldByName(name); ok {
				kind = "field"
			}
			if err := cw.Write([]string{name, kind, incompleteTitle(cl, name)}); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// incompleteTitle returns the label of the named field or section.
func incompleteTitle(cl *schema.Checklist, name string) string {
	if f, ok := cl.FieldByName(name); ok && f.Label != "" {
		return f.Label
	}
	return sectionTitle(cl, name)
}
