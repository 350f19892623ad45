// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/nfi-health/assess/internal/contract"
	"github.com/nfi-health/assess/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteScorecard prints the scorecard and completion state of a form using the configured output format.
func (ow *OutWriter) WriteScorecard(cl *schema.Checklist, card schema.Scorecard, completion schema.Completion, cfg *contract.Config) error {
	return PrintScoreReport(NewScoreReport(cl, card, completion, cfg.LabelThresholds), cfg)
}

// WriteCompletion prints only the completion state of a form using the configured output format.
func (ow *OutWriter) WriteCompletion(cl *schema.Checklist, completion schema.Completion, cfg *contract.Config) error {
	return PrintCompletion(cl, completion, cfg)
}

// WriteRecords prints saved records using the configured output format.
func (ow *OutWriter) WriteRecords(records []schema.Record, cfg *contract.Config) error {
	return PrintRecords(records, cfg)
}

// WriteChecklists prints the available checklist definitions using the configured output format.
func (ow *OutWriter) WriteChecklists(checklists []*schema.Checklist, cfg *contract.Config) error {
	return PrintChecklists(checklists, cfg)
}

// WriteStoreStatus prints record store status using the configured output format.
func (ow *OutWriter) WriteStoreStatus(status schema.StoreStatus, cfg *contract.Config) error {
	return PrintStoreStatus(status, cfg)
}
