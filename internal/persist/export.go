package persist

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nfi-health/assess/internal/contract"
	"github.com/nfi-health/assess/internal/parquet"
	"github.com/nfi-health/assess/schema"
)

// exportPageSize is the number of records fetched per List call while exporting.
var exportPageSize = contract.MaxResultLimit

// ExecuteRecordExport writes the records matching filter to two Parquet files:
// <outputFile>.records.parquet and <outputFile>.section_scores.parquet.
// A positive filter.Limit caps the export; otherwise every matching record is exported.
func ExecuteRecordExport(ctx context.Context, store contract.RecordStore, filter schema.RecordFilter, outputFile string, out io.Writer) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("record store is not configured")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get record store status: %w", err)
	}
	if status.TotalRecords == 0 {
		return errors.New("no assessment records found to export")
	}

	_, _ = fmt.Fprintf(out, "Exporting data from %s backend...\n", status.Backend)

	records, err := listAll(ctx, store, filter)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return errors.New("no assessment records match the given filters")
	}

	rows, err := parquet.ConvertRecords(records)
	if err != nil {
		return err
	}
	recordsFile := outputFile + ".records.parquet"
	if err := parquet.WriteRecordsParquet(rows, recordsFile); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Exported %d records to: %s\n", len(rows), recordsFile)

	sections := parquet.ConvertSectionScores(records)
	sectionsFile := outputFile + ".section_scores.parquet"
	if err := parquet.WriteSectionScoresParquet(sections, sectionsFile); err != nil {
		return fmt.Errorf("failed to write section scores: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Exported %d section scores to: %s\n", len(sections), sectionsFile)

	return nil
}

// listAll pages through List until it is exhausted or filter.Limit records were read.
func listAll(ctx context.Context, store contract.RecordStore, filter schema.RecordFilter) ([]schema.Record, error) {
	limit := filter.Limit
	var records []schema.Record
	for {
		page := filter
		page.Offset = filter.Offset + len(records)
		page.Limit = exportPageSize
		if limit > 0 {
			page.Limit = min(exportPageSize, limit-len(records))
		}
		batch, err := store.List(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve records: %w", err)
		}
		records = append(records, batch...)
		if len(batch) < page.Limit || (limit > 0 && len(records) >= limit) {
			return records, nil
		}
	}
}
