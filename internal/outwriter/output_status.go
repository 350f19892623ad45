package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/nfi-health/assess/internal/contract"
	"github.com/nfi-health/assess/schema"
)

// PrintStoreStatus outputs record store status, dispatching based on the output format configured.
func PrintStoreStatus(status schema.StoreStatus, cfg *contract.Config) error {
	return dispatch(cfg, "store status",
		func(w io.Writer) error { return writeJSON(w, status) },
		func(w io.Writer) error { return writeStoreStatusCSV(w, status) },
		func(w io.Writer) error { return writeStoreStatusText(w, status) },
	)
}

// sortedStatuses returns the status keys of the per-status counts in name order.
func sortedStatuses(byStatus map[schema.RecordStatus]int) []schema.RecordStatus {
	keys := make([]schema.RecordStatus, 0, len(byStatus))
	for k := range byStatus {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// writeStoreStatusText prints record store status information.
func writeStoreStatusText(w io.Writer, status schema.StoreStatus) error {
	_, _ = fmt.Fprintf(w, "Record Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return nil
	}
	_, _ = fmt.Fprintf(w, "Total Records: %d\n", status.TotalRecords)
	for _, s := range sortedStatuses(status.ByStatus) {
		_, _ = fmt.Fprintf(w, "  %s: %d\n", s, status.ByStatus[s])
	}
	if status.TotalRecords > 0 {
		_, _ = fmt.Fprintf(w, "Last Update: %s\n", status.LastUpdateTime.Local().Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Oldest Record: %s\n", status.OldestEntryTime.Local().Format("2006-01-02 15:04:05"))
	}
	_, err := fmt.Fprintf(w, "Table Size: %d bytes\n", status.TableSizeBytes)
	return err
}

// writeStoreStatusCSV writes the store status as key/value rows.
func writeStoreStatusCSV(w io.Writer, status schema.StoreStatus) error {
	return writeCSVWithHeader(w, []string{"key", "value"}, func(cw *csv.Writer) error {
		rows := [][]string{
			{"backend", status.Backend},
			{"connected", strconv.FormatBool(status.Connected)},
			{"total_records", strconv.Itoa(status.TotalRecords)},
		}
		for _, s := range sortedStatuses(status.ByStatus) {
			rows = append(rows, []string{"status_" + string(s), strconv.Itoa(status.ByStatus[s])})
		}
		rows = append(rows, []string{"table_size_bytes", strconv.FormatInt(status.TableSizeBytes, 10)})
		for _, row := range rows {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
