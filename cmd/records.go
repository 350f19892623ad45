package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/nfi-health/assess/internal/contract"
	"github.com/nfi-health/assess/internal/outwriter"
	"github.com/nfi-health/assess/internal/persist"
	"github.com/nfi-health/assess/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// recordsAdminSetup loads minimal configuration needed for schema operations.
// This is used by commands that touch the database without opening the record store.
func recordsAdminSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("record-backend")))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	connStr := viper.GetString("record-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.RecordBackend = backend
	cfg.RecordDBConnect = connStr
	return nil
}

// recordsAdminSetupWrapper wraps recordsAdminSetup to provide PreRunE for schema commands.
func recordsAdminSetupWrapper(_ *cobra.Command, _ []string) error {
	return recordsAdminSetup()
}

// recordFilter builds the listing filter from the validated config.
func recordFilter() schema.RecordFilter {
	return schema.RecordFilter{
		ChecklistID:   cfg.ChecklistID,
		CourseID:      cfg.Meta.CourseID,
		ParticipantID: cfg.Meta.ParticipantID,
		Status:        cfg.Status,
		Limit:         cfg.ResultLimit,
	}
}

// recordsCmd focused on record management.
//
// Note: clear and migrate use minimal initialization (recordsAdminSetup) instead of
// opening the record store, since they operate on the schema itself.
var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage saved assessment records",
	Long: `Manage assessment records saved with "assess save".

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (nothing is stored)

Subcommands:
  list    - List records, most recently updated first
  show    - Print the scorecard of one record
  status  - Show record store statistics and connection info
  export  - Export records and section scores to Parquet
  clear   - Remove all records
  migrate - Run database schema migrations

Examples:
  # Drafts of one participant
  assess records list --participant p-7 --status draft

  # Use PostgreSQL (set connection string via env variable)
  ASSESS_RECORD_BACKEND=postgresql ASSESS_RECORD_DB_CONNECT="host=... dbname=..." assess records status`,
}

// recordsListCmd lists records.
var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved records",
	Long: `List saved assessment records, most recently updated first.

Filters: --checklist, --course, --participant, --status (draft or complete).
The number of rows is capped by --limit.`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := recordStore()
		if err != nil {
			contract.LogFatal("Failed to list records", err)
		}
		records, err := store.List(rootCtx, recordFilter())
		if err != nil {
			contract.LogFatal("Failed to list records", err)
		}
		if err := outwriter.NewOutWriter().WriteRecords(records, cfg); err != nil {
			contract.LogFatal("Failed to write records", err)
		}
	},
}

// recordsShowCmd prints the scorecard of a stored record.
var recordsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the scorecard of a saved record",
	Long: `Load a saved record, normalize it against its checklist and print its scorecard.

Scores are recomputed from the stored payload, so a record saved with an older
checklist definition is shown as the current definition scores it.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		store, err := recordStore()
		if err != nil {
			contract.LogFatal("Failed to load record", err)
		}
		rec, err := store.Get(rootCtx, args[0])
		if err != nil {
			contract.LogFatal("Failed to load record", err)
		}
		session, err := openSession(rec, cfg)
		if err != nil {
			contract.LogFatal("Failed to load record", err)
		}
		view := session.View()
		if err := outwriter.NewOutWriter().WriteScorecard(session.Checklist(), view.Scores, view.Completion, cfg); err != nil {
			contract.LogFatal("Failed to write scorecard", err)
		}
	},
}

// recordsStatusCmd shows store status.
var recordsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display record store statistics and connection details",
	Long: `Show detailed information about the record store.

Displays:
- Backend type and connection status
- Total number of records, by status
- Last update and oldest record timestamps
- Table size`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := recordStore()
		if err != nil {
			contract.LogFatal("Failed to get record store status", err)
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get record store status", err)
		}
		if err := outwriter.NewOutWriter().WriteStoreStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to write record store status", err)
		}
	},
}

// recordsExportCmd exports records to Parquet.
var recordsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export records to Parquet for BI tools and analytics",
	Long: `Export saved records to Parquet format for use with analytics tools.

Exports two datasets:
- <output-file>.records.parquet - one row per record with its overall score
- <output-file>.section_scores.parquet - one row per record and section

The listing filters apply. Without --limit every matching record is exported.

Requires: --output-file parameter

Examples:
  # Export one course
  assess records export --course c-12 --output-file course-c12`,
	PreRunE: storeSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		store, err := recordStore()
		if err != nil {
			contract.LogFatal("Failed to export records", err)
		}
		filter := recordFilter()
		if !cmd.Flags().Changed("limit") {
			filter.Limit = 0
		}
		if err := persist.ExecuteRecordExport(rootCtx, store, filter, cfg.OutputFile, os.Stdout); err != nil {
			contract.LogFatal("Failed to export records", err)
		}
	},
}

// recordsClearCmd clears the record store.
var recordsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all saved assessment records",
	Long: `Delete all saved records from the configured backend.

WARNING: This action cannot be undone. Consider exporting records first.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the records table`,
	PreRunE: recordsAdminSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		dbFilePath := persist.GetDBFilePath()
		if cfg.RecordBackend == schema.SQLiteBackend && cfg.RecordDBConnect != "" {
			dbFilePath = cfg.RecordDBConnect
		}
		if err := persist.ClearRecords(cfg.RecordBackend, dbFilePath, cfg.RecordDBConnect); err != nil {
			contract.LogFatal("Failed to clear records", err)
		}
		fmt.Println("Records cleared successfully.")
	},
}

// recordsMigrateCmd runs schema migrations.
var recordsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations for the record store",
	Long: `Apply or roll back schema migrations of the records table.

By default every pending migration is applied. --target-version 0 rolls back
all migrations; a positive version migrates up or down to that version.

Examples:
  # Migrate to the latest schema
  assess records migrate

  # Roll back to version 1
  assess records migrate --target-version 1`,
	PreRunE: recordsAdminSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := persist.MigrateRecords(cfg.RecordBackend, cfg.RecordDBConnect, viper.GetInt("target-version")); err != nil {
			contract.LogFatal("Failed to migrate record store", err)
		}
	},
}
