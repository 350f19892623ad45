// Package cmd defines the command-line interface for assess.
package cmd

import (
	"github.com/nfi-health/assess/internal/contract"
	"github.com/nfi-health/assess/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(checklistsCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the records subcommands to the parent records command
	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsShowCmd)
	recordsCmd.AddCommand(recordsStatusCmd)
	recordsCmd.AddCommand(recordsExportCmd)
	recordsCmd.AddCommand(recordsClearCmd)
	recordsCmd.AddCommand(recordsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("checklist", "c", "", "Built-in checklist: eenc or imnci")
	rootCmd.PersistentFlags().String("checklist-file", "", "Path to a YAML checklist definition (overrides --checklist)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("record-backend", string(schema.SQLiteBackend), "Record backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("record-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("mentor-name", "", "Name of the mentor attached to saved records")
	rootCmd.PersistentFlags().String("mentor-email", "", "Email of the mentor attached to saved records")
	rootCmd.PersistentFlags().String("course", "", "Course ID of the assessment")
	rootCmd.PersistentFlags().String("participant", "", "Participant ID of the assessment")
	rootCmd.PersistentFlags().String("thresholds-override", "", "Rating thresholds in percent (format: 'excellent:90,good:75,fair:50')")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all persistent flags of recordsCmd to Viper
	recordsCmd.PersistentFlags().String("status", "", "Filter records by status: draft or complete")
	recordsCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of records to display")
	if err := viper.BindPFlags(recordsCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding records flags", err)
	}

	// Bind all flags of saveCmd to Viper
	saveCmd.Flags().Bool("final", false, "Finalize the assessment (refused when the form is incomplete)")
	saveCmd.Flags().String("id", "", "ID of the record to update")
	if err := viper.BindPFlags(saveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding save flags", err)
	}

	// Bind all flags of recordsMigrateCmd to Viper
	recordsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(recordsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding records migrate flags", err)
	}
}
