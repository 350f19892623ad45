package cmd

import (
	"github.com/nfi-health/assess/core"
	"github.com/nfi-health/assess/core/catalog"
	"github.com/nfi-health/assess/internal/contract"
	"github.com/nfi-health/assess/internal/outwriter"
	"github.com/nfi-health/assess/schema"
	"github.com/spf13/cobra"
)

// checklistsCmd lists the available checklists.
var checklistsCmd = &cobra.Command{
	Use:   "checklists",
	Short: "List the built-in checklists",
	Long: `List the built-in checklists with their sections and item counts.

With --checklist-file the given YAML definition is validated and summarized
instead, which is a quick way to check a custom checklist before using it.

Examples:
  # Show the built-in checklists
  assess checklists

  # Validate a custom checklist
  assess checklists --checklist-file my-checklist.yaml`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		checklists := catalog.All()
		if cfg.ChecklistFile != "" || cfg.ChecklistID != "" {
			cl, err := core.ResolveChecklist(cfg.ChecklistID, cfg.ChecklistFile)
			if err != nil {
				contract.LogFatal("Failed to load checklist", err)
			}
			checklists = []*schema.Checklist{cl}
		}
		if err := outwriter.NewOutWriter().WriteChecklists(checklists, cfg); err != nil {
			contract.LogFatal("Failed to write checklists", err)
		}
	},
}
