package cmd

import (
	"github.com/nfi-health/assess/core"
	"github.com/nfi-health/assess/internal/contract"
	"github.com/nfi-health/assess/internal/outwriter"
	"github.com/spf13/cobra"
)

// scoreCmd scores a single form.
var scoreCmd = &cobra.Command{
	Use:   "score <form.json>",
	Short: "Score a checklist form section by section",
	Long: `Normalize a form against its checklist and print the per-section scorecard.

Items answered yes earn 2 points, partial 1 and no 0. Items marked na and
unanswered items are left out of both the score and the maximum, so a section
only counts what was actually assessed. Answers under branches that no longer
apply are reset before scoring.

The form is either a saved record (with checklist_id and payload) or a bare
payload combined with --checklist. Use "-" to read the form from stdin.

Examples:
  # Score an EENC form
  assess score --checklist eenc form.json

  # Score an exported record as JSON
  assess score record.json --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		session, err := loadSession(args[0], cfg)
		if err != nil {
			contract.LogFatal("Failed to load form", err)
		}
		view := session.View()
		if err := outwriter.NewOutWriter().WriteScorecard(session.Checklist(), view.Scores, view.Completion, cfg); err != nil {
			contract.LogFatal("Failed to write scorecard", err)
		}
	},
}

// checkCmd focused on finalize gating.
var checkCmd = &cobra.Command{
	Use:   "check <form.json>",
	Short: "Check whether a form is ready to finalize (fails on incomplete forms)",
	Long: `Report the required fields or sections that block finalizing a form.

Required fields are reported on their own: while any is unset, sections are
not checked. Once every required field is set, each applicable section with an
unanswered item or an empty classification group is listed.

Exits with a non-zero code when the form is incomplete, so it can gate a
pipeline that imports assessments.

Examples:
  # Check an IMNCI form
  assess check --checklist imnci form.json

  # List the blocking sections as CSV
  assess check record.json --output csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		session, err := loadSession(args[0], cfg)
		if err != nil {
			contract.LogFatal("Failed to load form", err)
		}
		completion := core.CheckCompletion(session.Checklist(), session.State())
		if err := outwriter.NewOutWriter().WriteCompletion(session.Checklist(), completion, cfg); err != nil {
			contract.LogFatal("Failed to write completion report", err)
		}
		if !completion.Complete {
			contract.LogFatal("Completion check failed", &core.IncompleteError{Missing: completion.Incomplete})
		}
	},
}
