package cmd

import (
	"errors"

	"github.com/nfi-health/assess/core"
	"github.com/nfi-health/assess/internal/contract"
	"github.com/nfi-health/assess/internal/outwriter"
	"github.com/nfi-health/assess/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// saveCmd stores a form in the record store.
var saveCmd = &cobra.Command{
	Use:   "save <form.json>",
	Short: "Save a form as a draft or finalized assessment record",
	Long: `Normalize and score a form, then store it in the configured record backend.

Without --id a new record is created and the mentor identity is attached as its
author. With --id (or an id inside the form) the existing record is updated and
the mentor identity is attached as its last editor.

--final saves the record as complete. Finalizing is refused when the form is
incomplete; nothing is written in that case.

Examples:
  # Save a draft for a participant
  assess save form.json --checklist eenc --course c-12 --participant p-7 \
    --mentor-name "Amina Otieno" --mentor-email amina@example.org

  # Finalize an existing record
  assess save record.json --final`,
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		rec, err := readForm(args[0])
		if err != nil {
			contract.LogFatal("Failed to load form", err)
		}
		if id := viper.GetString("id"); id != "" {
			rec.ID = id
		}
		session, err := openSession(rec, cfg)
		if err != nil {
			contract.LogFatal("Failed to load form", err)
		}

		store, err := recordStore()
		if err != nil {
			contract.LogFatal("Failed to save record", err)
		}

		status := schema.StatusDraft
		if viper.GetBool("final") {
			status = schema.StatusComplete
		}
		saved, err := session.Save(rootCtx, store, contract.StaticIdentity(cfg.Mentor), status)
		if err != nil {
			var incomplete *core.IncompleteError
			if errors.As(err, &incomplete) {
				contract.LogFatal("Refusing to finalize", incomplete)
			}
			contract.LogFatal("Failed to save record", err)
		}
		contract.Logger.Debug().Str("id", saved.ID).Str("status", string(saved.Status)).Msg("Saved record")

		if err := outwriter.NewOutWriter().WriteRecords([]schema.Record{saved}, cfg); err != nil {
			contract.LogFatal("Failed to write record", err)
		}
	},
}
