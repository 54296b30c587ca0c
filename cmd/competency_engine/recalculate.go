package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/shemaobt/translation-helper-sub001/internal/db"
	"github.com/shemaobt/translation-helper-sub001/internal/progress"
	"github.com/shemaobt/translation-helper-sub001/internal/report"
)

func newRecalculateCommand(ctx *commandContext) *cobra.Command {
	var (
		facilitator string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "recalculate",
		Short: "Recalculate stored competency statuses",
		Long:  "Rescores stored records and updates suggested statuses. Manual statuses are never changed. Recalculates every facilitator when --facilitator is omitted.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			outFormat, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			var facilitatorID uuid.UUID
			if facilitator != "" {
				facilitatorID, err = uuid.Parse(facilitator)
				if err != nil {
					return fmt.Errorf("invalid facilitator ID %q: %w", facilitator, err)
				}
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			engine, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			runCtx := cmdContext(cmd)
			return ctx.withDB(runCtx, func(database *db.DB) error {
				svc := progress.NewService(database, engine, logger, cfg.MaxConcurrency)

				if facilitatorID == uuid.Nil {
					completed, err := svc.RecalculateAll(runCtx)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Recalculated %d facilitators\n", completed)
					return nil
				}

				rows, err := svc.Recalculate(runCtx, facilitatorID)
				if err != nil {
					return err
				}
				return report.WriteProgress(cmd.OutOrStdout(), rows, outFormat)
			})
		},
	}

	cmd.Flags().StringVar(&facilitator, "facilitator", "", "Facilitator ID (default: all facilitators)")
	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatTable), "Output format: table or json")
	return cmd
}
