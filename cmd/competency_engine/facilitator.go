package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/shemaobt/translation-helper-sub001/internal/db"
	"github.com/shemaobt/translation-helper-sub001/internal/progress"
	"github.com/shemaobt/translation-helper-sub001/internal/report"
)

func newFacilitatorCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facilitator",
		Short: "Manage stored facilitators",
	}
	cmd.AddCommand(newFacilitatorCreateCommand(ctx))
	cmd.AddCommand(newFacilitatorShowCommand(ctx))
	return cmd
}

func newFacilitatorCreateCommand(ctx *commandContext) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a facilitator and print its ID",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name = strings.TrimSpace(name)
			email = strings.TrimSpace(email)
			if name == "" || email == "" {
				return fmt.Errorf("name and email are required")
			}

			runCtx := cmdContext(cmd)
			return ctx.withDB(runCtx, func(database *db.DB) error {
				f, err := database.CreateFacilitator(runCtx, name, email)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), f.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	return cmd
}

func newFacilitatorShowCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <facilitator-id>",
		Short: "Print a facilitator's competency statuses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			facilitatorID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid facilitator ID %q: %w", args[0], err)
			}

			engine, err := ctx.ensureEngine()
			if err != nil {
				return err
			}

			runCtx := cmdContext(cmd)
			return ctx.withDB(runCtx, func(database *db.DB) error {
				rows, err := progress.NewService(database, engine, nil, 1).Progress(runCtx, facilitatorID)
				if err != nil {
					return err
				}
				return report.WriteProgress(cmd.OutOrStdout(), rows, outFormat)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatTable), "Output format: table or json")
	return cmd
}
