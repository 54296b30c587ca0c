package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shemaobt/translation-helper-sub001/internal/logging"
	"github.com/shemaobt/translation-helper-sub001/internal/report"
	"github.com/shemaobt/translation-helper-sub001/internal/types"
)

func newScoreCommand(ctx *commandContext) *cobra.Command {
	var (
		inputPath string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a profile of qualifications and activities",
		Long:  `Reads a JSON document {"qualifications": [...], "activities": [...]} and prints the score and growth status of every competency. Nothing is stored.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outFormat, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			req, err := readScoreRequest(cmd, inputPath)
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

			assessment := engine.Assess(req.Qualifications, req.Activities)
			logger.Debug("scored profile",
				slog.Int("qualifications", len(req.Qualifications)),
				slog.Int("activities", len(req.Activities)),
				slog.String(logging.FieldRulesVersion, assessment.RulesVersion),
			)

			return report.WriteAssessment(cmd.OutOrStdout(), assessment, outFormat)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Profile JSON file, or - for stdin (required)")
	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatTable), "Output format: table or json")
	if err := cmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}

	return cmd
}

func readScoreRequest(cmd *cobra.Command, path string) (*types.ScoreRequest, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	var req types.ScoreRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse input JSON: %w", err)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	return &req, nil
}
