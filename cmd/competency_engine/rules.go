package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shemaobt/translation-helper-sub001/internal/report"
	"github.com/shemaobt/translation-helper-sub001/internal/rules"
)

func newRulesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and validate competency rule tables",
	}
	cmd.AddCommand(newRulesShowCommand(ctx))
	cmd.AddCommand(newRulesValidateCommand())
	return cmd
}

func newRulesShowCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the ruleset in effect",
		RunE: func(cmd *cobra.Command, _ []string) error {
			outFormat, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			engine, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			rs := engine.Rules()
			out := cmd.OutOrStdout()

			if outFormat == report.FormatJSON {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				if cfg.RulesPath == "" {
					_, err = out.Write(rules.DefaultDocument())
					return err
				}
				return report.WriteJSON(out, rs)
			}

			fmt.Fprintf(out, "Rules version: %s\n\nQualification patterns\n", rs.Version)
			patternRows := make([][]string, 0, len(rs.Patterns))
			for _, p := range rs.Patterns {
				patternRows = append(patternRows, []string{p.Name, strings.Join(p.Keywords, ", "), formatImpacts(p.Impacts)})
			}
			fmt.Fprintln(out, report.RenderTable([]string{"Pattern", "Keywords", "Impacts"}, patternRows, nil))

			fmt.Fprintln(out, "\nActivity types")
			typeRows := make([][]string, 0, len(rs.ActivityTypes))
			for _, name := range rs.ActivityTypeNames() {
				typeRows = append(typeRows, []string{name, formatImpacts(rs.ActivityTypes[name])})
			}
			fmt.Fprintln(out, report.RenderTable([]string{"Type", "Base impacts"}, typeRows, nil))

			fmt.Fprintln(out, "\nDescription boosts")
			boostRows := make([][]string, 0, len(rs.Boosts))
			for _, b := range rs.Boosts {
				boostRows = append(boostRows, []string{strings.Join(b.Keywords, ", "), string(b.CompetencyID), "+" + strconv.Itoa(b.Bonus)})
			}
			fmt.Fprintln(out, report.RenderTable([]string{"Keywords", "Competency", "Bonus"}, boostRows, []report.Alignment{report.AlignLeft, report.AlignLeft, report.AlignRight}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatTable), "Output format: table or json")
	return cmd
}

func newRulesValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Validate a ruleset JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := rules.LoadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ruleset valid: version %s, %d patterns, %d activity types, %d boosts\n",
				rs.Version, len(rs.Patterns), len(rs.ActivityTypes), len(rs.Boosts))
			return nil
		},
	}
}

func formatImpacts(impacts []rules.Impact) string {
	parts := make([]string, 0, len(impacts))
	for _, impact := range impacts {
		parts = append(parts, fmt.Sprintf("%s +%d", impact.CompetencyID, impact.Weight))
	}
	return strings.Join(parts, ", ")
}
