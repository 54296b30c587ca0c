package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var flags globalFlags

	ctx := newCommandContext(&flags)

	rootCmd := &cobra.Command{
		Use:           "competency_engine",
		Short:         "Facilitator competency scoring engine",
		Long:          "Scores facilitators' qualifications and activities against the competency rule tables, tracks growth statuses and serves them over a REST API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: console or json")
	rootCmd.PersistentFlags().StringVar(&flags.rulesPath, "rules", "", "Ruleset JSON file (default: embedded rules)")

	rootCmd.AddCommand(newScoreCommand(ctx))
	rootCmd.AddCommand(newRulesCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newRecalculateCommand(ctx))
	rootCmd.AddCommand(newFacilitatorCommand(ctx))
	rootCmd.AddCommand(newTokenCommand())
	rootCmd.AddCommand(newHashKeyCommand())

	return rootCmd
}
