package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/shemaobt/translation-helper-sub001/internal/config"
	"github.com/shemaobt/translation-helper-sub001/internal/server"
)

func newTokenCommand() *cobra.Command {
	var (
		facilitator string
		admin       bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for a facilitator",
		Long:  "Signs a JWT with JWT_SECRET. Admin tokens may read and update any facilitator.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			facilitatorID, err := uuid.Parse(facilitator)
			if err != nil {
				return fmt.Errorf("invalid facilitator ID %q: %w", facilitator, err)
			}

			jwtConfig, err := config.NewJWTConfig()
			if err != nil {
				return fmt.Errorf("failed to create JWT config: %w", err)
			}

			token, err := server.NewJWTService(jwtConfig).GenerateToken(facilitatorID, admin)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&facilitator, "facilitator", "", "Facilitator ID (required)")
	cmd.Flags().BoolVar(&admin, "admin", false, "Grant access to every facilitator")
	if err := cmd.MarkFlagRequired("facilitator"); err != nil {
		panic(fmt.Sprintf("failed to mark facilitator flag as required: %v", err))
	}
	return cmd
}

func newHashKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-key <key>",
		Short: "Print the bcrypt hash of an API key for API_KEY_HASHES",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiKeys, err := config.NewAPIKeyConfig()
			if err != nil {
				return fmt.Errorf("failed to create API key config: %w", err)
			}
			hash, err := apiKeys.HashAPIKey(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
