package main

import (
	"fmt"
	"os"

	"github.com/sitesmith/email-composer/internal/config"
	"github.com/sitesmith/email-composer/internal/server"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an operator token for the REST API",
	Long:  "Signs a bearer token with JWT_SECRET for use against a server started with authentication enabled. The token subject identifies the operator in logs.",
	RunE:  runToken,
}

var tokenOperator string

func init() {
	tokenCmd.Flags().StringVar(&tokenOperator, "operator", "", "Operator name to embed as the token subject (required)")
	_ = tokenCmd.MarkFlagRequired("operator")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(_ *cobra.Command, _ []string) error {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to load JWT configuration: %w", err)
	}

	service := server.NewJWTService(jwtConfig)
	token, err := service.GenerateToken(tokenOperator)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Fprintln(os.Stdout, token)
	return nil
}
