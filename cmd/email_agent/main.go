// Package main provides the entry point for the Sitesmith email composer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "email_agent",
	Short: "Sitesmith email composer",
	Long:  "email_agent turns a blog post into a ready-to-send marketing email: modular HTML sections, model-written copy, allow-listed CTA links, and a plaintext alternative.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
