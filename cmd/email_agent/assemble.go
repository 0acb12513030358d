package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sitesmith/email-composer/internal/assembly"
	"github.com/sitesmith/email-composer/internal/output"
	"github.com/sitesmith/email-composer/internal/sections"
	"github.com/sitesmith/email-composer/internal/types"
	"github.com/spf13/cobra"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble a saved email plan into HTML and plaintext artifacts",
	Long:  "Reads an email_plan.json, fills the section templates with the planned copy, and writes the final HTML email plus its plaintext alternative.",
	RunE:  runAssemble,
}

var (
	assemblePlanFile    string
	assembleTemplateDir string
	assembleOut         string
)

func init() {
	assembleCmd.Flags().StringVarP(&assemblePlanFile, "plan", "p", "", "Path to email_plan.json (required)")
	assembleCmd.Flags().StringVarP(&assembleTemplateDir, "template-dir", "t", "templates/email", "Section template directory")
	assembleCmd.Flags().StringVarP(&assembleOut, "out", "o", "out", "Output directory")

	_ = assembleCmd.MarkFlagRequired("plan")

	rootCmd.AddCommand(assembleCmd)
}

func runAssemble(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(assemblePlanFile)
	if err != nil {
		return fmt.Errorf("failed to read email plan: %w", err)
	}

	var plan types.EmailPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return fmt.Errorf("failed to parse email plan: %w", err)
	}
	if err := plan.Validate(); err != nil {
		return fmt.Errorf("invalid email plan: %w", err)
	}

	store, err := sections.Load(assembleTemplateDir)
	if err != nil {
		return fmt.Errorf("failed to load section templates: %w", err)
	}

	html, warnings, err := assembly.Assemble(&plan, store)
	if err != nil {
		return fmt.Errorf("failed to assemble email: %w", err)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stdout, "Warning: %s\n", w)
	}

	text := assembly.PlainText(html)

	result, err := output.Write(assembleOut, plan.Subject, time.Now(), html, text)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Email generated: %s\n", result.HTMLPath)
	fmt.Fprintf(os.Stdout, "Plaintext:       %s\n", result.TextPath)

	return nil
}
