package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sitesmith/email-composer/internal/ingestion"
	"github.com/sitesmith/email-composer/internal/links"
	"github.com/sitesmith/email-composer/internal/llm"
	"github.com/sitesmith/email-composer/internal/planning"
	"github.com/sitesmith/email-composer/internal/sections"
	"github.com/sitesmith/email-composer/internal/types"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate the full email content plan for a blog post",
	Long:  "Reads a cleaned blog post and an optional structure decision, asks the model for the full content plan (subject, preview, per-section copy), enforces the CTA link allow-list, and writes the normalized plan as JSON.",
	RunE:  runPlanCmd,
}

var (
	planBlogFile      string
	planStructureFile string
	planTemplateDir   string
	planBrandPath     string
	planOut           string
	planAPIKey        string
	planVerbose       bool
)

func init() {
	planCmd.Flags().StringVarP(&planBlogFile, "blog", "b", "", "Path to cleaned blog post text file (required)")
	planCmd.Flags().StringVarP(&planStructureFile, "structure", "s", "", "Path to structure_decision.json (optional; the model decides structure inline when omitted)")
	planCmd.Flags().StringVarP(&planTemplateDir, "template-dir", "t", "templates/email", "Section template directory")
	planCmd.Flags().StringVar(&planBrandPath, "brand", "brand/guidelines.md", "Path to brand guidelines file")
	planCmd.Flags().StringVarP(&planOut, "out", "o", "", "Output directory (required)")
	planCmd.Flags().StringVar(&planAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	planCmd.Flags().BoolVarP(&planVerbose, "verbose", "v", false, "Print detailed debug information")

	_ = planCmd.MarkFlagRequired("blog")
	_ = planCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(planCmd)
}

func runPlanCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	apiKey := planAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	blog, _, err := ingestion.FromFile(planBlogFile)
	if err != nil {
		return fmt.Errorf("failed to read blog post: %w", err)
	}

	var structure *types.StructureDecision
	if planStructureFile != "" {
		data, err := os.ReadFile(planStructureFile)
		if err != nil {
			return fmt.Errorf("failed to read structure decision: %w", err)
		}
		structure = &types.StructureDecision{}
		if err := json.Unmarshal(data, structure); err != nil {
			return fmt.Errorf("failed to parse structure decision: %w", err)
		}
	}

	store, err := sections.Load(planTemplateDir)
	if err != nil {
		return fmt.Errorf("failed to load section templates: %w", err)
	}

	brand := readBrandFile(planBrandPath, planVerbose)

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	in := planning.Input{
		Blog:      blog,
		Brand:     brand,
		Available: store.Available(),
	}

	plan, warnings, err := planning.GeneratePlan(ctx, client, in, structure)
	if err != nil {
		return fmt.Errorf("failed to generate email plan: %w", err)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stdout, "Warning: %s\n", w)
	}

	// Enforce the CTA allow-list before the plan is persisted
	emailGoal := ""
	if structure != nil {
		emailGoal = structure.EmailGoal
	}
	hero, heroErr := plan.Slots.Hero()
	switch {
	case heroErr != nil:
		fmt.Fprintf(os.Stdout, "Warning: hero slot could not be decoded for link enforcement: %v\n", heroErr)
	case !hero.IsEmpty():
		enforced, warning := links.Enforce(hero, plan.Sequence, emailGoal)
		if warning != "" {
			fmt.Fprintf(os.Stdout, "Warning: %s\n", warning)
		}
		if err := plan.Slots.Set(types.SectionHero, enforced); err != nil {
			return fmt.Errorf("failed to update hero slot: %w", err)
		}
	}

	if err := os.MkdirAll(planOut, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	outPath := filepath.Join(planOut, "email_plan.json")
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal email plan: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write email plan: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Email plan: %s\n", outPath)
	fmt.Fprintf(os.Stdout, "Subject: %s\n", plan.Subject)
	fmt.Fprintf(os.Stdout, "Sections: %s\n", planning.DescribeSequence(plan.Sequence))

	return nil
}
