package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sitesmith/email-composer/internal/ingestion"
	"github.com/sitesmith/email-composer/internal/llm"
	"github.com/sitesmith/email-composer/internal/planning"
	"github.com/sitesmith/email-composer/internal/sections"
	"github.com/spf13/cobra"
)

var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Decide the section structure for a blog post",
	Long:  "Reads a cleaned blog post, asks the model which sections the email should use and in what order, and writes the normalized structure decision as JSON.",
	RunE:  runStructure,
}

var (
	structureBlogFile    string
	structureTemplateDir string
	structureBrandPath   string
	structureOut         string
	structureAPIKey      string
	structureVerbose     bool
)

func init() {
	structureCmd.Flags().StringVarP(&structureBlogFile, "blog", "b", "", "Path to cleaned blog post text file (required)")
	structureCmd.Flags().StringVarP(&structureTemplateDir, "template-dir", "t", "templates/email", "Section template directory")
	structureCmd.Flags().StringVar(&structureBrandPath, "brand", "brand/guidelines.md", "Path to brand guidelines file")
	structureCmd.Flags().StringVarP(&structureOut, "out", "o", "", "Output directory (required)")
	structureCmd.Flags().StringVar(&structureAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	structureCmd.Flags().BoolVarP(&structureVerbose, "verbose", "v", false, "Print detailed debug information")

	_ = structureCmd.MarkFlagRequired("blog")
	_ = structureCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(structureCmd)
}

func runStructure(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	apiKey := structureAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	blog, _, err := ingestion.FromFile(structureBlogFile)
	if err != nil {
		return fmt.Errorf("failed to read blog post: %w", err)
	}

	store, err := sections.Load(structureTemplateDir)
	if err != nil {
		return fmt.Errorf("failed to load section templates: %w", err)
	}

	brand := readBrandFile(structureBrandPath, structureVerbose)

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

	decision, warnings, err := planning.GenerateStructure(ctx, client, in)
	if err != nil {
		return fmt.Errorf("failed to generate structure decision: %w", err)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stdout, "Warning: %s\n", w)
	}

	if err := os.MkdirAll(structureOut, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	outPath := filepath.Join(structureOut, "structure_decision.json")
	data, err := json.MarshalIndent(decision, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal structure decision: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write structure decision: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Structure decision: %s\n", outPath)
	fmt.Fprintf(os.Stdout, "Sections: %s\n", planning.DescribeSequence(decision.Sequence))

	return nil
}

// readBrandFile loads brand guidelines for the standalone step commands.
// A missing file is not fatal; the model falls back to a neutral voice.
func readBrandFile(path string, verbose bool) string {
	content, err := os.ReadFile(path)
	if err != nil {
		if verbose {
			fmt.Fprintf(os.Stdout, "Warning: brand guidelines not loaded (%v), using default voice\n", err)
		}
		return ""
	}
	return string(content)
}
