package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sitesmith/email-composer/internal/config"
	"github.com/sitesmith/email-composer/internal/llm"
	"github.com/sitesmith/email-composer/internal/pipeline"
	"github.com/spf13/cobra"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full email generation pipeline end-to-end",
	Long: `Orchestrates the entire email generation process: retrieval -> section catalog -> structure decision -> content plan -> link enforcement -> assembly -> output.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath    string
	runURL           string
	runText          string
	runFile          string
	runPrompt        string
	runTemplateDir   string
	runOutDir        string
	runBrand         string
	runAPIKey        string
	runUseBrowser    bool
	runVerbose       bool
	runDatabaseURL   string
	runModelLite     string
	runModelStandard string
	runModelAdvanced string
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runURL, "url", "u", "", "Blog post URL (mutually exclusive with --text, --file, --prompt)")
	runCommand.Flags().StringVar(&runText, "text", "", "Blog post pasted as literal text")
	runCommand.Flags().StringVarP(&runFile, "file", "f", "", "Path to a blog post text file")
	runCommand.Flags().StringVarP(&runPrompt, "prompt", "p", "", "Free-text brief; the model drafts a post from it first")
	runCommand.Flags().StringVarP(&runTemplateDir, "template-dir", "t", "", "Section template directory")
	runCommand.Flags().StringVarP(&runOutDir, "out", "o", "", "Output directory for the generated email")
	runCommand.Flags().StringVar(&runBrand, "brand", "", "Path to brand guidelines file")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for JavaScript-rendered blogs (requires Chrome)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for artifact persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	// Per-tier model overrides
	runCommand.Flags().StringVar(&runModelLite, "model-lite", "", "Model for lite-tier calls")
	runCommand.Flags().StringVar(&runModelStandard, "model-standard", "", "Model for standard-tier calls")
	runCommand.Flags().StringVar(&runModelAdvanced, "model-advanced", "", "Model for advanced-tier calls")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("url") {
		cfg.URL = runURL
	}
	if cmd.Flags().Changed("text") {
		cfg.Text = runText
	}
	if cmd.Flags().Changed("file") {
		cfg.File = runFile
	}
	if cmd.Flags().Changed("prompt") {
		cfg.Prompt = runPrompt
	}
	if cmd.Flags().Changed("template-dir") {
		cfg.TemplateDir = runTemplateDir
	}
	if cmd.Flags().Changed("out") {
		cfg.OutDir = runOutDir
	}
	if cmd.Flags().Changed("brand") {
		cfg.Brand = runBrand
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("model-lite") {
		cfg.ModelLite = runModelLite
	}
	if cmd.Flags().Changed("model-standard") {
		cfg.ModelStandard = runModelStandard
	}
	if cmd.Flags().Changed("model-advanced") {
		cfg.ModelAdvanced = runModelAdvanced
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		TemplateDir: "templates/email",
		OutDir:      "out",
		Brand:       "brand/guidelines.md",
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate merged config (source exclusivity, file existence)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.URL == "" && cfg.Text == "" && cfg.File == "" && cfg.Prompt == "" {
		return fmt.Errorf("one of --url, --text, --file or --prompt must be provided (via flag or config)")
	}

	// Step 5: API Key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	// Step 6: Database URL handling (optional; pipeline degrades without it)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	llmConfig := llm.DefaultConfig()
	if cfg.ModelLite != "" {
		llmConfig = llmConfig.WithModel(llm.TierLite, cfg.ModelLite)
	}
	if cfg.ModelStandard != "" {
		llmConfig = llmConfig.WithModel(llm.TierStandard, cfg.ModelStandard)
	}
	if cfg.ModelAdvanced != "" {
		llmConfig = llmConfig.WithModel(llm.TierAdvanced, cfg.ModelAdvanced)
	}

	opts := pipeline.RunOptions{
		SourceURL:    cfg.URL,
		SourceText:   cfg.Text,
		SourceFile:   cfg.File,
		SourcePrompt: cfg.Prompt,
		TemplateDir:  cfg.TemplateDir,
		OutDir:       cfg.OutDir,
		BrandPath:    cfg.Brand,
		APIKey:       cfg.APIKey,
		UseBrowser:   cfg.UseBrowser,
		Verbose:      cfg.Verbose,
		DatabaseURL:  cfg.DatabaseURL,
		LLM:          llmConfig,
	}

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "\nEmail generated: %s\n", result.HTMLPath)
	_, _ = fmt.Fprintf(os.Stdout, "Plaintext:       %s\n", result.TextPath)
	return nil
}
