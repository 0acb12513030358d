// Package pipeline provides the high-level orchestration for the email generation process.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/sitesmith/email-composer/internal/assembly"
	"github.com/sitesmith/email-composer/internal/db"
	"github.com/sitesmith/email-composer/internal/fetch"
	"github.com/sitesmith/email-composer/internal/ingestion"
	"github.com/sitesmith/email-composer/internal/links"
	"github.com/sitesmith/email-composer/internal/llm"
	"github.com/sitesmith/email-composer/internal/observability"
	"github.com/sitesmith/email-composer/internal/output"
	"github.com/sitesmith/email-composer/internal/planning"
	"github.com/sitesmith/email-composer/internal/sections"
	"github.com/sitesmith/email-composer/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline.
// Exactly one of SourceURL, SourceText, SourceFile, SourcePrompt must be set.
type RunOptions struct {
	SourceURL    string
	SourceText   string
	SourceFile   string
	SourcePrompt string
	TemplateDir  string
	OutDir       string
	BrandPath    string
	APIKey       string
	UseBrowser   bool
	Verbose      bool
	DatabaseURL  string
	// LLM overrides the default model configuration. Nil means defaults.
	LLM        *llm.Config
	OnProgress ProgressCallback
}

// Result holds the outputs of a completed pipeline run
type Result struct {
	RunID    uuid.UUID
	Subject  string
	HTMLPath string
	TextPath string
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, runID uuid.UUID, step, category, message string, content any) {
	if opts.OnProgress != nil {
		event := ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			Content:  content,
		}
		if runID != uuid.Nil {
			event.RunID = runID.String()
		}
		opts.OnProgress(event)
	}
}

// ValidateSource checks that exactly one content source is configured.
func ValidateSource(opts *RunOptions) error {
	count := 0
	for _, s := range []string{opts.SourceURL, opts.SourceText, opts.SourceFile, opts.SourcePrompt} {
		if s != "" {
			count++
		}
	}
	if count == 0 {
		return fmt.Errorf("no content source: provide one of --url, --text, --file or --prompt")
	}
	if count > 1 {
		return fmt.Errorf("conflicting content sources: --url, --text, --file and --prompt are mutually exclusive")
	}
	return nil
}

// loadBrand reads the brand guidelines file. A missing or unreadable file is
// a degradation, not a failure: planning falls back to a neutral default voice.
func loadBrand(path string, verbose bool) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Warning: brand guidelines not loaded (%v), using default voice\n", err)
		return ""
	}
	if verbose {
		fmt.Printf("[VERBOSE] Loaded brand guidelines from %s (%d bytes)\n", path, len(data))
	}
	return string(data)
}

// stepRecord tracks one pipeline stage in the run_steps table.
// All methods are no-ops when no database is connected.
type stepRecord struct {
	db    *db.DB
	runID uuid.UUID
	name  string
}

func beginStep(ctx context.Context, database *db.DB, runID uuid.UUID, name, category string) *stepRecord {
	rec := &stepRecord{db: database, runID: runID, name: name}
	if database == nil || runID == uuid.Nil {
		return rec
	}
	if _, err := database.CreateRunStep(ctx, runID, &db.RunStepInput{
		Step:     name,
		Category: category,
		Status:   db.StepStatusPending,
	}); err != nil {
		rec.db = nil
		return rec
	}
	_ = database.UpdateRunStepStatus(ctx, runID, name, db.StepStatusInProgress, nil, nil)
	return rec
}

func (r *stepRecord) done(ctx context.Context) {
	if r.db == nil || r.runID == uuid.Nil {
		return
	}
	_ = r.db.UpdateRunStepStatus(ctx, r.runID, r.name, db.StepStatusCompleted, nil, nil)
}

func (r *stepRecord) fail(ctx context.Context, err error) {
	if r.db == nil || r.runID == uuid.Nil {
		return
	}
	msg := err.Error()
	_ = r.db.UpdateRunStepStatus(ctx, r.runID, r.name, db.StepStatusFailed, &msg, nil)
}

// printWarnings reports normalization and enforcement corrections. They are
// part of the progress log on every run, not just verbose ones.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Printf("Warning: %s\n", w)
	}
}

// Run orchestrates the full email generation pipeline: retrieve the post,
// load templates, decide structure, generate the plan, enforce CTA links,
// assemble the email and write the artifacts.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	startTime := time.Now()

	if err := ValidateSource(&opts); err != nil {
		return nil, err
	}

	// Initialize observability printer for verbose output
	printer := observability.NewPrinter(os.Stdout)

	// Initialize database connection if configured
	var database *db.DB
	var runID uuid.UUID
	if opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
			database = nil
		} else {
			defer database.Close()
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Connected to database\n")
			}
		}
	}

	client, err := llm.NewClient(ctx, opts.LLM, opts.APIKey)
	if err != nil {
		return nil, fmt.Errorf("creating model client failed: %w", err)
	}
	defer client.Close()

	brand := loadBrand(opts.BrandPath, opts.Verbose)

	// Step 1: Retrieve blog content (URL, literal text, file or prompt)
	var blog *types.BlogContent
	var meta *ingestion.Metadata

	switch {
	case opts.SourceURL != "":
		fmt.Printf("Step 1/7: Retrieving blog post from URL: %s...\n", opts.SourceURL)
		urlOpts := &ingestion.URLOptions{UseBrowser: opts.UseBrowser, Verbose: opts.Verbose}
		if database != nil {
			urlOpts.Fetcher = fetch.NewCachedFetcher(database, nil)
		}
		blog, meta, err = ingestion.FromURL(ctx, opts.SourceURL, urlOpts)
	case opts.SourceFile != "":
		fmt.Printf("Step 1/7: Reading blog post from file: %s...\n", opts.SourceFile)
		blog, meta, err = ingestion.FromFile(opts.SourceFile)
	case opts.SourcePrompt != "":
		fmt.Printf("Step 1/7: Drafting blog post from prompt brief...\n")
		blog, meta, err = ingestion.FromPrompt(ctx, client, opts.SourcePrompt, brand)
	default:
		fmt.Printf("Step 1/7: Cleaning pasted blog post text...\n")
		blog, meta, err = ingestion.FromText(opts.SourceText, "")
	}
	if err != nil {
		return nil, fmt.Errorf("content retrieval failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintBlogContent(blog)
	}

	// Create the run record once we have a title to name it by
	if database != nil {
		runID, err = database.CreateRun(ctx, blog.Title, opts.SourceURL)
		if err != nil {
			fmt.Printf("Warning: Failed to create database run: %v\n", err)
			runID = uuid.Nil
		} else {
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Created database run: %s\n", runID)
			}
			_ = database.SaveArtifact(ctx, runID, db.StepBlogContent, db.CategoryRetrieval, blog)
			_ = database.SaveArtifact(ctx, runID, db.StepContentMetadata, db.CategoryRetrieval, meta)
		}
	}
	emitProgress(&opts, runID, db.StepBlogContent, db.CategoryRetrieval,
		fmt.Sprintf("Retrieved %q (%d chars)", blog.Title, len(blog.Text)), nil)

	// Step 2: Load section templates
	fmt.Printf("Step 2/7: Loading section templates from %s...\n", opts.TemplateDir)
	store, err := sections.Load(opts.TemplateDir)
	if err != nil {
		return nil, failRun(ctx, database, runID, fmt.Errorf("loading section templates failed: %w", err))
	}
	available := store.Available()
	for _, id := range sections.IDs() {
		if _, ok := store.Fragment(id); !ok {
			fmt.Printf("Warning: section %q has no template in %s, unavailable this run\n", id, store.Dir())
		}
	}

	in := planning.Input{Blog: blog, Brand: brand, Available: available}

	// Step 3: Structure decision (lightweight mode)
	fmt.Printf("Step 3/7: Deciding email structure...\n")
	rec := beginStep(ctx, database, runID, db.StepStructureDecision, db.CategoryPlanning)
	structure, warnings, err := planning.GenerateStructure(ctx, client, in)
	if err != nil {
		rec.fail(ctx, err)
		return nil, failRun(ctx, database, runID, fmt.Errorf("structure decision failed: %w", err))
	}
	printWarnings(warnings)
	if opts.Verbose {
		printer.PrintStructureDecision(structure)
	}
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepStructureDecision, db.CategoryPlanning, structure)
	}
	rec.done(ctx)
	emitProgress(&opts, runID, db.StepStructureDecision, db.CategoryPlanning,
		fmt.Sprintf("Structure: %s", planning.DescribeSequence(structure.Sequence)), structure)

	// Step 4: Full content plan, seeded with the structure decision
	fmt.Printf("Step 4/7: Generating email content plan...\n")
	rec = beginStep(ctx, database, runID, db.StepEmailPlan, db.CategoryPlanning)
	rawPlan, err := client.GenerateJSONWithSchema(ctx, planning.PlanPrompt(in, structure), llm.TierAdvanced, llm.EmailPlanSchema())
	if err != nil {
		rec.fail(ctx, err)
		return nil, failRun(ctx, database, runID, fmt.Errorf("plan generation failed: %w", err))
	}
	if database != nil && runID != uuid.Nil {
		_ = database.SaveTextArtifact(ctx, runID, db.StepRawPlan, db.CategoryPlanning, rawPlan)
	}

	plan, planWarnings, err := planning.DecodePlan(rawPlan, available)
	if err != nil {
		rec.fail(ctx, err)
		return nil, failRun(ctx, database, runID, fmt.Errorf("plan decoding failed: %w", err))
	}
	printWarnings(planWarnings)
	rec.done(ctx)
	emitProgress(&opts, runID, db.StepEmailPlan, db.CategoryPlanning,
		fmt.Sprintf("Planned %d sections, subject %q", len(plan.Sequence), plan.Subject), nil)

	// Step 5: Enforce the hero CTA against the approved link directory
	fmt.Printf("Step 5/7: Enforcing CTA links...\n")
	hero, heroErr := plan.Slots.Hero()
	switch {
	case heroErr != nil:
		fmt.Printf("Warning: hero slot could not be decoded for link enforcement: %v\n", heroErr)
	case !hero.IsEmpty():
		enforced, warning := links.Enforce(hero, plan.Sequence, structure.EmailGoal)
		if warning != "" {
			fmt.Printf("Warning: %s\n", warning)
		}
		if err := plan.Slots.Set(types.SectionHero, enforced); err != nil {
			return nil, failRun(ctx, database, runID, fmt.Errorf("storing enforced hero slot failed: %w", err))
		}
	}
	if opts.Verbose {
		printer.PrintEmailPlan(plan)
	}
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepEmailPlan, db.CategoryPlanning, plan)
		_ = database.SetRunSubject(ctx, runID, plan.Subject)
	}

	// Step 6: Assemble HTML and plaintext
	fmt.Printf("Step 6/7: Assembling email HTML...\n")
	rec = beginStep(ctx, database, runID, db.StepEmailHTML, db.CategoryAssembly)
	html, asmWarnings, err := assembly.Assemble(plan, store)
	if err != nil {
		rec.fail(ctx, err)
		return nil, failRun(ctx, database, runID, fmt.Errorf("assembly failed: %w", err))
	}
	printWarnings(asmWarnings)
	text := assembly.PlainText(html)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveTextArtifact(ctx, runID, db.StepEmailHTML, db.CategoryAssembly, html)
		_ = database.SaveTextArtifact(ctx, runID, db.StepEmailText, db.CategoryAssembly, text)
	}
	rec.done(ctx)
	emitProgress(&opts, runID, db.StepEmailHTML, db.CategoryAssembly,
		fmt.Sprintf("Assembled email (%d bytes HTML)", len(html)), nil)

	// Step 7: Write output artifacts
	fmt.Printf("Step 7/7: Writing output files to %s...\n", opts.OutDir)
	written, err := output.Write(opts.OutDir, plan.Subject, startTime, html, text)
	if err != nil {
		return nil, failRun(ctx, database, runID, fmt.Errorf("writing output failed: %w", err))
	}

	if database != nil && runID != uuid.Nil {
		_ = database.CompleteRun(ctx, runID, "completed")
	}

	fmt.Printf("Done! Email written to %s\n", written.HTMLPath)
	emitProgress(&opts, runID, db.StepEmailText, db.CategoryAssembly, "Run complete", nil)

	return &Result{
		RunID:    runID,
		Subject:  plan.Subject,
		HTMLPath: written.HTMLPath,
		TextPath: written.TextPath,
	}, nil
}

// failRun marks the database run failed before returning the error unchanged.
func failRun(ctx context.Context, database *db.DB, runID uuid.UUID, err error) error {
	if database != nil && runID != uuid.Nil {
		_ = database.CompleteRun(ctx, runID, "failed")
	}
	return err
}
