package main

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sitesmith/email-composer/internal/sections"
	"github.com/sitesmith/email-composer/internal/types"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Validate the section template directory",
	Long:  "Checks that every cataloged section has a template, that the wrapper halves are present, and that the dynamic templates carry the data-slot markers assembly fills in.",
	RunE:  runDoctor,
}

var doctorTemplateDir string

func init() {
	doctorCmd.Flags().StringVarP(&doctorTemplateDir, "template-dir", "t", "templates/email", "Section template directory")
	rootCmd.AddCommand(doctorCmd)
}

// dynamicSlotSelectors lists the markers assembly looks for in each dynamic
// template. A missing marker means the section renders verbatim at runtime.
var dynamicSlotSelectors = map[string][]string{
	types.SectionHero:         {`[data-slot="title"]`, `[data-slot="subtitle"]`, `[data-slot="cta"]`},
	types.SectionSimpleBody:   {`[data-slot="body"]`, `[data-slot="block"]`},
	types.SectionSummaryCards: {`[data-slot="card"]`, `[data-slot="card-emoji"]`, `[data-slot="card-title"]`, `[data-slot="card-description"]`},
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	store, err := sections.Load(doctorTemplateDir)
	if err != nil {
		return fmt.Errorf("failed to load section templates: %w", err)
	}

	var mu sync.Mutex
	var problems []string
	report := func(format string, args ...any) {
		mu.Lock()
		problems = append(problems, fmt.Sprintf(format, args...))
		mu.Unlock()
	}

	if strings.TrimSpace(store.WrapperOpen()) == "" {
		report("wrapper-open.html is missing or empty")
	}
	if strings.TrimSpace(store.WrapperClose()) == "" {
		report("wrapper-close.html is missing or empty")
	}

	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(4)

	for _, id := range sections.IDs() {
		g.Go(func() error {
			fragment, ok := store.Fragment(id)
			if !ok {
				report("section %q has no template file", id)
				return nil
			}
			if strings.TrimSpace(fragment) == "" {
				report("template for section %q is empty", id)
				return nil
			}

			selectors, dynamic := dynamicSlotSelectors[id]
			if !dynamic {
				return nil
			}

			doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
			if err != nil {
				report("template for section %q does not parse: %v", id, err)
				return nil
			}
			for _, selector := range selectors {
				if doc.Find(selector).Length() == 0 {
					report("template for section %q is missing %s", id, selector)
				}
			}
			if id == types.SectionSummaryCards {
				if n := doc.Find(`[data-slot="card"]`).Length(); n != 0 && n != 6 {
					report("template for section %q has %d card cells, expected 6", id, n)
				}
			}
			return nil
		})
	}

	// Checks report problems instead of failing, so Wait never errors here.
	_ = g.Wait()

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(os.Stdout, "Problem: %s\n", p)
		}
		return fmt.Errorf("template directory %s has %d problem(s)", store.Dir(), len(problems))
	}

	fmt.Fprintf(os.Stdout, "Template directory %s is healthy (%d sections)\n", store.Dir(), len(sections.IDs()))
	return nil
}
