package main

import (
	"fmt"
	"os"

	"github.com/sitesmith/email-composer/internal/sections"
	"github.com/spf13/cobra"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Print the section catalog",
	Long:  "Lists every section the composer knows about, its category, whether the model writes copy for it, and whether a template file is present.",
	RunE:  runSections,
}

var sectionsTemplateDir string

func init() {
	sectionsCmd.Flags().StringVarP(&sectionsTemplateDir, "template-dir", "t", "", "Section template directory (optional; adds template presence to the listing)")
	rootCmd.AddCommand(sectionsCmd)
}

func runSections(_ *cobra.Command, _ []string) error {
	var store *sections.Store
	if sectionsTemplateDir != "" {
		loaded, err := sections.Load(sectionsTemplateDir)
		if err != nil {
			return fmt.Errorf("failed to load section templates: %w", err)
		}
		store = loaded
	}

	for _, id := range sections.IDs() {
		entry, _ := sections.Lookup(id)
		kind := "static"
		if entry.Dynamic {
			kind = "dynamic"
		}

		line := fmt.Sprintf("%-28s %-10s %-8s %s", entry.ID, entry.Category, kind, entry.Summary)
		if store != nil {
			if _, ok := store.Fragment(id); ok {
				line += "  [template: ok]"
			} else {
				line += "  [template: missing]"
			}
		}
		fmt.Fprintln(os.Stdout, line)
	}

	return nil
}
