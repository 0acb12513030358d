package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sitesmith/email-composer/internal/ingestion"
	"github.com/sitesmith/email-composer/internal/types"
	"github.com/spf13/cobra"
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve",
	Short: "Retrieve a blog post from a URL or text file",
	Long:  "Retrieve a blog post from either a URL or a text file, extract the readable content, and write cleaned text with metadata.",
	RunE:  runRetrieve,
}

var (
	retrieveURL        string
	retrieveFile       string
	retrieveOut        string
	retrieveUseBrowser bool
	retrieveVerbose    bool
)

func init() {
	retrieveCmd.Flags().StringVarP(&retrieveURL, "url", "u", "", "URL to fetch the blog post from")
	retrieveCmd.Flags().StringVarP(&retrieveFile, "file", "f", "", "Path to text file containing the blog post")
	retrieveCmd.Flags().StringVarP(&retrieveOut, "out", "o", "", "Output directory (required)")
	retrieveCmd.Flags().BoolVar(&retrieveUseBrowser, "use-browser", false, "Use headless browser for JavaScript-rendered blogs (requires Chrome)")
	retrieveCmd.Flags().BoolVarP(&retrieveVerbose, "verbose", "v", false, "Print detailed debug information")

	_ = retrieveCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(retrieveCmd)
}

func runRetrieve(_ *cobra.Command, _ []string) error {
	// Validate mutually exclusive flags
	if retrieveURL == "" && retrieveFile == "" {
		return fmt.Errorf("either --url or --file must be provided")
	}
	if retrieveURL != "" && retrieveFile != "" {
		return fmt.Errorf("--url and --file are mutually exclusive; provide only one")
	}

	var blog *types.BlogContent
	var metadata *ingestion.Metadata
	var err error

	if retrieveURL != "" {
		blog, metadata, err = ingestion.FromURL(context.Background(), retrieveURL, &ingestion.URLOptions{
			UseBrowser: retrieveUseBrowser,
			Verbose:    retrieveVerbose,
		})
		if err != nil {
			return fmt.Errorf("failed to retrieve from URL: %w", err)
		}
	} else {
		blog, metadata, err = ingestion.FromFile(retrieveFile)
		if err != nil {
			return fmt.Errorf("failed to retrieve from file: %w", err)
		}
	}

	if err := ingestion.WriteOutput(retrieveOut, blog, metadata); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Successfully retrieved blog post\n")
	fmt.Fprintf(os.Stdout, "Cleaned text: %s/blog_post.cleaned.txt\n", retrieveOut)
	fmt.Fprintf(os.Stdout, "Metadata: %s/blog_post.meta.json\n", retrieveOut)

	return nil
}
