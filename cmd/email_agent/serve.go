package main

import (
	"fmt"
	"os"

	"github.com/sitesmith/email-composer/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort        int
	serveTemplateDir string
	serveBrandPath   string
	serveOutDir      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for running the email generation pipeline.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVarP(&serveTemplateDir, "template-dir", "t", "templates/email", "Section template directory")
	serveCmd.Flags().StringVar(&serveBrandPath, "brand", "brand/guidelines.md", "Path to brand guidelines file")
	serveCmd.Flags().StringVarP(&serveOutDir, "out", "o", "out", "Output directory for generated emails")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// Get database URL from environment
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	// Get API key from environment
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	cfg := server.Config{
		Port:        servePort,
		DatabaseURL: databaseURL,
		APIKey:      apiKey,
		TemplateDir: serveTemplateDir,
		BrandPath:   serveBrandPath,
		OutDir:      serveOutDir,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
