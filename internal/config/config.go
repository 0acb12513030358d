// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Content sources (mutually exclusive)
	URL    string `json:"url,omitempty"`    // Blog post URL to fetch
	Text   string `json:"text,omitempty"`   // Blog post pasted as literal text
	File   string `json:"file,omitempty"`   // Path to a blog post text file
	Prompt string `json:"prompt,omitempty"` // Free-text brief the model drafts a post from

	// Paths
	TemplateDir string `json:"template_dir,omitempty"` // Section template directory
	OutDir      string `json:"out_dir,omitempty"`      // Output directory for artifacts
	Brand       string `json:"brand,omitempty"`        // Path to brand guidelines file

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Use headless browser for JavaScript-rendered blogs
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Model overrides per tier
	ModelLite     string `json:"model_lite,omitempty"`
	ModelStandard string `json:"model_standard,omitempty"`
	ModelAdvanced string `json:"model_advanced,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// sourceCount reports how many content sources are set.
func (c *Config) sourceCount() int {
	count := 0
	for _, s := range []string{c.URL, c.Text, c.File, c.Prompt} {
		if s != "" {
			count++
		}
	}
	return count
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.sourceCount() > 1 {
		return fmt.Errorf("config error: 'url', 'text', 'file' and 'prompt' are mutually exclusive")
	}

	// Validate file paths exist (if specified)
	if c.File != "" {
		if _, err := os.Stat(c.File); os.IsNotExist(err) {
			return fmt.Errorf("config error: source file not found: %s", c.File)
		}
	}

	if c.TemplateDir != "" {
		if _, err := os.Stat(c.TemplateDir); os.IsNotExist(err) {
			return fmt.Errorf("config error: template directory not found: %s", c.TemplateDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.URL == "" {
		result.URL = defaults.URL
	}
	if result.Text == "" {
		result.Text = defaults.Text
	}
	if result.File == "" {
		result.File = defaults.File
	}
	if result.Prompt == "" {
		result.Prompt = defaults.Prompt
	}
	if result.TemplateDir == "" {
		result.TemplateDir = defaults.TemplateDir
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}
	if result.Brand == "" {
		result.Brand = defaults.Brand
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ModelLite == "" {
		result.ModelLite = defaults.ModelLite
	}
	if result.ModelStandard == "" {
		result.ModelStandard = defaults.ModelStandard
	}
	if result.ModelAdvanced == "" {
		result.ModelAdvanced = defaults.ModelAdvanced
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
