package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"url": "https://example.com/blog/launch",
		"out_dir": "out",
		"brand": "brand/guidelines.md",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://example.com/blog/launch", cfg.URL)
	assert.Equal(t, "out", cfg.OutDir)
	assert.Equal(t, "brand/guidelines.md", cfg.Brand)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_MutuallyExclusive(t *testing.T) {
	cfg := &Config{
		URL:  "https://example.com/blog/launch",
		Text: "We shipped a thing.",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_MissingSourceFile(t *testing.T) {
	cfg := &Config{
		File: "/nonexistent/post.txt",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "source file not found")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		URL:    "https://example.com/blog/launch",
		OutDir: "out",
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		TemplateDir: "templates/email",
		OutDir:      "out",
		Brand:       "brand/guidelines.md",
		APIKey:      "default-key",
	}

	partial := Config{
		URL:    "https://example.com/blog/launch",
		OutDir: "custom-out",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "https://example.com/blog/launch", merged.URL)
	assert.Equal(t, "custom-out", merged.OutDir)

	// Default values should fill in empty fields
	assert.Equal(t, "templates/email", merged.TemplateDir)
	assert.Equal(t, "brand/guidelines.md", merged.Brand)
	assert.Equal(t, "default-key", merged.APIKey)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		URL:    "https://example.com/blog/launch",
		OutDir: "out",
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "https://example.com/blog/launch", merged.URL)
	assert.Equal(t, "out", merged.OutDir)
}
