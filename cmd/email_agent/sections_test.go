package main

import (
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionsCommand_ListsCatalog(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "sections")
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "command should succeed: %s", string(output))
	assert.Contains(t, string(output), "hero")
	assert.Contains(t, string(output), "six-summary-cards")
	assert.Contains(t, string(output), "footer")
	assert.Contains(t, string(output), "dynamic")
	assert.Contains(t, string(output), "static")
}

func TestSectionsCommand_TemplatePresence(t *testing.T) {
	binaryPath := getBinaryPath(t)

	templateDir := filepath.Join(t.TempDir(), "templates")
	writeTestTemplates(t, templateDir)

	cmd := exec.Command(binaryPath, "sections", "--template-dir", templateDir)
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "command should succeed: %s", string(output))
	assert.Contains(t, string(output), "[template: ok]")
	assert.NotContains(t, string(output), "[template: missing]")
}
