// Package steps provides step definitions, dependency validation, and step execution
// metadata for the email generation pipeline.
package steps

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	dbpkg "github.com/sitesmith/email-composer/internal/db"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
	Optional     []string
}

// StepRegistry holds all step definitions. Dependencies mirror the pipeline
// order: retrieval feeds planning, planning feeds assembly.
var StepRegistry = map[string]StepDefinition{
	dbpkg.StepBlogContent: {
		Name:         dbpkg.StepBlogContent,
		Category:     dbpkg.CategoryRetrieval,
		Dependencies: []string{},
		Optional:     []string{},
	},
	dbpkg.StepContentMetadata: {
		Name:         dbpkg.StepContentMetadata,
		Category:     dbpkg.CategoryRetrieval,
		Dependencies: []string{dbpkg.StepBlogContent},
		Optional:     []string{},
	},
	dbpkg.StepStructureDecision: {
		Name:         dbpkg.StepStructureDecision,
		Category:     dbpkg.CategoryPlanning,
		Dependencies: []string{dbpkg.StepBlogContent},
		Optional:     []string{},
	},
	dbpkg.StepRawPlan: {
		Name:         dbpkg.StepRawPlan,
		Category:     dbpkg.CategoryPlanning,
		Dependencies: []string{dbpkg.StepBlogContent},
		Optional:     []string{dbpkg.StepStructureDecision},
	},
	dbpkg.StepEmailPlan: {
		Name:         dbpkg.StepEmailPlan,
		Category:     dbpkg.CategoryPlanning,
		Dependencies: []string{dbpkg.StepBlogContent},
		Optional:     []string{dbpkg.StepStructureDecision},
	},
	dbpkg.StepEmailHTML: {
		Name:         dbpkg.StepEmailHTML,
		Category:     dbpkg.CategoryAssembly,
		Dependencies: []string{dbpkg.StepEmailPlan},
		Optional:     []string{},
	},
	dbpkg.StepEmailText: {
		Name:         dbpkg.StepEmailText,
		Category:     dbpkg.CategoryAssembly,
		Dependencies: []string{dbpkg.StepEmailHTML},
		Optional:     []string{},
	},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("missing dependencies: %v", e.MissingDependencies)
}

// ValidateDependencies checks if all required dependencies for a step are completed
func ValidateDependencies(ctx context.Context, db *dbpkg.DB, runID uuid.UUID, stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string

	// Check each required dependency
	for _, dep := range def.Dependencies {
		step, err := db.GetRunStep(ctx, runID, dep)
		if err != nil {
			return fmt.Errorf("failed to check dependency %s: %w", dep, err)
		}
		if step == nil {
			missing = append(missing, dep)
			continue
		}
		if step.Status != dbpkg.StepStatusCompleted {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}

	return nil
}

// GetAvailableSteps returns steps that can be executed (dependencies met)
func GetAvailableSteps(ctx context.Context, db *dbpkg.DB, runID uuid.UUID) ([]string, error) {
	var available []string

	for stepName := range StepRegistry {
		// Check if step already exists
		existing, err := db.GetRunStep(ctx, runID, stepName)
		if err != nil {
			return nil, fmt.Errorf("failed to check step %s: %w", stepName, err)
		}
		if existing != nil && existing.Status == dbpkg.StepStatusCompleted {
			continue // Already completed
		}
		if existing != nil && existing.Status == dbpkg.StepStatusInProgress {
			continue // Currently in progress
		}

		// Check dependencies
		if err := ValidateDependencies(ctx, db, runID, stepName); err != nil {
			continue // Dependencies not met
		}

		available = append(available, stepName)
	}

	return available, nil
}

// GetBlockedSteps returns steps that are blocked (dependencies not met)
func GetBlockedSteps(ctx context.Context, db *dbpkg.DB, runID uuid.UUID) ([]string, error) {
	var blocked []string

	for stepName := range StepRegistry {
		// Check if step already exists and is not completed
		existing, err := db.GetRunStep(ctx, runID, stepName)
		if err != nil {
			return nil, fmt.Errorf("failed to check step %s: %w", stepName, err)
		}
		if existing != nil && (existing.Status == dbpkg.StepStatusCompleted || existing.Status == dbpkg.StepStatusInProgress) {
			continue // Already completed or in progress
		}

		// Check dependencies
		if err := ValidateDependencies(ctx, db, runID, stepName); err != nil {
			blocked = append(blocked, stepName)
		}
	}

	return blocked, nil
}
