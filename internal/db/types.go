package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents a pipeline run record
type Run struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	SourceURL   string     `json:"source_url"`
	Subject     string     `json:"subject,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ArtifactStep constants for known artifact types
const (
	StepBlogContent       = "blog_content"
	StepContentMetadata   = "content_metadata"
	StepStructureDecision = "structure_decision"
	StepRawPlan           = "raw_plan"
	StepEmailPlan         = "email_plan"
	StepEmailHTML         = "email_html"
	StepEmailText         = "email_text"
)

// Artifact category constants
const (
	CategoryRetrieval = "retrieval"
	CategoryPlanning  = "planning"
	CategoryAssembly  = "assembly"
)
