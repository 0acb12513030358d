package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/sitesmith/email-composer/internal/db"
	"github.com/sitesmith/email-composer/internal/pipeline"
	"github.com/sitesmith/email-composer/internal/pipeline/steps"
	"github.com/sitesmith/email-composer/internal/sections"
)

// GenerateRequest represents the request body for /generate
type GenerateRequest struct {
	URL    string `json:"url,omitempty"`
	Text   string `json:"text,omitempty"`
	Prompt string `json:"prompt,omitempty"`
}

// GenerateResponse represents the response for /generate
type GenerateResponse struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
}

// RunResponse represents a pipeline run in API responses
type RunResponse struct {
	RunID       string `json:"run_id"`
	Title       string `json:"title"`
	SourceURL   string `json:"source_url,omitempty"`
	Subject     string `json:"subject,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	CompletedAt string `json:"completed_at,omitempty"`
}

// ArtifactResponse represents a single-step artifact response
type ArtifactResponse struct {
	RunID       string `json:"run_id"`
	Step        string `json:"step"`
	Content     any    `json:"content,omitempty"`
	TextContent string `json:"text_content,omitempty"`
}

func runResponse(run *db.Run) RunResponse {
	resp := RunResponse{
		RunID:     run.ID.String(),
		Title:     run.Title,
		SourceURL: run.SourceURL,
		Subject:   run.Subject,
		Status:    run.Status,
		CreatedAt: run.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if run.CompletedAt != nil {
		resp.CompletedAt = run.CompletedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}

// pipelineOptions builds pipeline options from a generate request.
// File sources are CLI-only: the API never reads paths off the server disk.
func (s *Server) pipelineOptions(req GenerateRequest) pipeline.RunOptions {
	return pipeline.RunOptions{
		SourceURL:    req.URL,
		SourceText:   req.Text,
		SourcePrompt: req.Prompt,
		TemplateDir:  s.templateDir,
		OutDir:       s.outDir,
		BrandPath:    s.brandPath,
		APIKey:       s.apiKey,
		DatabaseURL:  s.databaseURL,
		Verbose:      true,
	}
}

// handleGenerate starts a new pipeline run in the background
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	opts := s.pipelineOptions(req)
	if err := pipeline.ValidateSource(&opts); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Generate a preliminary run ID for the response
	// The actual run will be created in the pipeline
	preliminaryID := uuid.New().String()

	log.Printf("Starting pipeline run (preliminary ID: %s)", preliminaryID)

	// Run pipeline in background
	go func() {
		ctx := context.Background()
		if _, err := pipeline.Run(ctx, opts); err != nil {
			log.Printf("Pipeline run failed: %v", err)
		}
	}()

	s.jsonResponse(w, http.StatusAccepted, GenerateResponse{
		RunID:  preliminaryID,
		Status: "started",
	})
}

// handleGenerateStream starts a pipeline run and streams progress via SSE
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	opts := s.pipelineOptions(req)
	if err := pipeline.ValidateSource(&opts); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Setup SSE writer
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("Starting streaming pipeline run...")

	opts.OnProgress = func(event pipeline.ProgressEvent) {
		if err := sse.WriteStep(event); err != nil {
			log.Printf("Error writing SSE event: %v", err)
		}
	}

	// Run pipeline synchronously (blocking until complete)
	result, err := pipeline.Run(r.Context(), opts)
	if err != nil {
		log.Printf("Pipeline run failed: %v", err)
		sse.WriteError(err.Error())
		return
	}

	runID := ""
	if result.RunID != uuid.Nil {
		runID = result.RunID.String()
	}
	sse.WriteComplete(runID, "completed")
	log.Printf("Streaming pipeline run completed")
}

// handleListRuns returns recent pipeline runs, optionally filtered by status
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	filters := db.RunFilters{
		Status: r.URL.Query().Get("status"),
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		filters.Limit = limit
	}

	runs, err := s.db.ListRuns(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	responses := make([]RunResponse, 0, len(runs))
	for i := range runs {
		responses = append(responses, runResponse(&runs[i]))
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": responses})
}

// handleGetRun returns the status of a pipeline run
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.parseRunID(w, r)
	if !ok {
		return
	}

	run, err := s.db.GetRun(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if run == nil {
		notFound := &ErrRunNotFound{RunID: runID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, runResponse(run))
}

// handleDeleteRun deletes a run and its artifacts
func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.parseRunID(w, r)
	if !ok {
		return
	}

	if err := s.db.DeleteRun(r.Context(), runID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			s.errorResponse(w, http.StatusNotFound, "Run not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListRunSteps returns the step records for a run
func (s *Server) handleListRunSteps(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.parseRunID(w, r)
	if !ok {
		return
	}

	records, err := s.db.ListRunSteps(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	// Dependency state tells a caller which stages could be re-run next
	available, err := steps.GetAvailableSteps(r.Context(), s.db, runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	blocked, err := steps.GetBlockedSteps(r.Context(), s.db, runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"steps":     records,
		"available": available,
		"blocked":   blocked,
	})
}

// handleRunArtifacts lists artifact summaries for a run
func (s *Server) handleRunArtifacts(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.parseRunID(w, r)
	if !ok {
		return
	}

	artifacts, err := s.db.ListArtifacts(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"artifacts": artifacts})
}

// handleRunArtifactStep returns one pipeline stage's artifact for a run
func (s *Server) handleRunArtifactStep(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.parseRunID(w, r)
	if !ok {
		return
	}
	step := r.PathValue("step")

	resp := ArtifactResponse{RunID: runID.String(), Step: step}

	raw, err := s.db.GetArtifact(r.Context(), runID, step)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if len(raw) > 0 {
		var content any
		if err := json.Unmarshal(raw, &content); err == nil {
			resp.Content = content
		}
	}

	if resp.Content == nil {
		text, err := s.db.GetTextArtifact(r.Context(), runID, step)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
		resp.TextContent = text
	}

	if resp.Content == nil && resp.TextContent == "" {
		notFound := &ErrArtifactNotFound{RunID: runID, Step: step}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleRunEmailHTML serves the assembled email HTML directly
func (s *Server) handleRunEmailHTML(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.parseRunID(w, r)
	if !ok {
		return
	}

	html, err := s.db.GetEmailHTMLByRunID(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if html == "" {
		s.errorResponse(w, http.StatusNotFound, "Email HTML not found")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(html)); err != nil {
		log.Printf("Error writing HTML response: %v", err)
	}
}

// handleGetArtifact returns an artifact by ID
func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	artifactID, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid artifact ID format")
		return
	}

	artifact, err := s.db.GetArtifactByID(r.Context(), artifactID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if artifact == nil {
		s.errorResponse(w, http.StatusNotFound, "Artifact not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, artifact)
}

// sectionInfo is one catalog entry in the /sections response
type sectionInfo struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
	Dynamic  bool   `json:"dynamic"`
}

// handleSections returns the section catalog
func (s *Server) handleSections(w http.ResponseWriter, _ *http.Request) {
	var infos []sectionInfo
	for _, id := range sections.IDs() {
		entry, _ := sections.Lookup(id)
		infos = append(infos, sectionInfo{
			ID:       id,
			Category: string(entry.Category),
			Summary:  entry.Summary,
			Dynamic:  entry.Dynamic,
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"sections": infos})
}

// parseRunID parses the {id} path value, writing the error response itself.
func (s *Server) parseRunID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := r.PathValue("id")
	if idStr == "" {
		s.errorResponse(w, http.StatusBadRequest, "Run ID is required")
		return uuid.Nil, false
	}

	runID, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID format")
		return uuid.Nil, false
	}
	return runID, true
}
