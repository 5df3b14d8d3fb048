// Package handlers provides HTTP handlers and middleware for the Glossa
// analysis API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/glossahq/glossa/internal/analysis"
	"github.com/glossahq/glossa/internal/config"
	"github.com/glossahq/glossa/internal/loader"
	"github.com/glossahq/glossa/internal/storage"
	"github.com/glossahq/glossa/pkg/types"
)

// DocumentLoader loads turn documents from a path or URL.
// Satisfied by *loader.Loader.
type DocumentLoader interface {
	LoadSpeakerTurns(ctx context.Context, source string) ([]types.SpeakerTurn, error)
	LoadOntologyTurns(ctx context.Context, source string) ([]types.OntologySpeakerTurn, error)
}

// Broadcaster pushes events to connected frontends.
// Satisfied by *WebSocketHub.
type Broadcaster interface {
	Broadcast(message interface{})
}

// AnalysisHandler handles the analyze and raw-load endpoints.
// The store and hub are optional: with a nil store completed reports are
// not recorded, and with a nil hub no events are broadcast.
type AnalysisHandler struct {
	loader DocumentLoader
	store  storage.ReportStore
	hub    Broadcaster
	config *config.Config
}

// NewAnalysisHandler creates a new AnalysisHandler instance.
func NewAnalysisHandler(dl DocumentLoader, store storage.ReportStore, hub Broadcaster, cfg *config.Config) *AnalysisHandler {
	return &AnalysisHandler{
		loader: dl,
		store:  store,
		hub:    hub,
		config: cfg,
	}
}

// AnalyzeTriples handles POST /api/analyze/triples - load a flat-schema
// document, run the triple analyzer, and return the full report.
func (h *AnalysisHandler) AnalyzeTriples(w http.ResponseWriter, r *http.Request) {
	source, ok := h.parseSource(w, r)
	if !ok {
		return
	}

	turns, err := h.loader.LoadSpeakerTurns(r.Context(), source)
	if err != nil {
		respondLoadError(w, err)
		return
	}

	result := analysis.AnalyzeSpeakerTurns(turns)

	reportID := h.persistReport(r.Context(), storage.ReportKindTriples, source,
		result.GlobalStats.TotalSpeakerTurns, result.GlobalStats.TotalExtractions, result)
	h.notify(storage.ReportKindTriples, reportID, source,
		result.GlobalStats.TotalSpeakerTurns, result.GlobalStats.TotalExtractions)

	respondJSON(w, http.StatusOK, result)
}

// AnalyzeOntology handles POST /api/analyze/ontology - load an
// ontology-schema document, run the ontology analyzer, and return the
// full report.
func (h *AnalysisHandler) AnalyzeOntology(w http.ResponseWriter, r *http.Request) {
	source, ok := h.parseSource(w, r)
	if !ok {
		return
	}

	turns, err := h.loader.LoadOntologyTurns(r.Context(), source)
	if err != nil {
		respondLoadError(w, err)
		return
	}

	result := analysis.AnalyzeOntologyTurns(turns)

	reportID := h.persistReport(r.Context(), storage.ReportKindOntology, source,
		result.GlobalStats.TotalSpeakerTurns, result.GlobalStats.TotalExtractions, result)
	h.notify(storage.ReportKindOntology, reportID, source,
		result.GlobalStats.TotalSpeakerTurns, result.GlobalStats.TotalExtractions)

	respondJSON(w, http.StatusOK, result)
}

// LoadRaw handles POST /api/load/raw - return the deserialized flat
// turns without running any analysis. Used by the frontend for direct
// inspection of a document.
func (h *AnalysisHandler) LoadRaw(w http.ResponseWriter, r *http.Request) {
	source, ok := h.parseSource(w, r)
	if !ok {
		return
	}

	turns, err := h.loader.LoadSpeakerTurns(r.Context(), source)
	if err != nil {
		respondLoadError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, turns)
}

// parseSource validates the method and body and extracts the source.
// Writes the error response itself when validation fails.
func (h *AnalysisHandler) parseSource(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
		return "", false
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse request body", err)
		return "", false
	}
	if req.Source == "" {
		respondError(w, http.StatusBadRequest, "source is required", nil)
		return "", false
	}
	if loader.IsRemote(req.Source) && !h.config.Analysis.AllowRemoteSources {
		respondError(w, http.StatusBadRequest, "remote sources are disabled", nil)
		return "", false
	}

	return req.Source, true
}

// persistReport records a completed analysis in the report store.
// Persistence failures are logged, not surfaced: the analysis already
// succeeded and the caller still gets their report.
func (h *AnalysisHandler) persistReport(ctx context.Context, kind, source string, turns, extractions int, result interface{}) string {
	if h.store == nil || !h.config.Analysis.PersistReports {
		return ""
	}

	payload, err := json.Marshal(result)
	if err != nil {
		log.Printf("ERROR: failed to serialize %s report for %s: %v", kind, source, err)
		return ""
	}

	report := &storage.Report{
		ID:           fmt.Sprintf("rep:%s:%s", kind, uuid.New().String()),
		Kind:         kind,
		Source:       source,
		SpeakerTurns: turns,
		Extractions:  extractions,
		Payload:      payload,
	}
	if err := h.store.Save(ctx, report); err != nil {
		log.Printf("ERROR: failed to save %s report for %s: %v", kind, source, err)
		return ""
	}
	return report.ID
}

// notify broadcasts a completion event to connected frontends.
func (h *AnalysisHandler) notify(kind, reportID, source string, turns, extractions int) {
	if h.hub == nil {
		return
	}
	h.hub.Broadcast(AnalysisEvent{
		Type:         "analysis_completed",
		ReportID:     reportID,
		Kind:         kind,
		Source:       source,
		SpeakerTurns: turns,
		Extractions:  extractions,
	})
}

// respondLoadError maps the loader's two failure kinds onto HTTP codes:
// unreadable sources are the client's problem (bad path/URL), malformed
// documents are unprocessable.
func respondLoadError(w http.ResponseWriter, err error) {
	var readErr *loader.ReadError
	if errors.As(err, &readErr) {
		respondError(w, http.StatusBadRequest, "failed to read document", err)
		return
	}

	var parseErr *loader.ParseError
	if errors.As(err, &parseErr) {
		respondError(w, http.StatusUnprocessableEntity, "failed to parse document", err)
		return
	}

	respondError(w, http.StatusInternalServerError, "failed to load document", err)
}
