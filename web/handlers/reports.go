package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/glossahq/glossa/internal/storage"
)

// ReportsHandler serves the stored report history.
type ReportsHandler struct {
	store storage.ReportStore
}

// NewReportsHandler creates a new ReportsHandler instance.
func NewReportsHandler(store storage.ReportStore) *ReportsHandler {
	return &ReportsHandler{store: store}
}

// ListReports handles GET /api/reports - report summaries, newest first.
// Supports "kind" (triples|ontology) and "limit" query parameters.
func (h *ReportsHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	opts := storage.ListOptions{
		Kind: r.URL.Query().Get("kind"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			respondError(w, http.StatusBadRequest, "invalid limit", err)
			return
		}
		opts.Limit = limit
	}

	reports, err := h.store.List(r.Context(), opts)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list reports", err)
		return
	}

	respondJSON(w, http.StatusOK, reports)
}

// HandleReport handles GET and DELETE on /api/reports/{id}.
// GET returns the stored report with its full payload inlined so the
// frontend can reopen it without re-running the analysis.
func (h *ReportsHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "report ID is required", nil)
		return
	}

	switch r.Method {
	case http.MethodGet:
		report, err := h.store.Get(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "report not found", err)
			return
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to get report", err)
			return
		}
		respondJSON(w, http.StatusOK, reportResponse(report))

	case http.MethodDelete:
		err := h.store.Delete(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "report not found", err)
			return
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to delete report", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"deleted": id})

	default:
		respondError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	}
}

// reportResponse shapes a stored report for the API: summary fields plus
// the payload as raw JSON rather than a quoted blob.
func reportResponse(report *storage.Report) map[string]interface{} {
	return map[string]interface{}{
		"id":            report.ID,
		"kind":          report.Kind,
		"source":        report.Source,
		"speaker_turns": report.SpeakerTurns,
		"extractions":   report.Extractions,
		"created_at":    report.CreatedAt,
		"result":        json.RawMessage(report.Payload),
	}
}
