package handlers

import (
	"net/http"

	"github.com/glossahq/glossa/internal/storage"
)

// StatsHandler handles statistics endpoint requests.
type StatsHandler struct {
	store storage.ReportStore
}

// NewStatsHandler creates a new StatsHandler instance.
func NewStatsHandler(store storage.ReportStore) *StatsHandler {
	return &StatsHandler{store: store}
}

// GetStats handles GET /api/stats - returns report-history counters.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	total, err := h.store.Count(ctx, "")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to count reports", err)
		return
	}

	triples, err := h.store.Count(ctx, storage.ReportKindTriples)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to count reports", err)
		return
	}

	ontology, err := h.store.Count(ctx, storage.ReportKindOntology)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to count reports", err)
		return
	}

	respondJSON(w, http.StatusOK, StatsResponse{
		Reports:         total,
		TriplesReports:  triples,
		OntologyReports: ontology,
	})
}
