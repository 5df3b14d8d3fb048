package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glossahq/glossa/internal/storage"
	"github.com/glossahq/glossa/internal/storage/sqlite"
)

// newReportsTestServer wires a ReportsHandler over a temp-file store
// behind a mux so {id} path values resolve.
func newReportsTestServer(t *testing.T) (*sqlite.ReportStore, *http.ServeMux) {
	t.Helper()
	store, err := sqlite.NewReportStore(filepath.Join(t.TempDir(), "reports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	h := NewReportsHandler(store)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/reports", h.ListReports)
	mux.HandleFunc("/api/reports/{id}", h.HandleReport)
	return store, mux
}

func seedReport(t *testing.T, store *sqlite.ReportStore, id, kind string, createdAt time.Time) {
	t.Helper()
	err := store.Save(context.Background(), &storage.Report{
		ID:           id,
		Kind:         kind,
		Source:       "/data/turns.json",
		SpeakerTurns: 2,
		Extractions:  5,
		CreatedAt:    createdAt,
		Payload:      json.RawMessage(`{"global_stats":{"total_extractions":5}}`),
	})
	require.NoError(t, err)
}

func TestListReports(t *testing.T) {
	store, mux := newReportsTestServer(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedReport(t, store, "rep:triples:1", storage.ReportKindTriples, base)
	seedReport(t, store, "rep:ontology:1", storage.ReportKindOntology, base.Add(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var reports []storage.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, "rep:ontology:1", reports[0].ID)

	// Kind filter.
	req = httptest.NewRequest(http.MethodGet, "/api/reports?kind=triples", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "rep:triples:1", reports[0].ID)
}

func TestListReports_InvalidLimit(t *testing.T) {
	_, mux := newReportsTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/reports?limit=zero", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetReport_IncludesResult(t *testing.T) {
	store, mux := newReportsTestServer(t)
	seedReport(t, store, "rep:triples:1", storage.ReportKindTriples, time.Now().UTC())

	req := httptest.NewRequest(http.MethodGet, "/api/reports/rep:triples:1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "rep:triples:1", resp["id"])

	// The payload is inlined as a JSON object, not a quoted string.
	result, ok := resp["result"].(map[string]interface{})
	require.True(t, ok, "result should be an object, got %T", resp["result"])
	stats := result["global_stats"].(map[string]interface{})
	assert.Equal(t, float64(5), stats["total_extractions"])
}

func TestGetReport_NotFound(t *testing.T) {
	_, mux := newReportsTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/absent", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteReport(t *testing.T) {
	store, mux := newReportsTestServer(t)
	seedReport(t, store, "rep:triples:1", storage.ReportKindTriples, time.Now().UTC())

	req := httptest.NewRequest(http.MethodDelete, "/api/reports/rep:triples:1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Second delete reports not found.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/reports/rep:triples:1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatsHandler(t *testing.T) {
	store, err := sqlite.NewReportStore(filepath.Join(t.TempDir(), "reports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	seedReport(t, store, "a", storage.ReportKindTriples, time.Now().UTC())
	seedReport(t, store, "b", storage.ReportKindTriples, time.Now().UTC())
	seedReport(t, store, "c", storage.ReportKindOntology, time.Now().UTC())

	h := NewStatsHandler(store)
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	h.GetStats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var stats StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.Reports)
	assert.Equal(t, 2, stats.TriplesReports)
	assert.Equal(t, 1, stats.OntologyReports)
}
