package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/glossahq/glossa/internal/storage"
)

// newTestStore opens a report store on a per-test temp file. A shared
// file keeps every pooled connection on the same database; a plain
// :memory: DSN would give each new connection its own empty one.
func newTestStore(t *testing.T) *ReportStore {
	t.Helper()
	store, err := NewReportStore(filepath.Join(t.TempDir(), "reports.db"))
	if err != nil {
		t.Fatalf("NewReportStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// saveTestReport saves a minimal report and returns it.
func saveTestReport(t *testing.T, store *ReportStore, id, kind string, createdAt time.Time) *storage.Report {
	t.Helper()
	report := &storage.Report{
		ID:           id,
		Kind:         kind,
		Source:       "/data/turns.json",
		SpeakerTurns: 3,
		Extractions:  7,
		CreatedAt:    createdAt,
		Payload:      json.RawMessage(`{"global_stats":{"total_extractions":7}}`),
	}
	if err := store.Save(context.Background(), report); err != nil {
		t.Fatalf("Save(%q): %v", id, err)
	}
	return report
}

func TestReportStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved := saveTestReport(t, store, "rep-1", storage.ReportKindTriples, time.Now().UTC())

	got, err := store.Get(ctx, "rep-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Kind != saved.Kind || got.Source != saved.Source {
		t.Errorf("Get returned %+v, want %+v", got, saved)
	}
	if got.SpeakerTurns != 3 || got.Extractions != 7 {
		t.Errorf("summary columns wrong: %+v", got)
	}
	if string(got.Payload) != string(saved.Payload) {
		t.Errorf("payload = %s, want %s", got.Payload, saved.Payload)
	}
}

func TestReportStore_GetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "absent")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get(absent) = %v, want ErrNotFound", err)
	}
}

func TestReportStore_SaveUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saveTestReport(t, store, "rep-1", storage.ReportKindTriples, time.Now().UTC())
	saveTestReport(t, store, "rep-1", storage.ReportKindOntology, time.Now().UTC())

	count, err := store.Count(ctx, "")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("Count = %d after upsert, want 1", count)
	}

	got, err := store.Get(ctx, "rep-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Kind != storage.ReportKindOntology {
		t.Errorf("Kind = %q after upsert, want ontology", got.Kind)
	}
}

func TestReportStore_ListNewestFirstWithKindFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	saveTestReport(t, store, "old", storage.ReportKindTriples, base)
	saveTestReport(t, store, "new", storage.ReportKindTriples, base.Add(time.Hour))
	saveTestReport(t, store, "onto", storage.ReportKindOntology, base.Add(2*time.Hour))

	all, err := store.List(ctx, storage.ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List returned %d reports, want 3", len(all))
	}
	if all[0].ID != "onto" || all[1].ID != "new" || all[2].ID != "old" {
		t.Errorf("List order = %s,%s,%s, want onto,new,old", all[0].ID, all[1].ID, all[2].ID)
	}
	// Summaries carry no payload.
	if len(all[0].Payload) != 0 {
		t.Error("List summary included a payload")
	}

	triples, err := store.List(ctx, storage.ListOptions{Kind: storage.ReportKindTriples})
	if err != nil {
		t.Fatalf("List(kind): %v", err)
	}
	if len(triples) != 2 {
		t.Errorf("List(triples) returned %d, want 2", len(triples))
	}

	limited, err := store.List(ctx, storage.ListOptions{Limit: 1})
	if err != nil {
		t.Fatalf("List(limit): %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "onto" {
		t.Errorf("List(limit=1) = %+v, want just onto", limited)
	}
}

func TestReportStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saveTestReport(t, store, "rep-1", storage.ReportKindTriples, time.Now().UTC())

	if err := store.Delete(ctx, "rep-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "rep-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, "rep-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestReportStore_CountByKind(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saveTestReport(t, store, "a", storage.ReportKindTriples, time.Now().UTC())
	saveTestReport(t, store, "b", storage.ReportKindTriples, time.Now().UTC())
	saveTestReport(t, store, "c", storage.ReportKindOntology, time.Now().UTC())

	count, err := store.Count(ctx, storage.ReportKindTriples)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("Count(triples) = %d, want 2", count)
	}
}
