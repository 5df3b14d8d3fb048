// Package storage defines the report-history store used by the Glossa
// API layer. Completed analysis runs are recorded so the frontend can
// list past reports and reopen them without re-running an analysis.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a report does not exist.
var ErrNotFound = errors.New("report not found")

// Report kinds, matching the two analyzers.
const (
	ReportKindTriples  = "triples"
	ReportKindOntology = "ontology"
)

// Report is one stored analysis run: summary columns for listing plus
// the full serialized result for reopening.
type Report struct {
	ID           string          `json:"id"`
	Kind         string          `json:"kind"`   // triples | ontology
	Source       string          `json:"source"` // file path or URL that was analyzed
	SpeakerTurns int             `json:"speaker_turns"`
	Extractions  int             `json:"extractions"`
	CreatedAt    time.Time       `json:"created_at"`
	Payload      json.RawMessage `json:"payload,omitempty"` // full AnalysisResult / OntologyAnalysisResult
}

// ListOptions filters and bounds report listings.
type ListOptions struct {
	Kind  string // Filter by report kind; empty means all kinds
	Limit int    // Maximum rows to return; 0 means the store default
}

// ReportStore persists analysis reports.
// List returns summaries only (no payload), newest first.
type ReportStore interface {
	Save(ctx context.Context, report *Report) error
	Get(ctx context.Context, id string) (*Report, error)
	List(ctx context.Context, opts ListOptions) ([]Report, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, kind string) (int, error)
	Close() error
}
