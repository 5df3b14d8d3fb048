// Package sqlite provides the default SQLite implementation of the
// report store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/glossahq/glossa/internal/storage"
)

// Schema is the report-history schema, applied on open. All statements
// are idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS reports (
	id            TEXT PRIMARY KEY,
	kind          TEXT NOT NULL,
	source        TEXT NOT NULL,
	speaker_turns INTEGER NOT NULL DEFAULT 0,
	extractions   INTEGER NOT NULL DEFAULT 0,
	created_at    TIMESTAMP NOT NULL,
	payload       BLOB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reports_kind ON reports(kind);
CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at DESC);
`

// defaultListLimit bounds List when the caller does not set one.
const defaultListLimit = 50

// ReportStore implements storage.ReportStore using SQLite.
type ReportStore struct {
	db *sql.DB
}

// NewReportStore opens (creating if necessary) a SQLite report store at
// dsn and applies the schema. WAL mode is enabled so reads during a save
// do not block.
func NewReportStore(dsn string) (*ReportStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to configure database: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to apply schema: %w", err)
	}

	return &ReportStore{db: db}, nil
}

// GetDB exposes the underlying connection for tests.
func (s *ReportStore) GetDB() *sql.DB { return s.db }

// Save inserts a report, upserting on ID.
func (s *ReportStore) Save(ctx context.Context, report *storage.Report) error {
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (id, kind, source, speaker_turns, extractions, created_at, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			source = excluded.source,
			speaker_turns = excluded.speaker_turns,
			extractions = excluded.extractions,
			payload = excluded.payload
	`, report.ID, report.Kind, report.Source, report.SpeakerTurns, report.Extractions, report.CreatedAt, []byte(report.Payload))
	if err != nil {
		return fmt.Errorf("sqlite: failed to save report %s: %w", report.ID, err)
	}
	return nil
}

// Get retrieves a report with its full payload.
func (s *ReportStore) Get(ctx context.Context, id string) (*storage.Report, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, source, speaker_turns, extractions, created_at, payload
		FROM reports WHERE id = ?
	`, id)

	var r storage.Report
	var payload []byte
	err := row.Scan(&r.ID, &r.Kind, &r.Source, &r.SpeakerTurns, &r.Extractions, &r.CreatedAt, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to get report %s: %w", id, err)
	}
	r.Payload = payload
	return &r, nil
}

// List returns report summaries (no payload), newest first.
func (s *ReportStore) List(ctx context.Context, opts storage.ListOptions) ([]storage.Report, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `
		SELECT id, kind, source, speaker_turns, extractions, created_at
		FROM reports
	`
	args := []interface{}{}
	if opts.Kind != "" {
		query += " WHERE kind = ?"
		args = append(args, opts.Kind)
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := []storage.Report{}
	for rows.Next() {
		var r storage.Report
		if err := rows.Scan(&r.ID, &r.Kind, &r.Source, &r.SpeakerTurns, &r.Extractions, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan report row: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// Delete removes a report permanently.
func (s *ReportStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("sqlite: failed to delete report %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: failed to check delete result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Count returns the number of stored reports, optionally for one kind.
func (s *ReportStore) Count(ctx context.Context, kind string) (int, error) {
	var count int
	var err error
	if kind == "" {
		err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reports").Scan(&count)
	} else {
		err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reports WHERE kind = ?", kind).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("sqlite: failed to count reports: %w", err)
	}
	return count, nil
}

// Close closes the underlying database.
func (s *ReportStore) Close() error {
	return s.db.Close()
}
