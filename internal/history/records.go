package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"docdist/internal/docdist"
)

// DefaultListLimit is used by List when the caller passes a non-positive limit.
const DefaultListLimit = 20

// Record is one stored comparison.
type Record struct {
	ID        string     `json:"id"`
	RunID     string     `json:"run_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	Policy    string     `json:"policy"`
	A         DocSummary `json:"a"`
	B         DocSummary `json:"b"`
	Angle     *float64   `json:"angle,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// DocSummary captures the scalar statistics of one compared document.
type DocSummary struct {
	Name     string `json:"name"`
	Lines    int    `json:"lines"`
	Words    int    `json:"words"`
	Distinct int    `json:"distinct_words"`
}

// Defined reports whether the record carries an angle.
func (r Record) Defined() bool { return r.Angle != nil }

func summarize(p docdist.Profile) DocSummary {
	return DocSummary{Name: p.Name, Lines: p.Lines, Words: p.Words, Distinct: p.Distinct}
}

// NewRecord converts a comparison outcome into a record. A non-nil cmpErr is
// stored in place of the angle.
func NewRecord(result docdist.Result, policy string, cmpErr error) Record {
	rec := Record{
		ID:        uuid.NewString(),
		RunID:     result.RunID,
		CreatedAt: time.Now().UTC(),
		Policy:    policy,
		A:         summarize(result.A),
		B:         summarize(result.B),
	}
	if cmpErr != nil {
		rec.Error = cmpErr.Error()
		return rec
	}
	angle := result.Angle
	rec.Angle = &angle
	return rec
}

// Insert stores rec and prunes old rows past the configured limit. If only the
// prune fails, the stored record is returned together with the error.
func (s *Store) Insert(ctx context.Context, rec Record) (Record, error) {
	if strings.TrimSpace(rec.ID) == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	var angle sql.NullFloat64
	if rec.Angle != nil {
		angle = sql.NullFloat64{Float64: *rec.Angle, Valid: true}
	}

	_, err := s.execWithRetry(ctx, `INSERT INTO comparisons (
            id, run_id, created_at, policy, doc_a, doc_b,
            lines_a, lines_b, words_a, words_b, distinct_a, distinct_b,
            angle, error
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		nullString(rec.RunID),
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		rec.Policy,
		rec.A.Name, rec.B.Name,
		rec.A.Lines, rec.B.Lines,
		rec.A.Words, rec.B.Words,
		rec.A.Distinct, rec.B.Distinct,
		angle, nullString(rec.Error),
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert comparison: %w", err)
	}
	if s.keep > 0 {
		if _, err := s.Prune(ctx, s.keep); err != nil {
			return rec, fmt.Errorf("comparison %s stored: %w", rec.ID, err)
		}
	}
	return rec, nil
}

// List returns the most recent records, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	ctx = ensureContext(ctx)
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, `SELECT
            id, run_id, created_at, policy, doc_a, doc_b,
            lines_a, lines_b, words_a, words_b, distinct_a, distinct_b,
            angle, error
        FROM comparisons ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list comparisons: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comparisons: %w", err)
	}
	return records, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ensureContext(ctx), "SELECT COUNT(1) FROM comparisons").Scan(&n); err != nil {
		return 0, fmt.Errorf("count comparisons: %w", err)
	}
	return n, nil
}

// Clear removes every record and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, "DELETE FROM comparisons")
	if err != nil {
		return 0, fmt.Errorf("clear comparisons: %w", err)
	}
	return res.RowsAffected()
}

// Prune deletes all but the newest keep records.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, errors.New("prune: keep must be positive")
	}
	res, err := s.execWithRetry(ctx,
		"DELETE FROM comparisons WHERE seq NOT IN (SELECT seq FROM comparisons ORDER BY seq DESC LIMIT ?)",
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("prune comparisons: %w", err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(scanner rowScanner) (Record, error) {
	var (
		rec       Record
		runID     sql.NullString
		createdAt string
		angle     sql.NullFloat64
		errText   sql.NullString
	)
	err := scanner.Scan(
		&rec.ID, &runID, &createdAt, &rec.Policy, &rec.A.Name, &rec.B.Name,
		&rec.A.Lines, &rec.B.Lines, &rec.A.Words, &rec.B.Words,
		&rec.A.Distinct, &rec.B.Distinct,
		&angle, &errText,
	)
	if err != nil {
		return Record{}, fmt.Errorf("scan comparison: %w", err)
	}
	rec.RunID = runID.String
	rec.CreatedAt = parseTimeString(createdAt)
	if angle.Valid {
		v := angle.Float64
		rec.Angle = &v
	}
	if errText.Valid {
		rec.Error = errText.String
	}
	return rec, nil
}

func parseTimeString(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t
	}
	return time.Time{}
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
