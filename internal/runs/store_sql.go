// Package runs archives completed processing runs so staff can revisit a
// batch after the fact. The pipeline itself stays stateless; this store is a
// downstream collaborator of the result table.
package runs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/campusops/gradesheet/internal/extract"
	"github.com/campusops/gradesheet/internal/report"
)

// ErrNotFound is returned for unknown run IDs.
var ErrNotFound = errors.New("run not found")

// Run is one archived processing batch.
type Run struct {
	ID           string            `json:"id"`
	CreatedBy    string            `json:"created_by,omitempty"`
	CreatedAt    int64             `json:"created_at"`
	DocCount     int               `json:"doc_count"`
	StudentCount int               `json:"student_count"`
	Set          report.ResultSet  `json:"result"`
	Anomalies    []extract.Anomaly `json:"anomalies"`
}

// Summary is the listing view of a run, without the result rows.
type Summary struct {
	ID           string `json:"id"`
	CreatedBy    string `json:"created_by,omitempty"`
	CreatedAt    int64  `json:"created_at"`
	DocCount     int    `json:"doc_count"`
	StudentCount int    `json:"student_count"`
}

type Store interface {
	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, error)
	ListRuns(ctx context.Context, limit int) ([]Summary, error)
}

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) SaveRun(ctx context.Context, r Run) error {
	rowsJSON, err := json.Marshal(r.Set)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	anomsJSON, err := json.Marshal(r.Anomalies)
	if err != nil {
		return fmt.Errorf("marshal anomalies: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, created_by, created_at, doc_count, student_count, rows_json, anomalies_json)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		r.ID, r.CreatedBy, r.CreatedAt, r.DocCount, r.StudentCount, string(rowsJSON), string(anomsJSON))
	return err
}

func (s *SQLStore) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_by, created_at, doc_count, student_count, rows_json, anomalies_json
		 FROM runs WHERE id=$1`, id)
	var r Run
	var rowsJSON, anomsJSON string
	if err := row.Scan(&r.ID, &r.CreatedBy, &r.CreatedAt, &r.DocCount, &r.StudentCount, &rowsJSON, &anomsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, ErrNotFound
		}
		return Run{}, err
	}
	if err := json.Unmarshal([]byte(rowsJSON), &r.Set); err != nil {
		return Run{}, fmt.Errorf("unmarshal result: %w", err)
	}
	if err := json.Unmarshal([]byte(anomsJSON), &r.Anomalies); err != nil {
		return Run{}, fmt.Errorf("unmarshal anomalies: %w", err)
	}
	return r, nil
}

func (s *SQLStore) ListRuns(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_by, created_at, doc_count, student_count
		 FROM runs ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Summary, 0, limit)
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.CreatedBy, &s.CreatedAt, &s.DocCount, &s.StudentCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
