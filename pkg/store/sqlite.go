package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gradescan/pkg/db"
	"gradescan/pkg/grade"
)

// SQLiteStore implements RunStore.
type SQLiteStore struct {
	db *db.DB
}

// NewSQLiteStore creates a new store.
func NewSQLiteStore(db *db.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Close closes the store connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun persists a run and its full series in one transaction.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, track_name, window_size, point_count,
			total_distance_m, total_time_s,
			max_grade_pct, max_grade_idx, min_grade_pct, min_grade_idx, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.TrackName, run.Window, run.Points,
		run.Distance, run.Elapsed,
		run.Max.Grade, run.Max.Index, run.Min.Grade, run.Min.Index,
		run.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_records (run_id, idx, time, elapsed_s, distance_m, elevation_m, grade_pct)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range run.Records {
		if _, err := stmt.ExecContext(ctx, run.ID, r.Index, r.Time.UTC(),
			r.Elapsed, r.Distance, r.Elevation, r.Grade); err != nil {
			return fmt.Errorf("failed to insert record %d: %w", r.Index, err)
		}
	}

	return tx.Commit()
}

// GetRun returns the run with its full series, or nil if not found.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, track_name, window_size, point_count,
			total_distance_m, total_time_s,
			max_grade_pct, max_grade_idx, min_grade_pct, min_grade_idx, created_at
		 FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT idx, time, elapsed_s, distance_m, elevation_m, grade_pct
		 FROM run_records WHERE run_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var r grade.Record
		if err := rows.Scan(&r.Index, &r.Time, &r.Elapsed, &r.Distance, &r.Elevation, &r.Grade); err != nil {
			return nil, err
		}
		run.Records = append(run.Records, r)
	}

	return run, rows.Err()
}

// ListRuns returns run summaries without their series, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, track_name, window_size, point_count,
			total_distance_m, total_time_s,
			max_grade_pct, max_grade_idx, min_grade_pct, min_grade_idx, created_at
		 FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var createdAt sql.NullTime

	err := row.Scan(
		&run.ID, &run.Source, &run.TrackName, &run.Window, &run.Points,
		&run.Distance, &run.Elapsed,
		&run.Max.Grade, &run.Max.Index, &run.Min.Grade, &run.Min.Index,
		&createdAt)
	if err != nil {
		return nil, err
	}

	if createdAt.Valid {
		run.CreatedAt = createdAt.Time.UTC()
	}

	return &run, nil
}
