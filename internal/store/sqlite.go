package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	job_type     TEXT NOT NULL,
	hours_worked REAL NOT NULL,
	pay          REAL
);
`

// SQLite is a Store backed by a local SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) the job database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) FetchTrainingRows(ctx context.Context) ([]TrainingRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT job_type, hours_worked, pay FROM jobs`)
	if err != nil {
		return nil, fmt.Errorf("failed to query training rows: %w", err)
	}
	defer rows.Close()

	var result []TrainingRow
	for rows.Next() {
		var r TrainingRow
		var pay sql.NullFloat64
		if err := rows.Scan(&r.JobType, &r.HoursWorked, &pay); err != nil {
			return nil, fmt.Errorf("failed to scan training row: %w", err)
		}
		if pay.Valid {
			v := pay.Float64
			r.Pay = &v
		}
		result = append(result, r)
	}

	return result, rows.Err()
}

func (s *SQLite) FetchAllFeatures(ctx context.Context) ([]FeatureRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, job_type, hours_worked FROM jobs`)
	if err != nil {
		return nil, fmt.Errorf("failed to query features: %w", err)
	}
	defer rows.Close()

	return scanFeatureRows(rows)
}

func (s *SQLite) FetchFeaturesByIDs(ctx context.Context, ids []int64) ([]FeatureRow, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	query := fmt.Sprintf(`SELECT id, job_type, hours_worked FROM jobs WHERE id IN (%s)`, placeholders)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query features by ids: %w", err)
	}
	defer rows.Close()

	return scanFeatureRows(rows)
}

func scanFeatureRows(rows *sql.Rows) ([]FeatureRow, error) {
	var result []FeatureRow
	for rows.Next() {
		var r FeatureRow
		if err := rows.Scan(&r.ID, &r.JobType, &r.HoursWorked); err != nil {
			return nil, fmt.Errorf("failed to scan feature row: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// InsertJob adds a job record and returns its id. Pay may be nil (unpaid).
func (s *SQLite) InsertJob(ctx context.Context, jobType string, hoursWorked float64, pay *float64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs (job_type, hours_worked, pay) VALUES (?, ?, ?)`,
		jobType, hoursWorked, nullable(pay))
	if err != nil {
		return 0, fmt.Errorf("failed to insert job: %w", err)
	}
	return res.LastInsertId()
}

// UpdateJob replaces a job record's mutable columns.
func (s *SQLite) UpdateJob(ctx context.Context, id int64, jobType string, hoursWorked float64, pay *float64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE jobs SET job_type = ?, hours_worked = ?, pay = ? WHERE id = ?`,
		jobType, hoursWorked, nullable(pay), id)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("job %d not found", id)
	}
	return nil
}

// DeleteJob removes a job record.
func (s *SQLite) DeleteJob(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

// Wipe removes every job record.
func (s *SQLite) Wipe(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM jobs`)
	if err != nil {
		return fmt.Errorf("failed to wipe jobs: %w", err)
	}
	return nil
}

// CountJobs returns the number of job records.
func (s *SQLite) CountJobs(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return n, nil
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
