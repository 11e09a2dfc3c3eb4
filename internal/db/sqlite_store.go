package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hireloop/hireloop/internal/api"
	"github.com/hireloop/hireloop/internal/assessment"
)

// SQLiteStore persists the same records the in-memory store holds, one row
// per assessment keyed by job id. The nested section tree is stored as a
// JSON column: the engine always reads and writes whole definitions, so
// relational decomposition of sections and questions buys nothing.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

// NewStore opens a migrated sqlite-backed implementation of api.Store.
func NewStore(db *sql.DB) (api.Store, error) {
	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return NewSQLiteStore(db)
}

func (s *SQLiteStore) GetAssessmentByJob(ctx context.Context, jobID string) (*assessment.Assessment, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, job_id, title, description, sections, created_at, updated_at
        FROM assessments WHERE job_id = ?`, jobID)
	return scanAssessment(row)
}

func (s *SQLiteStore) PutAssessmentByJob(ctx context.Context, jobID string, a *assessment.Assessment) (*assessment.Assessment, error) {
	if a == nil {
		return nil, assessment.NewInvalidError("assessment required")
	}
	stored := a.Clone()
	stored.JobID = jobID

	existing, err := s.GetAssessmentByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if existing != nil {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		if stored.ID == "" {
			stored.ID = "assessment-" + jobID
		}
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = now
		}
	}
	stored.UpdatedAt = now

	sections, err := json.Marshal(stored.Sections)
	if err != nil {
		return nil, fmt.Errorf("encode sections: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO assessments (id, job_id, title, description, sections, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(job_id) DO UPDATE SET
            title = excluded.title,
            description = excluded.description,
            sections = excluded.sections,
            updated_at = excluded.updated_at`,
		stored.ID, jobID, stored.Title, stored.Description, string(sections),
		stored.CreatedAt.Format(time.RFC3339Nano), stored.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("upsert assessment: %w", err)
	}
	return s.GetAssessmentByJob(ctx, jobID)
}

func (s *SQLiteStore) AddSubmission(ctx context.Context, sub *assessment.Submission) (*assessment.Submission, error) {
	if sub == nil {
		return nil, assessment.NewInvalidError("submission required")
	}
	stored := *sub
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now()
	}
	responses, err := json.Marshal(stored.Responses)
	if err != nil {
		return nil, fmt.Errorf("encode responses: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO submissions (id, assessment_id, job_id, candidate_id, responses, completed_at, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		stored.ID, stored.AssessmentID, stored.JobID, stored.CandidateID, string(responses),
		stored.CompletedAt.Format(time.RFC3339Nano), stored.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("insert submission: %w", err)
	}
	out := stored
	return &out, nil
}

func (s *SQLiteStore) ListSubmissionsByJob(ctx context.Context, jobID string) ([]*assessment.Submission, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, assessment_id, job_id, candidate_id, responses, completed_at, created_at
        FROM submissions WHERE job_id = ? ORDER BY created_at`, jobID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	out := []*assessment.Submission{}
	for rows.Next() {
		var sub assessment.Submission
		var responses, completedAt, createdAt string
		if err := rows.Scan(&sub.ID, &sub.AssessmentID, &sub.JobID, &sub.CandidateID, &responses, &completedAt, &createdAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		if err := json.Unmarshal([]byte(responses), &sub.Responses); err != nil {
			return nil, fmt.Errorf("decode responses: %w", err)
		}
		sub.CompletedAt = parseTime(completedAt)
		sub.CreatedAt = parseTime(createdAt)
		out = append(out, &sub)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetJob(ctx context.Context, id string) (*assessment.Job, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, title, status, location, created_at FROM jobs WHERE id = ?`, id)
	var job assessment.Job
	var createdAt string
	if err := row.Scan(&job.ID, &job.Title, &job.Status, &job.Location, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	job.CreatedAt = parseTime(createdAt)
	return &job, nil
}

func (s *SQLiteStore) ListJobs(ctx context.Context) ([]*assessment.Job, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, title, status, location, created_at FROM jobs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	out := []*assessment.Job{}
	for rows.Next() {
		var job assessment.Job
		var createdAt string
		if err := rows.Scan(&job.ID, &job.Title, &job.Status, &job.Location, &createdAt); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		job.CreatedAt = parseTime(createdAt)
		out = append(out, &job)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) PutJob(ctx context.Context, job *assessment.Job) error {
	if job == nil || job.ID == "" {
		return assessment.NewInvalidError("job id required")
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO jobs (id, title, status, location, created_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            title = excluded.title,
            status = excluded.status,
            location = excluded.location`,
		job.ID, job.Title, job.Status, job.Location, job.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("upsert job: %w", err)
	}
	return nil
}

func scanAssessment(row *sql.Row) (*assessment.Assessment, error) {
	var a assessment.Assessment
	var sections, createdAt, updatedAt string
	err := row.Scan(&a.ID, &a.JobID, &a.Title, &a.Description, &sections, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan assessment: %w", err)
	}
	if err := json.Unmarshal([]byte(sections), &a.Sections); err != nil {
		return nil, fmt.Errorf("decode sections: %w", err)
	}
	a.CreatedAt = parseTime(createdAt)
	a.UpdatedAt = parseTime(updatedAt)
	return &a, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
