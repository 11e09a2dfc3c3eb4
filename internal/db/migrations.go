package db

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS jobs (
        id         TEXT PRIMARY KEY,
        title      TEXT NOT NULL,
        status     TEXT NOT NULL DEFAULT '',
        location   TEXT NOT NULL DEFAULT '',
        created_at TEXT NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS assessments (
        id          TEXT PRIMARY KEY,
        job_id      TEXT NOT NULL UNIQUE,
        title       TEXT NOT NULL,
        description TEXT NOT NULL DEFAULT '',
        sections    TEXT NOT NULL DEFAULT '[]',
        created_at  TEXT NOT NULL,
        updated_at  TEXT NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS submissions (
        id            TEXT PRIMARY KEY,
        assessment_id TEXT NOT NULL,
        job_id        TEXT NOT NULL,
        candidate_id  TEXT NOT NULL,
        responses     TEXT NOT NULL DEFAULT '{}',
        completed_at  TEXT NOT NULL,
        created_at    TEXT NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS idx_submissions_job ON submissions(job_id)`,
}

// RunMigrations applies the schema. Statements are idempotent so startup can
// run them unconditionally.
func RunMigrations(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
