package database

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

type table struct {
	name    string
	columns string
	indexes []string
}

// Column types differ per driver: sqlite3 only parses TIMESTAMP columns
// back into time.Time, postgres keeps the zone with TIMESTAMPTZ.
var tables = []table{
	{
		name: "review_items",
		columns: `
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			item_id TEXT NOT NULL,
			repetition_count INTEGER NOT NULL DEFAULT 0,
			interval_days INTEGER NOT NULL DEFAULT 1,
			ease_factor DOUBLE PRECISION NOT NULL DEFAULT 2.5,
			last_grade INTEGER NOT NULL DEFAULT 3,
			next_review_at {{ts}} NOT NULL,
			created_at {{ts}} NOT NULL,
			updated_at {{ts}} NOT NULL,
			UNIQUE(user_id, item_id)`,
		indexes: []string{
			"CREATE INDEX IF NOT EXISTS idx_review_items_due ON review_items (next_review_at)",
		},
	},
	{
		name: "exam_records",
		columns: `
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			exam_name TEXT NOT NULL,
			subject_name TEXT NOT NULL DEFAULT '',
			total_questions INTEGER NOT NULL DEFAULT 0,
			total_correct INTEGER NOT NULL DEFAULT 0,
			total_wrong INTEGER NOT NULL DEFAULT 0,
			total_net DOUBLE PRECISION NOT NULL DEFAULT 0,
			topics TEXT NOT NULL DEFAULT '[]',
			exam_date {{ts}} NOT NULL,
			created_at {{ts}} NOT NULL`,
		indexes: []string{
			"CREATE INDEX IF NOT EXISTS idx_exam_records_user ON exam_records (user_id, exam_date)",
		},
	},
	{
		name: "question_attempts",
		columns: `
			id TEXT PRIMARY KEY,
			exam_id TEXT NOT NULL REFERENCES exam_records(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			topic TEXT NOT NULL,
			subject TEXT NOT NULL,
			user_answer TEXT,
			correct_answer TEXT NOT NULL,
			is_blank BOOLEAN NOT NULL DEFAULT FALSE,
			UNIQUE(exam_id, position)`,
	},
	{
		name: "study_tasks",
		columns: `
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			task_type TEXT NOT NULL,
			is_completed BOOLEAN NOT NULL DEFAULT FALSE,
			estimated_minutes INTEGER NOT NULL DEFAULT 0,
			created_at {{ts}} NOT NULL,
			completed_at {{ts}}`,
		indexes: []string{
			"CREATE INDEX IF NOT EXISTS idx_study_tasks_user ON study_tasks (user_id)",
		},
	},
	{
		name: "study_sessions",
		columns: `
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			start_time {{ts}} NOT NULL,
			duration_minutes INTEGER NOT NULL DEFAULT 0`,
		indexes: []string{
			"CREATE INDEX IF NOT EXISTS idx_study_sessions_user ON study_sessions (user_id, start_time)",
		},
	},
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema(db *sqlx.DB) error {
	ts := "TIMESTAMP"
	if db.DriverName() == DriverPostgres {
		ts = "TIMESTAMPTZ"
	}

	for _, t := range tables {
		ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s\n)", t.name, strings.ReplaceAll(t.columns, "{{ts}}", ts))
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", t.name, err)
		}
		for _, idx := range t.indexes {
			if _, err := db.Exec(idx); err != nil {
				return fmt.Errorf("failed to create index on %s: %w", t.name, err)
			}
		}
	}
	return nil
}
