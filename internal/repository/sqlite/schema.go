package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/pkg/database"
)

// Dates are stored as YYYY-MM-DD text and timestamps as RFC 3339 text, so
// range filters and ordering compare lexically.
const schema = `
CREATE TABLE IF NOT EXISTS employees (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	employee_id TEXT NOT NULL UNIQUE,
	full_name   TEXT NOT NULL,
	email       TEXT NOT NULL UNIQUE,
	department  TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS attendances (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	employee_id INTEGER NOT NULL REFERENCES employees (id) ON DELETE CASCADE,
	date        TEXT NOT NULL,
	status      TEXT NOT NULL CHECK (status IN ('Present', 'Absent', 'On Leave', 'Half Day')),
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL,
	UNIQUE (employee_id, date)
);

CREATE INDEX IF NOT EXISTS idx_attendances_date ON attendances (date DESC);
CREATE INDEX IF NOT EXISTS idx_attendances_status_employee ON attendances (status, employee_id);
`

const (
	dateLayout      = "2006-01-02"
	timestampLayout = time.RFC3339Nano
)

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *database.SQLiteDB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
