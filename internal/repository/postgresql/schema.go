package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrms-lite/internal/pkg/database"
)

// Constraint names are matched in errors.go; keep them in sync.
const schema = `
CREATE TABLE IF NOT EXISTS employees (
	id          BIGSERIAL    PRIMARY KEY,
	employee_id VARCHAR(50)  NOT NULL,
	full_name   VARCHAR(100) NOT NULL,
	email       VARCHAR(255) NOT NULL,
	department  VARCHAR(100) NOT NULL,
	created_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
	CONSTRAINT employees_employee_id_key UNIQUE (employee_id),
	CONSTRAINT employees_email_key UNIQUE (email)
);

CREATE TABLE IF NOT EXISTS attendances (
	id          BIGSERIAL   PRIMARY KEY,
	employee_id BIGINT      NOT NULL,
	date        DATE        NOT NULL,
	status      VARCHAR(20) NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT attendances_employee_id_fkey FOREIGN KEY (employee_id)
		REFERENCES employees (id) ON DELETE CASCADE,
	CONSTRAINT attendances_employee_id_date_key UNIQUE (employee_id, date),
	CONSTRAINT attendances_status_check
		CHECK (status IN ('Present', 'Absent', 'On Leave', 'Half Day'))
);

CREATE INDEX IF NOT EXISTS idx_attendances_date ON attendances (date DESC);
CREATE INDEX IF NOT EXISTS idx_attendances_status_employee ON attendances (status, employee_id);
`

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
