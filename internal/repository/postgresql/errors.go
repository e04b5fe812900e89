package postgresql

import (
	"errors"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// translateConstraintError maps a constraint violation raised by the
// schema in schema.go to its domain error. It returns nil for anything else.
func translateConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch pgErr.Code {
	case uniqueViolation:
		switch pgErr.ConstraintName {
		case "employees_employee_id_key":
			return employee.ErrEmployeeIDExists
		case "employees_email_key":
			return employee.ErrEmailExists
		case "attendances_employee_id_date_key":
			return attendance.ErrAttendanceExists
		}
	case foreignKeyViolation:
		if pgErr.ConstraintName == "attendances_employee_id_fkey" {
			return employee.ErrEmployeeNotFound
		}
	}
	return nil
}
