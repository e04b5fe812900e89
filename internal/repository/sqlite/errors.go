package sqlite

import (
	"errors"
	"strings"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/mattn/go-sqlite3"
)

// translateConstraintError maps a constraint violation raised by the
// schema in schema.go to its domain error. It returns nil for anything else.
func translateConstraintError(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return nil
	}

	msg := sqliteErr.Error()
	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique:
		switch {
		case strings.Contains(msg, "employees.employee_id"):
			return employee.ErrEmployeeIDExists
		case strings.Contains(msg, "employees.email"):
			return employee.ErrEmailExists
		case strings.Contains(msg, "attendances.employee_id, attendances.date"):
			return attendance.ErrAttendanceExists
		}
	case sqlite3.ErrConstraintForeignKey:
		return employee.ErrEmployeeNotFound
	}
	return nil
}
