package attendance

import (
	"context"
	"time"
)

// AttendanceFilter is the parsed form of ListAttendanceQuery. Nil fields do not filter.
type AttendanceFilter struct {
	EmployeeID *int64
	DateFrom   *time.Time
	DateTo     *time.Time
}

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a new attendance record. A second row for the same
	// employee and date fails with ErrAttendanceExists; an unknown employee
	// fails with employee.ErrEmployeeNotFound.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID joined with its employee
	GetByID(ctx context.Context, id int64) (Attendance, error)

	// GetByEmployeeAndDate returns nil when the employee has no record for date
	GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*Attendance, error)

	// UpdateStatus overwrites the status of an existing record in place
	UpdateStatus(ctx context.Context, id int64, status Status) (Attendance, error)

	// List returns records joined with their employee, newest date first
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, error)

	Delete(ctx context.Context, id int64) error

	// CountByStatus counts one employee's records with the given status
	CountByStatus(ctx context.Context, employeeID int64, status Status) (int64, error)

	// CountByStatusGrouped counts records with the given status for every
	// employee in one grouped query. Employees with no match are absent from the map.
	CountByStatusGrouped(ctx context.Context, status Status) (map[int64]int64, error)
}
