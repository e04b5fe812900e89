package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// MarkAttendance creates the employee's record for the day or, when one
	// exists, overwrites its status
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (MarkAttendanceResult, error)

	// ListAttendance retrieves attendance records with optional employee and date filters
	ListAttendance(ctx context.Context, query ListAttendanceQuery) ([]AttendanceResponse, error)

	// GetAttendance retrieves a single attendance record by ID
	GetAttendance(ctx context.Context, id int64) (AttendanceResponse, error)

	// DeleteAttendance removes an attendance record
	DeleteAttendance(ctx context.Context, id int64) error
}

// PresentDayCounter computes present-day totals fresh from the attendance table.
type PresentDayCounter interface {
	PresentDayCount(ctx context.Context, employeeID int64) (int64, error)
	PresentDayCounts(ctx context.Context) (map[int64]int64, error)
}
