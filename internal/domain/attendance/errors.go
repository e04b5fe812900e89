package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")

	// ErrAttendanceExists is returned when the (employee, date) unique
	// constraint rejects an insert, typically because a concurrent request
	// marked the same day first.
	ErrAttendanceExists = errors.New("attendance already recorded for this employee on this date")
)
