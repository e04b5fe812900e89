package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
)

type domainError struct {
	err     error
	status  int
	message string
}

// domainErrors is checked in order; the first errors.Is match wins.
var domainErrors = []domainError{
	{employee.ErrEmployeeNotFound, http.StatusNotFound, "Employee not found"},
	{employee.ErrEmployeeIDExists, http.StatusConflict, "Employee ID already exists"},
	{employee.ErrEmailExists, http.StatusConflict, "Email already registered"},
	{attendance.ErrAttendanceNotFound, http.StatusNotFound, "Attendance record not found"},
	{attendance.ErrAttendanceExists, http.StatusConflict, "Attendance already recorded for this employee on this date"},
}

// HandleError maps service errors to HTTP responses. Anything unrecognised is
// logged and reported as a 500 without leaking its text.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	for _, de := range domainErrors {
		if errors.Is(err, de.err) {
			Error(w, de.status, de.message, nil)
			return
		}
	}

	slog.Error("unhandled error", "error", err)
	Error(w, http.StatusInternalServerError, "An unexpected error occurred", nil)
}
