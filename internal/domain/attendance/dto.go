package attendance

import (
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type MarkAttendanceRequest struct {
	EmployeeID int64  `json:"employee_id"`
	Date       string `json:"date"`   // YYYY-MM-DD
	Status     string `json:"status"` // Present, Absent, On Leave, Half Day
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(strings.TrimSpace(r.Date)); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	} else if _, ok := ParseStatus(r.Status); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + statusList(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Attendance converts a validated request into the record to persist.
func (r *MarkAttendanceRequest) Attendance() Attendance {
	date, _ := validator.IsValidDate(strings.TrimSpace(r.Date))
	status, _ := ParseStatus(r.Status)
	return Attendance{
		EmployeeID: r.EmployeeID,
		Date:       Day(date),
		Status:     status,
	}
}

// ListAttendanceQuery carries the raw query-string filters.
type ListAttendanceQuery struct {
	EmployeeID string `json:"employee_id,omitempty"`
	DateFrom   string `json:"date_from,omitempty"` // YYYY-MM-DD, inclusive
	DateTo     string `json:"date_to,omitempty"`   // YYYY-MM-DD, inclusive
}

// Filter validates the query and returns its parsed form.
func (q ListAttendanceQuery) Filter() (AttendanceFilter, error) {
	var errs validator.ValidationErrors
	var filter AttendanceFilter

	if !validator.IsEmpty(q.EmployeeID) {
		id, err := strconv.ParseInt(strings.TrimSpace(q.EmployeeID), 10, 64)
		if err != nil || id <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_id",
				Message: "employee_id must be a positive integer",
			})
		} else {
			filter.EmployeeID = &id
		}
	}

	if !validator.IsEmpty(q.DateFrom) {
		if d, valid := validator.IsValidDate(strings.TrimSpace(q.DateFrom)); valid {
			d = Day(d)
			filter.DateFrom = &d
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "date_from",
				Message: "date_from must be in YYYY-MM-DD format",
			})
		}
	}

	if !validator.IsEmpty(q.DateTo) {
		if d, valid := validator.IsValidDate(strings.TrimSpace(q.DateTo)); valid {
			d = Day(d)
			filter.DateTo = &d
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "date_to",
				Message: "date_to must be in YYYY-MM-DD format",
			})
		}
	}

	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from must not be after date_to",
		})
	}

	if len(errs) > 0 {
		return AttendanceFilter{}, errs
	}

	return filter, nil
}

type AttendanceResponse struct {
	ID         int64                      `json:"id"`
	EmployeeID int64                      `json:"employee_id"`
	Date       string                     `json:"date"`
	Status     string                     `json:"status"`
	CreatedAt  string                     `json:"created_at"`
	UpdatedAt  string                     `json:"updated_at"`
	Employee   *employee.EmployeeSnapshot `json:"employee,omitempty"`
}

// MarkAttendanceResult reports whether MarkAttendance inserted or updated.
type MarkAttendanceResult struct {
	Attendance AttendanceResponse
	Created    bool
}

func NewAttendanceResponse(att Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         att.ID,
		EmployeeID: att.EmployeeID,
		Date:       att.Date.Format(validator.DateLayout),
		Status:     string(att.Status),
		CreatedAt:  att.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  att.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if att.Employee != nil {
		resp.Employee = &employee.EmployeeSnapshot{
			ID:         att.Employee.ID,
			EmployeeID: att.Employee.EmployeeID,
			FullName:   att.Employee.FullName,
			Email:      att.Employee.Email,
			Department: att.Employee.Department,
		}
	}
	return resp
}

func statusList() string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
