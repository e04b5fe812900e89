package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
)

type Attendance struct {
	ID         int64
	EmployeeID int64
	Date       time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined on read; nil for rows returned by writes.
	Employee *employee.Employee
}

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusOnLeave Status = "On Leave"
	StatusHalfDay Status = "Half Day"
)

// Statuses is the closed set of attendance states, in display order.
var Statuses = []Status{StatusPresent, StatusAbsent, StatusOnLeave, StatusHalfDay}

// ParseStatus matches s against the known statuses ignoring case and
// accepting "_" or "-" in place of spaces, so "ON_LEAVE" and "on leave"
// both resolve to StatusOnLeave.
func ParseStatus(s string) (Status, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", " ", "-", " ").Replace(key)
	for _, status := range Statuses {
		if strings.ToLower(string(status)) == key {
			return status, true
		}
	}
	return "", false
}

// Day truncates t to its calendar date in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
