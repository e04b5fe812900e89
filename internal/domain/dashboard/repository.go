package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
)

type DashboardRepository interface {
	// CountEmployees returns the number of employees
	CountEmployees(ctx context.Context) (int64, error)

	// CountAttendance returns the number of attendance records across all days
	CountAttendance(ctx context.Context) (int64, error)

	// CountByStatusOnDate returns per-status record counts for one day
	CountByStatusOnDate(ctx context.Context, date time.Time) (map[attendance.Status]int64, error)
}
