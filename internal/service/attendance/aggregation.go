package attendance

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
)

// PresentDays derives present-day totals from the attendance table on every call.
type PresentDays struct {
	repo attendance.AttendanceRepository
}

func NewPresentDays(repo attendance.AttendanceRepository) *PresentDays {
	return &PresentDays{repo: repo}
}

var _ attendance.PresentDayCounter = (*PresentDays)(nil)

// PresentDayCount returns the number of Present records for one employee.
func (p *PresentDays) PresentDayCount(ctx context.Context, employeeID int64) (int64, error) {
	count, err := p.repo.CountByStatus(ctx, employeeID, attendance.StatusPresent)
	if err != nil {
		return 0, fmt.Errorf("failed to count present days: %w", err)
	}
	return count, nil
}

// PresentDayCounts returns present-day totals keyed by employee id. Missing
// employees have zero.
func (p *PresentDays) PresentDayCounts(ctx context.Context) (map[int64]int64, error) {
	counts, err := p.repo.CountByStatusGrouped(ctx, attendance.StatusPresent)
	if err != nil {
		return nil, fmt.Errorf("failed to count present days: %w", err)
	}
	return counts, nil
}
