package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	now func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		now:                 time.Now,
	}
}

// parseDate parses YYYY-MM-DD, defaulting to today in UTC
func (s *DashboardServiceImpl) parseDate(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return attendance.Day(s.now().UTC()), nil
	}

	parsed, ok := validator.IsValidDate(date)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	return attendance.Day(parsed), nil
}

// GetSummary implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetSummary(ctx context.Context, date string) (dashboard.SummaryResponse, error) {
	day, err := s.parseDate(date)
	if err != nil {
		return dashboard.SummaryResponse{}, err
	}

	var (
		totalEmployees  int64
		totalAttendance int64
		byStatus        map[attendance.Status]int64
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		totalEmployees, err = s.DashboardRepository.CountEmployees(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		totalAttendance, err = s.DashboardRepository.CountAttendance(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		byStatus, err = s.DashboardRepository.CountByStatusOnDate(gCtx, day)
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.SummaryResponse{}, fmt.Errorf("failed to build dashboard summary: %w", err)
	}

	summary := dashboard.SummaryResponse{
		Date:                   day.Format(validator.DateLayout),
		TotalEmployees:         totalEmployees,
		TotalAttendanceRecords: totalAttendance,
		Present:                byStatus[attendance.StatusPresent],
		Absent:                 byStatus[attendance.StatusAbsent],
		OnLeave:                byStatus[attendance.StatusOnLeave],
		HalfDay:                byStatus[attendance.StatusHalfDay],
	}

	marked := summary.Present + summary.Absent + summary.OnLeave + summary.HalfDay
	summary.Unmarked = max(totalEmployees-marked, 0)
	summary.AttendanceRate = attendanceRate(summary.Present, marked)

	return summary, nil
}

// attendanceRate is present/marked as a percentage rounded to 2 places.
func attendanceRate(present, marked int64) decimal.Decimal {
	if marked == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(present).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(marked), 2)
}
