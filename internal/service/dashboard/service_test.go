package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepository struct {
	employees  int64
	records    int64
	byStatus   map[attendance.Status]int64
	err        error
	queriedDay time.Time
}

func (s *stubRepository) CountEmployees(context.Context) (int64, error) {
	return s.employees, s.err
}

func (s *stubRepository) CountAttendance(context.Context) (int64, error) {
	return s.records, nil
}

func (s *stubRepository) CountByStatusOnDate(_ context.Context, date time.Time) (map[attendance.Status]int64, error) {
	s.queriedDay = date
	return s.byStatus, nil
}

func newService(repo *stubRepository, now time.Time) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		now:                 func() time.Time { return now },
	}
}

func TestGetSummary_ComputesTotalsAndRate(t *testing.T) {
	repo := &stubRepository{
		employees: 10,
		records:   40,
		byStatus: map[attendance.Status]int64{
			attendance.StatusPresent: 2,
			attendance.StatusAbsent:  1,
		},
	}
	svc := newService(repo, time.Now())

	summary, err := svc.GetSummary(context.Background(), "2024-01-15")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-15", summary.Date)
	assert.Equal(t, int64(10), summary.TotalEmployees)
	assert.Equal(t, int64(40), summary.TotalAttendanceRecords)
	assert.Equal(t, int64(2), summary.Present)
	assert.Equal(t, int64(1), summary.Absent)
	assert.Equal(t, int64(0), summary.OnLeave)
	assert.Equal(t, int64(7), summary.Unmarked)
	assert.True(t, decimal.RequireFromString("66.67").Equal(summary.AttendanceRate), summary.AttendanceRate.String())
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), repo.queriedDay)
}

func TestGetSummary_DefaultsToTodayUTC(t *testing.T) {
	repo := &stubRepository{byStatus: map[attendance.Status]int64{}}
	now := time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("WIB", 7*3600))
	svc := newService(repo, now)

	summary, err := svc.GetSummary(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-09", summary.Date)
	assert.True(t, summary.AttendanceRate.IsZero())
}

func TestGetSummary_InvalidDate(t *testing.T) {
	svc := newService(&stubRepository{}, time.Now())

	_, err := svc.GetSummary(context.Background(), "15-01-2024")
	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "date")
}

func TestGetSummary_RepositoryError(t *testing.T) {
	boom := errors.New("boom")
	svc := newService(&stubRepository{err: boom, byStatus: map[attendance.Status]int64{}}, time.Now())

	_, err := svc.GetSummary(context.Background(), "2024-01-15")
	assert.ErrorIs(t, err, boom)
}

func TestAttendanceRate(t *testing.T) {
	assert.True(t, attendanceRate(0, 0).IsZero())
	assert.Equal(t, "100", attendanceRate(4, 4).String())
	assert.Equal(t, "33.33", attendanceRate(1, 3).String())
}
