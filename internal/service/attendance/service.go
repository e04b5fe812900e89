package attendance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	employee.EmployeeRepository
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
	}
}

// MarkAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.MarkAttendanceResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.MarkAttendanceResult{}, err
	}
	record := req.Attendance()

	var saved attendance.Attendance
	var created bool
	err := a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		exists, err := a.EmployeeRepository.ExistsByID(txCtx, record.EmployeeID)
		if err != nil {
			return err
		}
		if !exists {
			return employee.ErrEmployeeNotFound
		}

		existing, err := a.AttendanceRepository.GetByEmployeeAndDate(txCtx, record.EmployeeID, record.Date)
		if err != nil {
			return err
		}

		if existing != nil {
			saved, err = a.AttendanceRepository.UpdateStatus(txCtx, existing.ID, record.Status)
			return err
		}

		// A concurrent insert for the same day surfaces here as ErrAttendanceExists.
		saved, err = a.AttendanceRepository.Create(txCtx, record)
		if err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return attendance.MarkAttendanceResult{}, fmt.Errorf("failed to mark attendance: %w", err)
	}

	slog.Info("attendance marked",
		"id", saved.ID,
		"employee_id", saved.EmployeeID,
		"date", saved.Date.Format("2006-01-02"),
		"status", saved.Status,
		"created", created,
	)

	return attendance.MarkAttendanceResult{
		Attendance: attendance.NewAttendanceResponse(saved),
		Created:    created,
	}, nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, query attendance.ListAttendanceQuery) ([]attendance.AttendanceResponse, error) {
	filter, err := query.Filter()
	if err != nil {
		return nil, err
	}

	if filter.EmployeeID != nil {
		exists, err := a.EmployeeRepository.ExistsByID(ctx, *filter.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("failed to check employee: %w", err)
		}
		if !exists {
			return nil, employee.ErrEmployeeNotFound
		}
	}

	records, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.NewAttendanceResponse(rec))
	}

	return responses, nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id int64) (attendance.AttendanceResponse, error) {
	rec, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return attendance.NewAttendanceResponse(rec), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id int64) error {
	err := a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		return a.AttendanceRepository.Delete(txCtx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	slog.Info("attendance deleted", "id", id)
	return nil
}
