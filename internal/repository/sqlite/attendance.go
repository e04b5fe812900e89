package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.SQLiteDB
}

func NewAttendanceRepository(db *database.SQLiteDB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const (
	attendanceColumns             = `id, employee_id, date, status, created_at, updated_at`
	attendanceWithEmployeeColumns = `
		a.id, a.employee_id, a.date, a.status, a.created_at, a.updated_at,
		e.id, e.employee_id, e.full_name, e.email, e.department, e.created_at, e.updated_at
	`
)

type attendanceRow struct {
	date, status, createdAt, updatedAt string
}

func (r attendanceRow) apply(att *attendance.Attendance) error {
	var err error
	if att.Date, err = parseDate(r.date); err != nil {
		return err
	}
	if att.CreatedAt, err = parseTimestamp(r.createdAt); err != nil {
		return err
	}
	if att.UpdatedAt, err = parseTimestamp(r.updatedAt); err != nil {
		return err
	}
	att.Status = attendance.Status(r.status)
	return nil
}

func scanAttendance(row rowScanner) (attendance.Attendance, error) {
	var att attendance.Attendance
	var raw attendanceRow
	if err := row.Scan(&att.ID, &att.EmployeeID, &raw.date, &raw.status, &raw.createdAt, &raw.updatedAt); err != nil {
		return attendance.Attendance{}, err
	}
	if err := raw.apply(&att); err != nil {
		return attendance.Attendance{}, err
	}
	return att, nil
}

func scanAttendanceWithEmployee(row rowScanner) (attendance.Attendance, error) {
	var att attendance.Attendance
	var emp employee.Employee
	var raw attendanceRow
	var empCreatedAt, empUpdatedAt string
	err := row.Scan(
		&att.ID, &att.EmployeeID, &raw.date, &raw.status, &raw.createdAt, &raw.updatedAt,
		&emp.ID, &emp.EmployeeID, &emp.FullName, &emp.Email, &emp.Department, &empCreatedAt, &empUpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if err := raw.apply(&att); err != nil {
		return attendance.Attendance{}, err
	}
	if emp.CreatedAt, err = parseTimestamp(empCreatedAt); err != nil {
		return attendance.Attendance{}, err
	}
	if emp.UpdatedAt, err = parseTimestamp(empUpdatedAt); err != nil {
		return attendance.Attendance{}, err
	}
	att.Employee = &emp
	return att, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	now := time.Now().UTC()
	res, err := q.ExecContext(ctx, `
		INSERT INTO attendances (employee_id, date, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		newAttendance.EmployeeID,
		newAttendance.Date.Format(dateLayout),
		string(newAttendance.Status),
		formatTimestamp(now),
		formatTimestamp(now),
	)
	if err != nil {
		if domainErr := translateConstraintError(err); domainErr != nil {
			return attendance.Attendance{}, domainErr
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to read attendance ID: %w", err)
	}

	newAttendance.ID = id
	newAttendance.CreatedAt = now
	newAttendance.UpdatedAt = now
	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id int64) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceWithEmployeeColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = ?
	`

	att, err := scanAttendanceWithEmployee(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE employee_id = ? AND date = ?`

	att, err := scanAttendance(q.QueryRowContext(ctx, query, employeeID, date.Format(dateLayout)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// UpdateStatus implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateStatus(ctx context.Context, id int64, status attendance.Status) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	res, err := q.ExecContext(ctx,
		`UPDATE attendances SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), formatTimestamp(time.Now()), id,
	)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to read updated rows: %w", err)
	}
	if affected == 0 {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}

	att, err := scanAttendance(q.QueryRowContext(ctx, `SELECT `+attendanceColumns+` FROM attendances WHERE id = ?`, id))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to reload attendance: %w", err)
	}

	return att, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	var conditions []string
	var args []interface{}

	if filter.EmployeeID != nil {
		conditions = append(conditions, "a.employee_id = ?")
		args = append(args, *filter.EmployeeID)
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, "a.date >= ?")
		args = append(args, filter.DateFrom.Format(dateLayout))
	}
	if filter.DateTo != nil {
		conditions = append(conditions, "a.date <= ?")
		args = append(args, filter.DateTo.Format(dateLayout))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := `
		SELECT ` + attendanceWithEmployeeColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		` + where + `
		ORDER BY a.date DESC, a.id ASC
	`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	attendances := []attendance.Attendance{}
	for rows.Next() {
		att, err := scanAttendanceWithEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return attendances, nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, a.db)

	res, err := q.ExecContext(ctx, `DELETE FROM attendances WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read deleted rows: %w", err)
	}
	if affected == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// CountByStatus implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountByStatus(ctx context.Context, employeeID int64, status attendance.Status) (int64, error) {
	q := GetQuerier(ctx, a.db)

	var count int64
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM attendances WHERE employee_id = ? AND status = ?`,
		employeeID, string(status),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	return count, nil
}

// CountByStatusGrouped implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountByStatusGrouped(ctx context.Context, status attendance.Status) (map[int64]int64, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.QueryContext(ctx,
		`SELECT employee_id, COUNT(*) FROM attendances WHERE status = ? GROUP BY employee_id`,
		string(status),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendances by employee: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int64)
	for rows.Next() {
		var employeeID, count int64
		if err := rows.Scan(&employeeID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan attendance count: %w", err)
		}
		counts[employeeID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance counts: %w", err)
	}

	return counts, nil
}
