package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// CreateEmployee validates and stores a new employee
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// GetEmployee retrieves a single employee with its present-day count
	GetEmployee(ctx context.Context, id int64) (EmployeeResponse, error)

	// ListEmployees lists every employee with its present-day count
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)

	// DeleteEmployee removes an employee and, by cascade, its attendance
	DeleteEmployee(ctx context.Context, id int64) (Employee, error)
}
