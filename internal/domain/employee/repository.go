package employee

import "context"

type EmployeeRepository interface {
	// Create inserts the employee. Duplicate employee_id or email is reported
	// as ErrEmployeeIDExists or ErrEmailExists.
	Create(ctx context.Context, newEmployee Employee) (Employee, error)

	GetByID(ctx context.Context, id int64) (Employee, error)

	// ExistsByID is the cheap reference check used before writes that point at an employee.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// List returns all employees ordered by id.
	List(ctx context.Context) ([]Employee, error)

	// Delete removes the employee; attendance rows go with it (ON DELETE CASCADE).
	Delete(ctx context.Context, id int64) error
}
