package employee

import "context"

type EmployeeRepository interface {
	// GetByID returns ErrEmployeeNotFound when no row matches, active or not.
	GetByID(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	// Update persists Name and PINHash of emp.
	Update(ctx context.Context, emp Employee) (Employee, error)
	Deactivate(ctx context.Context, id string) error
	// List returns active employees sorted by name and the total match count.
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	// ListActive returns every active employee sorted by name.
	ListActive(ctx context.Context) ([]Employee, error)
}
