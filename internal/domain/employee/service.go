package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// CreateEmployee creates a new active employee with a hashed PIN
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee changes the name and/or PIN of an employee
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeactivateEmployee soft deletes an employee
	DeactivateEmployee(ctx context.Context, id string) error

	// ListEmployees lists active employees, paginated unless filter.All is set
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	// Directory lists active employees for the public check-in page
	Directory(ctx context.Context) ([]DirectoryEntry, error)

	// ExportRoster renders the active roster as an Excel workbook
	ExportRoster(ctx context.Context) ([]byte, error)
}
