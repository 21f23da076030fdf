package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, id int64) (EmployeeResponse, error)

	// CreateEmployee creates a new employee (manager+ only)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee updates an existing employee (manager+ only)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes an employee together with their attendance (manager+ only)
	DeleteEmployee(ctx context.Context, id int64) error

	// ListEmployees lists employees with filters
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)

	// ActiveDirectory lists active employees for name lookup and bulk actions
	ActiveDirectory(ctx context.Context) ([]DirectoryEntry, error)
}
