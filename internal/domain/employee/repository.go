package employee

import (
	"context"
)

// EmployeeRepository defines data access methods for employee records.
type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)

	GetByID(ctx context.Context, id string) (Employee, error)

	GetByEmployeeCode(ctx context.Context, code string) (Employee, error)

	// List retrieves employees with filters, sorting and pagination
	List(ctx context.Context, filter ListFilter) ([]Employee, int64, error)

	Update(ctx context.Context, req UpdateEmployeeRequest) (Employee, error)

	UpdatePhoto(ctx context.Context, id string, photoPath *string) error

	Delete(ctx context.Context, id string) error

	// CountByDepartment returns the total head count and a per-department breakdown
	CountByDepartment(ctx context.Context) (int64, map[string]int64, error)
}
