package employee

import (
	"context"
	"mime/multipart"
)

// EmployeeService defines business logic for the employee registry
type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	Get(ctx context.Context, id string) (EmployeeResponse, error)

	List(ctx context.Context, filter ListFilter) (ListEmployeesResponse, error)

	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// UpdatePhoto replaces the stored photo; the old file is removed only
	// after the new one is persisted
	UpdatePhoto(ctx context.Context, id string, photo multipart.File, header *multipart.FileHeader) (EmployeeResponse, error)

	// Delete removes the employee and any stored photo asset
	Delete(ctx context.Context, id string) error

	Counts(ctx context.Context) (DepartmentCountsResponse, error)
}
