package payroll

import (
	"context"
	"time"
)

// PayrollService defines business logic for the payroll engine
type PayrollService interface {
	// Create computes days worked from the attendance ledger, derives gross,
	// deductions and net pay from the employee baseline and persists an
	// incomplete entry. An existing incomplete entry for the employee yields
	// ErrIncompletePayrollExists.
	Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error)

	Get(ctx context.Context, id string) (PayrollResponse, error)

	// DaysWorked counts distinct calendar days with a closed attendance
	// record in [from, to]
	DaysWorked(ctx context.Context, employeeID string, from, to time.Time) (int, error)

	MarkCompleted(ctx context.Context, id string) (PayrollResponse, error)

	Delete(ctx context.Context, id string) error

	ListUncompleted(ctx context.Context, filter UncompletedFilter) (ListPayrollsResponse, error)

	ListCompleted(ctx context.Context, filter CompletedFilter) (ListPayrollsResponse, error)

	// ListMyCompleted scopes the completed listing to the authenticated
	// employee regardless of filter input
	ListMyCompleted(ctx context.Context, filter CompletedFilter) (ListPayrollsResponse, error)

	HasIncompletePayroll(ctx context.Context, employeeID string) (bool, error)

	PendingCount(ctx context.Context) (int64, error)
}
