package payroll

import "context"

// PayrollRepository defines data access methods for payroll entries.
type PayrollRepository interface {
	// Create inserts a new incomplete entry. A partial unique index on
	// (employee_id) WHERE NOT completed makes concurrent creates for the
	// same employee lose deterministically with ErrIncompletePayrollExists.
	Create(ctx context.Context, entry Payroll) (Payroll, error)

	GetByID(ctx context.Context, id string) (Payroll, error)

	ListUncompleted(ctx context.Context, filter UncompletedFilter) ([]Payroll, int64, error)

	ListCompleted(ctx context.Context, filter CompletedFilter) ([]Payroll, int64, error)

	// MarkCompleted flips completed to true; already-completed entries update
	// harmlessly. Missing entries yield ErrPayrollNotFound.
	MarkCompleted(ctx context.Context, id string) (Payroll, error)

	Delete(ctx context.Context, id string) error

	HasIncomplete(ctx context.Context, employeeID string) (bool, error)

	PendingCount(ctx context.Context) (int64, error)
}
