package leave

import (
	"context"
)

// LeaveRequestRepository defines data access methods for leave requests.
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)

	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)

	ListAll(ctx context.Context) ([]LeaveRequest, error)

	// Decide transitions a pending request to approved or rejected. Deciding
	// a non-pending request yields ErrLeaveAlreadyDecided; the update is
	// conditional on status = pending so concurrent decisions cannot both win.
	Decide(ctx context.Context, id string, outcome Status, decidedBy string) (LeaveRequest, error)
}
