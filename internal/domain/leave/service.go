package leave

import (
	"context"
)

// LeaveService defines business logic for the leave tracker
type LeaveService interface {
	// Submit creates a pending request for the authenticated employee
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveResponse, error)

	// ListMine returns the authenticated employee's requests
	ListMine(ctx context.Context) (ListLeavesResponse, error)

	// ListAll returns every request (admin view)
	ListAll(ctx context.Context) (ListLeavesResponse, error)

	// Approve and Reject are one-way transitions out of pending
	Approve(ctx context.Context, id string) (LeaveResponse, error)
	Reject(ctx context.Context, id string) (LeaveResponse, error)
}
