package leave

import (
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// LeaveRequest is an employee-submitted time-off application. Name, position
// and department are display copies; EmployeeID is the join key.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	Name       string
	Position   string
	Department string
	LeaveType  string
	FromDate   time.Time
	ToDate     time.Time
	Reason     string
	Status     Status
	DecidedBy  *string
	DecidedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsPending reports whether the request can still be decided.
func (l *LeaveRequest) IsPending() bool {
	return l.Status == StatusPending
}
