package leave

import (
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	LeaveType string `json:"leave_type"`
	FromDate  string `json:"from_date"`
	ToDate    string `json:"to_date"`
	Reason    string `json:"reason"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "leave_type is required"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	from, fromOK := validator.IsValidDate(r.FromDate)
	if !fromOK {
		errs = append(errs, validator.ValidationError{Field: "from_date", Message: "from_date must be in YYYY-MM-DD format"})
	}
	to, toOK := validator.IsValidDate(r.ToDate)
	if !toOK {
		errs = append(errs, validator.ValidationError{Field: "to_date", Message: "to_date must be in YYYY-MM-DD format"})
	}
	if fromOK && toOK && from.After(to) {
		errs = append(errs, validator.ValidationError{Field: "from_date", Message: "from_date must not be after to_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	Department string  `json:"department"`
	LeaveType  string  `json:"leave_type"`
	FromDate   string  `json:"from_date"`
	ToDate     string  `json:"to_date"`
	Reason     string  `json:"reason"`
	Status     string  `json:"status"`
	DecidedBy  *string `json:"decided_by,omitempty"`
	DecidedAt  *string `json:"decided_at,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

type ListLeavesResponse struct {
	Leaves     []LeaveResponse `json:"leaves"`
	TotalCount int             `json:"total_count"`
}
