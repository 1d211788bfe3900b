package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/validator"
)

type CreatePayrollRequest struct {
	EmployeeID  string           `json:"employee_id"`
	PeriodMonth int              `json:"period_month"`
	PeriodYear  int              `json:"period_year"`
	Overtime    decimal.Decimal  `json:"overtime"`
	SSS         *decimal.Decimal `json:"sss,omitempty"`
	PagIbig     *decimal.Decimal `json:"pag_ibig,omitempty"`
	PhilHealth  *decimal.Decimal `json:"phil_health,omitempty"`
}

func (r *CreatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "period_month must be between 1 and 12"})
	}
	if r.PeriodYear < 2000 || r.PeriodYear > time.Now().Year()+1 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "period_year is out of range"})
	}
	if r.Overtime.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime", Message: "overtime must be non-negative"})
	}
	for field, v := range map[string]*decimal.Decimal{"sss": r.SSS, "pag_ibig": r.PagIbig, "phil_health": r.PhilHealth} {
		if v != nil && v.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UncompletedFilter struct {
	Department string
	Page       int
	Limit      int
}

type CompletedFilter struct {
	Month        int
	Year         int
	Department   string
	EmployeeName string
	EmployeeID   string
	Page         int
	Limit        int
}

type PayrollResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	Name            string          `json:"name"`
	Position        string          `json:"position"`
	Department      string          `json:"department"`
	PeriodMonth     int             `json:"period_month"`
	PeriodYear      int             `json:"period_year"`
	Salary          decimal.Decimal `json:"salary"`
	DaysWorked      int             `json:"days_worked"`
	Overtime        decimal.Decimal `json:"overtime"`
	GrossPay        decimal.Decimal `json:"gross_pay"`
	SSS             decimal.Decimal `json:"sss"`
	PagIbig         decimal.Decimal `json:"pag_ibig"`
	PhilHealth      decimal.Decimal `json:"phil_health"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`
	Completed       bool            `json:"completed"`
	CreatedAt       string          `json:"created_at"`
}

type ListPayrollsResponse struct {
	Payrolls   []PayrollResponse `json:"payrolls"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

type IncompleteCheckResponse struct {
	HasIncompletePayroll bool `json:"has_incomplete_payroll"`
}

type PendingCountResponse struct {
	PayrollCount int64 `json:"payroll_count"`
}
