package payroll

import "errors"

var (
	ErrPayrollNotFound         = errors.New("payroll entry not found")
	ErrIncompletePayrollExists = errors.New("employee already has an incomplete payroll entry")
	ErrInvalidPeriod           = errors.New("invalid payroll period")
	ErrPayrollNotCompleted     = errors.New("payroll entry is not completed")
	ErrPayslipForbidden        = errors.New("payslip belongs to another employee")
)
