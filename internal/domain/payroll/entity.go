package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payroll is one salary disbursement record for one employee and period.
// Name, position and department are display copies captured at creation;
// EmployeeID is the only join key.
type Payroll struct {
	ID          string
	EmployeeID  string
	Name        string
	Position    string
	Department  string
	PeriodMonth int
	PeriodYear  int

	Salary     decimal.Decimal // daily base rate at creation time
	DaysWorked int
	Overtime   decimal.Decimal
	GrossPay   decimal.Decimal

	SSS             decimal.Decimal
	PagIbig         decimal.Decimal
	PhilHealth      decimal.Decimal
	TotalDeductions decimal.Decimal

	NetPay    decimal.Decimal
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Deductions groups the statutory withholding amounts for one entry.
type Deductions struct {
	SSS        decimal.Decimal
	PagIbig    decimal.Decimal
	PhilHealth decimal.Decimal
}

func (d Deductions) Total() decimal.Decimal {
	return d.SSS.Add(d.PagIbig).Add(d.PhilHealth)
}

// Compute derives gross, total deductions and net pay from the inputs.
// gross = salary x daysWorked + overtime; net = gross - deductions.
func Compute(salary decimal.Decimal, daysWorked int, overtime decimal.Decimal, deductions Deductions) (gross, totalDeductions, net decimal.Decimal) {
	gross = salary.Mul(decimal.NewFromInt(int64(daysWorked))).Add(overtime)
	totalDeductions = deductions.Total()
	net = gross.Sub(totalDeductions)
	return gross, totalDeductions, net
}
