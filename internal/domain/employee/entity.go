package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	EmployeeCode string
	Name         string
	Position     string
	Department   string
	Address      string
	Email        string
	// Salary is the daily base rate used by the payroll engine.
	Salary decimal.Decimal
	// Default statutory deduction amounts applied when HR runs payroll.
	SSS        decimal.Decimal
	PagIbig    decimal.Decimal
	PhilHealth decimal.Decimal
	HireDate   time.Time
	PhotoPath  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
