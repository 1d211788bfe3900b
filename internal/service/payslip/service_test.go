package payslip

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayrollRepo struct {
	payroll.PayrollRepository
	entries map[string]payroll.Payroll
}

func (f *fakePayrollRepo) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	entry, ok := f.entries[id]
	if !ok {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	return entry, nil
}

func authedContext(t *testing.T, role, employeeID string) context.Context {
	t.Helper()

	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	claims := map[string]interface{}{
		"user_id": "u1",
		"role":    role,
		"type":    "access",
	}
	if employeeID != "" {
		claims["employee_id"] = employeeID
	}
	token, _, err := tokenAuth.Encode(claims)
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

func completedEntry() payroll.Payroll {
	return payroll.Payroll{
		ID:              "pr-1",
		EmployeeID:      "emp-1",
		Name:            "Jane Doe",
		Position:        "Engineer",
		Department:      "Engineering",
		PeriodMonth:     6,
		PeriodYear:      2025,
		Salary:          decimal.NewFromInt(1000),
		DaysWorked:      5,
		Overtime:        decimal.NewFromInt(500),
		GrossPay:        decimal.NewFromInt(5500),
		SSS:             decimal.NewFromInt(200),
		PagIbig:         decimal.NewFromInt(100),
		PhilHealth:      decimal.NewFromInt(150),
		TotalDeductions: decimal.NewFromInt(450),
		NetPay:          decimal.NewFromInt(5050),
		Completed:       true,
	}
}

func TestGeneratePayslip(t *testing.T) {
	entry := completedEntry()
	svc := NewPayslipService(&fakePayrollRepo{entries: map[string]payroll.Payroll{entry.ID: entry}})

	pdf, filename, err := svc.Generate(authedContext(t, "admin", ""), entry.ID)
	require.NoError(t, err)

	assert.Equal(t, "payslip-emp-1-2025-06.pdf", filename)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestGeneratePayslipOwnEntry(t *testing.T) {
	entry := completedEntry()
	svc := NewPayslipService(&fakePayrollRepo{entries: map[string]payroll.Payroll{entry.ID: entry}})

	pdf, _, err := svc.Generate(authedContext(t, "employee", entry.EmployeeID), entry.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}

func TestGeneratePayslipOtherEmployeeForbidden(t *testing.T) {
	entry := completedEntry()
	svc := NewPayslipService(&fakePayrollRepo{entries: map[string]payroll.Payroll{entry.ID: entry}})

	_, _, err := svc.Generate(authedContext(t, "employee", "emp-2"), entry.ID)
	assert.ErrorIs(t, err, payroll.ErrPayslipForbidden)

	// A token with no employee link at all is rejected too.
	_, _, err = svc.Generate(authedContext(t, "employee", ""), entry.ID)
	assert.ErrorIs(t, err, payroll.ErrPayslipForbidden)
}

func TestGeneratePayslipNotCompleted(t *testing.T) {
	entry := completedEntry()
	entry.Completed = false
	svc := NewPayslipService(&fakePayrollRepo{entries: map[string]payroll.Payroll{entry.ID: entry}})

	_, _, err := svc.Generate(authedContext(t, "admin", ""), entry.ID)
	assert.ErrorIs(t, err, payroll.ErrPayrollNotCompleted)
}

func TestGeneratePayslipMissing(t *testing.T) {
	svc := NewPayslipService(&fakePayrollRepo{entries: map[string]payroll.Payroll{}})

	_, _, err := svc.Generate(authedContext(t, "admin", ""), "nope")
	assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)
}
