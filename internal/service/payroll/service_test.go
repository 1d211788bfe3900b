package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/attendance"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByEmployeeCode(ctx context.Context, code string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) UpdatePhoto(ctx context.Context, id string, photoPath *string) error {
	return nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeEmployeeRepo) CountByDepartment(ctx context.Context) (int64, map[string]int64, error) {
	return 0, nil, nil
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	workedDays int
}

func (f *fakeAttendanceRepo) CountWorkedDays(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	return f.workedDays, nil
}

type fakePayrollRepo struct {
	entries map[string]payroll.Payroll
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{entries: make(map[string]payroll.Payroll)}
}

func (f *fakePayrollRepo) Create(ctx context.Context, entry payroll.Payroll) (payroll.Payroll, error) {
	for _, existing := range f.entries {
		if existing.EmployeeID == entry.EmployeeID && !existing.Completed {
			return payroll.Payroll{}, payroll.ErrIncompletePayrollExists
		}
	}
	entry.ID = uuid.New().String()
	entry.CreatedAt = time.Now()
	f.entries[entry.ID] = entry
	return entry, nil
}

func (f *fakePayrollRepo) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	entry, ok := f.entries[id]
	if !ok {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	return entry, nil
}

func (f *fakePayrollRepo) ListUncompleted(ctx context.Context, filter payroll.UncompletedFilter) ([]payroll.Payroll, int64, error) {
	var out []payroll.Payroll
	for _, entry := range f.entries {
		if !entry.Completed {
			out = append(out, entry)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePayrollRepo) ListCompleted(ctx context.Context, filter payroll.CompletedFilter) ([]payroll.Payroll, int64, error) {
	var out []payroll.Payroll
	for _, entry := range f.entries {
		if !entry.Completed {
			continue
		}
		if filter.EmployeeID != "" && entry.EmployeeID != filter.EmployeeID {
			continue
		}
		out = append(out, entry)
	}
	return out, int64(len(out)), nil
}

func (f *fakePayrollRepo) MarkCompleted(ctx context.Context, id string) (payroll.Payroll, error) {
	entry, ok := f.entries[id]
	if !ok {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	entry.Completed = true
	f.entries[id] = entry
	return entry, nil
}

func (f *fakePayrollRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.entries[id]; !ok {
		return payroll.ErrPayrollNotFound
	}
	delete(f.entries, id)
	return nil
}

func (f *fakePayrollRepo) HasIncomplete(ctx context.Context, employeeID string) (bool, error) {
	for _, entry := range f.entries {
		if entry.EmployeeID == employeeID && !entry.Completed {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePayrollRepo) PendingCount(ctx context.Context) (int64, error) {
	var count int64
	for _, entry := range f.entries {
		if !entry.Completed {
			count++
		}
	}
	return count, nil
}

func newTestService(workedDays int) (payroll.PayrollService, *fakePayrollRepo, *fakeEmployeeRepo) {
	payrollRepo := newFakePayrollRepo()
	employeeRepo := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	attendanceRepo := &fakeAttendanceRepo{workedDays: workedDays}
	svc := NewPayrollService(payrollRepo, employeeRepo, attendanceRepo)
	return svc, payrollRepo, employeeRepo
}

func seedJane(employeeRepo *fakeEmployeeRepo) employee.Employee {
	jane := employee.Employee{
		ID:           uuid.New().String(),
		EmployeeCode: "EMP-001",
		Name:         "Jane Doe",
		Position:     "Accountant",
		Department:   "Finance",
		Salary:       d("1000"),
		SSS:          d("200"),
		PagIbig:      d("100"),
		PhilHealth:   d("150"),
	}
	employeeRepo.employees[jane.ID] = jane
	return jane
}

func TestCreatePayroll(t *testing.T) {
	svc, _, employeeRepo := newTestService(5)
	jane := seedJane(employeeRepo)

	created, err := svc.Create(context.Background(), payroll.CreatePayrollRequest{
		EmployeeID:  jane.ID,
		PeriodMonth: 6,
		PeriodYear:  2025,
		Overtime:    d("500"),
	})
	require.NoError(t, err)

	assert.Equal(t, jane.ID, created.EmployeeID)
	assert.Equal(t, "Jane Doe", created.Name)
	assert.Equal(t, 5, created.DaysWorked)
	assert.True(t, created.GrossPay.Equal(d("5500")), "gross = %s", created.GrossPay)
	assert.True(t, created.TotalDeductions.Equal(d("450")), "deductions = %s", created.TotalDeductions)
	assert.True(t, created.NetPay.Equal(d("5050")), "net = %s", created.NetPay)
	assert.False(t, created.Completed)
}

func TestCreatePayrollDeductionOverrides(t *testing.T) {
	svc, _, employeeRepo := newTestService(10)
	jane := seedJane(employeeRepo)

	override := d("0")
	created, err := svc.Create(context.Background(), payroll.CreatePayrollRequest{
		EmployeeID:  jane.ID,
		PeriodMonth: 6,
		PeriodYear:  2025,
		Overtime:    d("0"),
		SSS:         &override,
	})
	require.NoError(t, err)

	// SSS overridden to zero, the rest falls back to the employee baseline
	assert.True(t, created.SSS.Equal(d("0")))
	assert.True(t, created.PagIbig.Equal(d("100")))
	assert.True(t, created.PhilHealth.Equal(d("150")))
	assert.True(t, created.TotalDeductions.Equal(d("250")))
}

func TestCreatePayrollConflict(t *testing.T) {
	svc, _, employeeRepo := newTestService(5)
	jane := seedJane(employeeRepo)

	req := payroll.CreatePayrollRequest{
		EmployeeID:  jane.ID,
		PeriodMonth: 6,
		PeriodYear:  2025,
		Overtime:    d("0"),
	}

	first, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	// A second incomplete entry for the same employee is rejected.
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, payroll.ErrIncompletePayrollExists)

	// Completing the first entry unblocks creation.
	_, err = svc.MarkCompleted(context.Background(), first.ID)
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	// Deleting the incomplete entry unblocks creation too.
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, payroll.ErrIncompletePayrollExists)

	require.NoError(t, svc.Delete(context.Background(), second.ID))

	_, err = svc.Create(context.Background(), req)
	assert.NoError(t, err)
}

func TestCreatePayrollEmployeeNotFound(t *testing.T) {
	svc, _, _ := newTestService(5)

	_, err := svc.Create(context.Background(), payroll.CreatePayrollRequest{
		EmployeeID:  uuid.New().String(),
		PeriodMonth: 6,
		PeriodYear:  2025,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCreatePayrollInvalidPeriod(t *testing.T) {
	svc, _, employeeRepo := newTestService(5)
	jane := seedJane(employeeRepo)

	_, err := svc.Create(context.Background(), payroll.CreatePayrollRequest{
		EmployeeID:  jane.ID,
		PeriodMonth: 13,
		PeriodYear:  2025,
	})
	assert.Error(t, err)
}

func TestHasIncompletePayroll(t *testing.T) {
	svc, _, employeeRepo := newTestService(5)
	jane := seedJane(employeeRepo)

	has, err := svc.HasIncompletePayroll(context.Background(), jane.ID)
	require.NoError(t, err)
	assert.False(t, has)

	created, err := svc.Create(context.Background(), payroll.CreatePayrollRequest{
		EmployeeID:  jane.ID,
		PeriodMonth: 6,
		PeriodYear:  2025,
	})
	require.NoError(t, err)

	has, err = svc.HasIncompletePayroll(context.Background(), jane.ID)
	require.NoError(t, err)
	assert.True(t, has)

	count, err := svc.PendingCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = svc.MarkCompleted(context.Background(), created.ID)
	require.NoError(t, err)

	has, err = svc.HasIncompletePayroll(context.Background(), jane.ID)
	require.NoError(t, err)
	assert.False(t, has)
}
