package payroll

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/attendance"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/payroll"
)

type payrollServiceImpl struct {
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
}

func NewPayrollService(payrollRepository payroll.PayrollRepository, employeeRepository employee.EmployeeRepository, attendanceRepository attendance.AttendanceRepository) payroll.PayrollService {
	return &payrollServiceImpl{
		payrollRepo:    payrollRepository,
		employeeRepo:   employeeRepository,
		attendanceRepo: attendanceRepository,
	}
}

// periodBounds returns the first and last day of the given month.
func periodBounds(month, year int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, -1)
	return from, to
}

// Create implements payroll.PayrollService.
func (s *payrollServiceImpl) Create(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	from, to := periodBounds(req.PeriodMonth, req.PeriodYear)
	daysWorked, err := s.attendanceRepo.CountWorkedDays(ctx, emp.ID, from, to)
	if err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("count worked days: %w", err)
	}

	// Request overrides fall back to the employee's statutory baseline.
	deductions := payroll.Deductions{
		SSS:        valueOr(req.SSS, emp.SSS),
		PagIbig:    valueOr(req.PagIbig, emp.PagIbig),
		PhilHealth: valueOr(req.PhilHealth, emp.PhilHealth),
	}

	gross, totalDeductions, net := payroll.Compute(emp.Salary, daysWorked, req.Overtime, deductions)

	created, err := s.payrollRepo.Create(ctx, payroll.Payroll{
		EmployeeID:      emp.ID,
		Name:            emp.Name,
		Position:        emp.Position,
		Department:      emp.Department,
		PeriodMonth:     req.PeriodMonth,
		PeriodYear:      req.PeriodYear,
		Salary:          emp.Salary,
		DaysWorked:      daysWorked,
		Overtime:        req.Overtime,
		GrossPay:        gross,
		SSS:             deductions.SSS,
		PagIbig:         deductions.PagIbig,
		PhilHealth:      deductions.PhilHealth,
		TotalDeductions: totalDeductions,
		NetPay:          net,
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return toResponse(created), nil
}

// Get implements payroll.PayrollService.
func (s *payrollServiceImpl) Get(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	found, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return toResponse(found), nil
}

// DaysWorked implements payroll.PayrollService.
func (s *payrollServiceImpl) DaysWorked(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return 0, err
	}
	return s.attendanceRepo.CountWorkedDays(ctx, employeeID, from, to)
}

// MarkCompleted implements payroll.PayrollService.
func (s *payrollServiceImpl) MarkCompleted(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	updated, err := s.payrollRepo.MarkCompleted(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return toResponse(updated), nil
}

// Delete implements payroll.PayrollService.
func (s *payrollServiceImpl) Delete(ctx context.Context, id string) error {
	return s.payrollRepo.Delete(ctx, id)
}

// ListUncompleted implements payroll.PayrollService.
func (s *payrollServiceImpl) ListUncompleted(ctx context.Context, filter payroll.UncompletedFilter) (payroll.ListPayrollsResponse, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	entries, totalCount, err := s.payrollRepo.ListUncompleted(ctx, filter)
	if err != nil {
		return payroll.ListPayrollsResponse{}, err
	}

	return toListResponse(entries, totalCount, filter.Page, filter.Limit), nil
}

// ListCompleted implements payroll.PayrollService.
func (s *payrollServiceImpl) ListCompleted(ctx context.Context, filter payroll.CompletedFilter) (payroll.ListPayrollsResponse, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	entries, totalCount, err := s.payrollRepo.ListCompleted(ctx, filter)
	if err != nil {
		return payroll.ListPayrollsResponse{}, err
	}

	return toListResponse(entries, totalCount, filter.Page, filter.Limit), nil
}

// ListMyCompleted implements payroll.PayrollService.
func (s *payrollServiceImpl) ListMyCompleted(ctx context.Context, filter payroll.CompletedFilter) (payroll.ListPayrollsResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return payroll.ListPayrollsResponse{}, fmt.Errorf("extract claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return payroll.ListPayrollsResponse{}, fmt.Errorf("employee_id not found in token")
	}

	filter.EmployeeID = employeeID
	return s.ListCompleted(ctx, filter)
}

// HasIncompletePayroll implements payroll.PayrollService.
func (s *payrollServiceImpl) HasIncompletePayroll(ctx context.Context, employeeID string) (bool, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return false, err
	}
	return s.payrollRepo.HasIncomplete(ctx, employeeID)
}

// PendingCount implements payroll.PayrollService.
func (s *payrollServiceImpl) PendingCount(ctx context.Context) (int64, error) {
	return s.payrollRepo.PendingCount(ctx)
}

func valueOr(override *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	return fallback
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func toResponse(p payroll.Payroll) payroll.PayrollResponse {
	return payroll.PayrollResponse{
		ID:              p.ID,
		EmployeeID:      p.EmployeeID,
		Name:            p.Name,
		Position:        p.Position,
		Department:      p.Department,
		PeriodMonth:     p.PeriodMonth,
		PeriodYear:      p.PeriodYear,
		Salary:          p.Salary,
		DaysWorked:      p.DaysWorked,
		Overtime:        p.Overtime,
		GrossPay:        p.GrossPay,
		SSS:             p.SSS,
		PagIbig:         p.PagIbig,
		PhilHealth:      p.PhilHealth,
		TotalDeductions: p.TotalDeductions,
		NetPay:          p.NetPay,
		Completed:       p.Completed,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
}

func toListResponse(entries []payroll.Payroll, totalCount int64, page, limit int) payroll.ListPayrollsResponse {
	responses := make([]payroll.PayrollResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, toResponse(entry))
	}

	return payroll.ListPayrollsResponse{
		Payrolls:   responses,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(limit))),
	}
}
