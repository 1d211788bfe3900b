package payslip

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jung-kurt/gofpdf"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/payroll"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/user"
)

// PayslipService renders completed payroll entries as PDF payslips.
type PayslipService interface {
	// Generate returns the PDF bytes and a download filename for a completed
	// entry; incomplete entries yield ErrPayrollNotCompleted. Non-admin
	// callers may only fetch payslips for their own employee_id claim.
	Generate(ctx context.Context, payrollID string) ([]byte, string, error)
}

type payslipServiceImpl struct {
	payrollRepo payroll.PayrollRepository
}

func NewPayslipService(payrollRepository payroll.PayrollRepository) PayslipService {
	return &payslipServiceImpl{payrollRepo: payrollRepository}
}

// authorize restricts downloads to the entry's own employee; admins may
// fetch any payslip.
func (s *payslipServiceImpl) authorize(ctx context.Context, entry payroll.Payroll) error {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return fmt.Errorf("extract claims from context: %w", err)
	}
	if role, _ := claims["role"].(string); role == string(user.RoleAdmin) {
		return nil
	}
	employeeID, _ := claims["employee_id"].(string)
	if employeeID == "" || employeeID != entry.EmployeeID {
		return payroll.ErrPayslipForbidden
	}
	return nil
}

// Generate implements PayslipService.
func (s *payslipServiceImpl) Generate(ctx context.Context, payrollID string) ([]byte, string, error) {
	entry, err := s.payrollRepo.GetByID(ctx, payrollID)
	if err != nil {
		return nil, "", err
	}
	if err := s.authorize(ctx, entry); err != nil {
		return nil, "", err
	}
	if !entry.Completed {
		return nil, "", payroll.ErrPayrollNotCompleted
	}

	period := fmt.Sprintf("%04d-%02d", entry.PeriodYear, entry.PeriodMonth)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", entry.Name))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Position: %s, %s", entry.Position, entry.Department))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", period))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Daily rate: %s", entry.Salary.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Days worked: %d", entry.DaysWorked))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Overtime: %s", entry.Overtime.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Gross pay: %s", entry.GrossPay.StringFixed(2)))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("SSS: %s", entry.SSS.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Pag-IBIG: %s", entry.PagIbig.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("PhilHealth: %s", entry.PhilHealth.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total deductions: %s", entry.TotalDeductions.StringFixed(2)))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net pay: %s", entry.NetPay.StringFixed(2)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render payslip: %w", err)
	}

	filename := fmt.Sprintf("payslip-%s-%s.pdf", entry.EmployeeID, period)
	return buf.Bytes(), filename, nil
}
