package response

import (
	"errors"
	"net/http"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/announcement"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/attendance"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/auth"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/leave"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/payroll"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/user"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Administrator access required")
	case errors.Is(err, user.ErrEmployeeLinkNotAllowed):
		Conflict(w, "Admin accounts cannot be linked to an employee record")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Employee already has an open attendance record for today")
	case errors.Is(err, attendance.ErrNotClockedIn):
		NotFound(w, "No open attendance record found")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Attendance record is already closed")
	case errors.Is(err, attendance.ErrClockOutBeforeClockIn):
		BadRequest(w, "Clock-out time cannot be before clock-in time", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNoRecordsFound):
		NotFound(w, "No attendance records found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll entry not found")
	case errors.Is(err, payroll.ErrIncompletePayrollExists):
		Conflict(w, "Employee already has an incomplete payroll entry")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrPayrollNotCompleted):
		Conflict(w, "Payroll entry is not completed")
	case errors.Is(err, payroll.ErrPayslipForbidden):
		Forbidden(w, "You can only download your own payslips")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveAlreadyDecided):
		Conflict(w, "Leave request has already been decided")

	// Announcement domain errors
	case errors.Is(err, announcement.ErrAnnouncementNotFound):
		NotFound(w, "Announcement not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
