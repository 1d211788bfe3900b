package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/attendance"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/service/file"
)

type attendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	fileService    file.FileService
	now            func() time.Time
}

func NewAttendanceService(attendanceRepository attendance.AttendanceRepository, employeeRepository employee.EmployeeRepository, fileService file.FileService) attendance.AttendanceService {
	return &attendanceServiceImpl{
		attendanceRepo: attendanceRepository,
		employeeRepo:   employeeRepository,
		fileService:    fileService,
		now:            time.Now,
	}
}

func (s *attendanceServiceImpl) resolveTimestamp(raw string) time.Time {
	if raw == "" {
		return s.now()
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return s.now()
	}
	return ts
}

// ClockIn implements attendance.AttendanceService.
func (s *attendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	clockIn := s.resolveTimestamp(req.Timestamp)
	workDay := time.Date(clockIn.Year(), clockIn.Month(), clockIn.Day(), 0, 0, 0, 0, clockIn.Location())

	photoPath, err := s.fileService.UploadAttendanceProof(ctx, emp.ID, workDay, req.File, req.FileHeader.Filename, "in")
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("upload clock-in photo: %w", err)
	}

	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID:       emp.ID,
		Date:             workDay,
		ClockIn:          clockIn,
		ClockInPhotoPath: photoPath,
	})
	if err != nil {
		if delErr := s.fileService.DeleteFile(ctx, photoPath); delErr != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("clock in: %w (photo cleanup: %v)", err, delErr)
		}
		return attendance.AttendanceResponse{}, err
	}

	created.EmployeeName = &emp.Name
	return s.toResponse(created), nil
}

// ClockOut implements attendance.AttendanceService.
func (s *attendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var open attendance.Attendance
	var err error
	if req.AttendanceID != nil {
		open, err = s.attendanceRepo.GetByID(ctx, *req.AttendanceID)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		if !open.IsOpen() {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedOut
		}
	} else {
		open, err = s.attendanceRepo.GetOpenSession(ctx, req.EmployeeID)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
	}

	clockOut := s.resolveTimestamp(req.Timestamp)
	if clockOut.Before(open.ClockIn) {
		return attendance.AttendanceResponse{}, attendance.ErrClockOutBeforeClockIn
	}

	photoPath, err := s.fileService.UploadAttendanceProof(ctx, open.EmployeeID, open.Date, req.File, req.FileHeader.Filename, "out")
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("upload clock-out photo: %w", err)
	}

	closed, err := s.attendanceRepo.Close(ctx, open.ID, clockOut, &photoPath)
	if err != nil {
		if delErr := s.fileService.DeleteFile(ctx, photoPath); delErr != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("clock out: %w (photo cleanup: %v)", err, delErr)
		}
		return attendance.AttendanceResponse{}, err
	}

	return s.toResponse(closed), nil
}

// ListByEmployeeAndDate implements attendance.AttendanceService.
func (s *attendanceServiceImpl) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.ListAttendanceResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, err := s.attendanceRepo.ListByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if len(records) == 0 {
		return attendance.ListAttendanceResponse{}, attendance.ErrNoRecordsFound
	}

	return s.toListResponse(records), nil
}

// ListByEmployee implements attendance.AttendanceService.
func (s *attendanceServiceImpl) ListByEmployee(ctx context.Context, employeeID string, month, year int) (attendance.ListAttendanceResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, err := s.attendanceRepo.ListByEmployee(ctx, employeeID, month, year)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return s.toListResponse(records), nil
}

// DailyReset implements attendance.AttendanceService.
func (s *attendanceServiceImpl) DailyReset(ctx context.Context) (attendance.ResetResponse, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	closed, err := s.attendanceRepo.CloseOpenForDate(ctx, today, now)
	if err != nil {
		return attendance.ResetResponse{}, err
	}

	return attendance.ResetResponse{ClosedCount: closed}, nil
}

func (s *attendanceServiceImpl) toResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:              att.ID,
		EmployeeID:      att.EmployeeID,
		EmployeeName:    att.EmployeeName,
		Date:            att.Date.Format("2006-01-02"),
		ClockIn:         att.ClockIn.Format(time.RFC3339),
		ClockInPhotoURL: s.fileService.FileURL(att.ClockInPhotoPath),
		Open:            att.IsOpen(),
	}

	if att.ClockOut != nil {
		out := att.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &out
		minutes := int(att.ClockOut.Sub(att.ClockIn).Minutes())
		resp.WorkedMinutes = &minutes
	}
	if att.ClockOutPhotoPath != nil {
		url := s.fileService.FileURL(*att.ClockOutPhotoPath)
		resp.ClockOutPhotoURL = &url
	}

	return resp
}

func (s *attendanceServiceImpl) toListResponse(records []attendance.Attendance) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, s.toResponse(att))
	}

	return attendance.ListAttendanceResponse{
		Attendances: responses,
		TotalCount:  len(responses),
	}
}
