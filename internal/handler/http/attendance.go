package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/attendance"
	"github.com/staffdesk/staffdesk-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	ListByEmployeeAndDate(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	req := attendance.ClockInRequest{
		EmployeeID: r.FormValue("employee_id"),
		Timestamp:  r.FormValue("timestamp"),
	}

	file, fileHeader, err := r.FormFile("photo")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Attendance proof photo is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	req.File = file
	req.FileHeader = fileHeader

	attendanceResponse, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		slog.Error("ClockIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in successfully", attendanceResponse)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	req := attendance.ClockOutRequest{
		EmployeeID: r.FormValue("employee_id"),
		Timestamp:  r.FormValue("timestamp"),
	}
	if attendanceID := r.FormValue("attendance_id"); attendanceID != "" {
		req.AttendanceID = &attendanceID
	}

	file, fileHeader, err := r.FormFile("photo")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Attendance proof photo is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	req.File = file
	req.FileHeader = fileHeader

	attendanceResponse, err := h.attendanceService.ClockOut(r.Context(), req)
	if err != nil {
		slog.Error("ClockOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out successfully", attendanceResponse)
}

// ListByEmployeeAndDate implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListByEmployeeAndDate(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	dateParam := r.URL.Query().Get("date")
	date, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	listResponse, err := h.attendanceService.ListByEmployeeAndDate(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, listResponse)
}

// ListByEmployee implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	query := r.URL.Query()
	month, _ := strconv.Atoi(query.Get("month"))
	year, _ := strconv.Atoi(query.Get("year"))

	listResponse, err := h.attendanceService.ListByEmployee(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, listResponse)
}

// Reset implements AttendanceHandler.
func (h *attendanceHandlerImpl) Reset(w http.ResponseWriter, r *http.Request) {
	resetResponse, err := h.attendanceService.DailyReset(r.Context())
	if err != nil {
		slog.Error("Attendance reset service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Open attendance records closed", resetResponse)
}
