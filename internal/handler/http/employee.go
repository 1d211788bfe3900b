package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UpdatePhoto(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Counts(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// formDecimal parses a decimal form field, treating empty as zero.
func formDecimal(r *http.Request, field string) (decimal.Decimal, bool) {
	raw := r.FormValue(field)
	if raw == "" {
		return decimal.Zero, true
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return value, true
}

// Create implements EmployeeHandler.
func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	req := employee.CreateEmployeeRequest{
		EmployeeCode: r.FormValue("employee_code"),
		Name:         r.FormValue("name"),
		Position:     r.FormValue("position"),
		Department:   r.FormValue("department"),
		Address:      r.FormValue("address"),
		Email:        r.FormValue("email"),
		HireDate:     r.FormValue("hire_date"),
	}

	var ok bool
	if req.Salary, ok = formDecimal(r, "salary"); !ok {
		response.BadRequest(w, "salary must be a valid number", nil)
		return
	}
	if req.SSS, ok = formDecimal(r, "sss"); !ok {
		response.BadRequest(w, "sss must be a valid number", nil)
		return
	}
	if req.PagIbig, ok = formDecimal(r, "pag_ibig"); !ok {
		response.BadRequest(w, "pag_ibig must be a valid number", nil)
		return
	}
	if req.PhilHealth, ok = formDecimal(r, "phil_health"); !ok {
		response.BadRequest(w, "phil_health must be a valid number", nil)
		return
	}

	// Photo is optional on create.
	file, fileHeader, err := r.FormFile("photo")
	if err == nil {
		defer file.Close()
		req.Photo = file
		req.PhotoHeader = fileHeader
	} else if err != http.ErrMissingFile {
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	employeeResponse, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", employeeResponse)
}

// Get implements EmployeeHandler.
func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	employeeResponse, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employeeResponse)
}

// List implements EmployeeHandler.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	filter := employee.ListFilter{
		Department:    query.Get("department"),
		SortBy:        query.Get("sort_by"),
		SortDirection: query.Get("sort_direction"),
		Page:          page,
		Limit:         limit,
	}

	listResponse, err := h.employeeService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List employees service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, listResponse.Employees, &response.Meta{
		Page:       listResponse.Page,
		Limit:      listResponse.Limit,
		TotalItems: listResponse.TotalCount,
		TotalPages: listResponse.TotalPages,
	})
}

// Update implements EmployeeHandler.
func (h *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	employeeResponse, err := h.employeeService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Update employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", employeeResponse)
}

// UpdatePhoto implements EmployeeHandler.
func (h *employeeHandlerImpl) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("photo")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Photo is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	employeeResponse, err := h.employeeService.UpdatePhoto(r.Context(), id, file, fileHeader)
	if err != nil {
		slog.Error("Update employee photo service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee photo updated successfully", employeeResponse)
}

// Delete implements EmployeeHandler.
func (h *employeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.employeeService.Delete(r.Context(), id); err != nil {
		slog.Error("Delete employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// Counts implements EmployeeHandler.
func (h *employeeHandlerImpl) Counts(w http.ResponseWriter, r *http.Request) {
	countsResponse, err := h.employeeService.Counts(r.Context())
	if err != nil {
		slog.Error("Employee counts service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, countsResponse)
}
