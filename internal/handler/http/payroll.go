package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/payroll"
	"github.com/staffdesk/staffdesk-backend-go/internal/handler/http/response"
	"github.com/staffdesk/staffdesk-backend-go/internal/service/payslip"
)

type PayrollHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListUncompleted(w http.ResponseWriter, r *http.Request)
	ListCompleted(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	MarkCompleted(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	DaysWorked(w http.ResponseWriter, r *http.Request)
	IncompleteCheck(w http.ResponseWriter, r *http.Request)
	PendingCount(w http.ResponseWriter, r *http.Request)
	DownloadPayslip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
	payslipService payslip.PayslipService
}

func NewPayrollHandler(payrollService payroll.PayrollService, payslipService payslip.PayslipService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
		payslipService: payslipService,
	}
}

// Create implements PayrollHandler.
func (h *payrollHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePayrollRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create payroll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	payrollResponse, err := h.payrollService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create payroll service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll entry created successfully", payrollResponse)
}

// Get implements PayrollHandler.
func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	payrollResponse, err := h.payrollService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payrollResponse)
}

// ListUncompleted implements PayrollHandler.
func (h *payrollHandlerImpl) ListUncompleted(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	filter := payroll.UncompletedFilter{
		Department: query.Get("department"),
		Page:       page,
		Limit:      limit,
	}

	listResponse, err := h.payrollService.ListUncompleted(r.Context(), filter)
	if err != nil {
		slog.Error("List uncompleted payrolls service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, listResponse.Payrolls, &response.Meta{
		Page:       listResponse.Page,
		Limit:      listResponse.Limit,
		TotalItems: listResponse.TotalCount,
		TotalPages: listResponse.TotalPages,
	})
}

// ListCompleted implements PayrollHandler.
func (h *payrollHandlerImpl) ListCompleted(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	month, _ := strconv.Atoi(query.Get("month"))
	year, _ := strconv.Atoi(query.Get("year"))

	filter := payroll.CompletedFilter{
		Month:        month,
		Year:         year,
		Department:   query.Get("department"),
		EmployeeName: query.Get("name"),
		Page:         page,
		Limit:        limit,
	}

	listResponse, err := h.payrollService.ListCompleted(r.Context(), filter)
	if err != nil {
		slog.Error("List completed payrolls service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, listResponse.Payrolls, &response.Meta{
		Page:       listResponse.Page,
		Limit:      listResponse.Limit,
		TotalItems: listResponse.TotalCount,
		TotalPages: listResponse.TotalPages,
	})
}

// ListMine implements PayrollHandler.
func (h *payrollHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	month, _ := strconv.Atoi(query.Get("month"))
	year, _ := strconv.Atoi(query.Get("year"))

	filter := payroll.CompletedFilter{
		Month: month,
		Year:  year,
		Page:  page,
		Limit: limit,
	}

	listResponse, err := h.payrollService.ListMyCompleted(r.Context(), filter)
	if err != nil {
		slog.Error("List my payrolls service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, listResponse.Payrolls, &response.Meta{
		Page:       listResponse.Page,
		Limit:      listResponse.Limit,
		TotalItems: listResponse.TotalCount,
		TotalPages: listResponse.TotalPages,
	})
}

// MarkCompleted implements PayrollHandler.
func (h *payrollHandlerImpl) MarkCompleted(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	payrollResponse, err := h.payrollService.MarkCompleted(r.Context(), id)
	if err != nil {
		slog.Error("Mark payroll completed service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll entry marked as completed", payrollResponse)
}

// Delete implements PayrollHandler.
func (h *payrollHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.payrollService.Delete(r.Context(), id); err != nil {
		slog.Error("Delete payroll service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll entry deleted successfully", nil)
}

// DaysWorked implements PayrollHandler.
func (h *payrollHandlerImpl) DaysWorked(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	query := r.URL.Query()
	from, err := time.Parse("2006-01-02", query.Get("from"))
	if err != nil {
		response.BadRequest(w, "from must be in YYYY-MM-DD format", nil)
		return
	}
	to, err := time.Parse("2006-01-02", query.Get("to"))
	if err != nil {
		response.BadRequest(w, "to must be in YYYY-MM-DD format", nil)
		return
	}

	daysWorked, err := h.payrollService.DaysWorked(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int{"days_worked": daysWorked})
}

// IncompleteCheck implements PayrollHandler.
func (h *payrollHandlerImpl) IncompleteCheck(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	hasIncomplete, err := h.payrollService.HasIncompletePayroll(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.IncompleteCheckResponse{HasIncompletePayroll: hasIncomplete})
}

// PendingCount implements PayrollHandler.
func (h *payrollHandlerImpl) PendingCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.payrollService.PendingCount(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.PendingCountResponse{PayrollCount: count})
}

// DownloadPayslip implements PayrollHandler.
func (h *payrollHandlerImpl) DownloadPayslip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	pdfBytes, filename, err := h.payslipService.Generate(r.Context(), id)
	if err != nil {
		slog.Error("Generate payslip service error", "error", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	if _, err := w.Write(pdfBytes); err != nil {
		slog.Error("Write payslip response error", "error", err)
	}
}
