package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/leave"
)

type leaveServiceImpl struct {
	leaveRepo    leave.LeaveRequestRepository
	employeeRepo employee.EmployeeRepository
}

func NewLeaveService(leaveRepository leave.LeaveRequestRepository, employeeRepository employee.EmployeeRepository) leave.LeaveService {
	return &leaveServiceImpl{
		leaveRepo:    leaveRepository,
		employeeRepo: employeeRepository,
	}
}

func claimString(ctx context.Context, key string) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("extract claims from context: %w", err)
	}
	value, ok := claims[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%s not found in token", key)
	}
	return value, nil
}

// Submit implements leave.LeaveService.
func (s *leaveServiceImpl) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	employeeID, err := claimString(ctx, "employee_id")
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	fromDate, _ := time.Parse("2006-01-02", req.FromDate)
	toDate, _ := time.Parse("2006-01-02", req.ToDate)

	created, err := s.leaveRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID: emp.ID,
		Name:       emp.Name,
		Position:   emp.Position,
		Department: emp.Department,
		LeaveType:  req.LeaveType,
		FromDate:   fromDate,
		ToDate:     toDate,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return toResponse(created), nil
}

// ListMine implements leave.LeaveService.
func (s *leaveServiceImpl) ListMine(ctx context.Context) (leave.ListLeavesResponse, error) {
	employeeID, err := claimString(ctx, "employee_id")
	if err != nil {
		return leave.ListLeavesResponse{}, err
	}

	requests, err := s.leaveRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return leave.ListLeavesResponse{}, err
	}

	return toListResponse(requests), nil
}

// ListAll implements leave.LeaveService.
func (s *leaveServiceImpl) ListAll(ctx context.Context) (leave.ListLeavesResponse, error) {
	requests, err := s.leaveRepo.ListAll(ctx)
	if err != nil {
		return leave.ListLeavesResponse{}, err
	}

	return toListResponse(requests), nil
}

// Approve implements leave.LeaveService.
func (s *leaveServiceImpl) Approve(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return s.decide(ctx, id, leave.StatusApproved)
}

// Reject implements leave.LeaveService.
func (s *leaveServiceImpl) Reject(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return s.decide(ctx, id, leave.StatusRejected)
}

func (s *leaveServiceImpl) decide(ctx context.Context, id string, outcome leave.Status) (leave.LeaveResponse, error) {
	decidedBy, err := claimString(ctx, "user_id")
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	decided, err := s.leaveRepo.Decide(ctx, id, outcome, decidedBy)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return toResponse(decided), nil
}

func toResponse(req leave.LeaveRequest) leave.LeaveResponse {
	resp := leave.LeaveResponse{
		ID:         req.ID,
		EmployeeID: req.EmployeeID,
		Name:       req.Name,
		Position:   req.Position,
		Department: req.Department,
		LeaveType:  req.LeaveType,
		FromDate:   req.FromDate.Format("2006-01-02"),
		ToDate:     req.ToDate.Format("2006-01-02"),
		Reason:     req.Reason,
		Status:     string(req.Status),
		DecidedBy:  req.DecidedBy,
		CreatedAt:  req.CreatedAt.Format(time.RFC3339),
	}
	if req.DecidedAt != nil {
		decidedAt := req.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &decidedAt
	}
	return resp
}

func toListResponse(requests []leave.LeaveRequest) leave.ListLeavesResponse {
	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, toResponse(req))
	}

	return leave.ListLeavesResponse{
		Leaves:     responses,
		TotalCount: len(responses),
	}
}
