package leave

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

type fakeLeaveRepo struct {
	requests map[string]leave.LeaveRequest
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{requests: make(map[string]leave.LeaveRequest)}
}

func (f *fakeLeaveRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	request.ID = uuid.New().String()
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return request, nil
}

func (f *fakeLeaveRepo) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		if request.EmployeeID == employeeID {
			out = append(out, request)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	out := make([]leave.LeaveRequest, 0, len(f.requests))
	for _, request := range f.requests {
		out = append(out, request)
	}
	return out, nil
}

func (f *fakeLeaveRepo) Decide(ctx context.Context, id string, outcome leave.Status, decidedBy string) (leave.LeaveRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if !request.IsPending() {
		return leave.LeaveRequest{}, leave.ErrLeaveAlreadyDecided
	}
	now := time.Now()
	request.Status = outcome
	request.DecidedBy = &decidedBy
	request.DecidedAt = &now
	f.requests[id] = request
	return request, nil
}

func authedContext(t *testing.T, employeeID, userID string) context.Context {
	t.Helper()

	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"user_id":     userID,
		"employee_id": employeeID,
		"role":        "employee",
		"type":        "access",
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService() (leave.LeaveService, *fakeLeaveRepo, employee.Employee) {
	leaveRepo := newFakeLeaveRepo()
	emp := employee.Employee{
		ID:         uuid.New().String(),
		Name:       "Jane Doe",
		Position:   "Engineer",
		Department: "Engineering",
	}
	employeeRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{emp.ID: emp}}
	return NewLeaveService(leaveRepo, employeeRepo), leaveRepo, emp
}

func TestSubmitLeave(t *testing.T) {
	svc, _, emp := newTestService()
	ctx := authedContext(t, emp.ID, uuid.New().String())

	resp, err := svc.Submit(ctx, leave.SubmitLeaveRequest{
		LeaveType: "vacation",
		FromDate:  "2025-07-01",
		ToDate:    "2025-07-03",
		Reason:    "family trip",
	})
	require.NoError(t, err)

	assert.Equal(t, emp.ID, resp.EmployeeID)
	assert.Equal(t, "Jane Doe", resp.Name)
	assert.Equal(t, "Engineering", resp.Department)
	assert.Equal(t, string(leave.StatusPending), resp.Status)
	assert.Nil(t, resp.DecidedBy)
}

func TestSubmitLeaveInvalidRange(t *testing.T) {
	svc, _, emp := newTestService()
	ctx := authedContext(t, emp.ID, uuid.New().String())

	_, err := svc.Submit(ctx, leave.SubmitLeaveRequest{
		LeaveType: "vacation",
		FromDate:  "2025-07-05",
		ToDate:    "2025-07-01",
		Reason:    "family trip",
	})
	assert.Error(t, err)
}

func TestDecideIsOneWay(t *testing.T) {
	svc, _, emp := newTestService()
	adminID := uuid.New().String()
	ctx := authedContext(t, emp.ID, adminID)

	submitted, err := svc.Submit(ctx, leave.SubmitLeaveRequest{
		LeaveType: "sick",
		FromDate:  "2025-07-01",
		ToDate:    "2025-07-01",
		Reason:    "flu",
	})
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), approved.Status)
	require.NotNil(t, approved.DecidedBy)
	assert.Equal(t, adminID, *approved.DecidedBy)
	assert.NotNil(t, approved.DecidedAt)

	// A decided request cannot be decided again, in either direction.
	_, err = svc.Reject(ctx, submitted.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyDecided)
	_, err = svc.Approve(ctx, submitted.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyDecided)
}

func TestRejectPending(t *testing.T) {
	svc, _, emp := newTestService()
	ctx := authedContext(t, emp.ID, uuid.New().String())

	submitted, err := svc.Submit(ctx, leave.SubmitLeaveRequest{
		LeaveType: "vacation",
		FromDate:  "2025-08-11",
		ToDate:    "2025-08-15",
		Reason:    "travel",
	})
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusRejected), rejected.Status)
}

func TestDecideMissingRequest(t *testing.T) {
	svc, _, emp := newTestService()
	ctx := authedContext(t, emp.ID, uuid.New().String())

	_, err := svc.Approve(ctx, uuid.New().String())
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestListMine(t *testing.T) {
	svc, _, emp := newTestService()
	ctx := authedContext(t, emp.ID, uuid.New().String())

	_, err := svc.Submit(ctx, leave.SubmitLeaveRequest{
		LeaveType: "vacation",
		FromDate:  "2025-07-01",
		ToDate:    "2025-07-03",
		Reason:    "family trip",
	})
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, mine.TotalCount)

	// Another employee sees nothing.
	other, err := svc.ListMine(authedContext(t, uuid.New().String(), uuid.New().String()))
	require.NoError(t, err)
	assert.Equal(t, 0, other.TotalCount)
}
