package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/leave"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/database"
)

const leaveColumns = `id, employee_id, name, position, department, leave_type,
		from_date, to_date, reason, status, decided_by, decided_at, created_at, updated_at`

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRepositoryImpl{db: db}
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.Name, &req.Position, &req.Department,
		&req.LeaveType, &req.FromDate, &req.ToDate, &req.Reason, &req.Status,
		&req.DecidedBy, &req.DecidedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// Create implements leave.LeaveRequestRepository.
func (l *leaveRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := fmt.Sprintf(`
		INSERT INTO leave_requests (
			employee_id, name, position, department, leave_type, from_date, to_date, reason, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s
	`, leaveColumns)

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		request.EmployeeID, request.Name, request.Position, request.Department,
		request.LeaveType, request.FromDate, request.ToDate, request.Reason, request.Status,
	))
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("create leave request: %w", err)
	}

	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (l *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := fmt.Sprintf(`SELECT %s FROM leave_requests WHERE id = $1`, leaveColumns)

	found, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("get leave request by id: %w", err)
	}

	return found, nil
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (l *leaveRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM leave_requests
		WHERE employee_id = $1
		ORDER BY created_at DESC
	`, leaveColumns)

	return l.listRows(ctx, query, employeeID)
}

// ListAll implements leave.LeaveRequestRepository.
func (l *leaveRepositoryImpl) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM leave_requests
		ORDER BY created_at DESC
	`, leaveColumns)

	return l.listRows(ctx, query)
}

func (l *leaveRepositoryImpl) listRows(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// Decide implements leave.LeaveRequestRepository.
func (l *leaveRepositoryImpl) Decide(ctx context.Context, id string, outcome leave.Status, decidedBy string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	// Conditional on the pending status so two concurrent decisions cannot
	// both succeed.
	query := fmt.Sprintf(`
		UPDATE leave_requests
		SET status = $1, decided_by = $2, decided_at = NOW(), updated_at = NOW()
		WHERE id = $3 AND status = $4
		RETURNING %s
	`, leaveColumns)

	decided, err := scanLeaveRequest(q.QueryRow(ctx, query, outcome, decidedBy, id, leave.StatusPending))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the request does not exist or it is already decided.
			if _, getErr := l.GetByID(ctx, id); getErr != nil {
				return leave.LeaveRequest{}, getErr
			}
			return leave.LeaveRequest{}, leave.ErrLeaveAlreadyDecided
		}
		return leave.LeaveRequest{}, fmt.Errorf("decide leave request: %w", err)
	}

	return decided, nil
}
