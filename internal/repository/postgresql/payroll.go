package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/payroll"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/database"
)

const payrollColumns = `id, employee_id, name, position, department, period_month, period_year,
		salary, days_worked, overtime, gross_pay, sss, pag_ibig, phil_health,
		total_deductions, net_pay, completed, created_at, updated_at`

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

func scanPayroll(row pgx.Row) (payroll.Payroll, error) {
	var p payroll.Payroll
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.Name, &p.Position, &p.Department,
		&p.PeriodMonth, &p.PeriodYear, &p.Salary, &p.DaysWorked, &p.Overtime,
		&p.GrossPay, &p.SSS, &p.PagIbig, &p.PhilHealth,
		&p.TotalDeductions, &p.NetPay, &p.Completed, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) Create(ctx context.Context, entry payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO payrolls (
			employee_id, name, position, department, period_month, period_year,
			salary, days_worked, overtime, gross_pay, sss, pag_ibig, phil_health,
			total_deductions, net_pay
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING %s
	`, payrollColumns)

	created, err := scanPayroll(q.QueryRow(ctx, query,
		entry.EmployeeID, entry.Name, entry.Position, entry.Department,
		entry.PeriodMonth, entry.PeriodYear, entry.Salary, entry.DaysWorked,
		entry.Overtime, entry.GrossPay, entry.SSS, entry.PagIbig, entry.PhilHealth,
		entry.TotalDeductions, entry.NetPay,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.Payroll{}, payroll.ErrIncompletePayrollExists
		}
		return payroll.Payroll{}, fmt.Errorf("create payroll: %w", err)
	}

	return created, nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM payrolls WHERE id = $1`, payrollColumns)

	found, err := scanPayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("get payroll by id: %w", err)
	}

	return found, nil
}

// ListUncompleted implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListUncompleted(ctx context.Context, filter payroll.UncompletedFilter) ([]payroll.Payroll, int64, error) {
	where := "NOT completed"
	args := []interface{}{}
	if filter.Department != "" {
		args = append(args, filter.Department)
		where += fmt.Sprintf(" AND department = $%d", len(args))
	}

	return r.list(ctx, where, args, filter.Page, filter.Limit)
}

// ListCompleted implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListCompleted(ctx context.Context, filter payroll.CompletedFilter) ([]payroll.Payroll, int64, error) {
	where := "completed"
	args := []interface{}{}
	if filter.Month > 0 {
		args = append(args, filter.Month)
		where += fmt.Sprintf(" AND period_month = $%d", len(args))
	}
	if filter.Year > 0 {
		args = append(args, filter.Year)
		where += fmt.Sprintf(" AND period_year = $%d", len(args))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		where += fmt.Sprintf(" AND department = $%d", len(args))
	}
	if filter.EmployeeName != "" {
		args = append(args, "%"+filter.EmployeeName+"%")
		where += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}

	return r.list(ctx, where, args, filter.Page, filter.Limit)
}

func (r *payrollRepositoryImpl) list(ctx context.Context, where string, args []interface{}, page, limit int) ([]payroll.Payroll, int64, error) {
	q := GetQuerier(ctx, r.db)

	var totalCount int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM payrolls WHERE %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("count payrolls: %w", err)
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`
		SELECT %s FROM payrolls
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, payrollColumns, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list payrolls: %w", err)
	}
	defer rows.Close()

	var entries []payroll.Payroll
	for rows.Next() {
		entry, err := scanPayroll(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan payroll: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return entries, totalCount, nil
}

// MarkCompleted implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) MarkCompleted(ctx context.Context, id string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE payrolls
		SET completed = TRUE, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, payrollColumns)

	updated, err := scanPayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("mark payroll completed: %w", err)
	}

	return updated, nil
}

// Delete implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payrolls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payroll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}

	return nil
}

// HasIncomplete implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) HasIncomplete(ctx context.Context, employeeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM payrolls WHERE employee_id = $1 AND NOT completed)`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check incomplete payroll: %w", err)
	}

	return exists, nil
}

// PendingCount implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) PendingCount(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payrolls WHERE NOT completed`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pending payrolls: %w", err)
	}

	return count, nil
}
