package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/database"
)

const employeeColumns = `id, employee_code, name, position, department, address, email,
		salary, sss, pag_ibig, phil_health, hire_date, photo_path, created_at, updated_at`

// Sortable columns exposed to list filters. Anything else falls back to name.
var employeeSortColumns = map[string]string{
	"name":          "name",
	"employee_code": "employee_code",
	"department":    "department",
	"hire_date":     "hire_date",
	"created_at":    "created_at",
}

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.Name, &emp.Position, &emp.Department,
		&emp.Address, &emp.Email, &emp.Salary, &emp.SSS, &emp.PagIbig,
		&emp.PhilHealth, &emp.HireDate, &emp.PhotoPath, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := fmt.Sprintf(`
		INSERT INTO employees (
			employee_code, name, position, department, address, email,
			salary, sss, pag_ibig, phil_health, hire_date, photo_path
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING %s
	`, employeeColumns)

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.EmployeeCode, newEmployee.Name, newEmployee.Position,
		newEmployee.Department, newEmployee.Address, newEmployee.Email,
		newEmployee.Salary, newEmployee.SSS, newEmployee.PagIbig,
		newEmployee.PhilHealth, newEmployee.HireDate, newEmployee.PhotoPath,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return employee.Employee{}, employee.ErrEmailExists
			}
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("create employee: %w", err)
	}

	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE id = $1`, employeeColumns)

	found, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("get employee by id: %w", err)
	}

	return found, nil
}

// GetByEmployeeCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmployeeCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE employee_code = $1`, employeeColumns)

	found, err := scanEmployee(q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("get employee by code: %w", err)
	}

	return found, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, e.db)

	where := "TRUE"
	args := []interface{}{}
	if filter.Department != "" {
		args = append(args, filter.Department)
		where = fmt.Sprintf("department = $%d", len(args))
	}

	var totalCount int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM employees WHERE %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	sortColumn, ok := employeeSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "name"
	}
	direction := "ASC"
	if strings.EqualFold(filter.SortDirection, "desc") {
		direction = "DESC"
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT %s FROM employees
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, employeeColumns, where, sortColumn, direction, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, totalCount, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.Position != nil {
		add("position", *req.Position)
	}
	if req.Department != nil {
		add("department", *req.Department)
	}
	if req.Address != nil {
		add("address", *req.Address)
	}
	if req.Email != nil {
		add("email", *req.Email)
	}
	if req.Salary != nil {
		add("salary", *req.Salary)
	}
	if req.SSS != nil {
		add("sss", *req.SSS)
	}
	if req.PagIbig != nil {
		add("pag_ibig", *req.PagIbig)
	}
	if req.PhilHealth != nil {
		add("phil_health", *req.PhilHealth)
	}
	if req.HireDate != nil {
		add("hire_date", *req.HireDate)
	}

	args = append(args, req.ID)
	query := fmt.Sprintf(`
		UPDATE employees
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), len(args), employeeColumns)

	updated, err := scanEmployee(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("update employee: %w", err)
	}

	return updated, nil
}

// UpdatePhoto implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdatePhoto(ctx context.Context, id string, photoPath *string) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET photo_path = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, photoPath, id).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("update employee photo: %w", err)
	}

	return nil
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// CountByDepartment implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) CountByDepartment(ctx context.Context) (int64, map[string]int64, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, `SELECT department, COUNT(*) FROM employees GROUP BY department`)
	if err != nil {
		return 0, nil, fmt.Errorf("count employees by department: %w", err)
	}
	defer rows.Close()

	var total int64
	counts := make(map[string]int64)
	for rows.Next() {
		var department string
		var count int64
		if err := rows.Scan(&department, &count); err != nil {
			return 0, nil, fmt.Errorf("scan department count: %w", err)
		}
		counts[department] = count
		total += count
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}

	return total, counts, nil
}
