package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/attendance"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/database"
)

const attendanceColumns = `a.id, a.employee_id, a.date, a.clock_in, a.clock_out,
		a.clock_in_photo_path, a.clock_out_photo_path, a.created_at, a.updated_at`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.ClockIn, &att.ClockOut,
		&att.ClockInPhotoPath, &att.ClockOutPhotoPath, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`
		WITH a AS (
			INSERT INTO attendances (employee_id, date, clock_in, clock_in_photo_path)
			VALUES ($1, $2, $3, $4)
			RETURNING *
		)
		SELECT %s FROM a
	`, attendanceColumns)

	created, err := scanAttendance(q.QueryRow(ctx, query,
		newAttendance.EmployeeID, newAttendance.Date, newAttendance.ClockIn, newAttendance.ClockInPhotoPath,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Attendance{}, fmt.Errorf("create attendance: %w", err)
	}

	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`SELECT %s FROM attendances a WHERE a.id = $1`, attendanceColumns)

	found, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("get attendance by id: %w", err)
	}

	return found, nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetOpenSession(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`
		SELECT %s FROM attendances a
		WHERE a.employee_id = $1 AND a.clock_out IS NULL
		ORDER BY a.clock_in DESC
		LIMIT 1
	`, attendanceColumns)

	found, err := scanAttendance(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrNotClockedIn
		}
		return attendance.Attendance{}, fmt.Errorf("get open attendance session: %w", err)
	}

	return found, nil
}

// Close implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) Close(ctx context.Context, id string, clockOut time.Time, photoPath *string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	// Conditional on clock_out IS NULL so a record can only be closed once.
	query := fmt.Sprintf(`
		WITH a AS (
			UPDATE attendances
			SET clock_out = $1, clock_out_photo_path = $2, updated_at = NOW()
			WHERE id = $3 AND clock_out IS NULL
			RETURNING *
		)
		SELECT %s FROM a
	`, attendanceColumns)

	closed, err := scanAttendance(q.QueryRow(ctx, query, clockOut, photoPath, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("close attendance: %w", err)
	}

	return closed, nil
}

// ListByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`
		SELECT %s, e.name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date = $2
		ORDER BY a.clock_in ASC
	`, attendanceColumns)

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("list attendance by employee and date: %w", err)
	}
	defer rows.Close()

	return collectAttendanceRows(rows)
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, month, year int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	where := "a.employee_id = $1"
	args := []interface{}{employeeID}
	if month > 0 {
		args = append(args, month)
		where += fmt.Sprintf(" AND EXTRACT(MONTH FROM a.date) = $%d", len(args))
	}
	if year > 0 {
		args = append(args, year)
		where += fmt.Sprintf(" AND EXTRACT(YEAR FROM a.date) = $%d", len(args))
	}

	query := fmt.Sprintf(`
		SELECT %s, e.name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.clock_in DESC
	`, attendanceColumns, where)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attendance by employee: %w", err)
	}
	defer rows.Close()

	return collectAttendanceRows(rows)
}

// CloseOpenForDate implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) CloseOpenForDate(ctx context.Context, date time.Time, closeAt time.Time) (int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET clock_out = $1, updated_at = NOW()
		WHERE date <= $2 AND clock_out IS NULL
	`

	tag, err := q.Exec(ctx, query, closeAt, date)
	if err != nil {
		return 0, fmt.Errorf("close open attendances for date: %w", err)
	}

	return tag.RowsAffected(), nil
}

// CountWorkedDays implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) CountWorkedDays(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT COUNT(DISTINCT date)
		FROM attendances
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3 AND clock_out IS NOT NULL
	`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("count worked days: %w", err)
	}

	return count, nil
}

func collectAttendanceRows(rows pgx.Rows) ([]attendance.Attendance, error) {
	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		var name string
		err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.Date, &att.ClockIn, &att.ClockOut,
			&att.ClockInPhotoPath, &att.ClockOutPhotoPath, &att.CreatedAt, &att.UpdatedAt,
			&name,
		)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		att.EmployeeName = &name
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
