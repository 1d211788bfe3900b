package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a new open record. A partial unique index on
	// (employee_id, date) WHERE clock_out IS NULL surfaces a double
	// clock-in as ErrAlreadyClockedIn.
	Create(ctx context.Context, newAttendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetOpenSession returns the employee's most recent open record
	GetOpenSession(ctx context.Context, employeeID string) (Attendance, error)

	// Close sets clock_out and the clock-out photo on an open record;
	// returns ErrAttendanceNotFound if the record is missing or already closed
	Close(ctx context.Context, id string, clockOut time.Time, photoPath *string) (Attendance, error)

	// ListByEmployeeAndDate returns records whose clock-in falls on the given
	// local calendar day
	ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]Attendance, error)

	// ListByEmployee returns records newest-first, optionally narrowed to a
	// month/year
	ListByEmployee(ctx context.Context, employeeID string, month, year int) ([]Attendance, error)

	// CloseOpenForDate force-closes every open record clocked in on or before
	// the given day, setting clock_out to closeAt. Returns the number of
	// records closed.
	CloseOpenForDate(ctx context.Context, date time.Time, closeAt time.Time) (int64, error)

	// CountWorkedDays counts distinct calendar days in [from, to] having at
	// least one closed record for the employee
	CountWorkedDays(ctx context.Context, employeeID string, from, to time.Time) (int, error)
}
