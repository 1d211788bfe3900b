package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for the attendance ledger
type AttendanceService interface {
	// ClockIn stores the proof photo and opens a record for the employee's
	// current work day
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)

	// ClockOut closes an open record, addressed by record id or employee id
	ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error)

	// ListByEmployeeAndDate returns the employee's records for one calendar
	// day; an empty day yields ErrNoRecordsFound (kept as a 404 at the API
	// boundary for client compatibility)
	ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (ListAttendanceResponse, error)

	// ListByEmployee returns all records newest-first, optionally filtered by
	// month/year; empty results are a valid response
	ListByEmployee(ctx context.Context, employeeID string, month, year int) (ListAttendanceResponse, error)

	// DailyReset force-closes today's still-open records. Idempotent: a
	// second run finds nothing left to close.
	DailyReset(ctx context.Context) (ResetResponse, error)
}
