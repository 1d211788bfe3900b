package attendance

import "errors"

var (
	ErrAlreadyClockedIn      = errors.New("employee already has an open attendance record for today")
	ErrNotClockedIn          = errors.New("employee has no open attendance record")
	ErrAlreadyClockedOut     = errors.New("attendance record is already closed")
	ErrClockOutBeforeClockIn = errors.New("clock-out must not be earlier than clock-in")
	ErrAttendanceNotFound    = errors.New("attendance record not found")
	ErrNoRecordsFound        = errors.New("no attendance records found")
)
