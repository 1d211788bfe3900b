package attendance

import (
	"time"
)

// Attendance is one presence interval for one employee on one work day.
// A record is open while ClockOut is nil and terminal once it is set.
type Attendance struct {
	ID                string
	EmployeeID        string
	Date              time.Time // work day, local calendar date
	ClockIn           time.Time
	ClockOut          *time.Time
	ClockInPhotoPath  string
	ClockOutPhotoPath *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined for listings
	EmployeeName *string
}

// IsOpen reports whether the record has not been clocked out yet.
func (a *Attendance) IsOpen() bool {
	return a.ClockOut == nil
}
