package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/attendance"
)

// AttendanceJobs owns the scheduled maintenance of the attendance ledger.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService) *AttendanceJobs {
	return &AttendanceJobs{attendanceService: attendanceService}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("close_open_attendances", 1*time.Hour, j.CloseOpenAttendances)
}

// CloseOpenAttendances force-closes records still open at the end of the day
// so forgotten clock-outs do not bleed into the next work day. Runs hourly
// but only acts in the midnight hour; the sweep itself is idempotent.
func (j *AttendanceJobs) CloseOpenAttendances(ctx context.Context) error {
	if time.Now().Hour() != 0 {
		return nil
	}

	result, err := j.attendanceService.DailyReset(ctx)
	if err != nil {
		return err
	}

	if result.ClosedCount > 0 {
		slog.Info("closed stale attendance records", "count", result.ClosedCount)
	}
	return nil
}
