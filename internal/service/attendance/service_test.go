package attendance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/attendance"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
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

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	for _, existing := range f.records {
		if existing.EmployeeID == newAttendance.EmployeeID &&
			existing.Date.Equal(newAttendance.Date) && existing.IsOpen() {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
	}
	newAttendance.ID = uuid.New().String()
	f.records[newAttendance.ID] = newAttendance
	return newAttendance, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	att, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, nil
}

func (f *fakeAttendanceRepo) GetOpenSession(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	for _, att := range f.records {
		if att.EmployeeID == employeeID && att.IsOpen() {
			return att, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrNotClockedIn
}

func (f *fakeAttendanceRepo) Close(ctx context.Context, id string, clockOut time.Time, photoPath *string) (attendance.Attendance, error) {
	att, ok := f.records[id]
	if !ok || !att.IsOpen() {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	att.ClockOut = &clockOut
	att.ClockOutPhotoPath = photoPath
	f.records[id] = att
	return att, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.EmployeeID == employeeID && att.Date.Equal(date) {
			out = append(out, att)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string, month, year int) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.EmployeeID != employeeID {
			continue
		}
		if month > 0 && int(att.Date.Month()) != month {
			continue
		}
		if year > 0 && att.Date.Year() != year {
			continue
		}
		out = append(out, att)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) CloseOpenForDate(ctx context.Context, date time.Time, closeAt time.Time) (int64, error) {
	var closed int64
	for id, att := range f.records {
		if att.IsOpen() && !att.Date.After(date) {
			out := closeAt
			att.ClockOut = &out
			f.records[id] = att
			closed++
		}
	}
	return closed, nil
}

func (f *fakeAttendanceRepo) CountWorkedDays(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	days := make(map[string]struct{})
	for _, att := range f.records {
		if att.EmployeeID == employeeID && !att.IsOpen() &&
			!att.Date.Before(from) && !att.Date.After(to) {
			days[att.Date.Format("2006-01-02")] = struct{}{}
		}
	}
	return len(days), nil
}

type fakeFileService struct {
	uploads int
	deletes []string
}

func (f *fakeFileService) UploadEmployeePhoto(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	f.uploads++
	return fmt.Sprintf("photos/%s/%d.jpg", employeeID, f.uploads), nil
}

func (f *fakeFileService) UploadAttendanceProof(ctx context.Context, employeeID string, date time.Time, file io.Reader, filename string, clockType string) (string, error) {
	f.uploads++
	return fmt.Sprintf("attendance/%s/%s-%d.jpg", employeeID, clockType, f.uploads), nil
}

func (f *fakeFileService) DeleteFile(ctx context.Context, path string) error {
	f.deletes = append(f.deletes, path)
	return nil
}

func (f *fakeFileService) FileURL(path string) string {
	return "http://localhost:8080/uploads/" + path
}

type testFile struct {
	*bytes.Reader
}

func (testFile) Close() error { return nil }

func photoUpload() (multipart.File, *multipart.FileHeader) {
	header := &multipart.FileHeader{
		Filename: "proof.jpg",
		Size:     1024,
		Header:   textproto.MIMEHeader{"Content-Type": []string{"image/jpeg"}},
	}
	return testFile{bytes.NewReader([]byte("jpeg-bytes"))}, header
}

func newTestService() (attendance.AttendanceService, *fakeAttendanceRepo, *fakeFileService, employee.Employee) {
	attendanceRepo := newFakeAttendanceRepo()
	emp := employee.Employee{ID: uuid.New().String(), EmployeeCode: "EMP-001", Name: "Jane Doe"}
	employeeRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{emp.ID: emp}}
	files := &fakeFileService{}
	svc := NewAttendanceService(attendanceRepo, employeeRepo, files)
	return svc, attendanceRepo, files, emp
}

func TestClockInAndOut(t *testing.T) {
	svc, _, _, emp := newTestService()
	ctx := context.Background()

	file, header := photoUpload()
	clockedIn, err := svc.ClockIn(ctx, attendance.ClockInRequest{
		EmployeeID: emp.ID,
		Timestamp:  "2025-06-02T08:00:00Z",
		File:       file,
		FileHeader: header,
	})
	require.NoError(t, err)
	assert.True(t, clockedIn.Open)
	assert.Equal(t, "2025-06-02", clockedIn.Date)
	assert.NotEmpty(t, clockedIn.ClockInPhotoURL)

	file, header = photoUpload()
	clockedOut, err := svc.ClockOut(ctx, attendance.ClockOutRequest{
		EmployeeID: emp.ID,
		Timestamp:  "2025-06-02T17:30:00Z",
		File:       file,
		FileHeader: header,
	})
	require.NoError(t, err)
	assert.False(t, clockedOut.Open)
	require.NotNil(t, clockedOut.WorkedMinutes)
	assert.Equal(t, 570, *clockedOut.WorkedMinutes)
	require.NotNil(t, clockedOut.ClockOutPhotoURL)
}

func TestClockInTwiceConflicts(t *testing.T) {
	svc, _, files, emp := newTestService()
	ctx := context.Background()

	file, header := photoUpload()
	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{
		EmployeeID: emp.ID,
		Timestamp:  "2025-06-02T08:00:00Z",
		File:       file,
		FileHeader: header,
	})
	require.NoError(t, err)

	file, header = photoUpload()
	_, err = svc.ClockIn(ctx, attendance.ClockInRequest{
		EmployeeID: emp.ID,
		Timestamp:  "2025-06-02T08:05:00Z",
		File:       file,
		FileHeader: header,
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	// The orphaned second photo must be cleaned up.
	assert.Len(t, files.deletes, 1)
}

func TestClockOutWithoutOpenSession(t *testing.T) {
	svc, _, _, emp := newTestService()

	file, header := photoUpload()
	_, err := svc.ClockOut(context.Background(), attendance.ClockOutRequest{
		EmployeeID: emp.ID,
		Timestamp:  "2025-06-02T17:00:00Z",
		File:       file,
		FileHeader: header,
	})
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestClockOutBeforeClockIn(t *testing.T) {
	svc, _, _, emp := newTestService()
	ctx := context.Background()

	file, header := photoUpload()
	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{
		EmployeeID: emp.ID,
		Timestamp:  "2025-06-02T08:00:00Z",
		File:       file,
		FileHeader: header,
	})
	require.NoError(t, err)

	file, header = photoUpload()
	_, err = svc.ClockOut(ctx, attendance.ClockOutRequest{
		EmployeeID: emp.ID,
		Timestamp:  "2025-06-02T07:00:00Z",
		File:       file,
		FileHeader: header,
	})
	assert.ErrorIs(t, err, attendance.ErrClockOutBeforeClockIn)
}

func TestClockOutByAttendanceID(t *testing.T) {
	svc, _, _, emp := newTestService()
	ctx := context.Background()

	file, header := photoUpload()
	clockedIn, err := svc.ClockIn(ctx, attendance.ClockInRequest{
		EmployeeID: emp.ID,
		Timestamp:  "2025-06-02T08:00:00Z",
		File:       file,
		FileHeader: header,
	})
	require.NoError(t, err)

	file, header = photoUpload()
	clockedOut, err := svc.ClockOut(ctx, attendance.ClockOutRequest{
		AttendanceID: &clockedIn.ID,
		Timestamp:    "2025-06-02T16:00:00Z",
		File:         file,
		FileHeader:   header,
	})
	require.NoError(t, err)
	assert.Equal(t, clockedIn.ID, clockedOut.ID)

	// Closing the same record again is a conflict.
	file, header = photoUpload()
	_, err = svc.ClockOut(ctx, attendance.ClockOutRequest{
		AttendanceID: &clockedIn.ID,
		Timestamp:    "2025-06-02T17:00:00Z",
		File:         file,
		FileHeader:   header,
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
}

func TestClockOutMissingTarget(t *testing.T) {
	svc, _, _, _ := newTestService()

	missing := uuid.New().String()
	file, header := photoUpload()
	_, err := svc.ClockOut(context.Background(), attendance.ClockOutRequest{
		AttendanceID: &missing,
		Timestamp:    "2025-06-02T17:00:00Z",
		File:         file,
		FileHeader:   header,
	})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestListByEmployeeAndDateEmpty(t *testing.T) {
	svc, _, _, emp := newTestService()

	date, _ := time.Parse("2006-01-02", "2025-06-02")
	_, err := svc.ListByEmployeeAndDate(context.Background(), emp.ID, date)
	assert.ErrorIs(t, err, attendance.ErrNoRecordsFound)
}

func TestDailyResetIdempotent(t *testing.T) {
	svc, _, _, emp := newTestService()
	ctx := context.Background()

	now := time.Now()
	file, header := photoUpload()
	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{
		EmployeeID: emp.ID,
		Timestamp:  now.Format(time.RFC3339),
		File:       file,
		FileHeader: header,
	})
	require.NoError(t, err)

	first, err := svc.DailyReset(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ClosedCount)

	// Nothing left to close on the second sweep.
	second, err := svc.DailyReset(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), second.ClosedCount)
}
