package attendance

import (
	"mime/multipart"

	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/validator"
)

const (
	MaxPhotoSizeBytes = 2 << 20 // 2MB
)

var AllowedPhotoTypes = []string{"image/jpeg", "image/png", "image/gif"}

func validatePhoto(errs validator.ValidationErrors, header *multipart.FileHeader) validator.ValidationErrors {
	if header == nil {
		return append(errs, validator.ValidationError{Field: "photo", Message: "photo is required"})
	}
	if header.Size > MaxPhotoSizeBytes {
		errs = append(errs, validator.ValidationError{Field: "photo", Message: "photo must not exceed 2MB"})
	}
	if !validator.IsInSlice(header.Header.Get("Content-Type"), AllowedPhotoTypes) {
		errs = append(errs, validator.ValidationError{Field: "photo", Message: "photo must be a jpeg, png or gif image"})
	}
	return errs
}

type ClockInRequest struct {
	EmployeeID string
	// Timestamp is optional RFC3339; server time is used when empty
	Timestamp string

	File       multipart.File
	FileHeader *multipart.FileHeader
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if !validator.IsEmpty(r.Timestamp) {
		if _, ok := validator.IsValidDateTime(r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "timestamp must be an RFC3339 datetime"})
		}
	}
	errs = validatePhoto(errs, r.FileHeader)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ClockOutRequest addresses the open record either directly by attendance id
// or indirectly by employee id; both resolve to the same update.
type ClockOutRequest struct {
	AttendanceID *string
	EmployeeID   string
	Timestamp    string

	File       multipart.File
	FileHeader *multipart.FileHeader
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.AttendanceID == nil && validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "attendance_id or employee_id is required"})
	}
	if !validator.IsEmpty(r.Timestamp) {
		if _, ok := validator.IsValidDateTime(r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "timestamp must be an RFC3339 datetime"})
		}
	}
	errs = validatePhoto(errs, r.FileHeader)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employee_id"`
	EmployeeName      *string `json:"employee_name,omitempty"`
	Date              string  `json:"date"`
	ClockIn           string  `json:"clock_in"`
	ClockOut          *string `json:"clock_out,omitempty"`
	ClockInPhotoURL   string  `json:"clock_in_photo_url"`
	ClockOutPhotoURL  *string `json:"clock_out_photo_url,omitempty"`
	WorkedMinutes     *int    `json:"worked_minutes,omitempty"`
	Open              bool    `json:"open"`
}

type ListAttendanceResponse struct {
	Attendances []AttendanceResponse `json:"attendances"`
	TotalCount  int                  `json:"total_count"`
}

type ResetResponse struct {
	ClosedCount int64 `json:"closed_count"`
}
