package announcement

import (
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/validator"
)

const MaxContentLength = 10000

type PostAnnouncementRequest struct {
	Content string `json:"announcement"`
}

func (r *PostAnnouncementRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Content) {
		errs = append(errs, validator.ValidationError{Field: "announcement", Message: "announcement is required"})
	} else if len(r.Content) > MaxContentLength {
		errs = append(errs, validator.ValidationError{Field: "announcement", Message: "announcement must not exceed 10000 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AnnouncementResponse struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

type MarkReadResponse struct {
	MarkedCount int64 `json:"marked_count"`
}
