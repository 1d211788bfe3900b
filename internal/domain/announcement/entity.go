package announcement

import (
	"time"
)

// Announcement is a broadcast message. Immutable once posted; read state is
// tracked per user through AnnouncementView rows.
type Announcement struct {
	ID        string
	Content   string
	CreatedAt time.Time
}

// AnnouncementView marks one announcement as read by one user.
// (announcement_id, user_id) is unique.
type AnnouncementView struct {
	ID             string
	AnnouncementID string
	UserID         string
	CreatedAt      time.Time
}
