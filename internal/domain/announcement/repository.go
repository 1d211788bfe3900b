package announcement

import (
	"context"
)

// AnnouncementRepository defines data access methods for the board.
type AnnouncementRepository interface {
	Create(ctx context.Context, a Announcement) (Announcement, error)

	// ListRecent returns announcements newest-first
	ListRecent(ctx context.Context) ([]Announcement, error)

	// UnreadCount counts announcements without a view row for the user
	UnreadCount(ctx context.Context, userID string) (int64, error)

	// MarkAllRead inserts a view row for every announcement the user has not
	// seen. ON CONFLICT DO NOTHING keeps it safe against concurrent posts and
	// repeated sweeps; returns the number of rows inserted.
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}
