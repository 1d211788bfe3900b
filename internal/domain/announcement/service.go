package announcement

import (
	"context"
)

// AnnouncementService defines business logic for the announcement board
type AnnouncementService interface {
	Post(ctx context.Context, req PostAnnouncementRequest) (AnnouncementResponse, error)

	ListRecent(ctx context.Context) ([]AnnouncementResponse, error)

	// UnreadCountForMe counts unread announcements for the authenticated user
	UnreadCountForMe(ctx context.Context) (UnreadCountResponse, error)

	// MarkAllReadForMe marks every unread announcement as read for the
	// authenticated user
	MarkAllReadForMe(ctx context.Context) (MarkReadResponse, error)
}
