package postgresql

import (
	"context"
	"fmt"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/announcement"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/database"
)

type announcementRepositoryImpl struct {
	db *database.DB
}

func NewAnnouncementRepository(db *database.DB) announcement.AnnouncementRepository {
	return &announcementRepositoryImpl{db: db}
}

// Create implements announcement.AnnouncementRepository.
func (a *announcementRepositoryImpl) Create(ctx context.Context, ann announcement.Announcement) (announcement.Announcement, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO announcements (content)
		VALUES ($1)
		RETURNING id, content, created_at
	`

	var created announcement.Announcement
	err := q.QueryRow(ctx, query, ann.Content).Scan(&created.ID, &created.Content, &created.CreatedAt)
	if err != nil {
		return announcement.Announcement{}, fmt.Errorf("create announcement: %w", err)
	}

	return created, nil
}

// ListRecent implements announcement.AnnouncementRepository.
func (a *announcementRepositoryImpl) ListRecent(ctx context.Context) ([]announcement.Announcement, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, content, created_at
		FROM announcements
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	var announcements []announcement.Announcement
	for rows.Next() {
		var ann announcement.Announcement
		if err := rows.Scan(&ann.ID, &ann.Content, &ann.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan announcement: %w", err)
		}
		announcements = append(announcements, ann)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return announcements, nil
}

// UnreadCount implements announcement.AnnouncementRepository.
func (a *announcementRepositoryImpl) UnreadCount(ctx context.Context, userID string) (int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT COUNT(*)
		FROM announcements a
		WHERE NOT EXISTS (
			SELECT 1 FROM announcement_views v
			WHERE v.announcement_id = a.id AND v.user_id = $1
		)
	`

	var count int64
	if err := q.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread announcements: %w", err)
	}

	return count, nil
}

// MarkAllRead implements announcement.AnnouncementRepository.
func (a *announcementRepositoryImpl) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO announcement_views (announcement_id, user_id)
		SELECT id, $1 FROM announcements
		ON CONFLICT (announcement_id, user_id) DO NOTHING
	`

	tag, err := q.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("mark announcements read: %w", err)
	}

	return tag.RowsAffected(), nil
}
