package announcement

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/announcement"
)

type announcementServiceImpl struct {
	announcementRepo announcement.AnnouncementRepository
}

func NewAnnouncementService(announcementRepository announcement.AnnouncementRepository) announcement.AnnouncementService {
	return &announcementServiceImpl{announcementRepo: announcementRepository}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id not found in token")
	}
	return userID, nil
}

// Post implements announcement.AnnouncementService.
func (s *announcementServiceImpl) Post(ctx context.Context, req announcement.PostAnnouncementRequest) (announcement.AnnouncementResponse, error) {
	if err := req.Validate(); err != nil {
		return announcement.AnnouncementResponse{}, err
	}

	created, err := s.announcementRepo.Create(ctx, announcement.Announcement{Content: req.Content})
	if err != nil {
		return announcement.AnnouncementResponse{}, err
	}

	return toResponse(created), nil
}

// ListRecent implements announcement.AnnouncementService.
func (s *announcementServiceImpl) ListRecent(ctx context.Context) ([]announcement.AnnouncementResponse, error) {
	announcements, err := s.announcementRepo.ListRecent(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]announcement.AnnouncementResponse, 0, len(announcements))
	for _, ann := range announcements {
		responses = append(responses, toResponse(ann))
	}

	return responses, nil
}

// UnreadCountForMe implements announcement.AnnouncementService.
func (s *announcementServiceImpl) UnreadCountForMe(ctx context.Context) (announcement.UnreadCountResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return announcement.UnreadCountResponse{}, err
	}

	count, err := s.announcementRepo.UnreadCount(ctx, userID)
	if err != nil {
		return announcement.UnreadCountResponse{}, err
	}

	return announcement.UnreadCountResponse{UnreadCount: count}, nil
}

// MarkAllReadForMe implements announcement.AnnouncementService.
func (s *announcementServiceImpl) MarkAllReadForMe(ctx context.Context) (announcement.MarkReadResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return announcement.MarkReadResponse{}, err
	}

	marked, err := s.announcementRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return announcement.MarkReadResponse{}, err
	}

	return announcement.MarkReadResponse{MarkedCount: marked}, nil
}

func toResponse(ann announcement.Announcement) announcement.AnnouncementResponse {
	return announcement.AnnouncementResponse{
		ID:        ann.ID,
		Content:   ann.Content,
		CreatedAt: ann.CreatedAt.Format(time.RFC3339),
	}
}
