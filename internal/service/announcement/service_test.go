package announcement

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/announcement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnnouncementRepo struct {
	announcements []announcement.Announcement
	views         map[string]map[string]struct{} // userID -> announcement ids seen
	clock         time.Time
}

func newFakeAnnouncementRepo() *fakeAnnouncementRepo {
	return &fakeAnnouncementRepo{
		views: make(map[string]map[string]struct{}),
		clock: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeAnnouncementRepo) Create(ctx context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	f.clock = f.clock.Add(time.Minute)
	a.ID = uuid.New().String()
	a.CreatedAt = f.clock
	f.announcements = append(f.announcements, a)
	return a, nil
}

func (f *fakeAnnouncementRepo) ListRecent(ctx context.Context) ([]announcement.Announcement, error) {
	out := make([]announcement.Announcement, len(f.announcements))
	copy(out, f.announcements)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeAnnouncementRepo) UnreadCount(ctx context.Context, userID string) (int64, error) {
	seen := f.views[userID]
	var unread int64
	for _, a := range f.announcements {
		if _, ok := seen[a.ID]; !ok {
			unread++
		}
	}
	return unread, nil
}

func (f *fakeAnnouncementRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	seen := f.views[userID]
	if seen == nil {
		seen = make(map[string]struct{})
		f.views[userID] = seen
	}
	var marked int64
	for _, a := range f.announcements {
		if _, ok := seen[a.ID]; !ok {
			seen[a.ID] = struct{}{}
			marked++
		}
	}
	return marked, nil
}

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()

	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    "employee",
		"type":    "access",
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestPostAndListRecent(t *testing.T) {
	svc := NewAnnouncementService(newFakeAnnouncementRepo())
	ctx := context.Background()

	_, err := svc.Post(ctx, announcement.PostAnnouncementRequest{Content: "Office closed Monday"})
	require.NoError(t, err)
	_, err = svc.Post(ctx, announcement.PostAnnouncementRequest{Content: "Payroll moves to the 15th"})
	require.NoError(t, err)

	recent, err := svc.ListRecent(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Payroll moves to the 15th", recent[0].Content)
}

func TestPostValidation(t *testing.T) {
	svc := NewAnnouncementService(newFakeAnnouncementRepo())

	_, err := svc.Post(context.Background(), announcement.PostAnnouncementRequest{Content: ""})
	assert.Error(t, err)

	_, err = svc.Post(context.Background(), announcement.PostAnnouncementRequest{
		Content: strings.Repeat("a", announcement.MaxContentLength+1),
	})
	assert.Error(t, err)
}

func TestUnreadCountAroundMarkAllRead(t *testing.T) {
	svc := NewAnnouncementService(newFakeAnnouncementRepo())
	ctx := authedContext(t, uuid.New().String())

	_, err := svc.Post(ctx, announcement.PostAnnouncementRequest{Content: "first"})
	require.NoError(t, err)
	_, err = svc.Post(ctx, announcement.PostAnnouncementRequest{Content: "second"})
	require.NoError(t, err)

	unread, err := svc.UnreadCountForMe(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread.UnreadCount)

	marked, err := svc.MarkAllReadForMe(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), marked.MarkedCount)

	unread, err = svc.UnreadCountForMe(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread.UnreadCount)

	// Marking again is a no-op.
	marked, err = svc.MarkAllReadForMe(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), marked.MarkedCount)

	// A new post becomes unread again.
	_, err = svc.Post(ctx, announcement.PostAnnouncementRequest{Content: "third"})
	require.NoError(t, err)
	unread, err = svc.UnreadCountForMe(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread.UnreadCount)
}

func TestUnreadCountIsPerUser(t *testing.T) {
	svc := NewAnnouncementService(newFakeAnnouncementRepo())

	alice := authedContext(t, uuid.New().String())
	bob := authedContext(t, uuid.New().String())

	_, err := svc.Post(context.Background(), announcement.PostAnnouncementRequest{Content: "all hands friday"})
	require.NoError(t, err)

	_, err = svc.MarkAllReadForMe(alice)
	require.NoError(t, err)

	aliceUnread, err := svc.UnreadCountForMe(alice)
	require.NoError(t, err)
	assert.Equal(t, int64(0), aliceUnread.UnreadCount)

	bobUnread, err := svc.UnreadCountForMe(bob)
	require.NoError(t, err)
	assert.Equal(t, int64(1), bobUnread.UnreadCount)
}
