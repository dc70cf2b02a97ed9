package notification

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PageSize is the number of notifications returned by List.
const PageSize = 20

// Feed is a page of visible notifications and the caller's total unread count.
type Feed struct {
	Notifications []*Notification `json:"notifications"`
	UnreadCount   int64           `json:"unreadCount"`
}

// NotificationService implements the notification feed operations.
type NotificationService struct {
	repo Repository
	now  func() time.Time
}

func NewNotificationService(repo Repository) *NotificationService {
	return &NotificationService{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// List returns the newest notifications visible to c. The unread count
// covers the whole visible set, not only the returned page.
func (s *NotificationService) List(ctx context.Context, c Caller) (*Feed, error) {
	v, err := VisibleTo(c)
	if err != nil {
		return nil, err
	}
	notifications, err := s.repo.FindVisible(ctx, v, PageSize)
	if err != nil {
		return nil, fmt.Errorf("find notifications: %w", err)
	}
	unread, err := s.repo.CountVisible(ctx, v.Unread())
	if err != nil {
		return nil, fmt.Errorf("count unread notifications: %w", err)
	}
	return &Feed{Notifications: notifications, UnreadCount: unread}, nil
}

// MarkRead marks one notification read. Any caller may mark any id.
func (s *NotificationService) MarkRead(ctx context.Context, id primitive.ObjectID) (*Notification, error) {
	return s.repo.MarkRead(ctx, id)
}

// MarkAllRead marks every unread notification in c's audience read,
// including ones c sent itself.
func (s *NotificationService) MarkAllRead(ctx context.Context, c Caller) (int64, error) {
	v, err := VisibleTo(c)
	if err != nil {
		return 0, err
	}
	return s.repo.MarkAllRead(ctx, v.IncludingOwn())
}

// Create stores a notification sent by c.
func (s *NotificationService) Create(ctx context.Context, c Caller, n *Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	now := s.now()
	n.ID = primitive.NilObjectID
	n.SenderID = c.ID
	n.IsRead = false
	n.CreatedAt = now
	n.UpdatedAt = now
	return s.repo.Create(ctx, n)
}
