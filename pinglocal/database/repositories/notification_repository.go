package repositories

import (
	"context"
	"time"

	"github.com/pinglocal/pinglocal/pinglocal/database/models"
	"github.com/uptrace/bun"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetUnreadByUser(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id int64) error
}

type notificationRepository struct {
	*BaseRepository
}

func NewNotificationRepository(db *bun.DB) NotificationRepository {
	return &notificationRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	return r.SelectWithTimeout(ctx, "create", "notification", func(ctx context.Context) error {
		_, err := r.GetDB().NewInsert().Model(notification).Exec(ctx)
		return err
	})
}

func (r *notificationRepository) GetUnreadByUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.SelectWithTimeout(ctx, "list_unread", "notification", func(ctx context.Context) error {
		return r.GetDB().NewSelect().
			Model(&notifications).
			Where("n.user_id = ?", userID).
			Where("n.read = false").
			Order("n.created_at DESC").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id int64) error {
	return r.SelectOneWithTimeout(ctx, "mark_read", "notification", id, func(ctx context.Context) error {
		_, err := r.GetDB().NewUpdate().
			Model((*models.Notification)(nil)).
			Set("read = true").
			Where("id = ?", id).
			Exec(ctx)
		return err
	})
}
