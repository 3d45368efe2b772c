package services

import (
	"context"
	"time"

	"log/slog"

	"github.com/pinglocal/pinglocal/pinglocal/database/models"
	"github.com/pinglocal/pinglocal/pinglocal/database/repositories"
)

// CustomerNotifyService fans one message out to every channel the consumer
// has: the in-app inbox row, a device push, and email. Each leg is best
// effort and failures never propagate to the state change that triggered
// the notification.
type CustomerNotifyService struct {
	notifications repositories.NotificationRepository
	push          PushSender
	tokens        *TokenRegistry
	mailer        *Mailer
}

func NewCustomerNotifyService(
	notifications repositories.NotificationRepository,
	push PushSender,
	tokens *TokenRegistry,
	mailer *Mailer,
) *CustomerNotifyService {
	return &CustomerNotifyService{
		notifications: notifications,
		push:          push,
		tokens:        tokens,
		mailer:        mailer,
	}
}

func (s *CustomerNotifyService) Notify(ctx context.Context, userID, email, title, body string) {
	if err := s.notifications.Create(ctx, &models.Notification{
		UserID:    userID,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}); err != nil {
		slog.Error("Failed to create notification row",
			slog.String("type", "db"),
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}

	if token, ok := s.tokens.Lookup(userID); ok {
		if err := s.push.Send(ctx, PushMessage{To: token, Title: title, Body: body}); err != nil {
			slog.Warn("Failed to send push notification",
				slog.String("type", "sys"),
				slog.String("user_id", userID),
				slog.Any("error", err),
			)
		}
	}

	if email != "" && s.mailer.Enabled() {
		if err := s.mailer.Send(ctx, email, title, body); err != nil {
			slog.Warn("Failed to send notification email",
				slog.String("type", "sys"),
				slog.String("user_id", userID),
				slog.Any("error", err),
			)
		}
	}
}
