package services

import (
	"context"
	"sync"
	"time"

	"log/slog"

	"github.com/google/uuid"
)

// ReminderScheduler schedules a one-shot push reminder. Cancel of an unknown
// or already-fired id is a no-op.
type ReminderScheduler interface {
	Schedule(userID, title, body string, delay time.Duration) string
	Cancel(reminderID string)
}

// ReminderManager keeps scheduled reminders in process. Reminders do not
// survive a restart; booking reminders are re-derivable from the purchase
// rows and rescheduling on boot is the caller's concern.
type ReminderManager struct {
	push     PushSender
	tokens   *TokenRegistry
	timers   sync.Map // reminderID -> *time.Timer
	shutdown chan struct{}
	once     sync.Once
}

func NewReminderManager(push PushSender, tokens *TokenRegistry) *ReminderManager {
	return &ReminderManager{
		push:     push,
		tokens:   tokens,
		shutdown: make(chan struct{}),
	}
}

// Schedule registers a reminder and returns its id for later cancellation.
func (m *ReminderManager) Schedule(userID, title, body string, delay time.Duration) string {
	reminderID := uuid.NewString()

	timer := time.AfterFunc(delay, func() {
		m.timers.Delete(reminderID)

		select {
		case <-m.shutdown:
			return
		default:
		}

		m.deliver(userID, title, body)
	})
	m.timers.Store(reminderID, timer)

	slog.Debug("Scheduled reminder",
		slog.String("type", "sys"),
		slog.String("reminder_id", reminderID),
		slog.String("user_id", userID),
		slog.Duration("delay", delay),
	)
	return reminderID
}

func (m *ReminderManager) Cancel(reminderID string) {
	v, ok := m.timers.LoadAndDelete(reminderID)
	if !ok {
		return
	}
	v.(*time.Timer).Stop()
}

// Shutdown stops every pending timer. Safe to call more than once.
func (m *ReminderManager) Shutdown() {
	m.once.Do(func() {
		close(m.shutdown)
		m.timers.Range(func(key, value any) bool {
			value.(*time.Timer).Stop()
			m.timers.Delete(key)
			return true
		})
	})
}

func (m *ReminderManager) deliver(userID, title, body string) {
	token, ok := m.tokens.Lookup(userID)
	if !ok {
		slog.Debug("No push token for reminder",
			slog.String("type", "sys"),
			slog.String("user_id", userID),
		)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := m.push.Send(ctx, PushMessage{To: token, Title: title, Body: body}); err != nil {
		slog.Error("Failed to deliver reminder",
			slog.String("type", "sys"),
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}
}
