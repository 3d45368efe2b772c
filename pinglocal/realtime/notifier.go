package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pinglocal/pinglocal/pinglocal/config"
)

// Event is one committed row change as published by the schema triggers.
// New and Old are raw row JSON; subscribers decode into their own model.
type Event struct {
	Type  string          `json:"event"`
	Table string          `json:"table"`
	New   json.RawMessage `json:"new"`
	Old   json.RawMessage `json:"old"`
}

// RowID extracts the id of the affected row, preferring the new image.
func (e Event) RowID() string {
	type row struct {
		ID string `json:"id"`
	}
	var r row
	if len(e.New) > 0 && e.New[0] != 'n' {
		if err := json.Unmarshal(e.New, &r); err == nil && r.ID != "" {
			return r.ID
		}
	}
	if len(e.Old) > 0 && e.Old[0] != 'n' {
		if err := json.Unmarshal(e.Old, &r); err == nil {
			return r.ID
		}
	}
	return ""
}

// Subscription is a row-scoped stream of change events. Events arrive on C.
// Delivery is at-least-not-blocking: when the buffer is full the oldest event
// is dropped, which is safe because consumers re-evaluate full row state.
type Subscription struct {
	C chan Event

	notifier *Notifier
	key      string
	once     sync.Once
}

// Unsubscribe detaches the subscription and closes C. Safe to call more than
// once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.notifier.remove(s)
		close(s.C)
	})
}

// Notifier is the process-wide fan-out for Postgres LISTEN/NOTIFY. It is the
// only cross-process signal in the redemption flow: the consumer side never
// polls, it reacts to rows the business side commits.
type Notifier struct {
	pool *pgxpool.Pool

	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
}

func NewNotifier(pool *pgxpool.Pool) *Notifier {
	return &Notifier{
		pool: pool,
		subs: make(map[string]map[*Subscription]struct{}),
	}
}

// Subscribe returns a stream of changes for one row of one table.
func (n *Notifier) Subscribe(table, rowID string) *Subscription {
	sub := &Subscription{
		C:        make(chan Event, config.SubscriptionBuffer),
		notifier: n,
		key:      subKey(table, rowID),
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs[sub.key] == nil {
		n.subs[sub.key] = make(map[*Subscription]struct{})
	}
	n.subs[sub.key][sub] = struct{}{}
	return sub
}

func (n *Notifier) remove(sub *Subscription) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if set, ok := n.subs[sub.key]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(n.subs, sub.key)
		}
	}
}

// Run listens on the notify channel until ctx is done, reconnecting with
// backoff after connection loss. Notifications missed while reconnecting are
// simply absent; subscribers tolerate gaps the same way they tolerate
// duplicates.
func (n *Notifier) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		err := n.listen(ctx)
		if ctx.Err() != nil {
			return nil
		}

		slog.Error("Realtime listener disconnected",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.Duration("retry_in", backoff),
		)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (n *Notifier) listen(ctx context.Context) error {
	conn, err := n.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire listener connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+config.NotifyChannel); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", config.NotifyChannel, err)
	}

	slog.Info("Realtime listener started",
		slog.String("type", "sys"),
		slog.String("channel", config.NotifyChannel),
	)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		n.dispatch(notification.Payload)
	}
}

func (n *Notifier) dispatch(payload string) {
	var event Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		slog.Warn("Dropping malformed change notification",
			slog.String("type", "sys"),
			slog.Any("error", err),
		)
		return
	}

	n.Publish(event)
}

// Publish fans an event out to the matching row subscriptions. The listener
// loop calls it for every notification; in-process writers may call it
// directly to shortcut the database round trip.
func (n *Notifier) Publish(event Event) {
	rowID := event.RowID()
	if rowID == "" {
		return
	}

	n.mu.RLock()
	defer n.mu.RUnlock()
	for sub := range n.subs[subKey(event.Table, rowID)] {
		deliver(sub.C, event)
	}
}

// deliver pushes without blocking the listener loop, evicting the oldest
// buffered event when full.
func deliver(ch chan Event, event Event) {
	for {
		select {
		case ch <- event:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

func subKey(table, rowID string) string {
	return table + "/" + rowID
}
