package realtime

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/pinglocal/pinglocal/pinglocal/config"
)

func event(table, rowID string) Event {
	return Event{
		Type:  "UPDATE",
		Table: table,
		New:   json.RawMessage(fmt.Sprintf(`{"id":%q}`, rowID)),
	}
}

func TestEvent_RowID(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{"FromNew", event("redemption_tokens", "rt-1"), "rt-1"},
		{"FromOldOnDelete", Event{Type: "DELETE", Old: json.RawMessage(`{"id":"rt-2"}`)}, "rt-2"},
		{"Empty", Event{}, ""},
		{"Garbage", Event{New: json.RawMessage(`not json`)}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.RowID(); got != tt.want {
				t.Errorf("RowID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNotifier_SubscribeAndPublish(t *testing.T) {
	n := NewNotifier(nil)

	sub := n.Subscribe("redemption_tokens", "rt-1")
	other := n.Subscribe("redemption_tokens", "rt-2")

	n.Publish(event("redemption_tokens", "rt-1"))

	select {
	case got := <-sub.C:
		if got.RowID() != "rt-1" {
			t.Errorf("received event for %q, want rt-1", got.RowID())
		}
	default:
		t.Fatal("subscriber for rt-1 received nothing")
	}

	select {
	case got := <-other.C:
		t.Fatalf("subscriber for rt-2 received event for %q", got.RowID())
	default:
	}
}

func TestNotifier_ScopedByTable(t *testing.T) {
	n := NewNotifier(nil)

	sub := n.Subscribe("purchase_tokens", "pt-1")
	n.Publish(event("redemption_tokens", "pt-1"))

	select {
	case <-sub.C:
		t.Fatal("subscription leaked across tables sharing a row id")
	default:
	}
}

func TestNotifier_UnsubscribeStopsDelivery(t *testing.T) {
	n := NewNotifier(nil)

	sub := n.Subscribe("redemption_tokens", "rt-1")
	sub.Unsubscribe()
	sub.Unsubscribe() // idempotent

	n.Publish(event("redemption_tokens", "rt-1"))

	if _, ok := <-sub.C; ok {
		t.Fatal("received event after unsubscribe")
	}
}

func TestNotifier_DropsOldestWhenFull(t *testing.T) {
	n := NewNotifier(nil)
	sub := n.Subscribe("redemption_tokens", "rt-1")

	total := config.SubscriptionBuffer + 3
	for i := 0; i < total; i++ {
		n.Publish(Event{
			Type:  "UPDATE",
			Table: "redemption_tokens",
			New:   json.RawMessage(fmt.Sprintf(`{"id":"rt-1","seq":%d}`, i)),
		})
	}

	// The buffer holds the newest events; the oldest were evicted so a slow
	// consumer converges on current state instead of stalling the listener.
	var seqs []int
	for {
		select {
		case got := <-sub.C:
			var payload struct {
				Seq int `json:"seq"`
			}
			if err := json.Unmarshal(got.New, &payload); err != nil {
				t.Fatalf("decode event: %v", err)
			}
			seqs = append(seqs, payload.Seq)
			continue
		default:
		}
		break
	}

	if len(seqs) != config.SubscriptionBuffer {
		t.Fatalf("buffered %d events, want %d", len(seqs), config.SubscriptionBuffer)
	}
	if seqs[len(seqs)-1] != total-1 {
		t.Errorf("newest buffered seq = %d, want %d", seqs[len(seqs)-1], total-1)
	}
	if seqs[0] != total-config.SubscriptionBuffer {
		t.Errorf("oldest buffered seq = %d, want %d", seqs[0], total-config.SubscriptionBuffer)
	}
}
