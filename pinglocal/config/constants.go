package config

import "time"

// Database timeouts
const (
	DefaultQueryTimeout = 30 * time.Second
	BatchQueryTimeout   = 60 * time.Second
)

// Loyalty constants
const (
	// PointsPerCurrencyUnit converts a bill amount into loyalty points.
	// Points awarded = floor(bill * PointsPerCurrencyUnit).
	PointsPerCurrencyUnit = 10
)

// Cancellation constants
const (
	// CancellationWindow is the minimum lead time before a confirmed booking
	// for a consumer-initiated cancellation. The comparison is strict: a
	// booking exactly this far away is not cancellable.
	CancellationWindow = 48 * time.Hour
)

// Realtime constants
const (
	// NotifyChannel is the Postgres NOTIFY channel the schema triggers
	// publish row changes on.
	NotifyChannel = "pinglocal_changes"

	// SubscriptionBuffer bounds each subscription's event channel. Consumers
	// re-evaluate full row state per event, so dropped events are safe.
	SubscriptionBuffer = 16
)
