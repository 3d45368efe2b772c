package models

import (
	"time"

	"github.com/uptrace/bun"
)

// PointsEntry is an append-only loyalty ledger row. The cumulative balance is
// always SUM(points) over a user/business pair; it is never stored.
type PointsEntry struct {
	bun.BaseModel `bun:"table:points_entries,alias:pe"`

	ID              int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID          string    `bun:"user_id,notnull" json:"user_id"`
	BusinessID      string    `bun:"business_id,notnull" json:"business_id"`
	Points          int64     `bun:"points,notnull" json:"points"`
	Reason          string    `bun:"reason" json:"reason"`
	PurchaseTokenID *string   `bun:"purchase_token_id" json:"purchase_token_id"`
	CreatedAt       time.Time `bun:"created_at,notnull" json:"created_at"`
}

// LoyaltyAccount carries the denormalized current tier for display. The tier
// is recomputed from the ledger on every credit, never incremented.
type LoyaltyAccount struct {
	bun.BaseModel `bun:"table:loyalty_accounts,alias:la"`

	UserID     string    `bun:"user_id,pk" json:"user_id"`
	BusinessID string    `bun:"business_id,pk" json:"business_id"`
	Tier       string    `bun:"tier,notnull" json:"tier"`
	UpdatedAt  time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
