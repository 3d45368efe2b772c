package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Redemption token workflow statuses. These strings are the wire contract
// with the business-side app and must not change.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusSubmitted  = "Submitted"
	StatusRejected   = "Rejected"
	StatusFinished   = "Finished"
)

// Legacy timestamp formats for time_redeemed / date_redeemed.
const (
	TimeRedeemedFormat = "15:04"
	DateRedeemedFormat = "2006-01-02"
)

// RedemptionToken is the single-use artifact created per redemption attempt.
// At most one unscanned token exists per purchase token; once scanned it is
// never deleted.
type RedemptionToken struct {
	bun.BaseModel `bun:"table:redemption_tokens,alias:rt"`

	ID              string   `bun:"id,pk" json:"id"`
	PurchaseTokenID string   `bun:"purchase_token_id,notnull" json:"purchase_token_id"`
	Scanned         bool     `bun:"scanned,notnull,default:false" json:"scanned"`
	Status          string   `bun:"status,notnull" json:"status"`
	BillInputTotal  *float64 `bun:"bill_input_total" json:"bill_input_total"`
	Completed       bool     `bun:"completed,notnull,default:false" json:"completed"`
	TimeRedeemed    *string  `bun:"time_redeemed" json:"time_redeemed"`
	DateRedeemed    *string  `bun:"date_redeemed" json:"date_redeemed"`
	CreatedAt       time.Time `bun:"created_at,notnull" json:"created_at"`
}
