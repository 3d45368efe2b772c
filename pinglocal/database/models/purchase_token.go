package models

import (
	"time"

	"github.com/uptrace/bun"
)

// PurchaseToken is a consumer's claim on an offer. Its ID doubles as the QR
// payload the business side scans. Offer fields are denormalized at claim
// time so the token survives offer edits and deletes.
type PurchaseToken struct {
	bun.BaseModel `bun:"table:purchase_tokens,alias:pt"`

	ID            string     `bun:"id,pk" json:"id"`
	OfferID       string     `bun:"offer_id,notnull" json:"offer_id"`
	OfferName     string     `bun:"offer_name" json:"offer_name"`
	BusinessID    string     `bun:"business_id,notnull" json:"business_id"`
	UserID        string     `bun:"user_id,notnull" json:"user_id"`
	UserEmail     string     `bun:"user_email" json:"user_email"`
	PurchaseType  string     `bun:"purchase_type" json:"purchase_type"`
	CustomerPrice *float64   `bun:"customer_price" json:"customer_price"`
	OfferSlot     *string    `bun:"offer_slot" json:"offer_slot"`
	Quantity      int        `bun:"quantity" json:"quantity"`
	BookingConfirmed  bool       `bun:"booking_confirmed" json:"booking_confirmed"`
	BookingDate       *time.Time `bun:"booking_date" json:"booking_date"`
	BookingReminderID *string    `bun:"booking_reminder_id" json:"booking_reminder_id"`
	Redeemed      bool      `bun:"redeemed,notnull,default:false" json:"redeemed"`
	Cancelled     bool      `bun:"cancelled,notnull,default:false" json:"cancelled"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"created_at"`
}

// PayOnTheDay reports whether the purchase follows the pay-on-the-day model.
// A missing customer price is the legacy signal for it.
func (pt *PurchaseToken) PayOnTheDay() bool {
	return pt.CustomerPrice == nil
}

// PartySize returns the slot quantity, defaulting to 1 for legacy rows that
// predate the quantity column.
func (pt *PurchaseToken) PartySize() int {
	if pt.Quantity < 1 {
		return 1
	}
	return pt.Quantity
}
