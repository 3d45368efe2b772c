package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Offer is the subset of the offers table the redemption core touches:
// payment classification, booking classification and the sold counter.
type Offer struct {
	bun.BaseModel `bun:"table:offers,alias:o"`

	ID                string    `bun:"id,pk" json:"id"`
	BusinessID        string    `bun:"business_id,notnull" json:"business_id"`
	Name              string    `bun:"name,notnull" json:"name"`
	PurchaseType      string    `bun:"purchase_type" json:"purchase_type"`
	CustomerPrice     *float64  `bun:"customer_price" json:"customer_price"`
	BillInputRequired bool      `bun:"bill_input_required" json:"bill_input_required"`
	BookingRequired   bool      `bun:"booking_required" json:"booking_required"`
	SoldCount         int       `bun:"sold_count,notnull,default:0" json:"sold_count"`
	TotalAvailable    *int      `bun:"total_available" json:"total_available"`
	Active            bool      `bun:"active,notnull,default:true" json:"active"`
	CreatedAt         time.Time `bun:"created_at,notnull" json:"created_at"`
}

// OfferSlot is a capacity-limited time slot for slot-based offers. The booked
// counter is shared mutable state; all writes are floor-at-zero adjustments.
type OfferSlot struct {
	bun.BaseModel `bun:"table:offer_slots,alias:os"`

	ID          string    `bun:"id,pk" json:"id"`
	OfferID     string    `bun:"offer_id,notnull" json:"offer_id"`
	StartsAt    time.Time `bun:"starts_at,notnull" json:"starts_at"`
	Capacity    int       `bun:"capacity,notnull" json:"capacity"`
	BookedCount int       `bun:"booked_count,notnull,default:0" json:"booked_count"`
}
