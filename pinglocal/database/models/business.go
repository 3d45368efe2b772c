package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Business holds the minimal business fields the redemption core needs:
// contact details for cancellation notices and the name for search.
type Business struct {
	bun.BaseModel `bun:"table:businesses,alias:b"`

	ID        string    `bun:"id,pk" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Email     string    `bun:"email" json:"email"`
	PushToken string    `bun:"push_token" json:"push_token"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
}
