package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Notification is an in-app notification row shown in the consumer inbox.
type Notification struct {
	bun.BaseModel `bun:"table:notifications,alias:n"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID    string    `bun:"user_id,notnull" json:"user_id"`
	Title     string    `bun:"title,notnull" json:"title"`
	Body      string    `bun:"body" json:"body"`
	Read      bool      `bun:"read,notnull,default:false" json:"read"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
}
