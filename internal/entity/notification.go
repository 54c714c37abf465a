package entity

import (
	"time"

	"github.com/uptrace/bun"
)

type Notification struct {
	bun.BaseModel `bun:"table:notifications"`

	ID        int       `json:"id" bun:"id,pk,autoincrement"`
	UserID    *int      `json:"user_id" bun:"user_id"`
	SenderID  *int      `json:"sender_id" bun:"sender_id"`
	Title     *string   `json:"title" bun:"title"`
	Message   *string   `json:"message" bun:"message"`
	Type      *string   `json:"type" bun:"type"`
	IsRead    bool      `json:"is_read" bun:"is_read"`
	CreatedAt time.Time `json:"created_at" bun:"created_at"`
}
