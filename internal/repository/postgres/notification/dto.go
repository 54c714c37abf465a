package notification

import "time"

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Unread *bool
}

type GetListResponse struct {
	ID        int        `json:"id"`
	SenderID  *int       `json:"sender_id"`
	Title     *string    `json:"title"`
	Message   *string    `json:"message"`
	Type      *string    `json:"type"`
	IsRead    bool       `json:"is_read"`
	CreatedAt *time.Time `json:"created_at"`
}
