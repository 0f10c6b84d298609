package domain

import "time"

// Notification is a persisted in-app message emitted on lifecycle events.
// Delivery channels (email, push) are external collaborators.
type Notification struct {
	ID         int32             `json:"id"`
	UserID     int32             `json:"user_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	Attributes map[string]string `json:"attributes,omitempty"`
	IsRead     bool              `json:"is_read"`
	CreatedAt  time.Time         `json:"created_at"`
}
