package models

import (
	"time"

	"github.com/uptrace/bun"
)

const NotificationTypeReturnRequest = "return_request"

type Notification struct {
	bun.BaseModel `bun:"table:notifications,alias:n"`

	ID         string     `bun:",pk" json:"_id"`
	Username   string     `json:"username"`
	Type       string     `json:"type"`
	Message    string     `json:"message"`
	BookID     string     `json:"bookId"`
	BookTitle  string     `json:"bookTitle"`
	BookAuthor string     `json:"bookAuthor"`
	Read       bool       `json:"read"`
	CreatedAt  time.Time  `json:"createdAt"`
	ReadAt     *time.Time `json:"readAt,omitempty"`
}
