package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Request statuses. A request starts pending and moves to exactly one of the
// terminal statuses.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// Request is a student's ask to borrow a book. Title and author are copied
// from the book when the request is made and never refreshed.
type Request struct {
	bun.BaseModel `bun:"table:requests,alias:r"`

	ID          string     `bun:",pk" json:"_id"`
	BookID      string     `json:"bookId"`
	Username    string     `json:"username"`
	BookTitle   string     `json:"bookTitle"`
	BookAuthor  string     `json:"bookAuthor"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requestedAt"`
	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`
	RejectedAt  *time.Time `json:"rejectedAt,omitempty"`
}

func (r *Request) IsPending() bool {
	return r.Status == RequestStatusPending
}
