package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Borrow is a loan of a book to a student. It is open until Returned is set.
type Borrow struct {
	bun.BaseModel `bun:"table:borrows,alias:bo"`

	ID         string     `bun:",pk" json:"_id"`
	BookID     string     `json:"bookId"`
	Username   string     `json:"username"`
	BookTitle  string     `json:"bookTitle"`
	BookAuthor string     `json:"bookAuthor"`
	BorrowedAt time.Time  `json:"borrowedAt"`
	Returned   bool       `json:"returned"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
}
