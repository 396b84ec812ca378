package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Book is a catalog entry. Issued is a cached view of whether an open borrow
// exists for the book; the direct issue/return toggle can make it drift.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID        string    `bun:",pk" json:"_id"`
	CreatedAt time.Time `json:"-"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Issued    bool      `json:"issued"`
}
