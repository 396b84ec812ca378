package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Favorite struct {
	bun.BaseModel `bun:"table:favorites,alias:f"`

	ID         string    `bun:",pk" json:"_id"`
	BookID     string    `json:"bookId"`
	Username   string    `json:"username"`
	BookTitle  string    `json:"bookTitle"`
	BookAuthor string    `json:"bookAuthor"`
	AddedAt    time.Time `json:"addedAt"`
}
