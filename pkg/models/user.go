package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           string    `bun:",pk" json:"_id"`
	CreatedAt    time.Time `json:"-"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose password hash
	Role         string    `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
