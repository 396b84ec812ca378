package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the login and registration routes on the API group.
func RegisterRoutes(g *echo.Group, db *bun.DB) {
	h := &handler{
		authService: NewService(db),
	}

	g.POST("/login", h.login)
	g.POST("/register", h.register)
}
