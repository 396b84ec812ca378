package favorites

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the favorite routes on the API group.
func RegisterRoutes(g *echo.Group, db *bun.DB) {
	h := &handler{
		favoriteService: NewService(db),
	}

	g.GET("/books/my-favorites", h.list)
	g.POST("/books/favorite/:id", h.toggle)
}
