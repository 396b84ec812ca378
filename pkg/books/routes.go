package books

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the catalog routes on the API group.
func RegisterRoutes(g *echo.Group, db *bun.DB) {
	h := &handler{
		bookService: NewService(db),
	}

	g.GET("/books", h.list)
	g.POST("/books", h.create)
	g.DELETE("/books/:id", h.deleteBook)
	g.PUT("/books/issue/:id", h.toggleIssue)
}
