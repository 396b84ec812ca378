package circulation

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the student request and borrow routes and the admin
// circulation routes on the API group.
func RegisterRoutes(g *echo.Group, db *bun.DB) {
	h := &handler{
		circulationService: NewService(db),
	}

	g.POST("/books/request/:id", h.submitRequest)
	g.GET("/books/my-requests", h.myRequests)
	g.GET("/books/my-borrowed", h.myBorrowed)

	admin := g.Group("/admin")
	admin.GET("/requests", h.listRequests)
	admin.PUT("/requests/:id/approve", h.approve)
	admin.PUT("/requests/:id/reject", h.reject)
	admin.GET("/borrowers", h.borrowers)
	admin.PUT("/return/:id", h.returnBook)
}
