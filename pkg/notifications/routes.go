package notifications

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the notification routes on the API group.
func RegisterRoutes(g *echo.Group, db *bun.DB) {
	h := &handler{
		notificationService: NewService(db),
	}

	g.GET("/notifications", h.list)
	g.GET("/notifications/unread-count", h.unreadCount)
	g.PUT("/notifications/read-all", h.markAllRead)
	g.PUT("/notifications/:id/read", h.markRead)
}
