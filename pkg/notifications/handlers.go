package notifications

import (
	"net/http"

	"github.com/TanzidTowfiq/Library-Management-Software/pkg/errcodes"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	notificationService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListNotificationsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}
	if params.Username == "" {
		return errcodes.ValidationError("Username is required")
	}

	notifications, err := h.notificationService.ListNotifications(ctx, params.Username)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, notifications))
}

func (h *handler) unreadCount(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListNotificationsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}
	if params.Username == "" {
		return errcodes.ValidationError("Username is required")
	}

	count, err := h.notificationService.CountUnread(ctx, params.Username)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, UnreadCountResponse{UnreadCount: count}))
}

func (h *handler) markRead(c echo.Context) error {
	ctx := c.Request().Context()
	id, ok := models.ParseID(c.Param("id"))
	if !ok {
		return errcodes.InvalidID("notification")
	}

	if err := h.notificationService.MarkRead(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, models.MessageResponse{Message: "Notification marked as read"}))
}

func (h *handler) markAllRead(c echo.Context) error {
	ctx := c.Request().Context()

	params := MarkAllReadPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}
	if params.Username == "" {
		return errcodes.ValidationError("Username is required")
	}

	if _, err := h.notificationService.MarkAllRead(ctx, params.Username); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, models.MessageResponse{Message: "All notifications marked as read"}))
}
