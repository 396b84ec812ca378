package favorites

import (
	"net/http"

	"github.com/TanzidTowfiq/Library-Management-Software/pkg/errcodes"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	favoriteService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := MyFavoritesQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}
	if params.Username == "" {
		return errcodes.ValidationError("Username is required")
	}

	books, err := h.favoriteService.ListFavoriteBooks(ctx, params.Username)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, books))
}

func (h *handler) toggle(c echo.Context) error {
	ctx := c.Request().Context()

	params := TogglePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	id, ok := models.ParseID(c.Param("id"))
	if !ok {
		return errcodes.InvalidID("book")
	}
	if params.Username == "" {
		return errcodes.ValidationError("Username is required")
	}

	isFavorite, err := h.favoriteService.Toggle(ctx, id, params.Username)
	if err != nil {
		return err
	}

	resp := ToggleResponse{Message: "Removed from favorites", IsFavorite: false}
	if isFavorite {
		resp = ToggleResponse{Message: "Added to favorites", IsFavorite: true}
	}
	return errors.WithStack(c.JSON(http.StatusOK, resp))
}
