package circulation

import (
	"net/http"

	"github.com/TanzidTowfiq/Library-Management-Software/pkg/errcodes"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	circulationService *Service
}

func (h *handler) submitRequest(c echo.Context) error {
	ctx := c.Request().Context()

	params := UsernamePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	bookID, ok := models.ParseID(c.Param("id"))
	if !ok {
		return errcodes.InvalidID("book")
	}
	if params.Username == "" {
		return errcodes.ValidationError("Username is required")
	}

	if _, err := h.circulationService.SubmitRequest(ctx, bookID, params.Username); err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusCreated, models.MessageResponse{Message: "Book request submitted successfully"}))
}

func (h *handler) myRequests(c echo.Context) error {
	ctx := c.Request().Context()

	params := UsernameQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}
	if params.Username == "" {
		return errcodes.ValidationError("Username is required")
	}

	requests, err := h.circulationService.ListRequests(ctx, ListRequestsOptions{Username: &params.Username})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, requests))
}

func (h *handler) myBorrowed(c echo.Context) error {
	ctx := c.Request().Context()

	params := UsernameQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}
	if params.Username == "" {
		return errcodes.ValidationError("Username is required")
	}

	borrowed, err := h.circulationService.ListBorrowedBooks(ctx, params.Username)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, borrowed))
}

func (h *handler) listRequests(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListRequestsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	opts := ListRequestsOptions{}
	if params.Status != "" {
		opts.Status = &params.Status
	}

	requests, err := h.circulationService.ListRequests(ctx, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, requests))
}

func (h *handler) approve(c echo.Context) error {
	ctx := c.Request().Context()
	id, ok := models.ParseID(c.Param("id"))
	if !ok {
		return errcodes.InvalidID("request")
	}

	if _, err := h.circulationService.ApproveRequest(ctx, id); err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, models.MessageResponse{Message: "Request approved and book issued"}))
}

func (h *handler) reject(c echo.Context) error {
	ctx := c.Request().Context()
	id, ok := models.ParseID(c.Param("id"))
	if !ok {
		return errcodes.InvalidID("request")
	}

	if err := h.circulationService.RejectRequest(ctx, id); err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, models.MessageResponse{Message: "Request rejected"}))
}

func (h *handler) borrowers(c echo.Context) error {
	ctx := c.Request().Context()

	stats, err := h.circulationService.BorrowerStats(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, stats))
}

func (h *handler) returnBook(c echo.Context) error {
	ctx := c.Request().Context()

	params := UsernamePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	bookID, ok := models.ParseID(c.Param("id"))
	if !ok {
		return errcodes.InvalidID("book")
	}
	if params.Username == "" {
		return errcodes.ValidationError("Username is required")
	}

	if _, err := h.circulationService.ReturnBook(ctx, bookID, params.Username); err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, models.MessageResponse{Message: "Book returned successfully"}))
}
