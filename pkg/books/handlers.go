package books

import (
	"net/http"

	"github.com/TanzidTowfiq/Library-Management-Software/pkg/errcodes"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

type handler struct {
	bookService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	opts := ListBooksOptions{}
	if params.Search != "" {
		opts.Search = &params.Search
	}

	books, err := h.bookService.ListBooks(ctx, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, books))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}
	if params.Title == "" || params.Author == "" {
		return errcodes.ValidationError("Title and author are required")
	}

	book := &models.Book{
		Title:  params.Title,
		Author: params.Author,
	}
	if err := h.bookService.CreateBook(ctx, book); err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("book added", logger.Data{"book_id": book.ID})

	return errors.WithStack(c.JSON(http.StatusCreated, models.CreatedResponse{
		Message: "Book added successfully",
		ID:      book.ID,
	}))
}

func (h *handler) deleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	id, ok := models.ParseID(c.Param("id"))
	if !ok {
		return errcodes.InvalidID("book")
	}

	if err := h.bookService.DeleteBook(ctx, id); err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, models.MessageResponse{Message: "Book deleted successfully"}))
}

func (h *handler) toggleIssue(c echo.Context) error {
	ctx := c.Request().Context()
	id, ok := models.ParseID(c.Param("id"))
	if !ok {
		return errcodes.InvalidID("book")
	}

	book, err := h.bookService.ToggleIssued(ctx, id)
	if err != nil {
		return err
	}

	msg := "Book returned successfully"
	if book.Issued {
		msg = "Book issued successfully"
	}
	return errors.WithStack(c.JSON(http.StatusOK, models.MessageResponse{Message: msg}))
}
