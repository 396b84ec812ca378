package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/TanzidTowfiq/Library-Management-Software/pkg/auth"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/circulation"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/favorites"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/models"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/notifications"
)

func (c *Client) Login(ctx context.Context, username, password string) (*auth.LoginResponse, error) {
	resp := &auth.LoginResponse{}
	err := c.do(ctx, http.MethodPost, "/api/login", nil, auth.CredentialsPayload{Username: username, Password: password}, resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	return c.doMessage(ctx, http.MethodPost, "/api/register", auth.CredentialsPayload{Username: username, Password: password})
}

// ListBooks returns the catalog, filtered by title or author when search is
// not empty.
func (c *Client) ListBooks(ctx context.Context, search string) ([]*models.Book, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	books := []*models.Book{}
	if err := c.do(ctx, http.MethodGet, "/api/books", query, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// AddBook creates a book and returns its id.
func (c *Client) AddBook(ctx context.Context, title, author string) (string, error) {
	resp := models.CreatedResponse{}
	body := map[string]string{"title": title, "author": author}
	if err := c.do(ctx, http.MethodPost, "/api/books", nil, body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) DeleteBook(ctx context.Context, id string) (string, error) {
	return c.doMessage(ctx, http.MethodDelete, "/api/books/"+url.PathEscape(id), nil)
}

// ToggleIssue flips the book's issued flag without touching the borrow
// records.
func (c *Client) ToggleIssue(ctx context.Context, id string) (string, error) {
	return c.doMessage(ctx, http.MethodPut, "/api/books/issue/"+url.PathEscape(id), nil)
}

func (c *Client) RequestBook(ctx context.Context, bookID, username string) (string, error) {
	return c.doMessage(ctx, http.MethodPost, "/api/books/request/"+url.PathEscape(bookID), usernameBody{username})
}

func (c *Client) MyRequests(ctx context.Context, username string) ([]*models.Request, error) {
	requests := []*models.Request{}
	if err := c.do(ctx, http.MethodGet, "/api/books/my-requests", usernameQuery(username), nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (c *Client) MyBorrowed(ctx context.Context, username string) ([]*circulation.BorrowedBook, error) {
	borrowed := []*circulation.BorrowedBook{}
	if err := c.do(ctx, http.MethodGet, "/api/books/my-borrowed", usernameQuery(username), nil, &borrowed); err != nil {
		return nil, err
	}
	return borrowed, nil
}

func (c *Client) MyFavorites(ctx context.Context, username string) ([]*models.Book, error) {
	books := []*models.Book{}
	if err := c.do(ctx, http.MethodGet, "/api/books/my-favorites", usernameQuery(username), nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *Client) ToggleFavorite(ctx context.Context, bookID, username string) (*favorites.ToggleResponse, error) {
	resp := &favorites.ToggleResponse{}
	err := c.do(ctx, http.MethodPost, "/api/books/favorite/"+url.PathEscape(bookID), nil, usernameBody{username}, resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListRequests returns every request, or only those with the given status
// when status is not empty.
func (c *Client) ListRequests(ctx context.Context, status string) ([]*models.Request, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	requests := []*models.Request{}
	if err := c.do(ctx, http.MethodGet, "/api/admin/requests", query, nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (c *Client) ApproveRequest(ctx context.Context, id string) (string, error) {
	return c.doMessage(ctx, http.MethodPut, "/api/admin/requests/"+url.PathEscape(id)+"/approve", nil)
}

func (c *Client) RejectRequest(ctx context.Context, id string) (string, error) {
	return c.doMessage(ctx, http.MethodPut, "/api/admin/requests/"+url.PathEscape(id)+"/reject", nil)
}

func (c *Client) Borrowers(ctx context.Context) ([]*circulation.BorrowerStats, error) {
	stats := []*circulation.BorrowerStats{}
	if err := c.do(ctx, http.MethodGet, "/api/admin/borrowers", nil, nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (c *Client) ReturnBook(ctx context.Context, bookID, username string) (string, error) {
	return c.doMessage(ctx, http.MethodPut, "/api/admin/return/"+url.PathEscape(bookID), usernameBody{username})
}

func (c *Client) Notifications(ctx context.Context, username string) ([]*models.Notification, error) {
	list := []*models.Notification{}
	if err := c.do(ctx, http.MethodGet, "/api/notifications", usernameQuery(username), nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) UnreadCount(ctx context.Context, username string) (int, error) {
	resp := notifications.UnreadCountResponse{}
	if err := c.do(ctx, http.MethodGet, "/api/notifications/unread-count", usernameQuery(username), nil, &resp); err != nil {
		return 0, err
	}
	return resp.UnreadCount, nil
}

func (c *Client) MarkRead(ctx context.Context, id string) (string, error) {
	return c.doMessage(ctx, http.MethodPut, "/api/notifications/"+url.PathEscape(id)+"/read", nil)
}

func (c *Client) MarkAllRead(ctx context.Context, username string) (string, error) {
	return c.doMessage(ctx, http.MethodPut, "/api/notifications/read-all", usernameBody{username})
}
