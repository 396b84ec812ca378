package circulation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TanzidTowfiq/Library-Management-Software/pkg/binder"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/errcodes"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, payload, method, path string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rr := httptest.NewRecorder()
	c := e.NewContext(req, rr)
	c.Set(binder.DisallowEmptyBodyKey, false)
	c.Set(binder.DisallowUnknownFieldsKey, false)
	return c, rr
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func requireHTTPError(t *testing.T, err error, code int, msg string) {
	t.Helper()

	var errResp *errcodes.Error
	require.ErrorAs(t, err, &errResp)
	assert.Equal(t, code, errResp.HTTPCode)
	assert.Equal(t, msg, errResp.Message)
}

func TestHandler_SubmitRequest(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{circulationService: NewService(db)}
	book := createBook(t, db, "Dune", "Herbert")

	c, _ := newTestContext(t, `{"username":"alice"}`, http.MethodPost, "/")
	requireHTTPError(t, h.submitRequest(withID(c, "nope")), http.StatusBadRequest, "Invalid book ID")

	c, _ = newTestContext(t, `{}`, http.MethodPost, "/")
	requireHTTPError(t, h.submitRequest(withID(c, book.ID)), http.StatusBadRequest, "Username is required")

	c, _ = newTestContext(t, `{"username":"alice"}`, http.MethodPost, "/")
	requireHTTPError(t, h.submitRequest(withID(c, models.NewID())), http.StatusNotFound, "Book not found")

	c, rr := newTestContext(t, `{"username":"alice"}`, http.MethodPost, "/")
	require.NoError(t, h.submitRequest(withID(c, book.ID)))
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"message":"Book request submitted successfully"}`, rr.Body.String())

	c, _ = newTestContext(t, `{"username":"alice"}`, http.MethodPost, "/")
	requireHTTPError(t, h.submitRequest(withID(c, book.ID)), http.StatusBadRequest, "You have already requested this book")
}

func TestHandler_MyRequests(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	h := &handler{circulationService: svc}
	book := createBook(t, db, "Dune", "Herbert")

	_, err := svc.SubmitRequest(t.Context(), book.ID, "alice")
	require.NoError(t, err)

	c, _ := newTestContext(t, "", http.MethodGet, "/api/books/my-requests")
	requireHTTPError(t, h.myRequests(c), http.StatusBadRequest, "Username is required")

	c, rr := newTestContext(t, "", http.MethodGet, "/api/books/my-requests?username=alice")
	require.NoError(t, h.myRequests(c))

	var requests []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &requests))
	require.Len(t, requests, 1)
	assert.Equal(t, book.ID, requests[0]["bookId"])
	assert.Equal(t, "Dune", requests[0]["bookTitle"])
	assert.Equal(t, "pending", requests[0]["status"])
	assert.NotContains(t, requests[0], "approvedAt")

	c, rr = newTestContext(t, "", http.MethodGet, "/api/books/my-requests?username=bob")
	require.NoError(t, h.myRequests(c))
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestHandler_ApproveAndReject(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	h := &handler{circulationService: svc}
	book := createBook(t, db, "Dune", "Herbert")

	first, err := svc.SubmitRequest(t.Context(), book.ID, "alice")
	require.NoError(t, err)
	second, err := svc.SubmitRequest(t.Context(), book.ID, "bob")
	require.NoError(t, err)

	c, _ := newTestContext(t, "", http.MethodPut, "/")
	requireHTTPError(t, h.approve(withID(c, "123")), http.StatusBadRequest, "Invalid request ID")

	c, _ = newTestContext(t, "", http.MethodPut, "/")
	requireHTTPError(t, h.approve(withID(c, models.NewID())), http.StatusNotFound, "Request not found")

	c, rr := newTestContext(t, "", http.MethodPut, "/")
	require.NoError(t, h.approve(withID(c, first.ID)))
	assert.JSONEq(t, `{"message":"Request approved and book issued"}`, rr.Body.String())

	c, _ = newTestContext(t, "", http.MethodPut, "/")
	requireHTTPError(t, h.approve(withID(c, second.ID)), http.StatusBadRequest, "Book is already issued")

	c, rr = newTestContext(t, "", http.MethodPut, "/")
	require.NoError(t, h.reject(withID(c, second.ID)))
	assert.JSONEq(t, `{"message":"Request rejected"}`, rr.Body.String())

	c, _ = newTestContext(t, "", http.MethodPut, "/")
	requireHTTPError(t, h.reject(withID(c, second.ID)), http.StatusBadRequest, "Request has already been processed")

	c, _ = newTestContext(t, "", http.MethodPut, "/")
	requireHTTPError(t, h.reject(withID(c, "zz")), http.StatusBadRequest, "Invalid request ID")
}

func TestHandler_ListRequests(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	h := &handler{circulationService: svc}
	book := createBook(t, db, "Dune", "Herbert")

	request, err := svc.SubmitRequest(t.Context(), book.ID, "alice")
	require.NoError(t, err)
	require.NoError(t, svc.RejectRequest(t.Context(), request.ID))
	_, err = svc.SubmitRequest(t.Context(), book.ID, "bob")
	require.NoError(t, err)

	c, rr := newTestContext(t, "", http.MethodGet, "/api/admin/requests")
	require.NoError(t, h.listRequests(c))
	var all []*models.Request
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	c, rr = newTestContext(t, "", http.MethodGet, "/api/admin/requests?status=rejected")
	require.NoError(t, h.listRequests(c))
	var rejected []*models.Request
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rejected))
	require.Len(t, rejected, 1)
	assert.Equal(t, "alice", rejected[0].Username)
	assert.NotNil(t, rejected[0].RejectedAt)

	c, _ = newTestContext(t, "", http.MethodGet, "/api/admin/requests?status=lost")
	err = h.listRequests(c)
	var errResp *errcodes.Error
	require.ErrorAs(t, err, &errResp)
	assert.Equal(t, http.StatusBadRequest, errResp.HTTPCode)
}

func TestHandler_ReturnBook(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	h := &handler{circulationService: svc}
	book := createBook(t, db, "Dune", "Herbert")

	request, err := svc.SubmitRequest(t.Context(), book.ID, "alice")
	require.NoError(t, err)
	_, err = svc.ApproveRequest(t.Context(), request.ID)
	require.NoError(t, err)

	c, _ := newTestContext(t, `{"username":"alice"}`, http.MethodPut, "/")
	requireHTTPError(t, h.returnBook(withID(c, "bad")), http.StatusBadRequest, "Invalid book ID")

	c, _ = newTestContext(t, `{}`, http.MethodPut, "/")
	requireHTTPError(t, h.returnBook(withID(c, book.ID)), http.StatusBadRequest, "Username is required")

	c, _ = newTestContext(t, `{"username":"bob"}`, http.MethodPut, "/")
	requireHTTPError(t, h.returnBook(withID(c, book.ID)), http.StatusNotFound, "Borrow record not found")

	c, rr := newTestContext(t, `{"username":"alice"}`, http.MethodPut, "/")
	require.NoError(t, h.returnBook(withID(c, book.ID)))
	assert.JSONEq(t, `{"message":"Book returned successfully"}`, rr.Body.String())
	assert.Equal(t, 1, countNotifications(t, db, "alice"))
}

func TestHandler_MyBorrowedAndBorrowers(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	h := &handler{circulationService: svc}
	book := createBook(t, db, "Dune", "Herbert")

	request, err := svc.SubmitRequest(t.Context(), book.ID, "alice")
	require.NoError(t, err)
	_, err = svc.ApproveRequest(t.Context(), request.ID)
	require.NoError(t, err)

	c, _ := newTestContext(t, "", http.MethodGet, "/api/books/my-borrowed")
	requireHTTPError(t, h.myBorrowed(c), http.StatusBadRequest, "Username is required")

	c, rr := newTestContext(t, "", http.MethodGet, "/api/books/my-borrowed?username=alice")
	require.NoError(t, h.myBorrowed(c))
	var borrowed []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &borrowed))
	require.Len(t, borrowed, 1)
	assert.Equal(t, false, borrowed[0]["returned"])
	assert.Equal(t, map[string]any{
		"_id":    book.ID,
		"title":  "Dune",
		"author": "Herbert",
		"issued": true,
	}, borrowed[0]["book"])

	c, rr = newTestContext(t, "", http.MethodGet, "/api/admin/borrowers")
	require.NoError(t, h.borrowers(c))
	var stats []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	require.Len(t, stats, 1)
	assert.Equal(t, "alice", stats[0]["username"])
	assert.EqualValues(t, 1, stats[0]["totalBorrowed"])
}
