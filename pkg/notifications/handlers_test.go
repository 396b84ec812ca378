package notifications

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

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

func requireHTTPError(t *testing.T, err error, code int, msg string) {
	t.Helper()

	var errResp *errcodes.Error
	require.ErrorAs(t, err, &errResp)
	assert.Equal(t, code, errResp.HTTPCode)
	assert.Equal(t, msg, errResp.Message)
}

func TestHandler_List(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	h := &handler{notificationService: svc}
	n := notify(t, svc, "alice", "Dune", time.Now())

	c, rr := newTestContext(t, "", http.MethodGet, "/api/notifications?username=alice")
	require.NoError(t, h.list(c))

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, n.ID, list[0]["_id"])
	assert.Equal(t, "return_request", list[0]["type"])
	assert.Equal(t, false, list[0]["read"])
	assert.Equal(t, "Dune", list[0]["bookTitle"])
	assert.Contains(t, list[0], "createdAt")
	assert.NotContains(t, list[0], "readAt")

	c, _ = newTestContext(t, "", http.MethodGet, "/api/notifications")
	requireHTTPError(t, h.list(c), http.StatusBadRequest, "Username is required")
}

func TestHandler_UnreadCount(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	h := &handler{notificationService: svc}
	notify(t, svc, "alice", "Dune", time.Now())
	notify(t, svc, "alice", "Emma", time.Now())

	c, rr := newTestContext(t, "", http.MethodGet, "/api/notifications/unread-count?username=alice")
	require.NoError(t, h.unreadCount(c))
	assert.JSONEq(t, `{"unreadCount":2}`, rr.Body.String())
}

func TestHandler_MarkRead(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	h := &handler{notificationService: svc}
	n := notify(t, svc, "alice", "Dune", time.Now())

	c, _ := newTestContext(t, "", http.MethodPut, "/")
	c.SetParamNames("id")
	c.SetParamValues("123")
	requireHTTPError(t, h.markRead(c), http.StatusBadRequest, "Invalid notification ID")

	for _, id := range []string{n.ID, models.NewID()} {
		c, rr := newTestContext(t, "", http.MethodPut, "/")
		c.SetParamNames("id")
		c.SetParamValues(id)
		require.NoError(t, h.markRead(c))
		assert.JSONEq(t, `{"message":"Notification marked as read"}`, rr.Body.String())
	}

	count, err := svc.CountUnread(t.Context(), "alice")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestHandler_MarkAllRead(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	h := &handler{notificationService: svc}
	notify(t, svc, "alice", "Dune", time.Now())

	c, _ := newTestContext(t, `{}`, http.MethodPut, "/api/notifications/read-all")
	requireHTTPError(t, h.markAllRead(c), http.StatusBadRequest, "Username is required")

	c, rr := newTestContext(t, `{"username":"alice"}`, http.MethodPut, "/api/notifications/read-all")
	require.NoError(t, h.markAllRead(c))
	assert.JSONEq(t, `{"message":"All notifications marked as read"}`, rr.Body.String())

	count, err := svc.CountUnread(t.Context(), "alice")
	require.NoError(t, err)
	assert.Zero(t, count)
}
