package binder

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TanzidTowfiq/Library-Management-Software/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type params struct {
	Hello string `json:"hello" mod:"trim" validate:"max=9"`
	Omit  string `json:"-"`
}

type queryParams struct {
	Username string `query:"username" json:"username"`
	Status   string `query:"status" json:"status" validate:"omitempty,oneof=pending approved rejected"`
	Search   string `query:"search" json:"search" mod:"trim"`
}

var (
	goodJSON             = `{"hello":" world "}`
	unknownFieldsErrJSON = `{"hello":"world","foo":"bar"}`
	typeErrJSON          = `{"hello":123}`
	validationErrJSON    = `{"hello":"0123456789"}`
	malformedJSON        = `{"hello":`
)

func TestNew(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)
	assert.NotNil(t, b)

	t.Run("only allows application/json and application/x-www-form-urlencoded", func(tt *testing.T) {
		c := newContext(http.MethodPost, "/", goodJSON, echo.MIMEApplicationXML)
		p := params{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "Unsupported Media Type")
	})

	t.Run("treats a body without a content type as json", func(tt *testing.T) {
		c := newContext(http.MethodPost, "/", goodJSON, "")
		p := params{}
		err := b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, "world", p.Hello)
	})

	t.Run("disallows unknown fields by default", func(tt *testing.T) {
		c := newContext(http.MethodPost, "/", unknownFieldsErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		require.Error(tt, err)
		assert.Contains(tt, err.Error(), `foo`)
	})

	t.Run("allows unknown fields when relaxed", func(tt *testing.T) {
		c := newContext(http.MethodPost, "/", unknownFieldsErrJSON, echo.MIMEApplicationJSON)
		c.Set(DisallowUnknownFieldsKey, false)
		p := params{}
		err := b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, "world", p.Hello)
	})

	t.Run("returns a good message for type errors", func(tt *testing.T) {
		c := newContext(http.MethodPost, "/", typeErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		var e *errcodes.Error
		require.True(tt, errors.As(err, &e))
		assert.Equal(tt, http.StatusBadRequest, e.HTTPCode)
		assert.Contains(tt, e.Message, "should be of type string")
	})

	t.Run("reports a malformed body as a server error", func(tt *testing.T) {
		c := newContext(http.MethodPost, "/", malformedJSON, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		var e *errcodes.Error
		require.True(tt, errors.As(err, &e))
		assert.Equal(tt, http.StatusInternalServerError, e.HTTPCode)
		assert.Equal(tt, "malformed_payload", e.Code)
		assert.NotEmpty(tt, e.Detail)
	})

	t.Run("use mod tag to modify params", func(tt *testing.T) {
		c := newContext(http.MethodPost, "/", goodJSON, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, "world", p.Hello)
	})

	t.Run("use validate tag to validate params", func(tt *testing.T) {
		c := newContext(http.MethodPost, "/", validationErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "length must be less than or equal to 9 characters")
	})

	t.Run("decodes a body of unknown length", func(tt *testing.T) {
		c := newContext(http.MethodPost, "/", goodJSON, echo.MIMEApplicationJSON)
		c.Request().ContentLength = -1
		p := params{}
		err := b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, "world", p.Hello)
	})

	t.Run("treats an empty body of unknown length as empty", func(tt *testing.T) {
		c := newContext(http.MethodPost, "/", "", echo.MIMEApplicationJSON)
		c.Request().ContentLength = -1
		p := params{}
		err := b.Bind(&p, c)
		assert.ErrorIs(tt, err, errcodes.EmptyRequestBody())

		c = newContext(http.MethodPost, "/", "", echo.MIMEApplicationJSON)
		c.Request().ContentLength = -1
		c.Set(DisallowEmptyBodyKey, false)
		err = b.Bind(&p, c)
		require.NoError(tt, err)
	})

	t.Run("rejects an empty body by default", func(tt *testing.T) {
		c := newContext(http.MethodPost, "/", "", echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		assert.ErrorIs(tt, err, errcodes.EmptyRequestBody())
	})

	t.Run("allows an empty body when relaxed", func(tt *testing.T) {
		c := newContext(http.MethodPut, "/", "", echo.MIMEApplicationJSON)
		c.Set(DisallowEmptyBodyKey, false)
		p := params{}
		err := b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Empty(tt, p.Hello)
	})

	t.Run("decodes query params and ignores unknown keys", func(tt *testing.T) {
		c := newContext(http.MethodGet, "/?username=alice&search=+dune+&page=2", "", "")
		p := queryParams{}
		err := b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, "alice", p.Username)
		assert.Equal(tt, "dune", p.Search)
	})

	t.Run("validates query params", func(tt *testing.T) {
		c := newContext(http.MethodGet, "/?status=lost", "", "")
		p := queryParams{}
		err := b.Bind(&p, c)
		require.Error(tt, err)
		assert.Equal(tt, `"status" must be one of the following: "pending", "approved", "rejected"`, err.Error())
	})

	t.Run("decodes form bodies", func(tt *testing.T) {
		c := newContext(http.MethodPost, "/", "hello=+form+", echo.MIMEApplicationForm)
		p := struct {
			Hello string `form:"hello" json:"hello" mod:"trim"`
		}{}
		err := b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, "form", p.Hello)
	})
}

func newContext(method, target, payload, mime string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(payload))
	if mime != "" {
		req.Header.Set(echo.HeaderContentType, mime)
	}
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr)
}
