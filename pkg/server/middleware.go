package server

import (
	"net/http"
	"strings"

	"github.com/TanzidTowfiq/Library-Management-Software/pkg/binder"
	"github.com/labstack/echo/v4"
)

const (
	corsAllowMethods = "GET,POST,PUT,DELETE,OPTIONS"
	corsAllowHeaders = "Content-Type"
)

// cors sets the permissive CORS headers on every response and answers every
// OPTIONS request with an empty 204, whatever the path.
func cors(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set(echo.HeaderAccessControlAllowOrigin, "*")
		h.Set(echo.HeaderAccessControlAllowMethods, corsAllowMethods)
		h.Set(echo.HeaderAccessControlAllowHeaders, corsAllowHeaders)

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusNoContent)
		}
		return next(c)
	}
}

// stripTrailingSlashes removes every trailing slash from the path before
// routing, so /api/books// matches /api/books.
func stripTrailingSlashes(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		path := req.URL.Path
		if len(path) > 1 && strings.HasSuffix(path, "/") {
			trimmed := strings.TrimRight(path, "/")
			if trimmed == "" {
				trimmed = "/"
			}
			req.URL.Path = trimmed
			if req.URL.RawPath != "" {
				req.URL.RawPath = strings.TrimRight(req.URL.RawPath, "/")
			}
			req.RequestURI = req.URL.RequestURI()
		}
		return next(c)
	}
}

// lenientBinding lets handlers bind requests with no body or with fields they
// don't know about; required fields are checked by the handlers themselves.
func lenientBinding(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(binder.DisallowEmptyBodyKey, false)
		c.Set(binder.DisallowUnknownFieldsKey, false)
		return next(c)
	}
}
