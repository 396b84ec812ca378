package errcodes

import (
	"fmt"
	"net/http"

	"github.com/iancoleman/strcase"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/errutils"
)

// Payload is the body of every error response.
type Payload struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Error   string `json:"error,omitempty"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Handle is an Echo error handler that uses HTTP errors accordingly, and any
// generic error will be interpreted as an internal server error whose message
// is echoed back in the "error" field.
func (h *Handler) Handle(err error, c echo.Context) {
	if errutils.IsIgnorableErr(err) {
		logger.FromEchoContext(c).Err(err).Warn("broken pipe")
		return
	}
	if c.Response().Committed {
		logger.FromEchoContext(c).Err(err).Warn("error after response was committed")
		return
	}

	httpCode, payload := h.generatePayload(err)

	if httpCode == http.StatusInternalServerError {
		logger.FromEchoContext(c).Err(err).Error("server error")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(httpCode)
	} else {
		err = c.JSON(httpCode, payload)
	}
	if err != nil {
		logger.FromEchoContext(c).Err(errors.WithStack(err)).Error("error handler json error")
	}
}

func (h *Handler) generatePayload(err error) (int, Payload) {
	httpCode := http.StatusInternalServerError
	payload := Payload{}

	// Echo errors. Unmatched paths and unmatched methods are both reported
	// as a missing route.
	var he *echo.HTTPError
	if ok := errors.As(err, &he); ok {
		if he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed {
			err = RouteNotFound()
		} else {
			httpCode = he.Code
			payload.Message = fmt.Sprint(he.Message)
			payload.Code = strcase.ToSnake(payload.Message)
		}
	}

	// Custom errors
	var e *Error
	if ok := errors.As(err, &e); ok {
		httpCode = e.HTTPCode
		payload.Message = e.Message
		payload.Code = e.Code
		payload.Error = e.Detail
	}

	if httpCode == http.StatusInternalServerError {
		payload.Message = "Server error"
		if payload.Code == "" {
			payload.Code = "internal_server_error"
		}
		if payload.Error == "" {
			payload.Error = err.Error()
		}
	}

	return httpCode, payload
}
