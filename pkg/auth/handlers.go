package auth

import (
	"net/http"

	"github.com/TanzidTowfiq/Library-Management-Software/pkg/errcodes"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

type handler struct {
	authService *Service
}

func (h *handler) login(c echo.Context) error {
	ctx := c.Request().Context()

	params := CredentialsPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.authService.Authenticate(ctx, params.Username, params.Password)
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, LoginResponse{
		Role:     user.Role,
		Username: user.Username,
		Message:  "Login successful",
	}))
}

func (h *handler) register(c echo.Context) error {
	ctx := c.Request().Context()

	params := CredentialsPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}
	if params.Username == "" || params.Password == "" {
		return errcodes.ValidationError("Username and password are required")
	}

	user, err := h.authService.Register(ctx, params.Username, params.Password)
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("student registered", logger.Data{"username": user.Username})

	return errors.WithStack(c.JSON(http.StatusOK, models.MessageResponse{Message: "Student registered successfully"}))
}
