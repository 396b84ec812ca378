package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/TanzidTowfiq/Library-Management-Software/pkg/auth"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/binder"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/books"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/circulation"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/config"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/errcodes"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/favorites"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/notifications"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e, err := newEcho(db)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func newEcho(db *bun.DB) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Pre(cors)
	e.Pre(stripTrailingSlashes)

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(lenientBinding)

	health.RegisterRoutes(e)

	api := e.Group("/api")
	auth.RegisterRoutes(api, db)
	books.RegisterRoutes(api, db)
	circulation.RegisterRoutes(api, db)
	favorites.RegisterRoutes(api, db)
	notifications.RegisterRoutes(api, db)

	e.RouteNotFound("/*", notFoundHandler)
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	return e, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.RouteNotFound()
}
