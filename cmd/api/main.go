package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/TanzidTowfiq/Library-Management-Software/pkg/auth"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/books"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/config"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/database"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/migrations"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/server"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/version"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/signals"
	"github.com/uptrace/bun"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()
	log := logger.New()

	log.Info("starting library api", logger.Data{"version": version.Version})

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}
	log.Info("database connected", logger.Data{"driver": cfg.DatabaseDriver})

	group, err := migrations.BringUpToDate(ctx, db)
	if err != nil {
		log.Err(err).Fatal("migrations error")
	}
	if group.ID == 0 {
		log.Info("no new migrations to run")
	} else {
		log.Info("migrated to new group", logger.Data{"group_id": group.ID, "migration_names": group.Migrations.String()})
	}

	if err := seed(ctx, log, cfg, db); err != nil {
		log.Err(err).Fatal("seed error")
	}

	srv, err := server.New(cfg, db)
	if err != nil {
		log.Err(err).Fatal("server error")
	}

	graceful := signals.Setup()

	go func() {
		lc := net.ListenConfig{}
		listener, err := lc.Listen(ctx, "tcp", srv.Addr)
		if err != nil {
			log.Err(err).Fatal("failed to bind port")
		}
		log.Info("server started", logger.Data{"addr": listener.Addr().String()})

		err = srv.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Err(err).Fatal("server stopped")
		}
		log.Info("server stopped")
	}()

	<-graceful
	log.Info("starting graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		log.Err(err).Error("server shutdown error")
	}
	log.Info("server shutdown")

	err = db.Close()
	if err != nil {
		log.Err(err).Error("database close error")
	}
	log.Info("database closed")
}

// seed creates the admin account when there are no users and, if a catalog
// file is configured, fills an empty catalog from it.
func seed(ctx context.Context, log logger.Logger, cfg *config.Config, db *bun.DB) error {
	if _, err := auth.NewService(db).SeedAdmin(ctx, cfg.SeedAdminUsername, cfg.SeedAdminPassword); err != nil {
		return err
	}

	if cfg.SeedBooksFile == "" {
		return nil
	}

	entries, err := books.LoadCatalogFile(cfg.SeedBooksFile)
	if err != nil {
		return err
	}
	n, err := books.NewService(db).SeedCatalog(ctx, entries)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info("catalog seeded", logger.Data{"books": n, "file": cfg.SeedBooksFile})
	}
	return nil
}
