package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"time"

	"github.com/TanzidTowfiq/Library-Management-Software/pkg/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// logQueryHook logs every statement with its duration. It is only installed
// when database debugging is enabled.
type logQueryHook struct {
	logQuery func(query string, data logger.Data)
}

func newLogQueryHook(log logger.Logger) *logQueryHook {
	return &logQueryHook{logQuery: func(query string, data logger.Data) {
		log.Debug(query, data)
	}}
}

func (*logQueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (qh *logQueryHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	data := logger.Data{"duration_ms": time.Since(event.StartTime).Milliseconds()}
	if event.Err != nil {
		data["error"] = event.Err.Error()
	}
	qh.logQuery(event.Query, data)
}

// New opens the store configured by cfg. It is called once at startup and the
// returned handle is shared by every handler for the life of the process.
func New(cfg *config.Config) (*bun.DB, error) {
	var (
		db  *bun.DB
		err error
	)

	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		db, err = openPostgres(cfg)
	default:
		db, err = openSQLite(cfg)
	}
	if err != nil {
		return nil, err
	}

	if cfg.DatabaseDebug {
		db.AddQueryHook(newLogQueryHook(logger.NewWithLevel("debug")))
	}

	if err := ping(db, cfg); err != nil {
		_ = db.Close()
		return nil, err
	}

	if cfg.DatabaseDriver != config.DriverPostgres {
		if err := configureSQLite(db, cfg); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return db, nil
}

func openSQLite(cfg *config.Config) (*bun.DB, error) {
	drv := sqliteshim.Driver()
	var connector driver.Connector = newDriverConnector(drv, cfg.DatabaseFilePath)
	if drvCtx, ok := drv.(driver.DriverContext); ok {
		c, err := drvCtx.OpenConnector(cfg.DatabaseFilePath)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		connector = c
	}

	sqldb := sql.OpenDB(newRetryConnector(connector, cfg.DatabaseMaxRetries))
	// A single connection serializes writers, which keeps SQLite from
	// returning SQLITE_BUSY and lets an in-memory database be shared.
	sqldb.SetMaxOpenConns(1)

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

func openPostgres(cfg *config.Config) (*bun.DB, error) {
	pgxCfg, err := pgx.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid database url")
	}
	sqldb := stdlib.OpenDB(*pgxCfg)

	return bun.NewDB(sqldb, pgdialect.New()), nil
}

// ping retries the initial connection a few times so that the service can
// start alongside its database.
func ping(db *bun.DB, cfg *config.Config) error {
	attempts := cfg.DatabaseConnectRetryCount
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		_, err = db.Exec("SELECT 1")
		if err == nil {
			return nil
		}
		if i < attempts-1 {
			time.Sleep(cfg.DatabaseConnectRetryDelay)
		}
	}
	return errors.WithStack(err)
}

func configureSQLite(db *bun.DB, cfg *config.Config) error {
	// WAL mode allows concurrent reads during writes. In-memory databases
	// silently keep their own journal mode.
	_, err := db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return errors.Wrap(err, "failed to enable WAL mode")
	}

	_, err = db.Exec("PRAGMA busy_timeout=?", cfg.DatabaseBusyTimeout.Milliseconds())
	if err != nil {
		return errors.Wrap(err, "failed to set busy_timeout")
	}

	return nil
}
