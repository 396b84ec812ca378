package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// The statements below are valid for both SQLite and PostgreSQL. Ids are
// 24-character hex strings generated by the application.
func init() {
	up := func(ctx context.Context, db *bun.DB) error {
		statements := []string{
			`CREATE TABLE users (
				id TEXT PRIMARY KEY,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				username TEXT NOT NULL,
				password_hash TEXT NOT NULL,
				role TEXT NOT NULL
			)`,
			`CREATE UNIQUE INDEX ux_users_username ON users (username)`,

			`CREATE TABLE books (
				id TEXT PRIMARY KEY,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				title TEXT NOT NULL,
				author TEXT NOT NULL,
				issued BOOLEAN NOT NULL DEFAULT FALSE
			)`,

			// book_id is not a foreign key: ledgers keep their rows (and their
			// title/author snapshot) after a book is deleted.
			`CREATE TABLE requests (
				id TEXT PRIMARY KEY,
				book_id TEXT NOT NULL,
				username TEXT NOT NULL,
				book_title TEXT NOT NULL,
				book_author TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'pending',
				requested_at TIMESTAMPTZ NOT NULL,
				approved_at TIMESTAMPTZ,
				rejected_at TIMESTAMPTZ
			)`,
			`CREATE INDEX ix_requests_book_id_username ON requests (book_id, username, status)`,
			`CREATE INDEX ix_requests_requested_at ON requests (requested_at)`,

			`CREATE TABLE borrows (
				id TEXT PRIMARY KEY,
				book_id TEXT NOT NULL,
				username TEXT NOT NULL,
				book_title TEXT NOT NULL,
				book_author TEXT NOT NULL,
				borrowed_at TIMESTAMPTZ NOT NULL,
				returned BOOLEAN NOT NULL DEFAULT FALSE,
				returned_at TIMESTAMPTZ
			)`,
			`CREATE INDEX ix_borrows_book_id_username ON borrows (book_id, username, returned)`,
			`CREATE INDEX ix_borrows_username ON borrows (username, returned)`,

			`CREATE TABLE favorites (
				id TEXT PRIMARY KEY,
				book_id TEXT NOT NULL,
				username TEXT NOT NULL,
				book_title TEXT NOT NULL,
				book_author TEXT NOT NULL,
				added_at TIMESTAMPTZ NOT NULL
			)`,
			`CREATE INDEX ix_favorites_username_book_id ON favorites (username, book_id)`,

			`CREATE TABLE notifications (
				id TEXT PRIMARY KEY,
				username TEXT NOT NULL,
				type TEXT NOT NULL,
				message TEXT NOT NULL,
				book_id TEXT NOT NULL,
				book_title TEXT NOT NULL,
				book_author TEXT NOT NULL,
				read BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL,
				read_at TIMESTAMPTZ
			)`,
			`CREATE INDEX ix_notifications_username ON notifications (username, read, created_at)`,
		}

		for _, stmt := range statements {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	down := func(ctx context.Context, db *bun.DB) error {
		for _, table := range []string{"notifications", "favorites", "borrows", "requests", "books", "users"} {
			if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	Migrations.MustRegister(up, down)
}
