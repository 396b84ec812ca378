package favorites

import (
	"context"
	"database/sql"
	"time"

	"github.com/TanzidTowfiq/Library-Management-Software/pkg/books"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// Toggle removes the user's favorite for the book if there is one, and
// otherwise adds it with a snapshot of the book's title and author. It reports
// whether the book is a favorite afterwards. Removing a favorite doesn't need
// the book to still exist.
func (svc *Service) Toggle(ctx context.Context, bookID, username string) (bool, error) {
	isFavorite := false

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		existing := &models.Favorite{}
		err := tx.NewSelect().
			Model(existing).
			Where("f.book_id = ?", bookID).
			Where("f.username = ?", username).
			Limit(1).
			Scan(ctx)
		if err == nil {
			_, err = tx.NewDelete().
				Model(existing).
				WherePK().
				Exec(ctx)
			return errors.WithStack(err)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return errors.WithStack(err)
		}

		book, err := books.NewService(tx).RetrieveBook(ctx, books.RetrieveBookOptions{ID: &bookID})
		if err != nil {
			return err
		}

		favorite := &models.Favorite{
			ID:         models.NewID(),
			BookID:     book.ID,
			Username:   username,
			BookTitle:  book.Title,
			BookAuthor: book.Author,
			AddedAt:    time.Now(),
		}
		_, err = tx.NewInsert().Model(favorite).Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		isFavorite = true
		return nil
	})
	if err != nil {
		return false, err
	}

	logger.FromContext(ctx).Info("favorite toggled", logger.Data{
		"book_id":     bookID,
		"username":    username,
		"is_favorite": isFavorite,
	})
	return isFavorite, nil
}

// ListFavoriteBooks resolves the user's favorites to the current catalog.
// Favorites whose book has been deleted are left out.
func (svc *Service) ListFavoriteBooks(ctx context.Context, username string) ([]*models.Book, error) {
	return books.NewService(svc.db).ListBooks(ctx, books.ListBooksOptions{FavoritedBy: &username})
}
