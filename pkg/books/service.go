package books

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/TanzidTowfiq/Library-Management-Software/pkg/errcodes"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

type RetrieveBookOptions struct {
	ID *string
}

type ListBooksOptions struct {
	// Search matches title or author case-insensitively.
	Search *string
	// FavoritedBy limits the list to books the user has favorited.
	FavoritedBy *string
}

type Service struct {
	db bun.IDB
}

// NewService returns a catalog service. db may be a transaction so that
// catalog writes can take part in a larger lifecycle operation.
func NewService(db bun.IDB) *Service {
	return &Service{db}
}

func (svc *Service) CreateBook(ctx context.Context, book *models.Book) error {
	if book.ID == "" {
		book.ID = models.NewID()
	}
	if book.CreatedAt.IsZero() {
		book.CreatedAt = time.Now()
	}

	_, err := svc.db.
		NewInsert().
		Model(book).
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	book := &models.Book{}

	q := svc.db.
		NewSelect().
		Model(book)

	if opts.ID != nil {
		q = q.Where("b.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

// ListBooks returns books in catalog order.
func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*models.Book, error) {
	books := make([]*models.Book, 0)

	q := svc.db.
		NewSelect().
		Model(&books).
		Order("b.created_at ASC", "b.id ASC")

	if opts.Search != nil && *opts.Search != "" {
		pattern := likePattern(*opts.Search)
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where(`LOWER(b.title) LIKE ? ESCAPE '\'`, pattern).
				WhereOr(`LOWER(b.author) LIKE ? ESCAPE '\'`, pattern)
		})
	}
	if opts.FavoritedBy != nil {
		q = q.Where("b.id IN (SELECT f.book_id FROM favorites AS f WHERE f.username = ?)", *opts.FavoritedBy)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return books, nil
}

func (svc *Service) CountBooks(ctx context.Context) (int, error) {
	count, err := svc.db.NewSelect().Model((*models.Book)(nil)).Count(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return count, nil
}

func (svc *Service) DeleteBook(ctx context.Context, id string) error {
	res, err := svc.db.
		NewDelete().
		Model((*models.Book)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if n == 0 {
		return errcodes.NotFound("Book")
	}

	logger.FromContext(ctx).Info("book deleted", logger.Data{"book_id": id})
	return nil
}

// ToggleIssued flips the issued flag of a book without touching the request
// or borrow ledgers, and returns the book with its new state.
func (svc *Service) ToggleIssued(ctx context.Context, id string) (*models.Book, error) {
	book, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &id})
	if err != nil {
		return nil, err
	}

	book.Issued = !book.Issued
	_, err = svc.db.
		NewUpdate().
		Model(book).
		Column("issued").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("book issued flag toggled", logger.Data{"book_id": id, "issued": book.Issued})
	return book, nil
}

// MarkIssued sets the issued flag only if the book is currently available. It
// reports whether this call changed the flag, so that of two concurrent
// callers exactly one wins.
func (svc *Service) MarkIssued(ctx context.Context, id string) (bool, error) {
	res, err := svc.db.
		NewUpdate().
		Model((*models.Book)(nil)).
		Set("issued = ?", true).
		Where("id = ?", id).
		Where("issued = ?", false).
		Exec(ctx)
	if err != nil {
		return false, errors.WithStack(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.WithStack(err)
	}
	return n == 1, nil
}

// MarkAvailable clears the issued flag. A book that no longer exists is not an
// error.
func (svc *Service) MarkAvailable(ctx context.Context, id string) error {
	_, err := svc.db.
		NewUpdate().
		Model((*models.Book)(nil)).
		Set("issued = ?", false).
		Where("id = ?", id).
		Exec(ctx)
	return errors.WithStack(err)
}

func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(search)) + "%"
}
