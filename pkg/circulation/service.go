package circulation

import (
	"context"
	"database/sql"
	"slices"
	"time"

	"github.com/TanzidTowfiq/Library-Management-Software/pkg/books"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/errcodes"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/models"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/notifications"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

var (
	errAlreadyRequested = errcodes.Conflict("You have already requested this book")
	errAlreadyBorrowed  = errcodes.Conflict("You have already borrowed this book")
	errAlreadyIssued    = errcodes.Conflict("Book is already issued")
	errAlreadyProcessed = errcodes.Conflict("Request has already been processed")
	errBorrowNotFound   = errcodes.NotFound("Borrow record")
)

type ListRequestsOptions struct {
	Username *string
	Status   *string
}

// BookSummary is the book attached to a borrow. ID and Issued are only set
// when the book is still in the catalog; otherwise the title and author come
// from the borrow's snapshot.
type BookSummary struct {
	ID     string `json:"_id,omitempty"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Issued *bool  `json:"issued,omitempty"`
}

type BorrowedBook struct {
	*models.Borrow
	Book BookSummary `json:"book"`
}

type BorrowerBook struct {
	BookID     string    `json:"bookId"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	BorrowedAt time.Time `json:"borrowedAt"`
}

type BorrowerStats struct {
	Username      string         `json:"username"`
	TotalBorrowed int            `json:"totalBorrowed"`
	Books         []BorrowerBook `json:"books"`
}

// Service drives a book through request, approval or rejection, borrowing and
// return. Approval and return each run in one transaction, so the book's
// issued flag and the borrow ledger change together.
type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// SubmitRequest records a pending request by the user for the book. It fails
// if the user already has a pending request or an open borrow for the book.
// Whether another user currently holds the book is only checked at approval.
func (svc *Service) SubmitRequest(ctx context.Context, bookID, username string) (*models.Request, error) {
	var request *models.Request

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		book, err := books.NewService(tx).RetrieveBook(ctx, books.RetrieveBookOptions{ID: &bookID})
		if err != nil {
			return err
		}

		pending, err := tx.NewSelect().
			Model((*models.Request)(nil)).
			Where("r.book_id = ?", bookID).
			Where("r.username = ?", username).
			Where("r.status = ?", models.RequestStatusPending).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if pending {
			return errAlreadyRequested
		}

		borrowed, err := tx.NewSelect().
			Model((*models.Borrow)(nil)).
			Where("bo.book_id = ?", bookID).
			Where("bo.username = ?", username).
			Where("bo.returned = ?", false).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if borrowed {
			return errAlreadyBorrowed
		}

		request = &models.Request{
			ID:          models.NewID(),
			BookID:      book.ID,
			Username:    username,
			BookTitle:   book.Title,
			BookAuthor:  book.Author,
			Status:      models.RequestStatusPending,
			RequestedAt: time.Now(),
		}
		_, err = tx.NewInsert().Model(request).Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("book requested", logger.Data{
		"request_id": request.ID,
		"book_id":    bookID,
		"username":   username,
	})
	return request, nil
}

func (svc *Service) RetrieveRequest(ctx context.Context, id string) (*models.Request, error) {
	return retrieveRequest(ctx, svc.db, id)
}

func retrieveRequest(ctx context.Context, db bun.IDB, id string) (*models.Request, error) {
	request := &models.Request{}
	err := db.NewSelect().
		Model(request).
		Where("r.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Request")
		}
		return nil, errors.WithStack(err)
	}
	return request, nil
}

// ListRequests returns requests newest first.
func (svc *Service) ListRequests(ctx context.Context, opts ListRequestsOptions) ([]*models.Request, error) {
	requests := make([]*models.Request, 0)

	q := svc.db.
		NewSelect().
		Model(&requests).
		Order("r.requested_at DESC", "r.id DESC")

	if opts.Username != nil {
		q = q.Where("r.username = ?", *opts.Username)
	}
	if opts.Status != nil {
		q = q.Where("r.status = ?", *opts.Status)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return requests, nil
}

// ApproveRequest approves a pending request, marks its book issued and opens a
// borrow for the requester. It fails without changing anything if the book is
// already issued, including when a concurrent approval issued it first.
func (svc *Service) ApproveRequest(ctx context.Context, id string) (*models.Borrow, error) {
	var borrow *models.Borrow

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		request, err := retrieveRequest(ctx, tx, id)
		if err != nil {
			return err
		}
		if !request.IsPending() {
			return errAlreadyProcessed
		}

		bookService := books.NewService(tx)
		book, err := bookService.RetrieveBook(ctx, books.RetrieveBookOptions{ID: &request.BookID})
		if err != nil {
			return err
		}
		if book.Issued {
			return errAlreadyIssued
		}

		now := time.Now()
		changed, err := svc.transitionRequest(ctx, tx, id, models.RequestStatusApproved, "approved_at", now)
		if err != nil {
			return err
		}
		if !changed {
			return errAlreadyProcessed
		}

		issued, err := bookService.MarkIssued(ctx, book.ID)
		if err != nil {
			return err
		}
		if !issued {
			return errAlreadyIssued
		}

		borrow = &models.Borrow{
			ID:         models.NewID(),
			BookID:     request.BookID,
			Username:   request.Username,
			BookTitle:  request.BookTitle,
			BookAuthor: request.BookAuthor,
			BorrowedAt: now,
		}
		_, err = tx.NewInsert().Model(borrow).Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("request approved", logger.Data{
		"request_id": id,
		"borrow_id":  borrow.ID,
		"book_id":    borrow.BookID,
		"username":   borrow.Username,
	})
	return borrow, nil
}

// RejectRequest rejects a pending request. Nothing else changes.
func (svc *Service) RejectRequest(ctx context.Context, id string) error {
	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		request, err := retrieveRequest(ctx, tx, id)
		if err != nil {
			return err
		}
		if !request.IsPending() {
			return errAlreadyProcessed
		}

		changed, err := svc.transitionRequest(ctx, tx, id, models.RequestStatusRejected, "rejected_at", time.Now())
		if err != nil {
			return err
		}
		if !changed {
			return errAlreadyProcessed
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("request rejected", logger.Data{"request_id": id})
	return nil
}

// transitionRequest moves a request out of pending. It reports false if the
// request was no longer pending.
func (svc *Service) transitionRequest(ctx context.Context, tx bun.Tx, id, status, timestampColumn string, at time.Time) (bool, error) {
	res, err := tx.NewUpdate().
		Model((*models.Request)(nil)).
		Set("status = ?", status).
		Set("? = ?", bun.Ident(timestampColumn), at).
		Where("id = ?", id).
		Where("status = ?", models.RequestStatusPending).
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

// ReturnBook closes the user's open borrow of the book, marks the book
// available and notifies the user.
func (svc *Service) ReturnBook(ctx context.Context, bookID, username string) (*models.Notification, error) {
	var notification *models.Notification

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		borrow := &models.Borrow{}
		err := tx.NewSelect().
			Model(borrow).
			Where("bo.book_id = ?", bookID).
			Where("bo.username = ?", username).
			Where("bo.returned = ?", false).
			Order("bo.borrowed_at ASC", "bo.id ASC").
			Limit(1).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errBorrowNotFound
			}
			return errors.WithStack(err)
		}

		now := time.Now()
		res, err := tx.NewUpdate().
			Model((*models.Borrow)(nil)).
			Set("returned = ?", true).
			Set("returned_at = ?", now).
			Where("id = ?", borrow.ID).
			Where("returned = ?", false).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return errors.WithStack(err)
		} else if n == 0 {
			return errBorrowNotFound
		}

		if err := books.NewService(tx).MarkAvailable(ctx, bookID); err != nil {
			return err
		}

		notification = &models.Notification{
			Username:   username,
			Type:       models.NotificationTypeReturnRequest,
			Message:    notifications.ReturnRequestMessage(borrow.BookTitle, borrow.BookAuthor),
			BookID:     bookID,
			BookTitle:  borrow.BookTitle,
			BookAuthor: borrow.BookAuthor,
			CreatedAt:  now,
		}
		return notifications.NewService(tx).CreateNotification(ctx, notification)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("book returned", logger.Data{
		"book_id":         bookID,
		"username":        username,
		"notification_id": notification.ID,
	})
	return notification, nil
}

// ListBorrowedBooks returns the user's open borrows, newest first, each with
// the current catalog entry for its book or, if the book has been deleted, the
// title and author recorded when it was borrowed.
func (svc *Service) ListBorrowedBooks(ctx context.Context, username string) ([]*BorrowedBook, error) {
	borrows := make([]*models.Borrow, 0)
	err := svc.db.NewSelect().
		Model(&borrows).
		Where("bo.username = ?", username).
		Where("bo.returned = ?", false).
		Order("bo.borrowed_at DESC", "bo.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	catalog := map[string]*models.Book{}
	if len(borrows) > 0 {
		ids := make([]string, 0, len(borrows))
		for _, borrow := range borrows {
			ids = append(ids, borrow.BookID)
		}
		var current []*models.Book
		err = svc.db.NewSelect().
			Model(&current).
			Where("b.id IN (?)", bun.In(ids)).
			Scan(ctx)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		for _, book := range current {
			catalog[book.ID] = book
		}
	}

	result := make([]*BorrowedBook, 0, len(borrows))
	for _, borrow := range borrows {
		summary := BookSummary{Title: borrow.BookTitle, Author: borrow.BookAuthor}
		if book, ok := catalog[borrow.BookID]; ok {
			issued := book.Issued
			summary = BookSummary{ID: book.ID, Title: book.Title, Author: book.Author, Issued: &issued}
		}
		result = append(result, &BorrowedBook{Borrow: borrow, Book: summary})
	}

	return result, nil
}

// BorrowerStats groups every open borrow by user, ordered by how many books
// each user holds. Users with the same count keep the order in which their
// first open borrow was made.
func (svc *Service) BorrowerStats(ctx context.Context) ([]*BorrowerStats, error) {
	borrows := make([]*models.Borrow, 0)
	err := svc.db.NewSelect().
		Model(&borrows).
		Where("bo.returned = ?", false).
		Order("bo.borrowed_at ASC", "bo.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	stats := make([]*BorrowerStats, 0)
	byUsername := map[string]*BorrowerStats{}
	for _, borrow := range borrows {
		s, ok := byUsername[borrow.Username]
		if !ok {
			s = &BorrowerStats{Username: borrow.Username, Books: []BorrowerBook{}}
			byUsername[borrow.Username] = s
			stats = append(stats, s)
		}
		s.TotalBorrowed++
		s.Books = append(s.Books, BorrowerBook{
			BookID:     borrow.BookID,
			Title:      borrow.BookTitle,
			Author:     borrow.BookAuthor,
			BorrowedAt: borrow.BorrowedAt,
		})
	}

	slices.SortStableFunc(stats, func(a, b *BorrowerStats) int {
		return b.TotalBorrowed - a.TotalBorrowed
	})

	return stats, nil
}
