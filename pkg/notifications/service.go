package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/TanzidTowfiq/Library-Management-Software/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

type Service struct {
	db bun.IDB
}

// NewService returns a notification service. db may be a transaction.
func NewService(db bun.IDB) *Service {
	return &Service{db}
}

// ReturnRequestMessage is the text sent to a student when an admin marks one
// of their borrowed books as returned.
func ReturnRequestMessage(title, author string) string {
	return fmt.Sprintf(`Please return the book "%s" by %s. The admin has marked it for return.`, title, author)
}

func (svc *Service) CreateNotification(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = models.NewID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	_, err := svc.db.
		NewInsert().
		Model(n).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("notification created", logger.Data{
		"notification_id": n.ID,
		"username":        n.Username,
		"type":            n.Type,
	})
	return nil
}

// ListNotifications returns a user's notifications, newest first.
func (svc *Service) ListNotifications(ctx context.Context, username string) ([]*models.Notification, error) {
	notifications := make([]*models.Notification, 0)

	err := svc.db.
		NewSelect().
		Model(&notifications).
		Where("n.username = ?", username).
		Order("n.created_at DESC", "n.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return notifications, nil
}

func (svc *Service) CountUnread(ctx context.Context, username string) (int, error) {
	count, err := svc.db.
		NewSelect().
		Model((*models.Notification)(nil)).
		Where("n.username = ?", username).
		Where("n.read = ?", false).
		Count(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return count, nil
}

// MarkRead marks a single notification as read. An unknown id is not an
// error.
func (svc *Service) MarkRead(ctx context.Context, id string) error {
	_, err := svc.db.
		NewUpdate().
		Model((*models.Notification)(nil)).
		Set("read = ?", true).
		Set("read_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	return errors.WithStack(err)
}

// MarkAllRead marks every unread notification of a user as read and returns
// how many changed.
func (svc *Service) MarkAllRead(ctx context.Context, username string) (int, error) {
	res, err := svc.db.
		NewUpdate().
		Model((*models.Notification)(nil)).
		Set("read = ?", true).
		Set("read_at = ?", time.Now()).
		Where("username = ?", username).
		Where("read = ?", false).
		Exec(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return int(n), nil
}
