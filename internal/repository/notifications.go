package repository

import (
	"context"

	"github.com/BerylCAtieno/contract-analysis-api/internal/models"
	"github.com/jmoiron/sqlx"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	// ListVisible returns notifications addressed to the recipient, plus the
	// staff-audience ones (NULL recipient) when includeStaff is set. Newest first.
	ListVisible(ctx context.Context, recipientID string, includeStaff bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	query := r.db.Rebind(`
		INSERT INTO notifications (id, type, title, message, report_id, recipient_id, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.Type,
		n.Title,
		n.Message,
		n.ReportID,
		n.RecipientID,
		n.IsRead,
		n.CreatedAt,
	)

	return err
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	var n models.Notification

	query := r.db.Rebind(`
		SELECT id, type, title, message, report_id, recipient_id, is_read, created_at
		FROM notifications
		WHERE id = ?
	`)

	err := r.db.GetContext(ctx, &n, query, id)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) ListVisible(ctx context.Context, recipientID string, includeStaff bool) ([]models.Notification, error) {
	notifications := []models.Notification{}

	where := `recipient_id = ?`
	if includeStaff {
		where = `(recipient_id = ? OR recipient_id IS NULL)`
	}

	query := r.db.Rebind(`
		SELECT id, type, title, message, report_id, recipient_id, is_read, created_at
		FROM notifications
		WHERE ` + where + `
		ORDER BY created_at DESC, id DESC
	`)

	if err := r.db.SelectContext(ctx, &notifications, query, recipientID); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE notifications SET is_read = ? WHERE id = ?`), true, id)
	return err
}
