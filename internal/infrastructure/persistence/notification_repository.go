package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Andtit4/site-database-sub001/internal/domain/models"
	"github.com/Andtit4/site-database-sub001/internal/domain/ports"
	"github.com/Andtit4/site-database-sub001/pkg/constants"
	appErrors "github.com/Andtit4/site-database-sub001/pkg/errors"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *sql.DB
}

var _ ports.NotificationStore = (*NotificationRepository)(nil)

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Insert stores a notification
func (r *NotificationRepository) Insert(ctx context.Context, n *models.Notification) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES (?, ?, ?, ?, ?, NOW())",
		constants.TableNotification, constants.FieldID, constants.FieldNotification_Title,
		constants.FieldNotification_Message, constants.FieldNotification_Type,
		constants.FieldNotification_IsRead, constants.FieldCreatedAt)

	if _, err := r.db.ExecContext(ctx, query, n.ID, n.Title, n.Message, n.Type, n.IsRead); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// List returns the newest notifications first
func (r *NotificationRepository) List(ctx context.Context, unreadOnly bool, limit int) ([]*models.Notification, error) {
	query := fmt.Sprintf("SELECT %s, %s, %s, %s, %s, %s FROM %s",
		constants.FieldID, constants.FieldNotification_Title, constants.FieldNotification_Message,
		constants.FieldNotification_Type, constants.FieldNotification_IsRead, constants.FieldCreatedAt,
		constants.TableNotification)
	if unreadOnly {
		query += fmt.Sprintf(" WHERE %s = FALSE", constants.FieldNotification_IsRead)
	}
	query += fmt.Sprintf(" ORDER BY %s DESC LIMIT ?", constants.FieldCreatedAt)

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	notifications := make([]*models.Notification, 0)
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

// MarkAsRead flags a notification as read
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = TRUE WHERE %s = ?",
		constants.TableNotification, constants.FieldNotification_IsRead, constants.FieldID)

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s as read: %w", id, err)
	}
	// Without clientFoundRows an already read row also reports 0 affected
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var exists bool
		check := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE %s = ?)", constants.TableNotification, constants.FieldID)
		if err := r.db.QueryRowContext(ctx, check, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check notification %s: %w", id, err)
		}
		if !exists {
			return appErrors.NewNotFoundError("Notification", id)
		}
	}
	return nil
}
