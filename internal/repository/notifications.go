package repository

import (
	"context"
	"time"

	"github.com/faresld99/medical-appointment-app/internal/domain"
)

func (r *Repository) InsertNotification(n *domain.Notification) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO notifications (user_id, kind, title, message, appointment_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_read, created_at
	`

	args := []any{n.UserID, n.Kind, n.Title, n.Message, n.AppointmentID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&n.ID, &n.IsRead, &n.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetRecentNotifications(userID int64, limit int) ([]*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, user_id, kind, title, message, appointment_id, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.dbpool.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		n := &domain.Notification{}
		dst := []any{&n.ID, &n.UserID, &n.Kind, &n.Title, &n.Message, &n.AppointmentID, &n.IsRead, &n.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

// MarkNotificationAsRead 只允许本人将自己的通知标记为已读
func (r *Repository) MarkNotificationAsRead(notificationID int64, userID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`

	result, err := r.dbpool.ExecContext(ctx, query, notificationID, userID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
