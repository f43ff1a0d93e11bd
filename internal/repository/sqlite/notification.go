package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Mr7Gabriel/clone-x-app/internal/apperror"
	"github.com/Mr7Gabriel/clone-x-app/internal/model"
	"github.com/Mr7Gabriel/clone-x-app/internal/repository"
)

// compile-time check that *DB implements repository.NotificationRepository
var _ repository.NotificationRepository = (*DB)(nil)

// CreateNotification inserts a notification row. Callers are responsible
// for the actor != recipient rule; the repository stores what it is given.
func (db *DB) CreateNotification(ctx context.Context, n *model.Notification) error {
	n.CreatedAt = time.Now().UTC()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO notifications (user_id, type, actor_id, post_id, content, is_read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.UserID, string(n.Type), n.ActorID, n.PostID, n.Content, n.IsRead, n.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NotFound("user", n.UserID)
		}
		return fmt.Errorf("sqlite: inserting notification: %w", err)
	}

	n.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new notification id: %w", err)
	}
	return nil
}

// ListNotifications returns the recipient's newest notifications with actor
// summaries, bounded by limit.
func (db *DB) ListNotifications(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT n.id, n.user_id, n.type, n.actor_id, n.post_id, n.content, n.is_read, n.created_at,
			u.username, u.name, u.profile_image, u.is_verified
		 FROM notifications n
		 JOIN users u ON n.actor_id = u.id
		 WHERE n.user_id = ?
		 ORDER BY n.created_at DESC, n.id DESC
		 LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing notifications of %d: %w", userID, err)
	}
	defer rows.Close()

	notifications := []model.Notification{}
	for rows.Next() {
		var n model.Notification
		err := rows.Scan(
			&n.ID, &n.UserID, &n.Type, &n.ActorID, &n.PostID, &n.Content, &n.IsRead, &n.CreatedAt,
			&n.ActorUsername, &n.ActorName, &n.ActorProfileImage, &n.ActorIsVerified,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// GetNotificationByID fetches one notification without the actor join. Used
// by the service's ownership check before marking read.
func (db *DB) GetNotificationByID(ctx context.Context, id int64) (*model.Notification, error) {
	var n model.Notification
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, type, actor_id, post_id, content, is_read, created_at
		 FROM notifications WHERE id = ?`,
		id,
	).Scan(&n.ID, &n.UserID, &n.Type, &n.ActorID, &n.PostID, &n.Content, &n.IsRead, &n.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("notification", id)
		}
		return nil, fmt.Errorf("sqlite: getting notification %d: %w", id, err)
	}
	return &n, nil
}

// MarkNotificationRead flips the read flag on one notification.
func (db *DB) MarkNotificationRead(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: marking notification %d read: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NotFound("notification", id)
	}
	return nil
}

// CountUnreadNotifications returns how many unread notifications the user has.
func (db *DB) CountUnreadNotifications(ctx context.Context, userID int64) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting unread notifications: %w", err)
	}
	return count, nil
}
