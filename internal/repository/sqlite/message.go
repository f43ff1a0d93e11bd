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

// compile-time check that *DB implements repository.MessageRepository
var _ repository.MessageRepository = (*DB)(nil)

const messageJoin = `SELECT m.id, m.sender_id, m.receiver_id, m.content, m.is_read, m.created_at,
	s.username, s.name, s.profile_image, s.is_verified
	FROM messages m
	JOIN users s ON m.sender_id = s.id`

func scanMessages(rows *sql.Rows) ([]model.Message, error) {
	defer rows.Close()

	messages := []model.Message{}
	for rows.Next() {
		var m model.Message
		err := rows.Scan(
			&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.IsRead, &m.CreatedAt,
			&m.SenderUsername, &m.SenderName, &m.SenderProfileImage, &m.SenderIsVerified,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// CreateMessage inserts a direct message and reads it back with the sender
// summary. An unknown receiver trips the foreign key and maps to not found.
func (db *DB) CreateMessage(ctx context.Context, m *model.Message) error {
	now := time.Now().UTC()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO messages (sender_id, receiver_id, content, is_read, created_at)
		 VALUES (?, ?, ?, 0, ?)`,
		m.SenderID, m.ReceiverID, m.Content, now,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NotFound("user", m.ReceiverID)
		}
		return fmt.Errorf("sqlite: inserting message: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new message id: %w", err)
	}

	err = db.conn.QueryRowContext(ctx, messageJoin+` WHERE m.id = ?`, id).Scan(
		&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.IsRead, &m.CreatedAt,
		&m.SenderUsername, &m.SenderName, &m.SenderProfileImage, &m.SenderIsVerified,
	)
	if err != nil {
		return fmt.Errorf("sqlite: reading back message %d: %w", id, err)
	}
	return nil
}

// ListConversations returns one row per counterpart: the message with the
// highest id among all messages the user exchanged with that counterpart,
// newest conversation first.
func (db *DB) ListConversations(ctx context.Context, userID int64) ([]model.Message, error) {
	rows, err := db.conn.QueryContext(ctx,
		messageJoin+`
		 WHERE m.id IN (
			SELECT MAX(id) FROM messages
			WHERE sender_id = ? OR receiver_id = ?
			GROUP BY CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END
		 )
		 ORDER BY m.created_at DESC, m.id DESC`,
		userID, userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing conversations of %d: %w", userID, err)
	}
	return scanMessages(rows)
}

// ListConversation returns every message between the two users, oldest
// first, and marks all messages from otherID to userID as read. The
// read-receipt side effect is bundled into this read; the clients rely
// on it.
func (db *DB) ListConversation(ctx context.Context, userID, otherID int64) ([]model.Message, error) {
	rows, err := db.conn.QueryContext(ctx,
		messageJoin+`
		 WHERE (m.sender_id = ? AND m.receiver_id = ?)
			OR (m.sender_id = ? AND m.receiver_id = ?)
		 ORDER BY m.created_at ASC, m.id ASC`,
		userID, otherID, otherID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing conversation %d/%d: %w", userID, otherID, err)
	}

	messages, err := scanMessages(rows)
	if err != nil {
		return nil, err
	}

	if _, err := db.conn.ExecContext(ctx,
		`UPDATE messages SET is_read = 1 WHERE sender_id = ? AND receiver_id = ?`,
		otherID, userID,
	); err != nil {
		return nil, fmt.Errorf("sqlite: marking conversation read: %w", err)
	}

	return messages, nil
}
