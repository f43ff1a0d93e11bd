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

// compile-time check that *DB implements repository.ReplyRepository
var _ repository.ReplyRepository = (*DB)(nil)

// CreateReply inserts a reply and increments the parent post's reply_count
// in the same transaction. Returns the post owner's id for the notification
// side effect. Replies have no delete path, so the counter only ever grows.
func (db *DB) CreateReply(ctx context.Context, reply *model.Reply) (int64, error) {
	var ownerID int64

	err := db.inTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`SELECT user_id FROM posts WHERE id = ?`, reply.PostID,
		).Scan(&ownerID)
		if err != nil {
			if err == sql.ErrNoRows {
				return apperror.NotFound("post", reply.PostID)
			}
			return fmt.Errorf("sqlite: looking up post %d: %w", reply.PostID, err)
		}

		reply.CreatedAt = time.Now().UTC()
		res, err := tx.ExecContext(ctx,
			`INSERT INTO replies (user_id, post_id, content, created_at) VALUES (?, ?, ?, ?)`,
			reply.UserID, reply.PostID, reply.Content, reply.CreatedAt,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return apperror.NotFound("user", reply.UserID)
			}
			return fmt.Errorf("sqlite: inserting reply: %w", err)
		}

		reply.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("sqlite: reading new reply id: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE posts SET reply_count = reply_count + 1 WHERE id = ?`, reply.PostID); err != nil {
			return fmt.Errorf("sqlite: incrementing reply_count: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	// Fill in the author summary for the response shape.
	err = db.conn.QueryRowContext(ctx,
		`SELECT username, name, profile_image, is_verified FROM users WHERE id = ?`,
		reply.UserID,
	).Scan(&reply.Username, &reply.Name, &reply.ProfileImage, &reply.IsVerified)
	if err != nil {
		return 0, fmt.Errorf("sqlite: reading reply author %d: %w", reply.UserID, err)
	}

	return ownerID, nil
}

// ListReplies returns a post's replies with author summaries, newest first.
func (db *DB) ListReplies(ctx context.Context, postID int64) ([]model.Reply, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT r.id, r.user_id, r.post_id, r.content, r.created_at,
			u.username, u.name, u.profile_image, u.is_verified
		 FROM replies r
		 JOIN users u ON r.user_id = u.id
		 WHERE r.post_id = ?
		 ORDER BY r.created_at DESC, r.id DESC`,
		postID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing replies of post %d: %w", postID, err)
	}
	defer rows.Close()

	replies := []model.Reply{}
	for rows.Next() {
		var r model.Reply
		err := rows.Scan(
			&r.ID, &r.UserID, &r.PostID, &r.Content, &r.CreatedAt,
			&r.Username, &r.Name, &r.ProfileImage, &r.IsVerified,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning reply: %w", err)
		}
		replies = append(replies, r)
	}
	return replies, rows.Err()
}
