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

// compile-time check that *DB implements repository.EngagementRepository
var _ repository.EngagementRepository = (*DB)(nil)

// ToggleLike flips the like state of (userID, postID) and moves like_count
// with it, in one transaction.
func (db *DB) ToggleLike(ctx context.Context, userID, postID int64) (bool, int64, error) {
	return db.togglePostRelation(ctx, "likes", "like_count", userID, postID)
}

// ToggleRetweet flips the retweet state and moves retweet_count with it.
func (db *DB) ToggleRetweet(ctx context.Context, userID, postID int64) (bool, int64, error) {
	return db.togglePostRelation(ctx, "retweets", "retweet_count", userID, postID)
}

// ToggleBookmark flips the bookmark state. Bookmarks keep no counter and
// produce no notification, so the owner id is not reported.
func (db *DB) ToggleBookmark(ctx context.Context, userID, postID int64) (bool, error) {
	state, _, err := db.togglePostRelation(ctx, "bookmarks", "", userID, postID)
	return state, err
}

// togglePostRelation implements the uniform toggle over the (user, post)
// join tables. table and counter are fixed identifiers chosen by the
// exported wrappers, never caller input.
//
// Present row: delete it, decrement the counter, state=false.
// Absent row: insert it, increment the counter, state=true. A concurrent
// duplicate insert trips the UNIQUE constraint; since the desired end state
// already holds, that is absorbed as state=true with no counter change.
func (db *DB) togglePostRelation(ctx context.Context, table, counter string, userID, postID int64) (bool, int64, error) {
	var state bool
	var ownerID int64

	err := db.inTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`SELECT user_id FROM posts WHERE id = ?`, postID,
		).Scan(&ownerID)
		if err != nil {
			if err == sql.ErrNoRows {
				return apperror.NotFound("post", postID)
			}
			return fmt.Errorf("sqlite: looking up post %d: %w", postID, err)
		}

		var existingID int64
		err = tx.QueryRowContext(ctx,
			`SELECT id FROM `+table+` WHERE user_id = ? AND post_id = ?`,
			userID, postID,
		).Scan(&existingID)

		switch {
		case err == nil:
			// Row present: remove it and reverse the counter.
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM `+table+` WHERE id = ?`, existingID); err != nil {
				return fmt.Errorf("sqlite: deleting from %s: %w", table, err)
			}
			if counter != "" {
				if _, err := tx.ExecContext(ctx,
					`UPDATE posts SET `+counter+` = `+counter+` - 1 WHERE id = ?`, postID); err != nil {
					return fmt.Errorf("sqlite: decrementing %s: %w", counter, err)
				}
			}
			state = false
			return nil

		case err == sql.ErrNoRows:
			_, err := tx.ExecContext(ctx,
				`INSERT INTO `+table+` (user_id, post_id, created_at) VALUES (?, ?, ?)`,
				userID, postID, time.Now().UTC(),
			)
			if err != nil {
				if isUniqueViolation(err) {
					// Lost a race with an identical toggle: idempotent success.
					state = true
					return nil
				}
				if isForeignKeyViolation(err) {
					return apperror.NotFound("user", userID)
				}
				return fmt.Errorf("sqlite: inserting into %s: %w", table, err)
			}
			if counter != "" {
				if _, err := tx.ExecContext(ctx,
					`UPDATE posts SET `+counter+` = `+counter+` + 1 WHERE id = ?`, postID); err != nil {
					return fmt.Errorf("sqlite: incrementing %s: %w", counter, err)
				}
			}
			state = true
			return nil

		default:
			return fmt.Errorf("sqlite: checking %s row: %w", table, err)
		}
	})
	if err != nil {
		return false, 0, err
	}
	return state, ownerID, nil
}

// IsBookmarked reports whether the user has bookmarked the post.
func (db *DB) IsBookmarked(ctx context.Context, userID, postID int64) (bool, error) {
	var id int64
	err := db.conn.QueryRowContext(ctx,
		`SELECT id FROM bookmarks WHERE user_id = ? AND post_id = ?`,
		userID, postID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sqlite: checking bookmark: %w", err)
	}
	return true, nil
}

// ListBookmarkedPosts returns the user's bookmarked posts with author
// summaries, most recently bookmarked first.
func (db *DB) ListBookmarkedPosts(ctx context.Context, userID int64) ([]model.Post, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT p.id, p.user_id, p.content, p.image_url,
			p.like_count, p.retweet_count, p.reply_count, p.created_at, p.updated_at,
			u.username, u.name, u.profile_image, u.is_verified
		 FROM bookmarks b
		 JOIN posts p ON b.post_id = p.id
		 JOIN users u ON p.user_id = u.id
		 WHERE b.user_id = ?
		 ORDER BY b.created_at DESC, b.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing bookmarks of %d: %w", userID, err)
	}
	return scanPosts(rows)
}
