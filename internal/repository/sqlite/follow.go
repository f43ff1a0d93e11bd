package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Mr7Gabriel/clone-x-app/internal/apperror"
	"github.com/Mr7Gabriel/clone-x-app/internal/repository"
)

// compile-time check that *DB implements repository.FollowRepository
var _ repository.FollowRepository = (*DB)(nil)

// ToggleFollow flips whether followerID follows followingID. Unlike the
// post toggles this moves two counters (the follower's following_count and
// the target's follower_count), both in the same transaction as the join
// row, so following then unfollowing restores both exactly.
//
// Self-follow is rejected in the service layer before this is reached.
func (db *DB) ToggleFollow(ctx context.Context, followerID, followingID int64) (bool, error) {
	var state bool

	err := db.inTx(ctx, func(tx *sql.Tx) error {
		var existingID int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM follows WHERE follower_id = ? AND following_id = ?`,
			followerID, followingID,
		).Scan(&existingID)

		switch {
		case err == nil:
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM follows WHERE id = ?`, existingID); err != nil {
				return fmt.Errorf("sqlite: deleting follow: %w", err)
			}
			if err := adjustFollowCounts(ctx, tx, followerID, followingID, -1); err != nil {
				return err
			}
			state = false
			return nil

		case err == sql.ErrNoRows:
			_, err := tx.ExecContext(ctx,
				`INSERT INTO follows (follower_id, following_id, created_at) VALUES (?, ?, ?)`,
				followerID, followingID, time.Now().UTC(),
			)
			if err != nil {
				if isUniqueViolation(err) {
					// Concurrent duplicate follow: idempotent success.
					state = true
					return nil
				}
				if isForeignKeyViolation(err) {
					return apperror.NotFound("user", followingID)
				}
				return fmt.Errorf("sqlite: inserting follow: %w", err)
			}
			if err := adjustFollowCounts(ctx, tx, followerID, followingID, +1); err != nil {
				return err
			}
			state = true
			return nil

		default:
			return fmt.Errorf("sqlite: checking follow row: %w", err)
		}
	})
	if err != nil {
		return false, err
	}
	return state, nil
}

func adjustFollowCounts(ctx context.Context, tx *sql.Tx, followerID, followingID int64, delta int) error {
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET following_count = following_count + ? WHERE id = ?`,
		delta, followerID); err != nil {
		return fmt.Errorf("sqlite: adjusting following_count: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET follower_count = follower_count + ? WHERE id = ?`,
		delta, followingID); err != nil {
		return fmt.Errorf("sqlite: adjusting follower_count: %w", err)
	}
	return nil
}

// IsFollowing reports whether followerID currently follows followingID.
func (db *DB) IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error) {
	var id int64
	err := db.conn.QueryRowContext(ctx,
		`SELECT id FROM follows WHERE follower_id = ? AND following_id = ?`,
		followerID, followingID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sqlite: checking follow: %w", err)
	}
	return true, nil
}
