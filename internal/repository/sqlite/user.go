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

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

const userColumns = `id, username, email, password_hash, name, bio, location, website,
	profile_image, banner_image, is_verified, follower_count, following_count,
	created_at, updated_at`

// CreateUser inserts a new account. The UNIQUE constraints on username and
// email back the pre-insert existence check the service performs: a race
// that slips past the check still surfaces here as ErrConflict, not a 500.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, name, bio, location, website,
			profile_image, banner_image, is_verified, follower_count, following_count,
			created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Bio,
		user.Location,
		user.Website,
		user.ProfileImage,
		user.BannerImage,
		user.IsVerified,
		user.FollowerCount,
		user.FollowingCount,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("Username or email already exists")
		}
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Username, err)
	}

	user.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user id: %w", err)
	}

	return nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.Bio,
		&u.Location,
		&u.Website,
		&u.ProfileImage,
		&u.BannerImage,
		&u.IsVerified,
		&u.FollowerCount,
		&u.FollowingCount,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByID retrieves a user; apperror.ErrNotFound if absent.
func (db *DB) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}
	return u, nil
}

// GetUserByUsername retrieves a user by their unique username.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)

	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFoundMessage("user not found")
		}
		return nil, fmt.Errorf("sqlite: getting user %q: %w", username, err)
	}
	return u, nil
}

// UsernameOrEmailTaken reports whether either value is already registered.
func (db *DB) UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ? OR email = ?`,
		username, email,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking username/email: %w", err)
	}
	return count > 0, nil
}

// UpdateProfile replaces the editable profile fields and returns the
// updated row.
func (db *DB) UpdateProfile(ctx context.Context, id int64, name, bio, location, website string) (*model.User, error) {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE users SET name = ?, bio = ?, location = ?, website = ?, updated_at = ?
		 WHERE id = ?`,
		name, bio, location, website, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating user %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperror.NotFound("user", id)
	}
	return db.GetUserByID(ctx, id)
}

// SetProfileImage stores the reference path of an uploaded profile image.
func (db *DB) SetProfileImage(ctx context.Context, id int64, path string) error {
	return db.setUserImage(ctx, id, "profile_image", path)
}

// SetBannerImage stores the reference path of an uploaded banner image.
func (db *DB) SetBannerImage(ctx context.Context, id int64, path string) error {
	return db.setUserImage(ctx, id, "banner_image", path)
}

func (db *DB) setUserImage(ctx context.Context, id int64, column, path string) error {
	// column is one of two fixed names, never caller input.
	res, err := db.conn.ExecContext(ctx,
		`UPDATE users SET `+column+` = ?, updated_at = ? WHERE id = ?`,
		path, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: setting %s for user %d: %w", column, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NotFound("user", id)
	}
	return nil
}

// DeleteUser removes an account. The ON DELETE CASCADE constraints take the
// user's posts, likes, retweets, bookmarks, follows (both directions),
// replies, notifications, and messages with it.
func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting user %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NotFound("user", id)
	}
	return nil
}

const summaryColumns = `id, username, name, profile_image, is_verified, follower_count`

func scanSummaries(rows *sql.Rows) ([]model.UserSummary, error) {
	defer rows.Close()

	users := []model.UserSummary{}
	for rows.Next() {
		var u model.UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.ProfileImage, &u.IsVerified, &u.FollowerCount); err != nil {
			return nil, fmt.Errorf("scanning user summary: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SearchUsers matches the query as a substring of username or display name.
// SQLite's LIKE is case-insensitive for ASCII only; non-ASCII comparisons
// are case-sensitive (collation-dependent behavior, documented not changed).
func (db *DB) SearchUsers(ctx context.Context, query string, limit int) ([]model.UserSummary, error) {
	pattern := "%" + query + "%"
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+summaryColumns+` FROM users
		 WHERE username LIKE ? OR name LIKE ?
		 LIMIT ?`,
		pattern, pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: searching users: %w", err)
	}
	return scanSummaries(rows)
}

// SuggestUsers returns accounts the user does not already follow, excluding
// themselves, most-followed first. Popularity-only ranking.
func (db *DB) SuggestUsers(ctx context.Context, userID int64, limit int) ([]model.UserSummary, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+summaryColumns+` FROM users
		 WHERE id != ?
		   AND id NOT IN (SELECT following_id FROM follows WHERE follower_id = ?)
		 ORDER BY follower_count DESC
		 LIMIT ?`,
		userID, userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: suggesting users: %w", err)
	}
	return scanSummaries(rows)
}

// ListFollowers returns the users following userID, most recent follow first.
func (db *DB) ListFollowers(ctx context.Context, userID int64) ([]model.UserSummary, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT u.id, u.username, u.name, u.profile_image, u.is_verified, u.follower_count
		 FROM follows f
		 JOIN users u ON f.follower_id = u.id
		 WHERE f.following_id = ?
		 ORDER BY f.created_at DESC, f.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing followers of %d: %w", userID, err)
	}
	return scanSummaries(rows)
}

// ListFollowing returns the users userID follows, most recent follow first.
func (db *DB) ListFollowing(ctx context.Context, userID int64) ([]model.UserSummary, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT u.id, u.username, u.name, u.profile_image, u.is_verified, u.follower_count
		 FROM follows f
		 JOIN users u ON f.following_id = u.id
		 WHERE f.follower_id = ?
		 ORDER BY f.created_at DESC, f.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing following of %d: %w", userID, err)
	}
	return scanSummaries(rows)
}
