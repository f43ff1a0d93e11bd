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

// compile-time check that *DB implements repository.PostRepository
var _ repository.PostRepository = (*DB)(nil)

// postJoin selects a post row plus the author summary the feed responses
// flatten in.
const postJoin = `SELECT p.id, p.user_id, p.content, p.image_url,
	p.like_count, p.retweet_count, p.reply_count, p.created_at, p.updated_at,
	u.username, u.name, u.profile_image, u.is_verified
	FROM posts p
	JOIN users u ON p.user_id = u.id`

func scanPosts(rows *sql.Rows) ([]model.Post, error) {
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		err := rows.Scan(
			&p.ID, &p.UserID, &p.Content, &p.ImageURL,
			&p.LikeCount, &p.RetweetCount, &p.ReplyCount, &p.CreatedAt, &p.UpdatedAt,
			&p.Username, &p.Name, &p.ProfileImage, &p.IsVerified,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// CreatePost inserts a post and reads it back with the author join so the
// caller gets the full response shape in one call.
func (db *DB) CreatePost(ctx context.Context, post *model.Post) error {
	now := time.Now().UTC()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO posts (user_id, content, image_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		post.UserID, post.Content, post.ImageURL, now, now,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NotFound("user", post.UserID)
		}
		return fmt.Errorf("sqlite: inserting post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new post id: %w", err)
	}

	created, err := db.GetPostByID(ctx, id)
	if err != nil {
		return err
	}
	*post = *created
	return nil
}

// GetPostByID retrieves one post with its author summary.
func (db *DB) GetPostByID(ctx context.Context, id int64) (*model.Post, error) {
	var p model.Post
	err := db.conn.QueryRowContext(ctx, postJoin+` WHERE p.id = ?`, id).Scan(
		&p.ID, &p.UserID, &p.Content, &p.ImageURL,
		&p.LikeCount, &p.RetweetCount, &p.ReplyCount, &p.CreatedAt, &p.UpdatedAt,
		&p.Username, &p.Name, &p.ProfileImage, &p.IsVerified,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("post", id)
		}
		return nil, fmt.Errorf("sqlite: getting post %d: %w", id, err)
	}
	return &p, nil
}

// ListPosts returns a page of the global feed, newest first.
func (db *DB) ListPosts(ctx context.Context, opts repository.ListOptions) ([]model.Post, error) {
	rows, err := db.conn.QueryContext(ctx,
		postJoin+` ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?`,
		opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing posts: %w", err)
	}
	return scanPosts(rows)
}

// ListUserPosts returns a page of one user's posts, newest first.
func (db *DB) ListUserPosts(ctx context.Context, userID int64, opts repository.ListOptions) ([]model.Post, error) {
	rows, err := db.conn.QueryContext(ctx,
		postJoin+` WHERE p.user_id = ? ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?`,
		userID, opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing posts of user %d: %w", userID, err)
	}
	return scanPosts(rows)
}
