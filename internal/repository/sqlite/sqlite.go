// Package sqlite implements the repository interfaces on SQLite.
//
// The driver is modernc.org/sqlite, a pure Go translation of SQLite, so the
// binary cross-compiles without a C toolchain and tests can run against
// ":memory:" databases.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Mr7Gabriel/clone-x-app/internal/model"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps the connection pool and carries every repository method.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath (":memory:" for tests), configures the
// pragmas, and runs migrations.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// A single connection serializes writes (SQLite allows one writer
	// anyway) and keeps ":memory:" databases coherent, since every pooled
	// connection would otherwise get its own empty database.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight. Foreign keys are
	// off by default in SQLite; the cascade semantics depend on them.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it idempotent.
//
// Every join/child table cascades on deletion of its parent user/post rows,
// so deleting a user takes their posts, likes, follows, notifications, and
// messages (both directions) with it.
func (db *DB) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			username        TEXT NOT NULL UNIQUE,
			email           TEXT NOT NULL UNIQUE,
			password_hash   TEXT NOT NULL,
			name            TEXT NOT NULL,
			bio             TEXT NOT NULL DEFAULT '',
			location        TEXT NOT NULL DEFAULT '',
			website         TEXT NOT NULL DEFAULT '',
			profile_image   TEXT NOT NULL DEFAULT '',
			banner_image    TEXT NOT NULL DEFAULT '',
			is_verified     INTEGER NOT NULL DEFAULT 0,
			follower_count  INTEGER NOT NULL DEFAULT 0,
			following_count INTEGER NOT NULL DEFAULT 0,
			created_at      DATETIME NOT NULL,
			updated_at      DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id       INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			content       TEXT NOT NULL,
			image_url     TEXT NOT NULL DEFAULT '',
			like_count    INTEGER NOT NULL DEFAULT 0,
			retweet_count INTEGER NOT NULL DEFAULT 0,
			reply_count   INTEGER NOT NULL DEFAULT 0,
			created_at    DATETIME NOT NULL,
			updated_at    DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_user_id ON posts(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at)`,
		`CREATE TABLE IF NOT EXISTS likes (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			post_id    INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			created_at DATETIME NOT NULL,
			UNIQUE (user_id, post_id)
		)`,
		`CREATE TABLE IF NOT EXISTS retweets (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			post_id    INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			created_at DATETIME NOT NULL,
			UNIQUE (user_id, post_id)
		)`,
		`CREATE TABLE IF NOT EXISTS bookmarks (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			post_id    INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			created_at DATETIME NOT NULL,
			UNIQUE (user_id, post_id)
		)`,
		`CREATE TABLE IF NOT EXISTS follows (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			follower_id  INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			following_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at   DATETIME NOT NULL,
			UNIQUE (follower_id, following_id)
		)`,
		`CREATE TABLE IF NOT EXISTS replies (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			post_id    INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			content    TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_replies_post_id ON replies(post_id)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			type       TEXT NOT NULL CHECK (type IN ('like','retweet','follow','mention','reply')),
			actor_id   INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			post_id    INTEGER REFERENCES posts(id) ON DELETE CASCADE,
			content    TEXT NOT NULL DEFAULT '',
			is_read    INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			sender_id   INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			receiver_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			content     TEXT NOT NULL,
			is_read     INTEGER NOT NULL DEFAULT 0,
			created_at  DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_sender_id ON messages(sender_id)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_receiver_id ON messages(receiver_id)`,
	}

	for _, stmt := range stmts {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("migrating schema: %w", err)
		}
	}

	return nil
}

// Stats returns the aggregate row counts for the stats endpoint.
func (db *DB) Stats(ctx context.Context) (*model.Stats, error) {
	var s model.Stats
	for _, c := range []struct {
		table string
		dst   *int
	}{
		{"users", &s.Users},
		{"posts", &s.Posts},
		{"messages", &s.Messages},
		{"notifications", &s.Notifications},
	} {
		err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+c.table).Scan(c.dst)
		if err != nil {
			return nil, fmt.Errorf("sqlite: counting %s: %w", c.table, err)
		}
	}
	return &s, nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
// modernc.org/sqlite reports constraint failures in the error text; matching
// on it avoids depending on the driver's error types.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation reports whether err is a FOREIGN KEY failure,
// i.e. a referenced user/post row does not exist.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// inTx runs fn inside a transaction, rolling back on error.
func (db *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing transaction: %w", err)
	}
	return nil
}
