package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/Mr7Gabriel/clone-x-app/internal/auth"
	"github.com/Mr7Gabriel/clone-x-app/internal/model"
	"github.com/Mr7Gabriel/clone-x-app/internal/repository/sqlite"
)

// Services are tested against a real in-memory database rather than hand
// written repository fakes. The toggle and notification behavior spans the
// service and repository layers, and fakes would just re-encode the SQL.

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestUser(t *testing.T, db *sqlite.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Name:         "Test " + username,
	}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("creating user %s: %v", username, err)
	}
	return user
}

func createTestPost(t *testing.T, db *sqlite.DB, userID int64, content string) *model.Post {
	t.Helper()
	post := &model.Post{UserID: userID, Content: content}
	if err := db.CreatePost(context.Background(), post); err != nil {
		t.Fatalf("creating post: %v", err)
	}
	return post
}

func newPostService(db *sqlite.DB) *PostService {
	return NewPostService(db, db, db, db, testLogger())
}

func newUserService(db *sqlite.DB) *UserService {
	return NewUserService(db, db, db, testLogger())
}

func newAuthService(db *sqlite.DB) (*AuthService, error) {
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars")
	if err != nil {
		return nil, fmt.Errorf("creating token service: %w", err)
	}
	return NewAuthService(db, tokens, auth.NewPasswordServiceForTest(bcrypt.MinCost), testLogger()), nil
}
