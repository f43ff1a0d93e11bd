// Package service contains the business logic layer.
//
// Services accept primitives and return domain models plus apperror values;
// they know nothing about HTTP. Handlers translate both directions.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Mr7Gabriel/clone-x-app/internal/apperror"
	"github.com/Mr7Gabriel/clone-x-app/internal/auth"
	"github.com/Mr7Gabriel/clone-x-app/internal/model"
	"github.com/Mr7Gabriel/clone-x-app/internal/repository"
)

// AuthService handles registration and login.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// AuthResult is what both Register and Login produce: the account plus a
// fresh session token.
type AuthResult struct {
	User  *model.User
	Token string
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates an account and issues a session token.
//
// The pre-insert taken check produces the friendly conflict message; the
// UNIQUE constraints behind CreateUser catch the race where two
// registrations pass the check concurrently, so that window also surfaces
// as a conflict rather than a storage failure.
func (s *AuthService) Register(ctx context.Context, username, email, password, name string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	switch {
	case username == "":
		return nil, apperror.ValidationFailed("username", "All fields are required")
	case email == "":
		return nil, apperror.ValidationFailed("email", "All fields are required")
	case password == "":
		return nil, apperror.ValidationFailed("password", "All fields are required")
	case name == "":
		return nil, apperror.ValidationFailed("name", "All fields are required")
	}

	taken, err := s.users.UsernameOrEmailTaken(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("checking username/email: %w", err)
	}
	if taken {
		return nil, apperror.Conflict("Username or email already exists")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", err.Error())
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	s.logger.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials and issues a session token. Both an unknown
// username and a wrong password yield the same "Invalid credentials" error,
// so the response does not reveal which half failed.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	if username == "" || password == "" {
		return nil, apperror.ValidationFailed("username", "Username and password required")
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("Invalid credentials")
		}
		return nil, err
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, apperror.Unauthorized("Invalid credentials")
		}
		return nil, err
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	s.logger.Info("user logged in", slog.Int64("user_id", user.ID))

	return &AuthResult{User: user, Token: token}, nil
}
