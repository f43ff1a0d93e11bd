package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Mr7Gabriel/clone-x-app/internal/apperror"
	"github.com/Mr7Gabriel/clone-x-app/internal/model"
	"github.com/Mr7Gabriel/clone-x-app/internal/repository"
)

const (
	DefaultSuggestionLimit = 10
	DefaultSearchLimit     = 20
)

// UserService handles profiles, discovery, and the follow graph.
type UserService struct {
	users         repository.UserRepository
	follows       repository.FollowRepository
	notifications repository.NotificationRepository
	logger        *slog.Logger
}

func NewUserService(
	users repository.UserRepository,
	follows repository.FollowRepository,
	notifications repository.NotificationRepository,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:         users,
		follows:       follows,
		notifications: notifications,
		logger:        logger,
	}
}

// GetByID returns a user's public profile.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// GetByUsername returns a user's public profile by handle.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.users.GetUserByUsername(ctx, username)
}

// ProfileUpdate carries the editable profile fields. The update replaces
// all four, so clients send the full profile back.
type ProfileUpdate struct {
	Name     string
	Bio      string
	Location string
	Website  string
}

// UpdateProfile replaces the editable profile fields. Callers may only edit
// their own profile.
func (s *UserService) UpdateProfile(ctx context.Context, callerID, targetID int64, update ProfileUpdate) (*model.User, error) {
	if callerID != targetID {
		return nil, apperror.Forbidden("Cannot update another user's profile")
	}
	return s.users.UpdateProfile(ctx, targetID, update.Name, update.Bio, update.Location, update.Website)
}

// Delete removes an account and everything attached to it. Callers may only
// delete themselves.
func (s *UserService) Delete(ctx context.Context, callerID, targetID int64) error {
	if callerID != targetID {
		return apperror.Forbidden("Cannot delete another user's account")
	}
	if err := s.users.DeleteUser(ctx, targetID); err != nil {
		return err
	}
	s.logger.Info("user deleted", slog.Int64("user_id", targetID))
	return nil
}

// Search finds users whose username or name contains the query.
func (s *UserService) Search(ctx context.Context, query string) ([]model.UserSummary, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperror.ValidationFailed("q", "Query parameter required")
	}
	return s.users.SearchUsers(ctx, query, DefaultSearchLimit)
}

// Suggestions returns users the caller does not yet follow, most followed
// first.
func (s *UserService) Suggestions(ctx context.Context, userID int64) ([]model.UserSummary, error) {
	return s.users.SuggestUsers(ctx, userID, DefaultSuggestionLimit)
}

// ToggleFollow flips the caller's follow on another user. Following notifies
// the target; unfollowing never does. Users cannot follow themselves.
func (s *UserService) ToggleFollow(ctx context.Context, followerID, followingID int64) (bool, error) {
	if followerID == followingID {
		return false, apperror.ValidationFailed("user_id", "Cannot follow yourself")
	}

	following, err := s.follows.ToggleFollow(ctx, followerID, followingID)
	if err != nil {
		return false, err
	}

	if following {
		n := &model.Notification{
			UserID:  followingID,
			Type:    model.NotificationFollow,
			ActorID: followerID,
		}
		if err := s.notifications.CreateNotification(ctx, n); err != nil {
			s.logger.Error("failed to create follow notification",
				slog.Int64("user_id", followingID),
				slog.String("error", err.Error()),
			)
		}
	}

	return following, nil
}

// IsFollowing reports whether followerID follows followingID.
func (s *UserService) IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error) {
	return s.follows.IsFollowing(ctx, followerID, followingID)
}

// Followers lists the users following userID, most recent first.
func (s *UserService) Followers(ctx context.Context, userID int64) ([]model.UserSummary, error) {
	list, err := s.users.ListFollowers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing followers: %w", err)
	}
	return list, nil
}

// Following lists the users userID follows, most recent first.
func (s *UserService) Following(ctx context.Context, userID int64) ([]model.UserSummary, error) {
	list, err := s.users.ListFollowing(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing following: %w", err)
	}
	return list, nil
}
