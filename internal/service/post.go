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
	DefaultFeedLimit = 20
	MaxFeedLimit     = 100
)

// PostService covers posts, replies, and the per-post engagement toggles,
// including their notification side effects.
type PostService struct {
	posts         repository.PostRepository
	engagements   repository.EngagementRepository
	replies       repository.ReplyRepository
	notifications repository.NotificationRepository
	logger        *slog.Logger
}

func NewPostService(
	posts repository.PostRepository,
	engagements repository.EngagementRepository,
	replies repository.ReplyRepository,
	notifications repository.NotificationRepository,
	logger *slog.Logger,
) *PostService {
	return &PostService{
		posts:         posts,
		engagements:   engagements,
		replies:       replies,
		notifications: notifications,
		logger:        logger,
	}
}

// Create validates and stores a new post.
func (s *PostService) Create(ctx context.Context, userID int64, content, imageURL string) (*model.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperror.ValidationFailed("content", "Content is required")
	}

	post := &model.Post{UserID: userID, Content: content, ImageURL: imageURL}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	s.logger.Info("post created", slog.Int64("post_id", post.ID), slog.Int64("user_id", userID))
	return post, nil
}

// List returns a page of the global feed. Limit is clamped to 1..100 with
// a default of 20; a negative offset becomes 0.
func (s *PostService) List(ctx context.Context, limit, offset int) ([]model.Post, error) {
	return s.posts.ListPosts(ctx, clampPage(limit, offset))
}

// ListByUser returns a page of one user's posts.
func (s *PostService) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Post, error) {
	return s.posts.ListUserPosts(ctx, userID, clampPage(limit, offset))
}

func clampPage(limit, offset int) repository.ListOptions {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}
	if offset < 0 {
		offset = 0
	}
	return repository.ListOptions{Limit: limit, Offset: offset}
}

// ToggleLike flips the caller's like on a post. Liking someone else's post
// notifies the owner; unliking never does.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID int64) (bool, error) {
	liked, ownerID, err := s.engagements.ToggleLike(ctx, userID, postID)
	if err != nil {
		return false, err
	}
	if liked && ownerID != userID {
		s.notify(ctx, &model.Notification{
			UserID:  ownerID,
			Type:    model.NotificationLike,
			ActorID: userID,
			PostID:  &postID,
		})
	}
	return liked, nil
}

// ToggleRetweet flips the caller's retweet on a post, notifying the owner
// on the retweet half.
func (s *PostService) ToggleRetweet(ctx context.Context, userID, postID int64) (bool, error) {
	retweeted, ownerID, err := s.engagements.ToggleRetweet(ctx, userID, postID)
	if err != nil {
		return false, err
	}
	if retweeted && ownerID != userID {
		s.notify(ctx, &model.Notification{
			UserID:  ownerID,
			Type:    model.NotificationRetweet,
			ActorID: userID,
			PostID:  &postID,
		})
	}
	return retweeted, nil
}

// ToggleBookmark flips the caller's bookmark. Bookmarks are private: no
// counter, no notification.
func (s *PostService) ToggleBookmark(ctx context.Context, userID, postID int64) (bool, error) {
	return s.engagements.ToggleBookmark(ctx, userID, postID)
}

// IsBookmarked reports whether the caller bookmarked the post.
func (s *PostService) IsBookmarked(ctx context.Context, userID, postID int64) (bool, error) {
	return s.engagements.IsBookmarked(ctx, userID, postID)
}

// ListBookmarks returns the given user's bookmarked posts.
func (s *PostService) ListBookmarks(ctx context.Context, userID int64) ([]model.Post, error) {
	return s.engagements.ListBookmarkedPosts(ctx, userID)
}

// CreateReply adds a reply to a post. The reply-kind notification carries a
// snapshot of the content so it stays meaningful on its own.
func (s *PostService) CreateReply(ctx context.Context, userID, postID int64, content string) (*model.Reply, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperror.ValidationFailed("content", "Content is required")
	}

	reply := &model.Reply{UserID: userID, PostID: postID, Content: content}
	ownerID, err := s.replies.CreateReply(ctx, reply)
	if err != nil {
		return nil, err
	}

	if ownerID != userID {
		s.notify(ctx, &model.Notification{
			UserID:  ownerID,
			Type:    model.NotificationReply,
			ActorID: userID,
			PostID:  &postID,
			Content: content,
		})
	}

	return reply, nil
}

// ListReplies returns a post's replies, newest first.
func (s *PostService) ListReplies(ctx context.Context, postID int64) ([]model.Reply, error) {
	return s.replies.ListReplies(ctx, postID)
}

// notify records a notification. The triggering mutation has already
// committed, so a failure here is logged rather than turned into a request
// error.
func (s *PostService) notify(ctx context.Context, n *model.Notification) {
	if err := s.notifications.CreateNotification(ctx, n); err != nil {
		s.logger.Error("failed to create notification",
			slog.String("type", string(n.Type)),
			slog.Int64("user_id", n.UserID),
			slog.String("error", err.Error()),
		)
	}
}
