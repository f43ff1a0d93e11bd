// Package repository declares the storage interfaces the service layer
// programs against. The sqlite subpackage is the only implementation;
// services never import it directly.
package repository

import (
	"context"

	"github.com/Mr7Gabriel/clone-x-app/internal/model"
)

// ListOptions carries pagination for the list queries that support it.
type ListOptions struct {
	Limit  int
	Offset int
}

// UserRepository covers accounts, profiles, and the follow graph queries
// that return user summaries.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	// UsernameOrEmailTaken reports whether either value is already registered.
	UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error)
	UpdateProfile(ctx context.Context, id int64, name, bio, location, website string) (*model.User, error)
	SetProfileImage(ctx context.Context, id int64, path string) error
	SetBannerImage(ctx context.Context, id int64, path string) error
	// DeleteUser removes the account; child rows go with it via cascade.
	DeleteUser(ctx context.Context, id int64) error
	SearchUsers(ctx context.Context, query string, limit int) ([]model.UserSummary, error)
	// SuggestUsers returns users the given user does not follow (and is not),
	// most-followed first.
	SuggestUsers(ctx context.Context, userID int64, limit int) ([]model.UserSummary, error)
	ListFollowers(ctx context.Context, userID int64) ([]model.UserSummary, error)
	ListFollowing(ctx context.Context, userID int64) ([]model.UserSummary, error)
}

// PostRepository covers post creation and the feed queries.
type PostRepository interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPostByID(ctx context.Context, id int64) (*model.Post, error)
	ListPosts(ctx context.Context, opts ListOptions) ([]model.Post, error)
	ListUserPosts(ctx context.Context, userID int64, opts ListOptions) ([]model.Post, error)
}

// EngagementRepository covers the per-post toggle relations. Each toggle
// runs in a single transaction: join-row change and counter adjustment
// commit together, and a concurrent duplicate insert is absorbed as
// idempotent success.
//
// The post owner's id is returned so the caller can emit a notification
// without a second lookup.
type EngagementRepository interface {
	ToggleLike(ctx context.Context, userID, postID int64) (liked bool, ownerID int64, err error)
	ToggleRetweet(ctx context.Context, userID, postID int64) (retweeted bool, ownerID int64, err error)
	// Bookmarks keep no counter and notify nobody.
	ToggleBookmark(ctx context.Context, userID, postID int64) (bookmarked bool, err error)
	IsBookmarked(ctx context.Context, userID, postID int64) (bool, error)
	ListBookmarkedPosts(ctx context.Context, userID int64) ([]model.Post, error)
}

// FollowRepository covers the follow toggle and its lookup. ToggleFollow
// moves both denormalized counters (follower's following_count, target's
// follower_count) in the same transaction as the join row.
type FollowRepository interface {
	ToggleFollow(ctx context.Context, followerID, followingID int64) (following bool, err error)
	IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error)
}

// ReplyRepository creates replies (bumping the parent's reply_count in the
// same transaction) and lists them. Replies cannot be deleted.
type ReplyRepository interface {
	CreateReply(ctx context.Context, reply *model.Reply) (ownerID int64, err error)
	ListReplies(ctx context.Context, postID int64) ([]model.Reply, error)
}

// NotificationRepository stores and reads notification rows.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *model.Notification) error
	ListNotifications(ctx context.Context, userID int64, limit int) ([]model.Notification, error)
	GetNotificationByID(ctx context.Context, id int64) (*model.Notification, error)
	MarkNotificationRead(ctx context.Context, id int64) error
	CountUnreadNotifications(ctx context.Context, userID int64) (int, error)
}

// MessageRepository covers direct messages and the conversation views.
type MessageRepository interface {
	CreateMessage(ctx context.Context, m *model.Message) error
	// ListConversations returns the most recent message per counterpart,
	// newest conversation first.
	ListConversations(ctx context.Context, userID int64) ([]model.Message, error)
	// ListConversation returns all messages between the two users, oldest
	// first, and marks every message from otherID to userID as read.
	ListConversation(ctx context.Context, userID, otherID int64) ([]model.Message, error)
}

// StatsRepository reports the aggregate row counts.
type StatsRepository interface {
	Stats(ctx context.Context) (*model.Stats, error)
}
