package model

import "time"

// NotificationType enumerates what a notification is about. The values are
// stored as-is in the notifications table.
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationRetweet NotificationType = "retweet"
	NotificationFollow  NotificationType = "follow"
	NotificationMention NotificationType = "mention"
	NotificationReply   NotificationType = "reply"
)

// Notification records an action taken on a user's content or profile.
// Created only when the actor is not the recipient, and never on the
// removal half of a toggle.
//
// PostID is nil for follow notifications. Content is a snapshot of the
// triggering text (reply notifications) so the notification stays meaningful
// independently of the source row.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Type      NotificationType `json:"type"`
	ActorID   int64            `json:"actor_id"`
	PostID    *int64           `json:"post_id"`
	Content   string           `json:"content"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`

	// Actor summary, joined from users.
	ActorUsername     string `json:"actor_username"`
	ActorName         string `json:"actor_name"`
	ActorProfileImage string `json:"actor_profile_image"`
	ActorIsVerified   bool   `json:"actor_is_verified"`
}
