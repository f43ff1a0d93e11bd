package model

import "time"

// Message is one direct message. A conversation has no id of its own:
// membership is inferred by matching (sender, receiver) pairs in either
// order, and the conversation list picks the highest message id per
// counterpart.
type Message struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`

	// Sender summary, joined from users.
	SenderUsername     string `json:"sender_username"`
	SenderName         string `json:"sender_name"`
	SenderProfileImage string `json:"sender_profile_image"`
	SenderIsVerified   bool   `json:"sender_is_verified"`
}
