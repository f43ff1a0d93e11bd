package model

import "time"

// Post is a top-level post. Like/retweet/reply counts are denormalized and
// moved together with the corresponding join-row mutations.
//
// The Username/Name/ProfileImage/IsVerified fields are the author summary the
// list queries join in; they are empty on rows read without the join.
type Post struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Content      string    `json:"content"`
	ImageURL     string    `json:"image_url"`
	LikeCount    int       `json:"like_count"`
	RetweetCount int       `json:"retweet_count"`
	ReplyCount   int       `json:"reply_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Author summary, joined from users.
	Username     string `json:"username"`
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image"`
	IsVerified   bool   `json:"is_verified"`
}

// Reply is a comment on a post. Replies carry no counters of their own; each
// creation increments the parent post's reply_count. There is no delete path.
type Reply struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	PostID    int64     `json:"post_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Author summary, joined from users.
	Username     string `json:"username"`
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image"`
	IsVerified   bool   `json:"is_verified"`
}
