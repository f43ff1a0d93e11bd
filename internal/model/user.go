// Package model defines the data structures used throughout the application.
//
// JSON tags are snake_case because that is the wire format the API clients
// already speak (profile_image, follower_count, ...). The password hash is
// never serialized.
package model

import "time"

// User represents a registered account.
//
// FollowerCount and FollowingCount are denormalized: they are adjusted by
// every follow/unfollow mutation rather than recomputed from the follows
// table. The repository keeps the adjustment and the join-row change in one
// transaction so the counts cannot drift from the rows.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Name           string    `json:"name"`
	Bio            string    `json:"bio"`
	Location       string    `json:"location"`
	Website        string    `json:"website"`
	ProfileImage   string    `json:"profile_image"`
	BannerImage    string    `json:"banner_image"`
	IsVerified     bool      `json:"is_verified"`
	FollowerCount  int       `json:"follower_count"`
	FollowingCount int       `json:"following_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserSummary is the compact author/user shape embedded in search results,
// follower lists, and suggestions.
type UserSummary struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Name          string `json:"name"`
	ProfileImage  string `json:"profile_image"`
	IsVerified    bool   `json:"is_verified"`
	FollowerCount int    `json:"follower_count"`
}
