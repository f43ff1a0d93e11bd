package sqlite

import (
	"context"
	"testing"
)

func TestToggleFollow_MovesBothCounters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	follower := createTestUser(t, db, "f_follower")
	target := createTestUser(t, db, "f_target")

	following, err := db.ToggleFollow(ctx, follower.ID, target.ID)
	if err != nil {
		t.Fatalf("ToggleFollow() error = %v", err)
	}
	if !following {
		t.Error("first ToggleFollow() = false, want true")
	}

	f, _ := db.GetUserByID(ctx, follower.ID)
	tgt, _ := db.GetUserByID(ctx, target.ID)
	if f.FollowingCount != 1 {
		t.Errorf("follower.following_count = %d, want 1", f.FollowingCount)
	}
	if tgt.FollowerCount != 1 {
		t.Errorf("target.follower_count = %d, want 1", tgt.FollowerCount)
	}

	// Unfollow restores both counters to their pre-action values.
	following, err = db.ToggleFollow(ctx, follower.ID, target.ID)
	if err != nil {
		t.Fatalf("second ToggleFollow() error = %v", err)
	}
	if following {
		t.Error("second ToggleFollow() = true, want false")
	}

	f, _ = db.GetUserByID(ctx, follower.ID)
	tgt, _ = db.GetUserByID(ctx, target.ID)
	if f.FollowingCount != 0 {
		t.Errorf("follower.following_count after unfollow = %d, want 0", f.FollowingCount)
	}
	if tgt.FollowerCount != 0 {
		t.Errorf("target.follower_count after unfollow = %d, want 0", tgt.FollowerCount)
	}
}

func TestIsFollowing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a := createTestUser(t, db, "isf_a")
	b := createTestUser(t, db, "isf_b")

	is, err := db.IsFollowing(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("IsFollowing() error = %v", err)
	}
	if is {
		t.Error("IsFollowing() = true before following")
	}

	if _, err := db.ToggleFollow(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("ToggleFollow() error = %v", err)
	}

	is, _ = db.IsFollowing(ctx, a.ID, b.ID)
	if !is {
		t.Error("IsFollowing() = false after following")
	}
	// Direction matters.
	is, _ = db.IsFollowing(ctx, b.ID, a.ID)
	if is {
		t.Error("IsFollowing() reverse direction should be false")
	}
}

func TestListFollowersAndFollowing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a := createTestUser(t, db, "lf_a")
	b := createTestUser(t, db, "lf_b")
	c := createTestUser(t, db, "lf_c")

	// a and c follow b.
	if _, err := db.ToggleFollow(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("ToggleFollow() error = %v", err)
	}
	if _, err := db.ToggleFollow(ctx, c.ID, b.ID); err != nil {
		t.Fatalf("ToggleFollow() error = %v", err)
	}

	followers, err := db.ListFollowers(ctx, b.ID)
	if err != nil {
		t.Fatalf("ListFollowers() error = %v", err)
	}
	if len(followers) != 2 {
		t.Fatalf("ListFollowers() returned %d, want 2", len(followers))
	}
	// Most recent follow first.
	if followers[0].ID != c.ID {
		t.Errorf("ListFollowers() first = %d, want %d", followers[0].ID, c.ID)
	}

	following, err := db.ListFollowing(ctx, a.ID)
	if err != nil {
		t.Fatalf("ListFollowing() error = %v", err)
	}
	if len(following) != 1 || following[0].ID != b.ID {
		t.Errorf("ListFollowing(a) = %+v, want [b]", following)
	}
}
