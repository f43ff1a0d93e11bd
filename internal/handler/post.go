package handler

import (
	"log/slog"
	"net/http"

	"github.com/Mr7Gabriel/clone-x-app/internal/auth"
	"github.com/Mr7Gabriel/clone-x-app/internal/service"
)

// PostHandler exposes the feed, post creation, replies, and the per-post
// engagement toggles.
type PostHandler struct {
	posts  *service.PostService
	logger *slog.Logger
}

func NewPostHandler(posts *service.PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{posts: posts, logger: logger}
}

// HandleList returns the global feed.
//
// HTTP: GET /api/posts?limit=&offset=
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context(), queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "posts": posts})
}

// HandleListByUser returns one user's posts.
//
// HTTP: GET /api/users/{userID}/posts?limit=&offset=
func (h *PostHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := urlID(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}
	posts, err := h.posts.ListByUser(r.Context(), userID, queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "posts": posts})
}

type createPostRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

// HandleCreate creates a post for the authenticated user.
//
// HTTP: POST /api/posts
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	post, err := h.posts.Create(r.Context(), identity.UserID, req.Content, req.ImageURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{"success": true, "post": post})
}

// HandleLike toggles the caller's like on a post.
//
// HTTP: POST /api/posts/{postID}/like
func (h *PostHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())
	postID, err := urlID(r, "postID")
	if err != nil {
		writeError(w, err)
		return
	}

	liked, err := h.posts.ToggleLike(r.Context(), identity.UserID, postID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "liked": liked})
}

// HandleRetweet toggles the caller's retweet on a post.
//
// HTTP: POST /api/posts/{postID}/retweet
func (h *PostHandler) HandleRetweet(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())
	postID, err := urlID(r, "postID")
	if err != nil {
		writeError(w, err)
		return
	}

	retweeted, err := h.posts.ToggleRetweet(r.Context(), identity.UserID, postID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "retweeted": retweeted})
}

// HandleBookmark toggles the caller's bookmark on a post.
//
// HTTP: POST /api/posts/{postID}/bookmark
func (h *PostHandler) HandleBookmark(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())
	postID, err := urlID(r, "postID")
	if err != nil {
		writeError(w, err)
		return
	}

	bookmarked, err := h.posts.ToggleBookmark(r.Context(), identity.UserID, postID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "bookmarked": bookmarked})
}

// HandleIsBookmarked reports whether the caller bookmarked a post.
//
// HTTP: GET /api/posts/{postID}/is-bookmarked
func (h *PostHandler) HandleIsBookmarked(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())
	postID, err := urlID(r, "postID")
	if err != nil {
		writeError(w, err)
		return
	}

	bookmarked, err := h.posts.IsBookmarked(r.Context(), identity.UserID, postID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "bookmarked": bookmarked})
}

// HandleBookmarks lists a user's bookmarked posts.
//
// HTTP: GET /api/users/{userID}/bookmarks
func (h *PostHandler) HandleBookmarks(w http.ResponseWriter, r *http.Request) {
	userID, err := urlID(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}

	bookmarks, err := h.posts.ListBookmarks(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "bookmarks": bookmarks})
}

type createReplyRequest struct {
	Content string `json:"content"`
}

// HandleCreateReply adds a reply to a post.
//
// HTTP: POST /api/posts/{postID}/replies
func (h *PostHandler) HandleCreateReply(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())
	postID, err := urlID(r, "postID")
	if err != nil {
		writeError(w, err)
		return
	}

	var req createReplyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	reply, err := h.posts.CreateReply(r.Context(), identity.UserID, postID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{"success": true, "reply": reply})
}

// HandleListReplies lists a post's replies, newest first.
//
// HTTP: GET /api/posts/{postID}/replies
func (h *PostHandler) HandleListReplies(w http.ResponseWriter, r *http.Request) {
	postID, err := urlID(r, "postID")
	if err != nil {
		writeError(w, err)
		return
	}

	replies, err := h.posts.ListReplies(r.Context(), postID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "replies": replies})
}
