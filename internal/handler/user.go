package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mr7Gabriel/clone-x-app/internal/auth"
	"github.com/Mr7Gabriel/clone-x-app/internal/service"
)

// UserHandler exposes profiles, search, suggestions, and the follow graph.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// HandleGet returns a user's profile by id.
//
// HTTP: GET /api/users/{userID}
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, err := urlID(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "user": user})
}

// HandleGetByUsername returns a user's profile by handle.
//
// HTTP: GET /api/users/username/{username}
func (h *UserHandler) HandleGetByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "user": user})
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
	Website  string `json:"website"`
}

// HandleUpdate replaces the editable profile fields. Self-only.
//
// HTTP: PUT /api/users/{userID}
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())
	userID, err := urlID(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), identity.UserID, userID, service.ProfileUpdate{
		Name:     req.Name,
		Bio:      req.Bio,
		Location: req.Location,
		Website:  req.Website,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "user": user})
}

// HandleDelete removes an account. Self-only; everything attached cascades.
//
// HTTP: DELETE /api/users/{userID}
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())
	userID, err := urlID(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.users.Delete(r.Context(), identity.UserID, userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true})
}

// HandleSearch finds users by username or name substring.
//
// HTTP: GET /api/users/search?q=
func (h *UserHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "users": users})
}

// HandleFollow toggles the caller's follow on another user.
//
// HTTP: POST /api/users/{userID}/follow
func (h *UserHandler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())
	userID, err := urlID(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}

	following, err := h.users.ToggleFollow(r.Context(), identity.UserID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "following": following})
}

// HandleIsFollowing reports whether the caller follows the given user.
//
// HTTP: GET /api/users/{userID}/is-following
func (h *UserHandler) HandleIsFollowing(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())
	userID, err := urlID(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}

	following, err := h.users.IsFollowing(r.Context(), identity.UserID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "following": following})
}

// HandleFollowers lists a user's followers.
//
// HTTP: GET /api/users/{userID}/followers
func (h *UserHandler) HandleFollowers(w http.ResponseWriter, r *http.Request) {
	userID, err := urlID(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}

	followers, err := h.users.Followers(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "followers": followers})
}

// HandleFollowing lists who a user follows.
//
// HTTP: GET /api/users/{userID}/following
func (h *UserHandler) HandleFollowing(w http.ResponseWriter, r *http.Request) {
	userID, err := urlID(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}

	following, err := h.users.Following(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "following": following})
}

// HandleSuggestions lists accounts the user does not follow yet.
//
// HTTP: GET /api/users/{userID}/suggestions
func (h *UserHandler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	userID, err := urlID(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}

	suggestions, err := h.users.Suggestions(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "suggestions": suggestions})
}
