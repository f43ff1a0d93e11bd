package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Mr7Gabriel/clone-x-app/internal/auth"
	"github.com/Mr7Gabriel/clone-x-app/internal/service"
	"github.com/Mr7Gabriel/clone-x-app/internal/upload"
)

// UploadHandler accepts multipart image uploads. Each endpoint reads a
// single file field named after the image kind (profileImage, bannerImage,
// postImage).
type UploadHandler struct {
	uploads *service.UploadService
	logger  *slog.Logger
}

func NewUploadHandler(uploads *service.UploadService, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{uploads: uploads, logger: logger}
}

// HandleProfileImage stores a new profile image and points the user row at it.
//
// HTTP: POST /api/upload/profile-image
func (h *UploadHandler) HandleProfileImage(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, service.ImageProfile)
}

// HandleBannerImage stores a new banner image and points the user row at it.
//
// HTTP: POST /api/upload/banner-image
func (h *UploadHandler) HandleBannerImage(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, service.ImageBanner)
}

// HandlePostImage stores an image for use in a post. The returned path goes
// into the post's image_url on creation.
//
// HTTP: POST /api/upload/post-image
func (h *UploadHandler) HandlePostImage(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, service.ImagePost)
}

func (h *UploadHandler) handle(w http.ResponseWriter, r *http.Request, kind service.ImageKind) {
	identity, _ := auth.IdentityFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, upload.MaxImageSize)
	if err := r.ParseMultipartForm(upload.MaxImageSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "File too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No file uploaded"})
		return
	}

	file, header, err := r.FormFile(string(kind))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No file uploaded"})
		return
	}
	defer file.Close()

	ref, err := h.uploads.SaveImage(r.Context(), identity.UserID, kind, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "image_url": ref})
}
