package handlers

import (
	"net/http"

	"github.com/AnshRaj112/moodlog-backend/internal/services"
)

// UploadHandler accepts journal attachment images and stores them in
// Cloudinary. Entries reference the returned URL in their body or tags.
type UploadHandler struct {
	Uploads  *services.CloudinaryService
	Sessions SessionValidator
}

func NewUploadHandler(uploads *services.CloudinaryService, sessions SessionValidator) *UploadHandler {
	return &UploadHandler{Uploads: uploads, Sessions: sessions}
}

type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}

// Upload handles POST /api/upload (multipart, field "file", max 10MB).
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.Uploads == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Success: false, Message: "Uploads are not available"})
		return
	}

	ctx := identityContext(r, h.Sessions)
	if _, ok := services.UserIDFromContext(ctx); !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Success: false, Message: "Authentication required"})
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Message: "Failed to parse form"})
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Message: "No file provided"})
		return
	}
	defer file.Close()

	folder := r.URL.Query().Get("folder")
	if folder == "" {
		folder = "moodlog"
	}

	url, err := h.Uploads.UploadFileFromHeader(ctx, fileHeader, folder)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Success: false, Message: "Failed to upload file"})
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		Success: true,
		Message: "File uploaded successfully",
		URL:     url,
	})
}
