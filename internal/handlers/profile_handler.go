package handlers

import (
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/Varun5711/wecare/internal/logger"
	"github.com/Varun5711/wecare/internal/middleware"
	"github.com/Varun5711/wecare/internal/models"
	"github.com/Varun5711/wecare/internal/service"
	"github.com/go-chi/chi/v5"
)

// MaxUploadBytes bounds the multipart body; the client enforces 1 MB per file.
const MaxUploadBytes = 2 << 20

type ProfileHandler struct {
	users *service.UserService
	log   *logger.Logger
}

func NewProfileHandler(users *service.UserService) *ProfileHandler {
	return &ProfileHandler{
		users: users,
		log:   logger.New("profile-handler"),
	}
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, dataResponse{Message: "Profile updated successfully", Data: user})
}

func (h *ProfileHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "File size should be less than 1 MB only")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "At least one file is required.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read upload")
		return
	}

	imagePath, err := h.users.UpdateImage(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id"), header.Filename, data)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	var resp models.ImageUploadResponse
	resp.Message = "Profile image updated"
	resp.Data.Image = imagePath
	respondJSON(w, http.StatusOK, resp)
}

func (h *ProfileHandler) ServeImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, err := h.users.Image(name)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	contentType := "application/octet-stream"
	switch strings.ToLower(path.Ext(name)) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".gif":
		contentType = "image/gif"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
