package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dudafacio/rsvp-api/internal/auth"
	"github.com/dudafacio/rsvp-api/internal/models"
	"github.com/dudafacio/rsvp-api/internal/storage"
	"gorm.io/gorm"
)

const (
	maxPhotosPerUpload = 30
	maxPhotoBytes      = 10 * 1024 * 1024
)

type PhotoHandler struct {
	db          *gorm.DB
	storage     storage.ImageStorage
	authHandler *auth.AuthHandler
}

func NewPhotoHandler(db *gorm.DB, storage storage.ImageStorage, authHandler *auth.AuthHandler) *PhotoHandler {
	return &PhotoHandler{db: db, storage: storage, authHandler: authHandler}
}

type PhotoResponse struct {
	ID         uint      `json:"id"`
	SenderName *string   `json:"sender_name"`
	PhotoURL   string    `json:"photo_url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func photoResponse(p models.Photo) PhotoResponse {
	return PhotoResponse{
		ID:         p.ID,
		SenderName: p.SenderName,
		PhotoURL:   p.PhotoURL,
		UploadedAt: p.CreatedAt,
	}
}

// HandleUpload accepts up to 30 images as multipart form-data. Each file is
// attempted independently: validation or storage failures are collected per
// file and the request succeeds with whatever subset made it, unless nothing
// did.
func (h *PhotoHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		http.Error(w, "No photos uploaded", http.StatusBadRequest)
		return
	}
	if len(files) > maxPhotosPerUpload {
		http.Error(w, fmt.Sprintf("At most %d photos per upload", maxPhotosPerUpload), http.StatusBadRequest)
		return
	}

	var senderName *string
	if s := r.FormValue("sender_name"); s != "" {
		senderName = &s
	}

	var uploaded []PhotoResponse
	var errors []string
	for idx, fh := range files {
		contentType := fh.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			errors = append(errors, fmt.Sprintf("file %d: only images are allowed", idx+1))
			continue
		}

		f, err := fh.Open()
		if err != nil {
			errors = append(errors, fmt.Sprintf("file %d: %v", idx+1, err))
			continue
		}
		data, err := io.ReadAll(io.LimitReader(f, maxPhotoBytes+1))
		f.Close()
		if err != nil {
			errors = append(errors, fmt.Sprintf("file %d: %v", idx+1, err))
			continue
		}
		if len(data) > maxPhotoBytes {
			errors = append(errors, fmt.Sprintf("file %d: image too large, max 10MB", idx+1))
			continue
		}

		url, storageID, err := h.storage.Upload(data, fh.Filename, contentType)
		if err != nil {
			errors = append(errors, fmt.Sprintf("file %d: %v", idx+1, err))
			continue
		}

		photo := models.Photo{
			SenderName: senderName,
			PhotoURL:   url,
			StorageID:  storageID,
		}
		if err := h.db.Create(&photo).Error; err != nil {
			errors = append(errors, fmt.Sprintf("file %d: %v", idx+1, err))
			continue
		}
		uploaded = append(uploaded, photoResponse(photo))
	}

	if len(uploaded) == 0 {
		http.Error(w, "No photo was uploaded successfully. Errors: "+strings.Join(errors, "; "), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(uploaded)
}

type ListPhotosRequest struct {
	Skip  int `query:"skip" default:"0" minimum:"0"`
	Limit int `query:"limit" default:"100" minimum:"1" maximum:"500"`
}

type ListPhotosResponse struct {
	Body []PhotoResponse
}

func (h *PhotoHandler) HandleListPhotos(ctx context.Context, input *ListPhotosRequest) (*ListPhotosResponse, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 100
	}

	var photos []models.Photo
	err := h.db.Order("created_at desc").Offset(input.Skip).Limit(limit).Find(&photos).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list photos")
	}

	response := make([]PhotoResponse, 0, len(photos))
	for _, p := range photos {
		response = append(response, photoResponse(p))
	}
	return &ListPhotosResponse{Body: response}, nil
}

type CountPhotosResponse struct {
	Body struct {
		Total int64 `json:"total"`
	}
}

func (h *PhotoHandler) HandleCountPhotos(ctx context.Context, input *struct{}) (*CountPhotosResponse, error) {
	var total int64
	if err := h.db.Model(&models.Photo{}).Count(&total).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to count photos")
	}
	res := &CountPhotosResponse{}
	res.Body.Total = total
	return res, nil
}

type DeletePhotoRequest struct {
	auth.AdminInput
	ID uint `path:"id"`
}

// HandleDeletePhoto removes the image from external storage first; a storage
// failure keeps the ledger row so the two stores cannot diverge.
func (h *PhotoHandler) HandleDeletePhoto(ctx context.Context, input *DeletePhotoRequest) (*struct{}, error) {
	if err := h.authHandler.Authorize(input.AdminInput); err != nil {
		return nil, err
	}

	var photo models.Photo
	if err := h.db.First(&photo, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Photo not found")
	}

	if err := h.storage.Remove(photo.StorageID); err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete photo from storage: " + err.Error())
	}
	if err := h.db.Delete(&photo).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete photo")
	}

	return nil, nil
}
