package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/dudafacio/rsvp-api/internal/models"
)

type fakeStorage struct {
	uploadErr error
	removeErr error
	removed   []string
}

func (f *fakeStorage) Upload(data []byte, filename, contentType string) (string, string, error) {
	if f.uploadErr != nil {
		return "", "", f.uploadErr
	}
	return "https://cdn.example.com/" + filename, "photos/" + filename, nil
}

func (f *fakeStorage) Remove(storageID string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, storageID)
	return nil
}

func TestHandleListPhotos(t *testing.T) {
	db := newTestDB(t)
	handler := NewPhotoHandler(db, &fakeStorage{}, newTestAuth())

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		photo := models.Photo{
			PhotoURL:  fmt.Sprintf("https://cdn.example.com/p%d.jpg", i),
			StorageID: fmt.Sprintf("photos/p%d.jpg", i),
		}
		photo.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		db.Create(&photo)
	}

	resp, err := handler.HandleListPhotos(context.Background(), &ListPhotosRequest{Limit: 100})
	if err != nil {
		t.Fatalf("HandleListPhotos returned error: %v", err)
	}
	if len(resp.Body) != 3 {
		t.Fatalf("expected 3 photos, got %d", len(resp.Body))
	}
	// Newest first.
	if resp.Body[0].PhotoURL != "https://cdn.example.com/p2.jpg" {
		t.Errorf("expected newest photo first, got %+v", resp.Body[0])
	}

	paged, err := handler.HandleListPhotos(context.Background(), &ListPhotosRequest{Skip: 1, Limit: 1})
	if err != nil {
		t.Fatalf("HandleListPhotos returned error: %v", err)
	}
	if len(paged.Body) != 1 || paged.Body[0].PhotoURL != "https://cdn.example.com/p1.jpg" {
		t.Errorf("pagination off, got %+v", paged.Body)
	}
}

func TestHandleCountPhotos(t *testing.T) {
	db := newTestDB(t)
	handler := NewPhotoHandler(db, &fakeStorage{}, newTestAuth())

	db.Create(&models.Photo{PhotoURL: "u1", StorageID: "s1"})
	db.Create(&models.Photo{PhotoURL: "u2", StorageID: "s2"})

	resp, err := handler.HandleCountPhotos(context.Background(), &struct{}{})
	if err != nil {
		t.Fatalf("HandleCountPhotos returned error: %v", err)
	}
	if resp.Body.Total != 2 {
		t.Errorf("expected 2, got %d", resp.Body.Total)
	}
}

func TestHandleDeletePhoto(t *testing.T) {
	t.Run("RemovesFromStorageAndLedger", func(t *testing.T) {
		db := newTestDB(t)
		store := &fakeStorage{}
		handler := NewPhotoHandler(db, store, newTestAuth())

		photo := models.Photo{PhotoURL: "u", StorageID: "photos/x.jpg"}
		db.Create(&photo)

		req := &DeletePhotoRequest{AdminInput: adminInput(), ID: photo.ID}
		if _, err := handler.HandleDeletePhoto(context.Background(), req); err != nil {
			t.Fatalf("HandleDeletePhoto returned error: %v", err)
		}

		if len(store.removed) != 1 || store.removed[0] != "photos/x.jpg" {
			t.Errorf("expected storage removal of photos/x.jpg, got %v", store.removed)
		}
		var count int64
		db.Model(&models.Photo{}).Count(&count)
		if count != 0 {
			t.Errorf("expected ledger row deleted, got %d", count)
		}
	})

	t.Run("StorageFailureKeepsLedgerRow", func(t *testing.T) {
		db := newTestDB(t)
		store := &fakeStorage{removeErr: errors.New("storage down")}
		handler := NewPhotoHandler(db, store, newTestAuth())

		photo := models.Photo{PhotoURL: "u", StorageID: "photos/x.jpg"}
		db.Create(&photo)

		req := &DeletePhotoRequest{AdminInput: adminInput(), ID: photo.ID}
		if _, err := handler.HandleDeletePhoto(context.Background(), req); err == nil {
			t.Fatal("expected error when storage deletion fails, got nil")
		}

		var count int64
		db.Model(&models.Photo{}).Count(&count)
		if count != 1 {
			t.Errorf("expected ledger row kept, got %d", count)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		db := newTestDB(t)
		handler := NewPhotoHandler(db, &fakeStorage{}, newTestAuth())

		req := &DeletePhotoRequest{AdminInput: adminInput(), ID: 42}
		if _, err := handler.HandleDeletePhoto(context.Background(), req); err == nil {
			t.Fatal("expected error for unknown photo, got nil")
		}
	})
}

func multipartBody(t *testing.T, sender string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if sender != "" {
		w.WriteField("sender_name", sender)
	}
	for name, contentType := range files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, name))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("failed to create part: %v", err)
		}
		part.Write([]byte("fake image bytes"))
	}
	w.Close()
	return body, w.FormDataContentType()
}

func TestHandleUpload(t *testing.T) {
	t.Run("PartialBatchSucceeds", func(t *testing.T) {
		db := newTestDB(t)
		handler := NewPhotoHandler(db, &fakeStorage{}, newTestAuth())

		body, contentType := multipartBody(t, "Ana", map[string]string{
			"good.jpg": "image/jpeg",
			"bad.txt":  "text/plain",
		})
		r := httptest.NewRequest("POST", "/photos/upload", body)
		r.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		handler.HandleUpload(w, r)

		if w.Code != 201 {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var uploaded []PhotoResponse
		if err := json.Unmarshal(w.Body.Bytes(), &uploaded); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(uploaded) != 1 {
			t.Fatalf("expected 1 surviving photo, got %d", len(uploaded))
		}
		if uploaded[0].SenderName == nil || *uploaded[0].SenderName != "Ana" {
			t.Errorf("expected sender Ana, got %+v", uploaded[0].SenderName)
		}

		var count int64
		db.Model(&models.Photo{}).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 ledger row, got %d", count)
		}
	})

	t.Run("AllFailuresReject", func(t *testing.T) {
		db := newTestDB(t)
		handler := NewPhotoHandler(db, &fakeStorage{uploadErr: errors.New("bucket gone")}, newTestAuth())

		body, contentType := multipartBody(t, "", map[string]string{"a.jpg": "image/jpeg"})
		r := httptest.NewRequest("POST", "/photos/upload", body)
		r.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		handler.HandleUpload(w, r)

		if w.Code != 400 {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		var count int64
		db.Model(&models.Photo{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no ledger rows, got %d", count)
		}
	})

	t.Run("NoFiles", func(t *testing.T) {
		db := newTestDB(t)
		handler := NewPhotoHandler(db, &fakeStorage{}, newTestAuth())

		body, contentType := multipartBody(t, "", nil)
		r := httptest.NewRequest("POST", "/photos/upload", body)
		r.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		handler.HandleUpload(w, r)

		if w.Code != 400 {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}
