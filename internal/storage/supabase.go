package storage

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dudafacio/rsvp-api/internal/config"
	storagego "github.com/supabase-community/storage-go"
)

// SupabaseStorage stores images in a Supabase Storage bucket.
type SupabaseStorage struct {
	client *storagego.Client
	bucket string
	folder string
}

func NewSupabaseStorage(cfg *config.Config) *SupabaseStorage {
	return &SupabaseStorage{
		client: storagego.NewClient(cfg.SupabaseURL+"/storage/v1", cfg.SupabaseKey, nil),
		bucket: cfg.SupabaseBucket,
		folder: cfg.PhotoFolder,
	}
}

func (s *SupabaseStorage) Upload(data []byte, filename, contentType string) (string, string, error) {
	objectPath := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(filename))
	if s.folder != "" {
		objectPath = fmt.Sprintf("%s/%s", s.folder, objectPath)
	}

	upsert := true
	options := storagego.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	}

	if _, err := s.client.UploadFile(s.bucket, objectPath, bytes.NewReader(data), options); err != nil {
		return "", "", fmt.Errorf("supabase upload: %w", err)
	}

	publicURL := s.client.GetPublicUrl(s.bucket, objectPath)
	return publicURL.SignedURL, objectPath, nil
}

func (s *SupabaseStorage) Remove(storageID string) error {
	if _, err := s.client.RemoveFile(s.bucket, []string{storageID}); err != nil {
		return fmt.Errorf("supabase remove: %w", err)
	}
	return nil
}
