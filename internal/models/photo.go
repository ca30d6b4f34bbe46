package models

import (
	"gorm.io/gorm"
)

// Photo mirrors an image held by the external storage provider. CreatedAt is
// the upload time.
type Photo struct {
	gorm.Model
	SenderName *string `json:"sender_name"`
	PhotoURL   string  `json:"photo_url"`
	StorageID  string  `json:"storage_id"`
}
