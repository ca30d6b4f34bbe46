package storage

// ImageStorage is the external image host the photo ledger mirrors. Upload
// returns the public URL and the storage identifier later handed to Remove.
type ImageStorage interface {
	Upload(data []byte, filename, contentType string) (url string, storageID string, err error)
	Remove(storageID string) error
}
