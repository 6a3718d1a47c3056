package domain

import "time"

// UploadRecord tracks an object stored through the upload endpoint.
type UploadRecord struct {
	ID        string
	OwnerID   string
	ObjectKey string
	FileName  string
	MimeType  string
	SizeBytes int64
	URL       string
	CreatedAt time.Time
}
