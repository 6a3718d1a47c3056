package dto

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// UploadResponse returns the public URL of a stored file.
type UploadResponse struct {
	URL string `json:"url"`
}

// UploadRecordResponse is one entry in the caller's upload history.
type UploadRecordResponse struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	MimeType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUploadRecordResponse converts a domain upload record.
func NewUploadRecordResponse(record *domain.UploadRecord) UploadRecordResponse {
	return UploadRecordResponse{
		ID:        record.ID,
		FileName:  record.FileName,
		MimeType:  record.MimeType,
		SizeBytes: record.SizeBytes,
		URL:       record.URL,
		CreatedAt: record.CreatedAt,
	}
}
