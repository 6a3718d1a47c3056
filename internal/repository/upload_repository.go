package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// UploadRepository records objects stored through the upload endpoint.
type UploadRepository interface {
	Create(ctx context.Context, record *domain.UploadRecord) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.UploadRecord, error)
}

type uploadRepository struct {
	pool *pgxpool.Pool
}

// NewUploadRepository instantiates the repository.
func NewUploadRepository(pool *pgxpool.Pool) UploadRepository {
	return &uploadRepository{pool: pool}
}

func (r *uploadRepository) Create(ctx context.Context, record *domain.UploadRecord) error {
	const query = `
        INSERT INTO uploads (owner_id, object_key, file_name, mime_type, size_bytes, url)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		record.OwnerID,
		record.ObjectKey,
		record.FileName,
		record.MimeType,
		record.SizeBytes,
		record.URL,
	).Scan(&record.ID, &record.CreatedAt)
}

func (r *uploadRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.UploadRecord, error) {
	const query = `
        SELECT id, owner_id, object_key, file_name, mime_type, size_bytes, url, created_at
        FROM uploads WHERE owner_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.UploadRecord
	for rows.Next() {
		var record domain.UploadRecord
		if err := rows.Scan(
			&record.ID,
			&record.OwnerID,
			&record.ObjectKey,
			&record.FileName,
			&record.MimeType,
			&record.SizeBytes,
			&record.URL,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}
