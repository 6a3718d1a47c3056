package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// MessageRepository encapsulates contact-message persistence.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id string) (*domain.Message, error)
	List(ctx context.Context) ([]domain.Message, error)
	UpdateStatus(ctx context.Context, id string, status domain.MessageStatus, repliedAt *time.Time) (*domain.Message, error)
	UpdateNotes(ctx context.Context, id string, notes string) (*domain.Message, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*domain.MessageStats, error)
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository instantiates the repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

const messageColumns = `id, name, email, phone, subject, body, status, admin_notes, replied_at, created_at, updated_at`

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	const query = `
        INSERT INTO messages (name, email, phone, subject, body, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		msg.Name,
		msg.Email,
		msg.Phone,
		msg.Subject,
		msg.Body,
		msg.Status,
	).Scan(&msg.ID, &msg.CreatedAt, &msg.UpdatedAt)
}

func (r *messageRepository) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	const query = `SELECT ` + messageColumns + ` FROM messages WHERE id=$1`

	return r.scanRow(r.pool.QueryRow(ctx, query, id))
}

func (r *messageRepository) List(ctx context.Context) ([]domain.Message, error) {
	const query = `SELECT ` + messageColumns + ` FROM messages ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.Name,
			&msg.Email,
			&msg.Phone,
			&msg.Subject,
			&msg.Body,
			&msg.Status,
			&msg.AdminNotes,
			&msg.RepliedAt,
			&msg.CreatedAt,
			&msg.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

// UpdateStatus persists the status and, when provided, the replied_at stamp.
// A nil repliedAt leaves the existing stamp untouched.
func (r *messageRepository) UpdateStatus(ctx context.Context, id string, status domain.MessageStatus, repliedAt *time.Time) (*domain.Message, error) {
	const query = `
        UPDATE messages SET status=$1, replied_at=COALESCE($2, replied_at), updated_at=NOW()
        WHERE id=$3
        RETURNING ` + messageColumns

	return r.scanRow(r.pool.QueryRow(ctx, query, status, repliedAt, id))
}

func (r *messageRepository) UpdateNotes(ctx context.Context, id string, notes string) (*domain.Message, error) {
	const query = `
        UPDATE messages SET admin_notes=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING ` + messageColumns

	return r.scanRow(r.pool.QueryRow(ctx, query, notes, id))
}

func (r *messageRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM messages WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *messageRepository) Stats(ctx context.Context) (*domain.MessageStats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status='new'),
               COUNT(*) FILTER (WHERE status='read'),
               COUNT(*) FILTER (WHERE status='replied'),
               COUNT(*) FILTER (WHERE status='archived')
        FROM messages`

	var stats domain.MessageStats
	if err := r.pool.QueryRow(ctx, query).Scan(
		&stats.Total,
		&stats.New,
		&stats.Read,
		&stats.Replied,
		&stats.Archived,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *messageRepository) scanRow(row pgx.Row) (*domain.Message, error) {
	var msg domain.Message
	if err := row.Scan(
		&msg.ID,
		&msg.Name,
		&msg.Email,
		&msg.Phone,
		&msg.Subject,
		&msg.Body,
		&msg.Status,
		&msg.AdminNotes,
		&msg.RepliedAt,
		&msg.CreatedAt,
		&msg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &msg, nil
}
