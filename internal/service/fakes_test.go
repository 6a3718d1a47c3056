package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/minio/minio-go/v7"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
)

type fakeUserRepo struct {
	users map[string]*domain.User
	order []string
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	f.seq++
	user.ID = fmt.Sprintf("user-%d", f.seq)
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	clone := *user
	f.users[user.ID] = &clone
	f.order = append(f.order, user.ID)
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	clone.UpdatedAt = time.Now()
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	// newest first
	var result []domain.User
	for i := len(f.order) - 1; i >= 0; i-- {
		result = append(result, *f.users[f.order[i]])
	}
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeTicketRepo struct {
	tickets map[string]*domain.Ticket
	order   []string
	seq     int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]*domain.Ticket{}}
}

func (f *fakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	f.seq++
	ticket.ID = fmt.Sprintf("ticket-%d", f.seq)
	now := time.Now()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	clone := *ticket
	f.tickets[ticket.ID] = &clone
	f.order = append(f.order, ticket.ID)
	return nil
}

func (f *fakeTicketRepo) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	ticket.Status = status
	ticket.UpdatedAt = time.Now()
	clone := *ticket
	return &clone, nil
}

func (f *fakeTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *ticket
	return &clone, nil
}

func (f *fakeTicketRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for i := len(f.order) - 1; i >= 0; i-- {
		if t := f.tickets[f.order[i]]; t.OwnerID == ownerID {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (f *fakeTicketRepo) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for i := len(f.order) - 1; i >= 0; i-- {
		result = append(result, *f.tickets[f.order[i]])
	}
	return result, nil
}

func (f *fakeTicketRepo) Stats(ctx context.Context) (*domain.TicketStats, error) {
	stats := &domain.TicketStats{}
	for _, t := range f.tickets {
		stats.Total++
		switch t.Status {
		case domain.TicketStatusOpen:
			stats.Open++
		case domain.TicketStatusInProgress:
			stats.InProgress++
		case domain.TicketStatusResolved:
			stats.Resolved++
		}
	}
	return stats, nil
}

type fakeMessageRepo struct {
	messages map[string]*domain.Message
	order    []string
	seq      int
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: map[string]*domain.Message{}}
}

func (f *fakeMessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	f.seq++
	msg.ID = fmt.Sprintf("msg-%d", f.seq)
	now := time.Now()
	msg.CreatedAt = now
	msg.UpdatedAt = now
	clone := *msg
	f.messages[msg.ID] = &clone
	f.order = append(f.order, msg.ID)
	return nil
}

func (f *fakeMessageRepo) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	msg, ok := f.messages[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *msg
	return &clone, nil
}

func (f *fakeMessageRepo) List(ctx context.Context) ([]domain.Message, error) {
	var result []domain.Message
	for i := len(f.order) - 1; i >= 0; i-- {
		result = append(result, *f.messages[f.order[i]])
	}
	return result, nil
}

func (f *fakeMessageRepo) UpdateStatus(ctx context.Context, id string, status domain.MessageStatus, repliedAt *time.Time) (*domain.Message, error) {
	msg, ok := f.messages[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	msg.Status = status
	if repliedAt != nil {
		msg.RepliedAt = repliedAt
	}
	msg.UpdatedAt = time.Now()
	clone := *msg
	return &clone, nil
}

func (f *fakeMessageRepo) UpdateNotes(ctx context.Context, id string, notes string) (*domain.Message, error) {
	msg, ok := f.messages[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	msg.AdminNotes = notes
	msg.UpdatedAt = time.Now()
	clone := *msg
	return &clone, nil
}

func (f *fakeMessageRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.messages[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.messages, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeMessageRepo) Stats(ctx context.Context) (*domain.MessageStats, error) {
	stats := &domain.MessageStats{}
	for _, msg := range f.messages {
		stats.Total++
		switch msg.Status {
		case domain.MessageStatusNew:
			stats.New++
		case domain.MessageStatusRead:
			stats.Read++
		case domain.MessageStatusReplied:
			stats.Replied++
		case domain.MessageStatusArchived:
			stats.Archived++
		}
	}
	return stats, nil
}

type fakeUploadRepo struct {
	records []domain.UploadRecord
	seq     int
}

func (f *fakeUploadRepo) Create(ctx context.Context, record *domain.UploadRecord) error {
	f.seq++
	record.ID = fmt.Sprintf("upload-%d", f.seq)
	record.CreatedAt = time.Now()
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeUploadRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.UploadRecord, error) {
	var result []domain.UploadRecord
	for _, r := range f.records {
		if r.OwnerID == ownerID {
			result = append(result, r)
		}
	}
	return result, nil
}

type storedObject struct {
	Bucket      string
	ObjectName  string
	ContentType string
	Size        int64
}

type fakeObjectStore struct {
	objects []storedObject
	fail    bool
}

func (f *fakeObjectStore) PutObject(ctx context.Context, bucket, objectName string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.fail {
		return minio.UploadInfo{}, errors.New("storage unavailable")
	}
	f.objects = append(f.objects, storedObject{
		Bucket:      bucket,
		ObjectName:  objectName,
		ContentType: opts.ContentType,
		Size:        size,
	})
	return minio.UploadInfo{Bucket: bucket, Key: objectName, Size: size}, nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func (d *recordingDispatcher) byType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var result []events.Event
	for _, e := range d.events {
		if e.Type == eventType {
			result = append(result, e)
		}
	}
	return result
}
