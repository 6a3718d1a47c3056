package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/persistence"
)

func newUploadFixture(store persistence.ObjectStore) (*UploadService, *fakeUploadRepo) {
	records := &fakeUploadRepo{}
	cfg := config.StorageConfig{
		Bucket:         "helpdesk-uploads",
		PublicBaseURL:  "http://storage.local/",
		MaxUploadBytes: 1024,
	}
	return NewUploadService(store, records, cfg), records
}

func TestUploadRejectsNonImage(t *testing.T) {
	svc, _ := newUploadFixture(&fakeObjectStore{})

	_, err := svc.Upload(context.Background(), "user-1", UploadInput{
		FileName:    "notes.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF"),
	})
	assertErrorCode(t, err, "VALIDATION_FAILED")
}

func TestUploadRejectsOversizeFile(t *testing.T) {
	svc, _ := newUploadFixture(&fakeObjectStore{})

	_, err := svc.Upload(context.Background(), "user-1", UploadInput{
		FileName:    "big.png",
		ContentType: "image/png",
		Data:        bytes.Repeat([]byte{0x1}, 2048),
	})
	assertErrorCode(t, err, "VALIDATION_FAILED")
}

func TestUploadStoresAndRecords(t *testing.T) {
	store := &fakeObjectStore{}
	svc, records := newUploadFixture(store)

	record, err := svc.Upload(context.Background(), "user-1", UploadInput{
		FileName:    "Screenshot.PNG",
		ContentType: "Image/PNG",
		Data:        []byte("pngdata"),
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if len(store.objects) != 1 {
		t.Fatalf("expected one stored object, got %d", len(store.objects))
	}
	obj := store.objects[0]
	if obj.Bucket != "helpdesk-uploads" {
		t.Errorf("unexpected bucket %q", obj.Bucket)
	}
	if !strings.HasPrefix(obj.ObjectName, "user-1/") {
		t.Errorf("object key must be namespaced by owner, got %q", obj.ObjectName)
	}
	if !strings.HasSuffix(obj.ObjectName, ".png") {
		t.Errorf("object key must keep a lowercased extension, got %q", obj.ObjectName)
	}
	if obj.ContentType != "image/png" {
		t.Errorf("content type must be normalized, got %q", obj.ContentType)
	}

	if record.URL != "http://storage.local/helpdesk-uploads/"+obj.ObjectName {
		t.Errorf("unexpected URL %q", record.URL)
	}
	if record.SizeBytes != int64(len("pngdata")) {
		t.Errorf("unexpected size %d", record.SizeBytes)
	}

	listed, err := records.ListByOwner(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 1 || listed[0].ObjectKey != obj.ObjectName {
		t.Errorf("expected audit record for upload, got %+v", listed)
	}
}

func TestUploadFailsWithoutStore(t *testing.T) {
	svc, _ := newUploadFixture(nil)

	_, err := svc.Upload(context.Background(), "user-1", UploadInput{
		FileName:    "ok.png",
		ContentType: "image/png",
		Data:        []byte("pngdata"),
	})
	assertErrorCode(t, err, "INTERNAL_ERROR")
}

func TestUploadPropagatesStorageFailure(t *testing.T) {
	svc, records := newUploadFixture(&fakeObjectStore{fail: true})

	_, err := svc.Upload(context.Background(), "user-1", UploadInput{
		FileName:    "ok.png",
		ContentType: "image/png",
		Data:        []byte("pngdata"),
	})
	assertErrorCode(t, err, "INTERNAL_ERROR")
	if len(records.records) != 0 {
		t.Error("failed upload must not be recorded")
	}
}

func TestListForOwnerReturnsOnlyOwnUploads(t *testing.T) {
	svc, _ := newUploadFixture(&fakeObjectStore{})

	for _, owner := range []string{"user-1", "user-1", "user-2"} {
		if _, err := svc.Upload(context.Background(), owner, UploadInput{
			FileName:    "shot.png",
			ContentType: "image/png",
			Data:        []byte("pngdata"),
		}); err != nil {
			t.Fatalf("upload failed: %v", err)
		}
	}

	records, err := svc.ListForOwner(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records for user-1, got %d", len(records))
	}
	for _, record := range records {
		if record.OwnerID != "user-1" {
			t.Errorf("foreign record leaked: %+v", record)
		}
	}
}

func TestObjectKeyIsUniquePerCall(t *testing.T) {
	a := ObjectKey("user-1", "shot.png")
	b := ObjectKey("user-1", "shot.png")
	if a == b {
		t.Error("expected randomized keys for identical input")
	}
}
