package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"cruisebooking/internal/domain/models"
)

func TestMemoryStorePutGetDelete(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	defer s.Close()
	ctx := context.Background()

	draft := models.NewBookingDraft("d1", &models.SessionUser{Name: "Elena Pappas", Email: "elena@example.com"})
	draft.Destination = "Greece"
	if err := s.Put(ctx, draft); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(ctx, "d1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Destination != "Greece" || got.PrimaryPassenger.Email != "elena@example.com" {
		t.Fatalf("unexpected draft: %+v", got)
	}

	// The stored copy is detached from the caller's pointer.
	draft.Destination = "Norway Fjords"
	got, err = s.Get(ctx, "d1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Destination != "Greece" {
		t.Fatalf("stored draft mutated through caller pointer: %s", got.Destination)
	}

	if err := s.Delete(ctx, "d1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, "d1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryStoreMissingDraft(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	defer s.Close()

	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreDeleteIsIdempotent(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	defer s.Close()

	if err := s.Delete(context.Background(), "nope"); err != nil {
		t.Fatalf("Delete of missing draft failed: %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	// A negative TTL makes every entry expire immediately.
	s := NewMemoryStore(-time.Second)
	defer s.Close()
	ctx := context.Background()

	draft := models.NewBookingDraft("d1", nil)
	if err := s.Put(ctx, draft); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, err := s.Get(ctx, "d1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired draft to be gone, got %v", err)
	}
}

func TestMemoryStoreCloseIsIdempotent(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	s.Close()
	s.Close()
}
