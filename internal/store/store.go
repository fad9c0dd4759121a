// Package store holds in-flight booking drafts between wizard requests.
// Drafts are transient: they expire after an idle TTL and are deleted
// when the modal closes, success or not.
package store

import (
	"context"
	"errors"

	"cruisebooking/internal/domain/models"
)

var ErrNotFound = errors.New("draft not found")

type DraftStore interface {
	Put(ctx context.Context, draft *models.BookingDraft) error
	Get(ctx context.Context, id string) (*models.BookingDraft, error)
	Delete(ctx context.Context, id string) error
}
