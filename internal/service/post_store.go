package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/inkpost/internal/db"
)

var (
	ErrInvalidIdentifier = errors.New("invalid post identifier")
	ErrPostNotFound      = errors.New("post not found")
	ErrPersistence       = errors.New("post store failure")
)

// PostStore persists and queries posts. Implementations own their identifier
// format and must reject malformed ids with ErrInvalidIdentifier before
// touching the backing store.
type PostStore interface {
	ValidID(id string) bool
	Create(ctx context.Context, post *db.Post) (string, error)
	Get(ctx context.Context, id string) (*db.Post, error)
	ListPaged(ctx context.Context, page, pageSize int) ([]db.Post, error)
	DistinctTags(ctx context.Context) ([]string, error)
}

func persistenceError(err error) error {
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

// MaxPage bounds page numbers so the computed offset never overflows.
const MaxPage = math.MaxInt32

func pageOffset(page, pageSize int) int {
	if page > MaxPage {
		page = MaxPage
	}
	offset := (page - 1) * pageSize
	if offset < 0 {
		return 0
	}
	return offset
}
