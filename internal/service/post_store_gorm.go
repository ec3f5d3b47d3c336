package service

import (
	"context"
	"errors"

	"github.com/inkpost/internal/db"
	"gorm.io/gorm"
)

// GormPostStore keeps posts in a relational database through gorm.
type GormPostStore struct {
	db *gorm.DB
}

// NewGormPostStore creates a GormPostStore instance.
func NewGormPostStore(gdb *gorm.DB) *GormPostStore {
	return &GormPostStore{db: gdb}
}

func orderTagRows(tx *gorm.DB) *gorm.DB {
	return tx.Order("position asc")
}

// ValidID reports whether id looks like an id this store generates.
func (s *GormPostStore) ValidID(id string) bool {
	return db.ValidPostID(id)
}

// Create inserts the post together with its tag rows.
func (s *GormPostStore) Create(ctx context.Context, post *db.Post) (string, error) {
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return "", persistenceError(err)
	}
	return post.ID, nil
}

// Get fetches a post by id with tags preloaded.
func (s *GormPostStore) Get(ctx context.Context, id string) (*db.Post, error) {
	if !s.ValidID(id) {
		return nil, ErrInvalidIdentifier
	}

	var post db.Post
	if err := s.db.WithContext(ctx).
		Preload("TagRows", orderTagRows).
		First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, persistenceError(err)
	}
	return &post, nil
}

// ListPaged returns one page of posts ordered by created time descending.
func (s *GormPostStore) ListPaged(ctx context.Context, page, pageSize int) ([]db.Post, error) {
	posts := make([]db.Post, 0, pageSize)
	if err := s.db.WithContext(ctx).
		Preload("TagRows", orderTagRows).
		Order("created_at desc").
		Order("id desc").
		Offset(pageOffset(page, pageSize)).
		Limit(pageSize).
		Find(&posts).Error; err != nil {
		return nil, persistenceError(err)
	}
	return posts, nil
}

// DistinctTags returns every tag value used by at least one post.
func (s *GormPostStore) DistinctTags(ctx context.Context) ([]string, error) {
	var tags []string
	if err := s.db.WithContext(ctx).
		Model(&db.PostTag{}).
		Distinct().
		Order("name asc").
		Pluck("name", &tags).Error; err != nil {
		return nil, persistenceError(err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
