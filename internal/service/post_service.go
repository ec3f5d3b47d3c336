package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/inkpost/internal/db"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// LatestPageSize is the fixed page size of the latest posts listing.
const LatestPageSize = 5

// PostService applies post field conventions on top of a PostStore.
type PostService struct {
	store         PostStore
	defaultAuthor string
	markdown      goldmark.Markdown
	policy        *bluemonday.Policy
}

// PostInput represents fields accepted when creating a post.
// Tags is the raw comma separated form value.
type PostInput struct {
	Title   string
	Summary string
	Content string
	Cover   string
	Author  string
	Tags    string
}

// RenderedPost carries a post body converted to sanitized HTML.
type RenderedPost struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// NewPostService creates a PostService instance.
func NewPostService(store PostStore, defaultAuthor string) *PostService {
	return &PostService{
		store:         store,
		defaultAuthor: defaultAuthor,
		markdown:      goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy:        bluemonday.UGCPolicy(),
	}
}

// ValidID reports whether id is well formed for the underlying store.
func (s *PostService) ValidID(id string) bool {
	return s.store.ValidID(id)
}

// Create stores a new post and returns its id.
func (s *PostService) Create(ctx context.Context, input PostInput) (string, error) {
	author := strings.TrimSpace(input.Author)
	if author == "" {
		author = s.defaultAuthor
	}

	post := db.Post{
		Title:   input.Title,
		Summary: input.Summary,
		Content: input.Content,
		Cover:   input.Cover,
		Author:  author,
		Tags:    SplitTags(input.Tags),
	}
	return s.store.Create(ctx, &post)
}

// Get fetches a post by id.
func (s *PostService) Get(ctx context.Context, id string) (*db.Post, error) {
	if !s.store.ValidID(id) {
		return nil, ErrInvalidIdentifier
	}
	return s.store.Get(ctx, id)
}

// Latest returns the page named by rawPage of the newest posts.
func (s *PostService) Latest(ctx context.Context, rawPage string) ([]db.Post, error) {
	return s.store.ListPaged(ctx, ParsePage(rawPage), LatestPageSize)
}

// Tags lists distinct tag values across all posts.
func (s *PostService) Tags(ctx context.Context) ([]string, error) {
	return s.store.DistinctTags(ctx)
}

// Render converts the markdown content of a post into sanitized HTML.
func (s *PostService) Render(ctx context.Context, id string) (*RenderedPost, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(post.Content), &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	return &RenderedPost{
		ID:    post.ID,
		Title: post.Title,
		HTML:  s.policy.Sanitize(buf.String()),
	}, nil
}

// SplitTags splits a comma separated tag string and trims every element.
// Empty segments are kept, so "" yields [""].
func SplitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

// ParsePage parses a page query value; missing, non numeric or non positive
// values fall back to the first page. Values above MaxPage, including ones
// that overflow int, are capped to MaxPage.
func ParsePage(raw string) int {
	raw = strings.TrimSpace(raw)
	page, err := strconv.Atoi(raw)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
			return MaxPage
		}
		return 1
	}
	if page < 1 {
		return 1
	}
	if page > MaxPage {
		return MaxPage
	}
	return page
}
