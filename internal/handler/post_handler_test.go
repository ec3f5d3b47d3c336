package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/inkpost/internal/db"
)

type createPostResponse struct {
	Message string `json:"message"`
	PostID  string `json:"postId"`
}

type postResponse struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	Cover     string    `json:"cover"`
	Author    string    `json:"author"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

func createPost(t *testing.T, env *testEnv, fields map[string]string, file *formFile) createPostResponse {
	t.Helper()
	rr := env.do(multipartRequest(t, "/post", fields, file))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp createPostResponse
	decodeJSON(t, rr, &resp)
	if resp.Message != "Post created successfully" || resp.PostID == "" {
		t.Fatalf("unexpected create response %+v", resp)
	}
	return resp
}

func TestCreatePostWithoutFileThenFetch(t *testing.T) {
	env := setupTestAPI(t)

	created := createPost(t, env, map[string]string{
		"title":   "Hello",
		"summary": "Short",
		"content": "Body",
		"tags":    "go, rust",
	}, nil)

	rr := env.do(httptest.NewRequest(http.MethodGet, "/posts/"+created.PostID, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var post postResponse
	decodeJSON(t, rr, &post)
	if post.ID != created.PostID {
		t.Fatalf("expected id %q, got %q", created.PostID, post.ID)
	}
	if !reflect.DeepEqual(post.Tags, []string{"go", "rust"}) {
		t.Fatalf("unexpected tags %v", post.Tags)
	}
	if post.Cover != "" {
		t.Fatalf("expected empty cover, got %q", post.Cover)
	}
	if post.Author != "Rohan" {
		t.Fatalf("expected default author, got %q", post.Author)
	}
	if post.Title != "Hello" || post.Summary != "Short" || post.Content != "Body" {
		t.Fatalf("unexpected post %+v", post)
	}
	if post.CreatedAt.IsZero() || post.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps in response")
	}
}

func TestCreatePostWithFileStoresCover(t *testing.T) {
	env := setupTestAPI(t)
	content := []byte("not really a jpeg")

	created := createPost(t, env, map[string]string{"title": "With cover", "tags": "img"}, &formFile{name: "beach.jpg", content: content})

	var post db.Post
	if err := env.db.First(&post, "id = ?", created.PostID).Error; err != nil {
		t.Fatalf("load post: %v", err)
	}
	if !strings.HasPrefix(post.Cover, "photo-") || !strings.HasSuffix(post.Cover, ".jpg") {
		t.Fatalf("unexpected cover name %q", post.Cover)
	}

	stored, err := os.ReadFile(filepath.Join(env.uploadDir, post.Cover))
	if err != nil {
		t.Fatalf("read stored cover: %v", err)
	}
	if !bytes.Equal(stored, content) {
		t.Fatal("stored cover differs from upload")
	}
}

func TestCreatePostAcceptsURLEncodedForm(t *testing.T) {
	env := setupTestAPI(t)

	form := url.Values{"title": {"Plain"}, "tags": {"a, b ,c"}}
	req := httptest.NewRequest(http.MethodPost, "/post", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := env.do(req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp createPostResponse
	decodeJSON(t, rr, &resp)

	var post db.Post
	if err := env.db.Preload("TagRows").First(&post, "id = ?", resp.PostID).Error; err != nil {
		t.Fatalf("load post: %v", err)
	}
	if !reflect.DeepEqual(post.Tags, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected tags %v", post.Tags)
	}
}

func TestCreatePostMissingTagsField(t *testing.T) {
	env := setupTestAPI(t)

	rr := env.do(multipartRequest(t, "/post", map[string]string{"title": "untagged"}, &formFile{name: "c.png", content: []byte("x")}))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
	var body map[string]string
	decodeJSON(t, rr, &body)
	if body["message"] != "Failed to create post" {
		t.Fatalf("unexpected body %v", body)
	}

	var count int64
	env.db.Model(&db.Post{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no stored posts, got %d", count)
	}
	entries, _ := os.ReadDir(env.uploadDir)
	if len(entries) != 0 {
		t.Fatalf("expected no stored covers, got %d", len(entries))
	}
}

func TestCreatePostEmptyTagsKeepsEmptySegment(t *testing.T) {
	env := setupTestAPI(t)

	created := createPost(t, env, map[string]string{"title": "blank", "tags": ""}, nil)

	rr := env.do(httptest.NewRequest(http.MethodGet, "/posts/"+created.PostID, nil))
	var post postResponse
	decodeJSON(t, rr, &post)
	if !reflect.DeepEqual(post.Tags, []string{""}) {
		t.Fatalf("unexpected tags %#v", post.Tags)
	}
}

func TestCreatePostMalformedMultipart(t *testing.T) {
	env := setupTestAPI(t)

	body := "--xyz\r\nContent-Disposition: form-data; name=\"tags\"\r\n\r\ngo"
	req := httptest.NewRequest(http.MethodPost, "/post", strings.NewReader(body))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")

	rr := env.do(req)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp map[string]string
	decodeJSON(t, rr, &resp)
	if resp["message"] != "Failed to create post" {
		t.Fatalf("unexpected body %v", resp)
	}

	var count int64
	env.db.Model(&db.Post{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no stored posts, got %d", count)
	}
}

func TestCreatePostStoreFailure(t *testing.T) {
	env := setupTestAPI(t)
	db.Close(env.db)

	rr := env.do(multipartRequest(t, "/post", map[string]string{"title": "x", "tags": "a"}, nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
	var body map[string]string
	decodeJSON(t, rr, &body)
	if body["message"] != "Failed to create post" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestGetPostStatusCodes(t *testing.T) {
	env := setupTestAPI(t)

	tests := []struct {
		name    string
		id      string
		status  int
		message string
	}{
		{name: "malformed", id: "not-an-id", status: http.StatusBadRequest, message: "Invalid post ID"},
		{name: "object id shape", id: "64b7f0c2a1e4d3b2c1a09f8e", status: http.StatusBadRequest, message: "Invalid post ID"},
		{name: "missing", id: "3f1c2a9e-6b7d-4e8f-9a0b-1c2d3e4f5a6b", status: http.StatusNotFound, message: "Post not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(httptest.NewRequest(http.MethodGet, "/posts/"+tt.id, nil))
			if rr.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, rr.Code)
			}
			var body map[string]string
			decodeJSON(t, rr, &body)
			if body["message"] != tt.message {
				t.Fatalf("expected message %q, got %v", tt.message, body)
			}
		})
	}
}

func TestGetPostMalformedIDSkipsStore(t *testing.T) {
	env := setupTestAPI(t)
	// a closed database would turn any query into a 500
	db.Close(env.db)

	rr := env.do(httptest.NewRequest(http.MethodGet, "/posts/not-an-id", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}

	rr = env.do(httptest.NewRequest(http.MethodGet, "/posts/3f1c2a9e-6b7d-4e8f-9a0b-1c2d3e4f5a6b", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
}

func TestLatestPostsPagination(t *testing.T) {
	env := setupTestAPI(t)

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		post := db.Post{Title: string(rune('A' + i)), Tags: []string{"t"}, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := env.db.Create(&post).Error; err != nil {
			t.Fatalf("seed post: %v", err)
		}
	}

	tests := []struct {
		query string
		want  []string
	}{
		{query: "", want: []string{"G", "F", "E", "D", "C"}},
		{query: "?page=1", want: []string{"G", "F", "E", "D", "C"}},
		{query: "?page=2", want: []string{"B", "A"}},
		{query: "?page=3", want: []string{}},
		{query: "?page=oops", want: []string{"G", "F", "E", "D", "C"}},
		{query: "?page=3689348814741910324", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rr := env.do(httptest.NewRequest(http.MethodGet, "/latest-posts"+tt.query, nil))
			if rr.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rr.Code)
			}
			var posts []postResponse
			decodeJSON(t, rr, &posts)
			got := make([]string, 0, len(posts))
			for _, p := range posts {
				got = append(got, p.Title)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestGetRenderedPost(t *testing.T) {
	env := setupTestAPI(t)
	created := createPost(t, env, map[string]string{"title": "MD", "content": "*hi*", "tags": "md"}, nil)

	rr := env.do(httptest.NewRequest(http.MethodGet, "/posts/"+created.PostID+"/rendered", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var body map[string]string
	decodeJSON(t, rr, &body)
	if !strings.Contains(body["html"], "<em>hi</em>") {
		t.Fatalf("unexpected html %q", body["html"])
	}

	rr = env.do(httptest.NewRequest(http.MethodGet, "/posts/bogus/rendered", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}
