package service

import (
	"fmt"
	"io"
	"math/rand/v2"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CoverStorage writes uploaded cover images into a directory that is also
// served publicly as static files.
type CoverStorage struct {
	dir     string
	now     func() time.Time
	randInt func() int64
}

// NewCoverStorage creates a CoverStorage rooted at dir.
func NewCoverStorage(dir string) *CoverStorage {
	return &CoverStorage{
		dir: dir,
		now: time.Now,
		randInt: func() int64 {
			return rand.Int64N(1_000_000_001)
		},
	}
}

// Dir returns the directory files are written to.
func (s *CoverStorage) Dir() string {
	return s.dir
}

// Save copies the uploaded file under a generated name and returns that name.
func (s *CoverStorage) Save(file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := s.filename(file.Filename)
	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create cover file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("write cover file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("close cover file: %w", err)
	}

	return name, nil
}

// filename builds photo-<unix millis>-<random>.<ext>; ext is whatever follows
// the last dot of the original name, or the whole name when there is no dot.
// Names like "." or ".." leave ext empty.
func (s *CoverStorage) filename(original string) string {
	return fmt.Sprintf("photo-%d-%d.%s", s.now().UnixMilli(), s.randInt(), coverExt(original))
}

func coverExt(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, `\`, "/"))
	if base == "." || base == "/" {
		return ""
	}
	ext := base
	if idx := strings.LastIndex(base, "."); idx >= 0 {
		ext = base[idx+1:]
	}
	return ext
}
