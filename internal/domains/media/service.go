package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/Kingsley6145/gamebridge-admin/internal/config"
	"github.com/Kingsley6145/gamebridge-admin/internal/infrastructure/storage"
	"github.com/Kingsley6145/gamebridge-admin/pkg/logger"
)

// Service is the object-store gateway: it owns the upload path scheme,
// the pre-network file validation and the best-effort delete policy.
type Service struct {
	store  storage.ObjectStore
	images *storage.ImageProcessor
	limits config.UploadConfig
	prefix string
}

func NewService(store storage.ObjectStore, images *storage.ImageProcessor, limits config.UploadConfig, prefix string) *Service {
	return &Service{
		store:  store,
		images: images,
		limits: limits,
		prefix: prefix,
	}
}

// objectKey namespaces uploads by kind and stamps the original
// filename with the upload time to avoid collisions.
func (s *Service) objectKey(kind, filename string) string {
	return fmt.Sprintf("%s%s/%d_%s", s.prefix, kind, time.Now().UnixMilli(), path.Base(filename))
}

// UploadImage validates and stores a cover image, returning its
// durable URL. actor must identify a signed-in user.
func (s *Service) UploadImage(ctx context.Context, actor, filename, contentType string, data []byte) (string, error) {
	if actor == "" {
		return "", ErrAuthRequired
	}

	switch contentType {
	case "image/png", "image/jpeg", "image/jpg":
	default:
		return "", fmt.Errorf("%w: file must be one of image/png, image/jpeg, image/jpg", ErrInvalidFile)
	}

	if err := s.images.ValidateImage(data); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidFile, err.Error())
	}

	key := s.objectKey("images", filename)
	url, err := s.store.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentType, nil)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return url, nil
}

// UploadVideo streams a module video into storage, reporting progress
// as a 0-100 percentage on every chunk boundary the transport sees.
// The callback fires at least once at 0 and once at 100.
func (s *Service) UploadVideo(ctx context.Context, actor, filename, contentType string, size int64, r io.Reader, onProgress storage.ProgressFunc) (string, error) {
	if actor == "" {
		return "", ErrAuthRequired
	}

	if contentType != "video/mp4" {
		return "", fmt.Errorf("%w: file must be video/mp4", ErrInvalidFile)
	}
	if size > s.limits.MaxVideoBytes {
		return "", fmt.Errorf("%w: file size must be less than %dMB",
			ErrInvalidFile, s.limits.MaxVideoBytes/(1024*1024))
	}

	key := s.objectKey("videos", filename)
	url, err := s.store.Upload(ctx, key, r, size, contentType, storage.NewProgressTracker(size, onProgress))
	if err != nil {
		return "", fmt.Errorf("failed to upload video: %w", err)
	}

	if onProgress != nil {
		onProgress(100)
	}
	return url, nil
}

// UploadHTML stores optional raw lesson content. HTML arrives from
// editors as text/html or text/plain; the extension is accepted as a
// fallback signal.
func (s *Service) UploadHTML(ctx context.Context, actor, filename, contentType string, data []byte) (string, error) {
	if actor == "" {
		return "", ErrAuthRequired
	}

	lower := strings.ToLower(filename)
	isHTML := contentType == "text/html" || contentType == "text/plain" ||
		strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm")
	if !isHTML {
		return "", fmt.Errorf("%w: file must be an HTML file (.html or .htm)", ErrInvalidFile)
	}
	if int64(len(data)) > s.limits.MaxHTMLBytes {
		return "", fmt.Errorf("%w: file size must be less than %dMB",
			ErrInvalidFile, s.limits.MaxHTMLBytes/(1024*1024))
	}

	key := s.objectKey("html", filename)
	url, err := s.store.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), "text/html", nil)
	if err != nil {
		return "", fmt.Errorf("failed to upload html: %w", err)
	}
	return url, nil
}

// ResolveImageURL maps a stored value back to something fetchable.
// Anything that already looks like a URL passes through; otherwise the
// image namespace is searched for a filename match in either
// direction. Returns "" on no match or any listing error.
func (s *Service) ResolveImageURL(ctx context.Context, pathOrURL string) string {
	if pathOrURL == "" {
		return ""
	}
	if strings.HasPrefix(pathOrURL, "http://") ||
		strings.HasPrefix(pathOrURL, "https://") ||
		strings.HasPrefix(pathOrURL, "data:") {
		return pathOrURL
	}

	fileName := path.Base(pathOrURL)
	if fileName == "" || fileName == "." {
		return ""
	}

	objects, err := s.store.List(ctx, s.prefix+"images/")
	if err != nil {
		// Resolution is advisory; a listing failure never propagates.
		logger.Warn("failed to list images for resolution", err)
		return ""
	}

	for _, obj := range objects {
		name := path.Base(obj.Key)
		if strings.Contains(name, fileName) || strings.Contains(fileName, name) {
			return s.store.URLFor(obj.Key)
		}
	}

	return ""
}

// DeleteFile removes a stored object by URL, best effort. Foreign URLs
// and delete failures are swallowed: deletion must never block the
// caller's primary operation.
func (s *Service) DeleteFile(ctx context.Context, rawURL string) {
	key, ok := s.store.KeyFor(rawURL)
	if !ok {
		return
	}

	if err := s.store.Remove(ctx, key); err != nil {
		logger.Warn("best-effort file delete failed", err)
	}
}

// OwnsURL reports whether a URL points into our bucket. The worker
// uses it to decide whether a cover can be post-processed.
func (s *Service) OwnsURL(rawURL string) (string, bool) {
	return s.store.KeyFor(rawURL)
}
