package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Kingsley6145/gamebridge-admin/pkg/logger"
)

// Worker-side operations. These run out of band; nothing here blocks a
// request.

// ProcessCoverVariants fetches an owned cover and stores resized
// variants next to it. Foreign URLs are skipped, not failed: covers
// hosted elsewhere are valid documents we simply cannot post-process.
func (s *Service) ProcessCoverVariants(ctx context.Context, coverURL string) error {
	key, ok := s.store.KeyFor(coverURL)
	if !ok {
		logger.Debug("cover hosted elsewhere, skipping variants")
		return nil
	}

	data, err := s.store.Fetch(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to fetch cover: %w", err)
	}

	variants, err := s.images.Variants(data)
	if err != nil {
		return fmt.Errorf("failed to build variants: %w", err)
	}

	for name, content := range variants {
		variantKey := VariantKey(key, name)
		if _, err := s.store.Upload(ctx, variantKey, bytes.NewReader(content), int64(len(content)), "image/jpeg", nil); err != nil {
			return fmt.Errorf("failed to store %s variant: %w", name, err)
		}
	}

	return nil
}

// VariantKey derives the storage key of a named variant from its
// source key: "images/169_cover.png" -> "images/169_cover_medium.jpg".
func VariantKey(key, name string) string {
	return stemOf(key) + "_" + name + ".jpg"
}

// stemOf strips the file extension from a key.
func stemOf(key string) string {
	if i := strings.LastIndex(key, "."); i > strings.LastIndex(key, "/") {
		return key[:i]
	}
	return key
}

// variantStem undoes VariantKey, yielding the source key's stem so an
// orphan scan can tie a variant back to its source object.
func variantStem(key string) (string, bool) {
	for _, name := range []string{"medium", "thumbnail"} {
		suffix := "_" + name + ".jpg"
		if strings.HasSuffix(key, suffix) {
			return strings.TrimSuffix(key, suffix), true
		}
	}
	return "", false
}

// CleanupOrphans removes stored objects no course references anymore.
// inUse holds every URL the catalog still points at. Objects younger
// than minAge are left alone so uploads racing a document write are
// never collected. Individual delete failures are logged and skipped.
func (s *Service) CleanupOrphans(ctx context.Context, inUse map[string]bool, minAge time.Duration) (int, error) {
	objects, err := s.store.List(ctx, s.prefix)
	if err != nil {
		return 0, fmt.Errorf("failed to list objects: %w", err)
	}

	inUseKeys := make(map[string]bool, len(inUse))
	inUseStems := make(map[string]bool, len(inUse))
	for rawURL := range inUse {
		key, ok := s.store.KeyFor(rawURL)
		if !ok {
			continue
		}
		inUseKeys[key] = true
		inUseStems[stemOf(key)] = true
	}

	cutoff := time.Now().Add(-minAge).UnixMilli()
	removed := 0

	for _, obj := range objects {
		if obj.LastModified > cutoff {
			continue
		}
		if inUseKeys[obj.Key] {
			continue
		}
		// A variant lives and dies with its source object.
		if stem, ok := variantStem(obj.Key); ok && inUseStems[stem] {
			continue
		}

		if err := s.store.Remove(ctx, obj.Key); err != nil {
			logger.Warn("failed to remove orphaned object", err)
			continue
		}
		removed++
	}

	return removed, nil
}
