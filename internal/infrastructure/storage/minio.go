package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Kingsley6145/gamebridge-admin/internal/config"
)

// ErrAccessDenied marks an operation the bucket's access policy
// rejected. Callers map it to a permission response instead of a
// generic failure.
var ErrAccessDenied = errors.New("access denied by storage rules")

// classifyStoreError folds policy rejections into ErrAccessDenied and
// wraps everything else untouched.
func classifyStoreError(op string, err error) error {
	if minio.ToErrorResponse(err).Code == "AccessDenied" {
		return fmt.Errorf("%s: %w", op, ErrAccessDenied)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified int64 // epoch millis
}

// ObjectStore is the blob-store surface the media service needs.
// MinIOStorage implements it; tests substitute a fake.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string, progress io.Reader) (string, error)
	Remove(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	URLFor(key string) string
	KeyFor(rawURL string) (string, bool)
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// MinIOStorage handles file storage in a single MinIO bucket.
type MinIOStorage struct {
	client *minio.Client
	bucket string
}

// NewMinIOStorage connects to MinIO and ensures the bucket exists.
func NewMinIOStorage(cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOStorage{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Upload streams an object into the bucket and returns its durable URL.
// progress, when non-nil, is fed read-size callbacks by the transport
// on every chunk boundary.
func (s *MinIOStorage) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string, progress io.Reader) (string, error) {
	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		r,
		size,
		minio.PutObjectOptions{
			ContentType: contentType,
			Progress:    progress,
		},
	)
	if err != nil {
		return "", classifyStoreError("failed to upload to minio", err)
	}

	return s.URLFor(key), nil
}

// Fetch reads a whole object into memory.
func (s *MinIOStorage) Fetch(ctx context.Context, key string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, classifyStoreError("failed to get object", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		// GetObject is lazy; policy rejections surface on first read.
		return nil, classifyStoreError("failed to read object", err)
	}

	return data, nil
}

// Remove deletes one object.
func (s *MinIOStorage) Remove(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return classifyStoreError("failed to delete object", err)
	}
	return nil
}

// List returns all objects under a prefix.
func (s *MinIOStorage) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	objectsCh := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	var objects []ObjectInfo
	for object := range objectsCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		objects = append(objects, ObjectInfo{
			Key:          object.Key,
			Size:         object.Size,
			LastModified: object.LastModified.UnixMilli(),
		})
	}

	return objects, nil
}

// URLFor builds the public URL of an object key.
// Format: http://localhost:9000/gamebridge/gamebridge:images/169..._cover.png
func (s *MinIOStorage) URLFor(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, key)
}

// KeyFor maps a URL back to an object key. The second return is false
// when the URL does not belong to this bucket.
func (s *MinIOStorage) KeyFor(rawURL string) (string, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	if parsed.Host != s.client.EndpointURL().Host {
		return "", false
	}

	path := strings.TrimPrefix(parsed.Path, "/")
	bucketPrefix := s.bucket + "/"
	if !strings.HasPrefix(path, bucketPrefix) {
		return "", false
	}

	return strings.TrimPrefix(path, bucketPrefix), true
}
