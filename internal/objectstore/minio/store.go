package minio

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/bornholm/chatten/internal/core/port"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

type Store struct {
	basePath string
	bucket   string
	client   *minio.Client
}

// Get implements port.ObjectStore.
func (s *Store) Get(ctx context.Context, objectPath string) ([]byte, error) {
	key := s.key(objectPath)

	object, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, translateError(key, err)
	}

	defer object.Close()

	// GetObject is lazy, missing keys are only reported once the object is read
	if _, err := object.Stat(); err != nil {
		return nil, translateError(key, err)
	}

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, translateError(key, err)
	}

	return data, nil
}

// List implements port.ObjectStore.
func (s *Store) List(ctx context.Context, dir string) ([]port.ObjectInfo, error) {
	prefix := s.key(dir)
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	objects := make([]port.ObjectInfo, 0)

	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if info.Err != nil {
			return nil, translateError(prefix, info.Err)
		}

		objects = append(objects, port.ObjectInfo{
			Path:    strings.TrimPrefix(strings.TrimPrefix(info.Key, s.basePath), "/"),
			Size:    info.Size,
			ModTime: info.LastModified,
			IsDir:   strings.HasSuffix(info.Key, "/"),
		})
	}

	return objects, nil
}

func (s *Store) key(objectPath string) string {
	return strings.TrimPrefix(path.Join(s.basePath, objectPath), "/")
}

func translateError(key string, err error) error {
	if res := minio.ToErrorResponse(err); res.Code == "NoSuchKey" || res.Code == "NoSuchBucket" {
		return errors.WithStack(fmt.Errorf("%w: object '%s' (%s)", port.ErrNotFound, key, res.Code))
	}

	return errors.WithStack(fmt.Errorf("%w: %w", port.ErrUnavailable, err))
}

func New(client *minio.Client, bucket string, basePath string) *Store {
	return &Store{
		bucket:   bucket,
		client:   client,
		basePath: strings.Trim(basePath, "/"),
	}
}

var _ port.ObjectStore = &Store{}
