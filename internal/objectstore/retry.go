package objectstore

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/chatten/internal/core/port"
	"github.com/pkg/errors"
)

// RetryStore retries the requests failing because the underlying store was
// unavailable, doubling the delay between attempts.
type RetryStore struct {
	baseDelay  time.Duration
	maxRetries int
	store      port.ObjectStore
}

// Get implements [port.ObjectStore].
func (s *RetryStore) Get(ctx context.Context, path string) ([]byte, error) {
	backoff := s.baseDelay
	retries := 0

	for {
		data, err := s.store.Get(ctx, path)
		if err != nil {
			if retries >= s.maxRetries || !errors.Is(err, port.ErrUnavailable) {
				return nil, errors.WithStack(err)
			}

			slog.DebugContext(ctx, "request failed, will retry", slog.String("path", path), slog.Int("retries", retries), slog.Duration("backoff", backoff), slog.Any("error", errors.WithStack(err)))

			retries++

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, errors.WithStack(ctx.Err())
			}

			backoff *= 2
			continue
		}

		return data, nil
	}
}

// List implements [port.ObjectStore].
func (s *RetryStore) List(ctx context.Context, dir string) ([]port.ObjectInfo, error) {
	return s.store.List(ctx, dir)
}

func NewRetryStore(store port.ObjectStore, baseDelay time.Duration, maxRetries int) *RetryStore {
	return &RetryStore{
		baseDelay:  baseDelay,
		maxRetries: maxRetries,
		store:      store,
	}
}

var _ port.ObjectStore = &RetryStore{}
