package objectstore

import (
	"context"
	"time"

	"github.com/bornholm/chatten/internal/core/port"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

type RateLimitedStore struct {
	limiter *rate.Limiter
	store   port.ObjectStore
}

// Get implements [port.ObjectStore].
func (s *RateLimitedStore) Get(ctx context.Context, path string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	return s.store.Get(ctx, path)
}

// List implements [port.ObjectStore].
func (s *RateLimitedStore) List(ctx context.Context, dir string) ([]port.ObjectInfo, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	return s.store.List(ctx, dir)
}

func NewRateLimitedStore(store port.ObjectStore, interval time.Duration, maxBurst int) *RateLimitedStore {
	return &RateLimitedStore{
		limiter: rate.NewLimiter(rate.Every(interval), maxBurst),
		store:   store,
	}
}

var _ port.ObjectStore = &RateLimitedStore{}
