package objectstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bornholm/chatten/internal/core/port"
	"github.com/pkg/errors"
)

type flakyStore struct {
	failures int
	err      error
	calls    int
}

func (s *flakyStore) Get(ctx context.Context, path string) ([]byte, error) {
	s.calls++
	if s.calls <= s.failures {
		return nil, errors.WithStack(s.err)
	}

	return []byte(path), nil
}

func (s *flakyStore) List(ctx context.Context, dir string) ([]port.ObjectInfo, error) {
	return nil, nil
}

func TestRetryStore(t *testing.T) {
	ctx := context.Background()

	unavailable := fmt.Errorf("%w: connection refused", port.ErrUnavailable)

	flaky := &flakyStore{failures: 2, err: unavailable}
	store := NewRetryStore(flaky, time.Millisecond, 3)

	data, err := store.Get(ctx, "report.pdf")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "report.pdf", string(data); e != g {
		t.Errorf("store.Get(): expected '%s', got '%s'", e, g)
	}

	if e, g := 3, flaky.calls; e != g {
		t.Errorf("flaky.calls: expected %d, got %d", e, g)
	}

	flaky = &flakyStore{failures: 10, err: unavailable}
	store = NewRetryStore(flaky, time.Millisecond, 2)

	if _, err := store.Get(ctx, "report.pdf"); !errors.Is(err, port.ErrUnavailable) {
		t.Errorf("store.Get(): expected error matching ErrUnavailable, got '%v'", err)
	}

	if e, g := 3, flaky.calls; e != g {
		t.Errorf("flaky.calls: expected %d, got %d", e, g)
	}

	flaky = &flakyStore{failures: 10, err: port.ErrNotFound}
	store = NewRetryStore(flaky, time.Millisecond, 2)

	if _, err := store.Get(ctx, "report.pdf"); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("store.Get(): expected error matching ErrNotFound, got '%v'", err)
	}

	if e, g := 1, flaky.calls; e != g {
		t.Errorf("flaky.calls: expected %d, got %d", e, g)
	}
}
