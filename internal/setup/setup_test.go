package setup

import (
	"context"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/bornholm/chatten/internal/config"
	"github.com/pkg/errors"
)

func TestRegistry(t *testing.T) {
	registry := NewRegistry[string]()

	registry.Register("memory", func(u *url.URL) (string, error) {
		return u.Query().Get("name"), nil
	})

	value, err := registry.From("memory://?name=test")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "test", value; e != g {
		t.Errorf("registry.From(): expected '%s', got '%s'", e, g)
	}

	if _, err := registry.From("redis://localhost"); !errors.Is(err, ErrSchemeNotRegistered) {
		t.Errorf("registry.From(): expected error matching ErrSchemeNotRegistered, got '%v'", err)
	}
}

func TestCreateFromConfigOnce(t *testing.T) {
	var calls atomic.Int64

	get := createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*int64, error) {
		value := calls.Add(1)
		return &value, nil
	})

	ctx := context.Background()
	first := &config.Config{}
	second := &config.Config{}

	a, _ := get(ctx, first)
	b, _ := get(ctx, first)
	c, _ := get(ctx, second)

	if a != b {
		t.Errorf("expected the same instance for the same configuration")
	}

	if a == c {
		t.Errorf("expected distinct instances for distinct configurations")
	}

	if e, g := int64(2), calls.Load(); e != g {
		t.Errorf("calls: expected %d, got %d", e, g)
	}
}
