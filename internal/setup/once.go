package setup

import (
	"context"
	"sync"

	"github.com/bornholm/chatten/internal/config"
	"github.com/pkg/errors"
)

type onceResult[T any] struct {
	value T
	err   error
}

// createFromConfigOnce memoizes the component built by the given factory for
// each configuration, so that every consumer shares the same instance.
func createFromConfigOnce[T any](factory func(ctx context.Context, conf *config.Config) (T, error)) func(ctx context.Context, conf *config.Config) (T, error) {
	var (
		mutex   sync.Mutex
		results = map[*config.Config]*onceResult[T]{}
	)

	return func(ctx context.Context, conf *config.Config) (T, error) {
		mutex.Lock()
		defer mutex.Unlock()

		if result, exists := results[conf]; exists {
			return result.value, result.err
		}

		value, err := factory(ctx, conf)
		if err != nil {
			err = errors.WithStack(err)
		}

		results[conf] = &onceResult[T]{value: value, err: err}

		return value, err
	}
}
