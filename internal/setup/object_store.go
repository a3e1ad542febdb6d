package setup

import (
	"context"

	"github.com/bornholm/chatten/internal/config"
	"github.com/bornholm/chatten/internal/core/port"
	"github.com/bornholm/chatten/internal/objectstore"
	"github.com/pkg/errors"
)

var getObjectStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.ObjectStore, error) {
	store, err := objectstore.New(conf.Storage.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "could not create object store")
	}

	if conf.Storage.RateLimit.Enabled {
		store = objectstore.NewRateLimitedStore(store, conf.Storage.RateLimit.MinInterval, conf.Storage.RateLimit.MaxBurst)
	}

	if conf.Storage.MaxRetries > 0 {
		store = objectstore.NewRetryStore(store, conf.Storage.BaseBackoff, conf.Storage.MaxRetries)
	}

	return store, nil
})
