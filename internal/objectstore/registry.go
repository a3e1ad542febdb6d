package objectstore

import (
	"net/url"

	"github.com/bornholm/chatten/internal/core/port"
	"github.com/pkg/errors"
)

var storeFactories = make(map[string]StoreFactory, 0)

type StoreFactory func(url *url.URL) (port.ObjectStore, error)

func RegisterStoreFactory(scheme string, factory StoreFactory) {
	storeFactories[scheme] = factory
}

// New creates the object store matching the scheme of the given DSN.
func New(dsn string) (port.ObjectStore, error) {
	url, err := url.Parse(dsn)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	factory, exists := storeFactories[url.Scheme]
	if !exists {
		return nil, errors.Wrapf(ErrSchemeNotRegistered, "no driver associated with scheme '%s'", url.Scheme)
	}

	store, err := factory(url)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return store, nil
}
