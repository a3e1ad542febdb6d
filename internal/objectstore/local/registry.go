package local

import (
	"net/url"
	"strings"

	"github.com/bornholm/chatten/internal/core/port"
	"github.com/bornholm/chatten/internal/objectstore"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

func init() {
	objectstore.RegisterStoreFactory("local", FromDSN)
	objectstore.RegisterStoreFactory("mem", FromMemDSN)
}

func FromDSN(dsn *url.URL) (port.ObjectStore, error) {
	basePath := dsn.Host + "/" + strings.TrimPrefix(dsn.Path, "/")

	store, err := NewOsStore(basePath)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return store, nil
}

func FromMemDSN(dsn *url.URL) (port.ObjectStore, error) {
	return New(afero.NewMemMapFs()), nil
}
