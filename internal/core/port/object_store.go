package port

import (
	"context"
	"time"
)

type ObjectInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// ObjectStore gives read access to the remote namespace holding the source
// documents.
//
// Get fails with an error matching ErrNotFound when the object does not exist
// and ErrUnavailable when the store could not be reached.
type ObjectStore interface {
	Get(ctx context.Context, path string) ([]byte, error)
	List(ctx context.Context, dir string) ([]ObjectInfo, error)
}
