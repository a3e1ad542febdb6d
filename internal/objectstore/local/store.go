package local

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bornholm/chatten/internal/core/port"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Store serves documents from an afero filesystem.
type Store struct {
	fs afero.Fs
}

// Get implements port.ObjectStore.
func (s *Store) Get(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	data, err := afero.ReadFile(s.fs, filepath.FromSlash(path))
	if err != nil {
		return nil, translateError(path, err)
	}

	return data, nil
}

// List implements port.ObjectStore.
func (s *Store) List(ctx context.Context, dir string) ([]port.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	entries, err := afero.ReadDir(s.fs, filepath.FromSlash(dir))
	if err != nil {
		return nil, translateError(dir, err)
	}

	objects := make([]port.ObjectInfo, 0, len(entries))
	for _, e := range entries {
		objects = append(objects, port.ObjectInfo{
			Path:    filepath.ToSlash(filepath.Join(dir, e.Name())),
			Size:    e.Size(),
			ModTime: e.ModTime(),
			IsDir:   e.IsDir(),
		})
	}

	return objects, nil
}

func translateError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return errors.WithStack(fmt.Errorf("%w: '%s'", port.ErrNotFound, path))
	}

	return errors.WithStack(fmt.Errorf("%w: %w", port.ErrUnavailable, err))
}

func New(fs afero.Fs) *Store {
	return &Store{
		fs: fs,
	}
}

// NewOsStore serves the documents found under basePath on the local disk.
func NewOsStore(basePath string) (*Store, error) {
	if _, err := os.Stat(basePath); err != nil {
		return nil, errors.WithStack(err)
	}

	return New(afero.NewBasePathFs(afero.NewOsFs(), basePath)), nil
}

var _ port.ObjectStore = &Store{}
