package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bornholm/chatten/internal/core/port"
	"github.com/bornholm/chatten/internal/objectstore"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

func TestStore(t *testing.T) {
	fs := afero.NewMemMapFs()

	if err := afero.WriteFile(fs, "docs/2024/report.pdf", []byte("report"), 0o644); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	store := New(fs)
	ctx := context.Background()

	data, err := store.Get(ctx, "docs/2024/report.pdf")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "report", string(data); e != g {
		t.Errorf("store.Get(): expected '%s', got '%s'", e, g)
	}

	if _, err := store.Get(ctx, "docs/missing.pdf"); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("store.Get(missing): expected error matching ErrNotFound, got '%v'", err)
	}

	objects, err := store.List(ctx, "docs")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(objects); e != g {
		t.Fatalf("len(objects): expected %d, got %d", e, g)
	}

	if e, g := "docs/2024", objects[0].Path; e != g {
		t.Errorf("objects[0].Path: expected '%s', got '%s'", e, g)
	}

	if !objects[0].IsDir {
		t.Errorf("objects[0].IsDir: expected true")
	}
}

func TestFromDSN(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("notes"), 0o644); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	store, err := objectstore.New("local://" + dir)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	data, err := store.Get(context.Background(), "notes.txt")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "notes", string(data); e != g {
		t.Errorf("store.Get(): expected '%s', got '%s'", e, g)
	}

	if _, err := objectstore.New("unknown://"); !errors.Is(err, objectstore.ErrSchemeNotRegistered) {
		t.Errorf("objectstore.New(unknown): expected error matching ErrSchemeNotRegistered, got '%v'", err)
	}
}
