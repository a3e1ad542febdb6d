package minio

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/bornholm/chatten/internal/core/port"
	"github.com/bornholm/chatten/internal/objectstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go"
	testminio "github.com/testcontainers/testcontainers-go/modules/minio"
)

func TestStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test requiring a minio container in short mode")
	}

	ctx := context.Background()

	const (
		minioUsername = "miniousername"
		minioPassword = "miniopassword"
	)

	minioContainer, err := testminio.Run(
		ctx, "minio/minio:RELEASE.2024-01-16T16-07-38Z",
		testminio.WithUsername(minioUsername),
		testminio.WithPassword(minioPassword),
	)
	defer func() {
		if err := testcontainers.TerminateContainer(minioContainer); err != nil {
			t.Fatalf("failed to terminate container: %+v", errors.WithStack(err))
		}
	}()
	if err != nil {
		t.Fatalf("failed to start container: %+v", errors.WithStack(err))
	}

	endpoint, err := minioContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("could not retrieve connection string: %+v", errors.WithStack(err))
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(minioUsername, minioPassword, ""),
		Secure: false,
	})
	if err != nil {
		t.Fatalf("failed to create minio client: %+v", errors.WithStack(err))
	}

	const (
		bucketName = "chatten"
	)

	if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
		t.Fatalf("failed to create minio bucket: %+v", errors.WithStack(err))
	}

	content := []byte("%PDF-1.4 fake document")

	if _, err := client.PutObject(ctx, bucketName, "raw_docs/report.pdf", bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{}); err != nil {
		t.Fatalf("failed to upload object: %+v", errors.WithStack(err))
	}

	dsn := fmt.Sprintf("minio://%s:%s@%s/raw_docs?bucket=%s&secure=false", minioUsername, minioPassword, endpoint, bucketName)

	store, err := objectstore.New(dsn)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	data, err := store.Get(ctx, "report.pdf")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !bytes.Equal(content, data) {
		t.Errorf("store.Get(): unexpected content '%s'", data)
	}

	if _, err := store.Get(ctx, "missing.pdf"); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("store.Get(missing): expected error matching ErrNotFound, got '%v'", err)
	}

	objects, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(objects); e != g {
		t.Fatalf("len(objects): expected %d, got %d", e, g)
	}

	if e, g := "report.pdf", objects[0].Path; e != g {
		t.Errorf("objects[0].Path: expected '%s', got '%s'", e, g)
	}
}
