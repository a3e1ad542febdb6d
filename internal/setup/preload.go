package setup

import (
	"context"

	"github.com/bornholm/chatten/internal/config"
	"github.com/bornholm/chatten/internal/core/model"
	"github.com/bornholm/chatten/internal/task/prefetch"
	"github.com/pkg/errors"
)

// PreloadDocumentsFromConfig schedules the prefetch of the first documents of
// the configured directory.
func PreloadDocumentsFromConfig(ctx context.Context, conf *config.Config) ([]model.TaskID, error) {
	store, err := getObjectStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create object store from config")
	}

	taskRunner, err := getTaskRunner(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create task runner from config")
	}

	taskIDs, err := prefetch.Preload(ctx, store, taskRunner, conf.Storage.DocsPath, conf.Cache.Documents.Preload)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return taskIDs, nil
}
