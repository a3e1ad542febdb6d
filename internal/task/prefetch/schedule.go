package prefetch

import (
	"context"
	"log/slog"
	"path"
	"strings"

	"github.com/bornholm/chatten/internal/core/model"
	"github.com/bornholm/chatten/internal/core/port"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

// Schedule queues the prefetch of each given document and returns the
// identifiers of the scheduled tasks. Scheduling failures are logged and
// skipped.
func Schedule(ctx context.Context, runner port.TaskRunner, documentIDs ...model.DocumentID) []model.TaskID {
	taskIDs := make([]model.TaskID, 0, len(documentIDs))

	for _, id := range documentIDs {
		if err := id.Validate(); err != nil {
			slog.WarnContext(ctx, "ignoring invalid document identifier", slog.String("documentID", string(id)), slogx.Error(err))
			continue
		}

		task := NewPrefetchTask(id)

		if err := runner.ScheduleTask(ctx, task); err != nil {
			slog.ErrorContext(ctx, "could not schedule document prefetch", slog.String("documentID", string(id)), slog.Any("error", errors.WithStack(err)))
			continue
		}

		taskIDs = append(taskIDs, task.ID())
	}

	return taskIDs
}

// Preload schedules the prefetch of the first documents found under dir.
func Preload(ctx context.Context, store port.ObjectStore, runner port.TaskRunner, dir string, limit int) ([]model.TaskID, error) {
	if limit <= 0 {
		return []model.TaskID{}, nil
	}

	objects, err := store.List(ctx, dir)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	documentIDs := make([]model.DocumentID, 0, limit)
	for _, o := range objects {
		if len(documentIDs) >= limit {
			break
		}

		if o.IsDir {
			continue
		}

		documentIDs = append(documentIDs, model.DocumentID(relativeTo(dir, o.Path)))
	}

	slog.InfoContext(ctx, "preloading documents", slog.Int("total", len(documentIDs)))

	return Schedule(ctx, runner, documentIDs...), nil
}

func relativeTo(dir string, p string) string {
	dir = strings.Trim(path.Clean("/"+dir), "/")
	p = strings.TrimPrefix(p, "/")

	if dir == "" {
		return p
	}

	return strings.TrimPrefix(p, dir+"/")
}
