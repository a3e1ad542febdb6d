package prefetch

import (
	"context"
	"log/slog"

	"github.com/bornholm/chatten/internal/core/model"
	"github.com/bornholm/chatten/internal/core/port"
	"github.com/bornholm/chatten/internal/core/service"
	"github.com/pkg/errors"
)

type Handler struct {
	cache *service.DocumentCache
}

// Handle implements [port.TaskHandler].
func (h *Handler) Handle(ctx context.Context, task model.Task) error {
	prefetchTask, ok := task.(*PrefetchTask)
	if !ok {
		return errors.Errorf("unexpected task type '%T'", task)
	}

	documentID := prefetchTask.DocumentID()

	if h.cache.Contains(documentID) {
		slog.DebugContext(ctx, "document already cached", slog.String("documentID", string(documentID)))
		return nil
	}

	if err := h.cache.Ensure(ctx, documentID); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func NewHandler(cache *service.DocumentCache) *Handler {
	return &Handler{
		cache: cache,
	}
}

var _ port.TaskHandler = &Handler{}
