package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bornholm/chatten/internal/core/model"
	"github.com/bornholm/chatten/internal/task/prefetch"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		slog.WarnContext(ctx, "could not decode request", slogx.Error(err))
		writeError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	req = req.Normalize()
	if req.Message == "" {
		writeError(ctx, w, http.StatusBadRequest, "message must not be empty")
		return
	}

	slog.InfoContext(ctx, "received message", slog.String("message", req.Message))

	if res, exists := h.responseMemo.Get(req); exists {
		slog.DebugContext(ctx, "returning memoized response")
		writeJSON(ctx, w, http.StatusOK, res)
		return
	}

	res, err := h.chatClient.Chat(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "could not query agent", slog.Any("error", errors.WithStack(err)))
		writeError(ctx, w, http.StatusInternalServerError, err.Error())
		return
	}

	h.responseMemo.Put(req, res)

	// Referenced documents are likely to be downloaded next
	prefetch.Schedule(context.WithoutCancel(ctx), h.taskRunner, res.Sources()...)

	writeJSON(ctx, w, http.StatusOK, res)
}
