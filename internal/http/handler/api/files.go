package api

import (
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"path"

	"github.com/bornholm/chatten/internal/core/model"
	"github.com/bornholm/chatten/internal/core/port"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

func (h *Handler) handleGetFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	documentID := model.DocumentID(r.URL.Query().Get("file_name"))
	if err := documentID.Validate(); err != nil {
		slog.WarnContext(ctx, "invalid file name", slogx.Error(err))
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	ctx = slogx.WithAttrs(ctx, slog.String("documentID", string(documentID)))

	slog.InfoContext(ctx, "downloading file")

	chunks, err := h.documentCache.Chunks(ctx, documentID, 0)
	if err != nil {
		slog.ErrorContext(ctx, "could not retrieve file", slog.Any("error", errors.WithStack(err)))

		if errors.Is(err, port.ErrInvalidID) {
			writeError(ctx, w, http.StatusBadRequest, err.Error())
			return
		}

		writeError(ctx, w, http.StatusInternalServerError, err.Error())
		return
	}

	contentType := mime.TypeByExtension(path.Ext(string(documentID)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, documentID))
	w.WriteHeader(http.StatusOK)

	controller := http.NewResponseController(w)

	for chunk := range chunks {
		if _, err := w.Write(chunk); err != nil {
			slog.WarnContext(ctx, "could not write file chunk", slogx.Error(err))
			return
		}

		// Not every writer supports flushing
		_ = controller.Flush()
	}
}

type RelevantPageRequest struct {
	FileName model.DocumentID `json:"file_name"`
	Query    string           `json:"query"`
}

type RelevantPageResponse struct {
	PageNum int  `json:"page_num"`
	Matched bool `json:"matched"`
}

func (h *Handler) handleRelevantPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RelevantPageRequest
	if err := decodeJSON(r, &req); err != nil {
		slog.WarnContext(ctx, "could not decode request", slogx.Error(err))
		writeError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.FileName.Validate(); err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	ctx = slogx.WithAttrs(ctx, slog.String("documentID", string(req.FileName)))

	match, err := h.documentCache.RelevantPage(ctx, req.FileName, req.Query)
	if err != nil {
		slog.ErrorContext(ctx, "could not find relevant page", slog.Any("error", errors.WithStack(err)))

		if errors.Is(err, port.ErrNotCached) {
			writeError(ctx, w, http.StatusInternalServerError, fmt.Sprintf("file '%s' must be downloaded before looking for a relevant page", req.FileName))
			return
		}

		writeError(ctx, w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(ctx, w, http.StatusOK, RelevantPageResponse{
		PageNum: match.PageNumber(),
		Matched: match.Found,
	})
}
