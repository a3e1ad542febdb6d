package api

import (
	"net/http"

	"github.com/bornholm/chatten/internal/core/port"
	"github.com/bornholm/chatten/internal/core/service"
)

type Options struct {
	// Middleware applied to the chat route only
	ChatMiddleware func(http.Handler) http.Handler
}

type OptionFunc func(opts *Options)

func WithChatMiddleware(middleware func(http.Handler) http.Handler) OptionFunc {
	return func(opts *Options) {
		opts.ChatMiddleware = middleware
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		ChatMiddleware: func(h http.Handler) http.Handler { return h },
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

type Handler struct {
	documentCache *service.DocumentCache
	responseMemo  *service.ResponseMemo
	chatClient    port.ChatClient
	taskRunner    port.TaskRunner
	mux           *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(documentCache *service.DocumentCache, responseMemo *service.ResponseMemo, chatClient port.ChatClient, taskRunner port.TaskRunner, funcs ...OptionFunc) *Handler {
	opts := NewOptions(funcs...)

	h := &Handler{
		documentCache: documentCache,
		responseMemo:  responseMemo,
		chatClient:    chatClient,
		taskRunner:    taskRunner,
		mux:           &http.ServeMux{},
	}

	h.mux.HandleFunc("GET /files", h.handleGetFile)
	h.mux.HandleFunc("POST /files/relevant_page", h.handleRelevantPage)
	h.mux.Handle("POST /chat", opts.ChatMiddleware(http.HandlerFunc(h.handleChat)))
	h.mux.HandleFunc("GET /tasks", h.listTasks)
	h.mux.HandleFunc("GET /tasks/{taskID}", h.showTask)

	return h
}

var _ http.Handler = &Handler{}
