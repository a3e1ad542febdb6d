package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/cors"
	sloghttp "github.com/samber/slog-http"
)

type Server struct {
	opts *Options
}

// Run serves the mounted handlers until the context is canceled, then shuts
// the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return errors.WithStack(err)
	}

	return s.Serve(ctx, listener)
}

func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errs := make(chan error, 1)

	go func() {
		slog.InfoContext(ctx, "http server listening", slog.String("address", listener.Addr().String()))

		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- errors.WithStack(err)
		}

		close(errs)
	}()

	select {
	case err := <-errs:
		return err

	case <-ctx.Done():
		slog.InfoContext(ctx, "shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return errors.WithStack(err)
		}

		return nil
	}
}

// Handler returns the mounted handlers wrapped in the common middlewares.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	baseURL := "/" + strings.Trim(s.opts.BaseURL, "/")

	for prefix, handler := range s.opts.Mounts {
		mountPath := strings.TrimSuffix(path.Join(baseURL, prefix), "/")

		slog.Debug("mounting handler", slog.String("path", mountPath+"/"))

		if mountPath == "" {
			mux.Handle("/", handler)
			continue
		}

		mux.Handle(mountPath+"/", http.StripPrefix(mountPath, handler))
	}

	var handler http.Handler = mux

	if s.opts.BasicAuth != nil {
		handler = s.basicAuth(handler)
	}

	handler = cors.New(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(handler)

	handler = sloghttp.Recovery(handler)
	handler = sloghttp.New(slog.Default())(handler)

	return handler
}

func NewServer(funcs ...OptionFunc) *Server {
	opts := NewOptions(funcs...)
	return &Server{
		opts: opts,
	}
}
