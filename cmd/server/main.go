package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bornholm/chatten/internal/config"
	"github.com/bornholm/chatten/internal/setup"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"

	// Adapters
	_ "github.com/bornholm/chatten/internal/adapter/memory"

	// Object stores
	_ "github.com/bornholm/chatten/internal/objectstore/local"
	_ "github.com/bornholm/chatten/internal/objectstore/minio"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conf, err := config.Parse(config.DefaultDotenvFiles()...)
	if err != nil {
		slog.ErrorContext(ctx, "could not parse config", slog.Any("error", errors.WithStack(err)))
		os.Exit(1)
	}

	logger := slog.New(slogx.ContextHandler{
		Handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level:     slog.Level(conf.Logger.Level),
			AddSource: true,
		}),
	})

	slog.SetDefault(logger)

	slog.DebugContext(ctx, "using configuration", slog.Any("config", conf))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.InfoContext(ctx, "use ctrl+c to interrupt")
		<-sig
		cancel()
	}()

	server, err := setup.NewHTTPServerFromConfig(ctx, conf)
	if err != nil {
		slog.ErrorContext(ctx, "could not setup http server", slog.Any("error", errors.WithStack(err)))
		os.Exit(1)
	}

	taskIDs, err := setup.PreloadDocumentsFromConfig(ctx, conf)
	if err != nil {
		slog.WarnContext(ctx, "could not preload documents", slog.Any("error", errors.WithStack(err)))
	} else {
		slog.InfoContext(ctx, "documents preload scheduled", slog.Int("tasks", len(taskIDs)))
	}

	slog.InfoContext(ctx, "starting server", slog.Any("address", conf.HTTP.Address))

	if err := server.Run(ctx); err != nil {
		slog.Error("could not run server", slog.Any("error", errors.WithStack(err)))
		os.Exit(1)
	}
}
