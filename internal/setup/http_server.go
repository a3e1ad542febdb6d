package setup

import (
	"context"

	"github.com/bornholm/chatten/internal/config"
	"github.com/bornholm/chatten/internal/http"
	"github.com/bornholm/chatten/internal/http/handler/metrics"
	"github.com/pkg/errors"
)

func NewHTTPServerFromConfig(ctx context.Context, conf *config.Config) (*http.Server, error) {
	api, err := getAPIHandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure api handler from config")
	}

	options := []http.OptionFunc{
		http.WithAddress(conf.HTTP.Address),
		http.WithBaseURL(conf.HTTP.BaseURL),
		http.WithAllowedOrigins(conf.HTTP.AllowedOrigins...),
		http.WithShutdownTimeout(conf.HTTP.ShutdownTimeout),
		http.WithMount("/api/", api),
	}

	if conf.HTTP.Metrics.Enabled {
		options = append(options, http.WithMount("/metrics/", metrics.NewHandler()))
	}

	if auth := conf.HTTP.Auth; auth.Enabled {
		options = append(options, http.WithBasicAuth(auth.User.Username, auth.User.Password))
	}

	server := http.NewServer(options...)

	return server, nil
}
