package setup

import (
	"context"

	"github.com/bornholm/chatten/internal/config"
	"github.com/bornholm/chatten/internal/http/handler/api"
	"github.com/bornholm/chatten/internal/http/middleware/ratelimit"
	"github.com/pkg/errors"
)

func getAPIHandlerFromConfig(ctx context.Context, conf *config.Config) (*api.Handler, error) {
	documentCache, err := getDocumentCacheFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create document cache from config")
	}

	responseMemo, err := getResponseMemoFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create response memo from config")
	}

	chatClient, err := getChatClientFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create chat client from config")
	}

	taskRunner, err := getTaskRunner(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create task runner from config")
	}

	options := []api.OptionFunc{}

	if rateLimit := conf.HTTP.RateLimit; rateLimit.Enabled {
		options = append(options, api.WithChatMiddleware(ratelimit.Middleware(
			ratelimit.WithLimit(rateLimit.MinInterval, rateLimit.MaxBurst),
			ratelimit.WithCache(rateLimit.CacheSize, rateLimit.CacheTTL),
			ratelimit.WithTrustHeaders(rateLimit.TrustHeaders),
		)))
	}

	handler := api.NewHandler(documentCache, responseMemo, chatClient, taskRunner, options...)

	return handler, nil
}
