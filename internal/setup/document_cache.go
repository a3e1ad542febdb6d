package setup

import (
	"context"

	"github.com/bornholm/chatten/internal/adapter/decoder"
	"github.com/bornholm/chatten/internal/config"
	"github.com/bornholm/chatten/internal/core/service"
	"github.com/pkg/errors"
)

var getDocumentCacheFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*service.DocumentCache, error) {
	store, err := getObjectStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create object store from config")
	}

	documentDecoder := decoder.NewRoutedDecoder(
		decoder.NewPDFDecoder(),
		decoder.NewTextDecoder(),
	)

	cache := service.NewDocumentCache(
		store,
		documentDecoder,
		service.WithDocumentCacheBasePath(conf.Storage.DocsPath),
		service.WithDocumentCacheCapacity(conf.Cache.Documents.Size),
		service.WithDocumentCacheTTL(conf.Cache.Documents.TTL),
		service.WithDocumentCacheWaitTimeout(conf.Cache.Documents.WaitTimeout),
		service.WithDocumentCacheChunkSize(conf.Cache.Documents.ChunkSize),
	)

	return cache, nil
})

var getResponseMemoFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*service.ResponseMemo, error) {
	return service.NewResponseMemo(conf.Cache.Responses.Size, conf.Cache.Responses.TTL), nil
})
