package service

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"path"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bornholm/chatten/internal/core/model"
	"github.com/bornholm/chatten/internal/core/port"
	"github.com/bornholm/chatten/internal/metrics"
	"github.com/bornholm/go-x/slogx"
	"github.com/dustin/go-humanize"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultDocumentCacheCapacity    = 100
	DefaultDocumentCacheTTL         = time.Hour
	DefaultDocumentCacheWaitTimeout = 1500 * time.Millisecond
	DefaultChunkSize                = 64 * 1024
)

type DocumentCacheOptions struct {
	Capacity int
	TTL      time.Duration
	// Prefix joined to every document identifier to build its object path
	BasePath string
	// Maximum time a streaming caller waits for a population started
	// elsewhere before fetching the document itself
	WaitTimeout time.Duration
	ChunkSize   int
}

type DocumentCacheOptionFunc func(opts *DocumentCacheOptions)

func WithDocumentCacheCapacity(capacity int) DocumentCacheOptionFunc {
	return func(opts *DocumentCacheOptions) {
		opts.Capacity = capacity
	}
}

func WithDocumentCacheTTL(ttl time.Duration) DocumentCacheOptionFunc {
	return func(opts *DocumentCacheOptions) {
		opts.TTL = ttl
	}
}

func WithDocumentCacheBasePath(basePath string) DocumentCacheOptionFunc {
	return func(opts *DocumentCacheOptions) {
		opts.BasePath = basePath
	}
}

func WithDocumentCacheWaitTimeout(timeout time.Duration) DocumentCacheOptionFunc {
	return func(opts *DocumentCacheOptions) {
		opts.WaitTimeout = timeout
	}
}

func WithDocumentCacheChunkSize(size int) DocumentCacheOptionFunc {
	return func(opts *DocumentCacheOptions) {
		opts.ChunkSize = size
	}
}

func NewDocumentCacheOptions(funcs ...DocumentCacheOptionFunc) *DocumentCacheOptions {
	opts := &DocumentCacheOptions{
		Capacity:    DefaultDocumentCacheCapacity,
		TTL:         DefaultDocumentCacheTTL,
		BasePath:    "",
		WaitTimeout: DefaultDocumentCacheWaitTimeout,
		ChunkSize:   DefaultChunkSize,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

// DocumentCache is a bounded, time-expiring store of decoded documents,
// populated on demand from an object store.
//
// Concurrent populations of the same document are coalesced: only one fetch
// is issued and every caller observes the same *model.CachedDocument.
type DocumentCache struct {
	store   port.ObjectStore
	decoder port.DocumentDecoder

	basePath    string
	waitTimeout time.Duration
	chunkSize   int

	// mu guards every lookup and insertion in entries
	mu      sync.Mutex
	entries *expirable.LRU[model.DocumentID, *model.CachedDocument]

	populations singleflight.Group
}

// Ensure makes sure the document is cached, fetching and decoding it if
// needed. Errors match port.ErrFetch or port.ErrDecode.
func (c *DocumentCache) Ensure(ctx context.Context, id model.DocumentID) error {
	if _, err := c.Document(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Document returns the cached document, populating the cache if needed.
func (c *DocumentCache) Document(ctx context.Context, id model.DocumentID) (*model.CachedDocument, error) {
	if err := id.Validate(); err != nil {
		return nil, errors.Wrap(port.ErrInvalidID, err.Error())
	}

	if doc, exists := c.lookup(id); exists {
		metrics.DocumentCacheHits.Inc()
		slog.DebugContext(ctx, "document already in cache, skipping download", slog.String("documentID", string(id)))
		return doc, nil
	}

	metrics.DocumentCacheMisses.Inc()

	results, _ := c.startPopulation(ctx, id)

	select {
	case res := <-results:
		return unwrapPopulation(res)
	case <-ctx.Done():
		return nil, errors.WithStack(ctx.Err())
	}
}

// Chunks returns the document bytes as a lazy, single-use sequence of chunks
// of at most chunkSize bytes. A chunkSize <= 0 selects the configured default.
//
// When the document is not cached yet, Chunks waits for an in-flight
// population for at most the configured wait timeout and then populates the
// cache itself.
func (c *DocumentCache) Chunks(ctx context.Context, id model.DocumentID, chunkSize int) (iter.Seq[[]byte], error) {
	if err := id.Validate(); err != nil {
		return nil, errors.Wrap(port.ErrInvalidID, err.Error())
	}

	if chunkSize <= 0 {
		chunkSize = c.chunkSize
	}

	doc, exists := c.lookup(id)
	if exists {
		metrics.DocumentCacheHits.Inc()
	} else {
		metrics.DocumentCacheMisses.Inc()

		var err error
		doc, err = c.waitOrPopulate(ctx, id)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}

	return chunksOf(doc.Raw(), chunkSize), nil
}

// Pages returns the extracted pages of an already cached document. It never
// triggers a fetch and fails with port.ErrNotCached when the document is absent.
func (c *DocumentCache) Pages(id model.DocumentID) ([]string, error) {
	doc, exists := c.lookup(id)
	if !exists {
		return nil, errors.Wrapf(port.ErrNotCached, "document '%s' must be cached before its pages are read", id)
	}

	return doc.Pages(), nil
}

// RelevantPage finds the page of a cached document best matching the query.
func (c *DocumentCache) RelevantPage(ctx context.Context, id model.DocumentID, query string) (Match, error) {
	pages, err := c.Pages(id)
	if err != nil {
		return Match{}, errors.WithStack(err)
	}

	match := FindBestMatch(pages, query)

	if !match.Found {
		slog.WarnContext(ctx, "no relevant page found for query", slog.String("documentID", string(id)), slog.String("query", NormalizeQuery(query)))
	} else {
		slog.InfoContext(ctx, "found relevant page for query", slog.String("documentID", string(id)), slog.Int("index", match.Index), slog.Float64("score", match.Score))
	}

	return match, nil
}

func (c *DocumentCache) Contains(id model.DocumentID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, exists := c.entries.Peek(id)
	return exists
}

func (c *DocumentCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entries.Len()
}

func (c *DocumentCache) lookup(id model.DocumentID) (*model.CachedDocument, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entries.Get(id)
}

// startPopulation joins the in-flight population of the document or starts a
// new one. The returned flag reports whether the population belongs to the
// caller; it becomes true once the population has started running.
func (c *DocumentCache) startPopulation(ctx context.Context, id model.DocumentID) (<-chan singleflight.Result, *atomic.Bool) {
	var owned atomic.Bool

	// The population is shared with other callers and must outlive the
	// cancellation of the one which started it.
	populationCtx := context.WithoutCancel(ctx)

	results := c.populations.DoChan(string(id), func() (any, error) {
		owned.Store(true)
		return c.populate(populationCtx, id)
	})

	return results, &owned
}

func (c *DocumentCache) waitOrPopulate(ctx context.Context, id model.DocumentID) (*model.CachedDocument, error) {
	results, owned := c.startPopulation(ctx, id)

	timer := time.NewTimer(c.waitTimeout)
	defer timer.Stop()

	select {
	case res := <-results:
		return unwrapPopulation(res)

	case <-timer.C:
		if owned.Load() {
			// The pending population is ours, fetching again would only duplicate it
			select {
			case res := <-results:
				return unwrapPopulation(res)
			case <-ctx.Done():
				return nil, errors.WithStack(ctx.Err())
			}
		}

		slog.WarnContext(ctx, "document population still in flight, fetching it independently",
			slog.String("documentID", string(id)),
			slog.Duration("waited", c.waitTimeout),
		)

		c.populations.Forget(string(id))

		doc, err := c.populate(ctx, id)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		return doc, nil

	case <-ctx.Done():
		return nil, errors.WithStack(ctx.Err())
	}
}

func (c *DocumentCache) populate(ctx context.Context, id model.DocumentID) (*model.CachedDocument, error) {
	// A population may have completed between the caller's lookup and now
	if doc, exists := c.lookup(id); exists {
		return doc, nil
	}

	fullPath := path.Join(c.basePath, string(id))

	ctx = slogx.WithAttrs(ctx,
		slog.String("documentID", string(id)),
		slog.String("path", fullPath),
	)

	slog.InfoContext(ctx, "downloading document into cache")

	start := time.Now()

	raw, err := c.store.Get(ctx, fullPath)
	if err != nil {
		metrics.DocumentFetches.WithLabelValues(metrics.StatusFailed).Inc()
		return nil, errors.WithStack(fmt.Errorf("%w '%s': %w", port.ErrFetch, fullPath, err))
	}

	metrics.DocumentFetches.WithLabelValues(metrics.StatusSucceeded).Inc()

	pages, err := c.decoder.Decode(ctx, raw)
	if err != nil {
		if errors.Is(err, port.ErrDecode) {
			return nil, errors.WithStack(err)
		}

		return nil, errors.WithStack(fmt.Errorf("%w '%s': %w", port.ErrDecode, fullPath, err))
	}

	doc := model.NewCachedDocument(raw, pages)

	c.mu.Lock()
	if existing, exists := c.entries.Peek(id); exists {
		// An independent population won the race
		c.mu.Unlock()
		return existing, nil
	}
	c.entries.Add(id, doc)
	c.mu.Unlock()

	slog.InfoContext(ctx, "document cached",
		slog.Int("pages", doc.PageCount()),
		slog.String("size", humanize.Bytes(uint64(doc.Size()))),
		slog.Duration("duration", time.Since(start)),
	)

	return doc, nil
}

func unwrapPopulation(res singleflight.Result) (*model.CachedDocument, error) {
	if res.Err != nil {
		return nil, errors.WithStack(res.Err)
	}

	doc, ok := res.Val.(*model.CachedDocument)
	if !ok {
		return nil, errors.Errorf("unexpected population result type '%T'", res.Val)
	}

	return doc, nil
}

// chunksOf slices raw into consecutive chunks. The sequence keeps its position
// between iterations: once consumed, ranging over it again yields nothing.
func chunksOf(raw []byte, size int) iter.Seq[[]byte] {
	var (
		mu     sync.Mutex
		offset int
	)

	return func(yield func([]byte) bool) {
		for {
			mu.Lock()
			if offset >= len(raw) {
				mu.Unlock()
				return
			}

			end := min(offset+size, len(raw))
			chunk := raw[offset:end]
			offset = end
			mu.Unlock()

			if !yield(chunk) {
				return
			}
		}
	}
}

func NewDocumentCache(store port.ObjectStore, decoder port.DocumentDecoder, funcs ...DocumentCacheOptionFunc) *DocumentCache {
	opts := NewDocumentCacheOptions(funcs...)

	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = DefaultDocumentCacheCapacity
	}

	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	onEvict := func(id model.DocumentID, _ *model.CachedDocument) {
		slog.Debug("document evicted from cache", slog.String("documentID", string(id)))
	}

	return &DocumentCache{
		store:       store,
		decoder:     decoder,
		basePath:    opts.BasePath,
		waitTimeout: opts.WaitTimeout,
		chunkSize:   chunkSize,
		entries:     expirable.NewLRU[model.DocumentID, *model.CachedDocument](capacity, onEvict, opts.TTL),
	}
}
