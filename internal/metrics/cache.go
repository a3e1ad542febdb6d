package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameDocumentCacheHits   = "document_cache_hits"
	NameDocumentCacheMisses = "document_cache_misses"
	NameDocumentFetches     = "document_fetches"
	NameResponseMemoHits    = "response_memo_hits"
	NameResponseMemoMisses  = "response_memo_misses"
)

var DocumentCacheHits = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameDocumentCacheHits,
		Help:      "Document cache lookups answered from memory",
		Namespace: Namespace,
	},
)

var DocumentCacheMisses = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameDocumentCacheMisses,
		Help:      "Document cache lookups requiring a population",
		Namespace: Namespace,
	},
)

var DocumentFetches = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameDocumentFetches,
		Help:      "Documents fetched from the object store",
		Namespace: Namespace,
	},
	[]string{LabelStatus},
)

var ResponseMemoHits = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameResponseMemoHits,
		Help:      "Chat requests answered from the response memo",
		Namespace: Namespace,
	},
)

var ResponseMemoMisses = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameResponseMemoMisses,
		Help:      "Chat requests not found in the response memo",
		Namespace: Namespace,
	},
)

const (
	NameRateLimitedRequests = "rate_limited_requests"
)

var RateLimitedRequests = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameRateLimitedRequests,
		Help:      "Requests rejected because their client exceeded its rate limit",
		Namespace: Namespace,
	},
)
