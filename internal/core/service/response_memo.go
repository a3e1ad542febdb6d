package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/bornholm/chatten/internal/core/model"
	"github.com/bornholm/chatten/internal/metrics"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultResponseMemoSize = 100
	DefaultResponseMemoTTL  = 2 * time.Minute
)

// ResponseMemo remembers recent chat responses by request payload.
//
// It is advisory: callers check it before querying the agent and store the
// response afterwards, so identical concurrent requests may both be computed.
type ResponseMemo struct {
	mu        sync.Mutex
	responses *expirable.LRU[model.ChatRequest, *model.ChatResponse]
}

func (m *ResponseMemo) Contains(req model.ChatRequest) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	exists := m.responses.Contains(req.Normalize())

	slog.Debug("checking if request is memoized", slog.String("message", req.Message), slog.Bool("exists", exists))

	return exists
}

func (m *ResponseMemo) Get(req model.ChatRequest) (*model.ChatResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, exists := m.responses.Get(req.Normalize())
	if exists {
		metrics.ResponseMemoHits.Inc()
	} else {
		metrics.ResponseMemoMisses.Inc()
	}

	return res, exists
}

func (m *ResponseMemo) Put(req model.ChatRequest, res *model.ChatResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.responses.Add(req.Normalize(), res)
}

func NewResponseMemo(size int, ttl time.Duration) *ResponseMemo {
	if size <= 0 {
		size = DefaultResponseMemoSize
	}

	return &ResponseMemo{
		responses: expirable.NewLRU[model.ChatRequest, *model.ChatResponse](size, nil, ttl),
	}
}
