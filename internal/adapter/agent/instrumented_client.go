package agent

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/chatten/internal/core/model"
	"github.com/bornholm/chatten/internal/core/port"
	"github.com/bornholm/chatten/internal/metrics"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

// InstrumentedClient logs and counts the requests sent to the agent.
type InstrumentedClient struct {
	client port.ChatClient
}

// Chat implements port.ChatClient.
func (c *InstrumentedClient) Chat(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	ctx = slogx.WithAttrs(ctx, slog.String("agent_request", "chat"))

	before := time.Now()

	slog.DebugContext(ctx, "agent request started")

	res, err := c.client.Chat(ctx, req)
	if err != nil {
		metrics.AgentRequests.WithLabelValues(metrics.StatusFailed).Inc()
		slog.DebugContext(ctx, "agent request failed", slog.Duration("duration", time.Since(before)), slogx.Error(err))
		return nil, errors.WithStack(err)
	}

	metrics.AgentRequests.WithLabelValues(metrics.StatusSucceeded).Inc()
	slog.DebugContext(ctx, "agent request completed", slog.Duration("duration", time.Since(before)), slog.Int("sources", len(res.Metadata)))

	return res, nil
}

func NewInstrumentedClient(client port.ChatClient) *InstrumentedClient {
	return &InstrumentedClient{
		client: client,
	}
}

var _ port.ChatClient = &InstrumentedClient{}
