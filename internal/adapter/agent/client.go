package agent

import (
	"context"

	"github.com/bornholm/chatten/internal/core/model"
	"github.com/bornholm/chatten/internal/core/port"
	"github.com/bornholm/chatten/internal/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sashabaranov/go-openai"
)

const DefaultMaxTokens = 250

// Client queries an agent exposed by an OpenAI compatible serving endpoint.
type Client struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// Chat implements port.ChatClient.
func (c *Client) Chat(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	res, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Message,
			},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not query agent")
	}

	labels := prometheus.Labels{metrics.LabelModel: c.model}
	metrics.PromptTokens.With(labels).Add(float64(res.Usage.PromptTokens))
	metrics.CompletionTokens.With(labels).Add(float64(res.Usage.CompletionTokens))
	metrics.TotalTokens.With(labels).Add(float64(res.Usage.TotalTokens))

	if len(res.Choices) == 0 {
		return nil, errors.Wrap(port.ErrUpstreamParse, "agent returned no choice")
	}

	chatRes, err := ParseResponse(res.Choices[0].Message.Content)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return chatRes, nil
}

func NewClient(baseURL string, token string, model string, maxTokens int) *Client {
	config := openai.DefaultConfig(token)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	return &Client{
		client:    openai.NewClientWithConfig(config),
		model:     model,
		maxTokens: maxTokens,
	}
}

var _ port.ChatClient = &Client{}
