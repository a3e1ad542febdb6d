package client

import (
	"context"
	"net/http"

	"github.com/bornholm/chatten/internal/core/model"
	"github.com/pkg/errors"
)

func (c *Client) Chat(ctx context.Context, message string) (*model.ChatResponse, error) {
	var res model.ChatResponse

	if err := c.jsonRequest(ctx, http.MethodPost, "/chat", nil, model.ChatRequest{Message: message}, &res); err != nil {
		return nil, errors.WithStack(err)
	}

	return &res, nil
}
