package port

import (
	"context"

	"github.com/bornholm/chatten/internal/core/model"
)

type ChatClient interface {
	Chat(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error)
}
