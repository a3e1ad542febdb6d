package setup

import (
	"context"

	"github.com/bornholm/chatten/internal/adapter/agent"
	"github.com/bornholm/chatten/internal/config"
	"github.com/bornholm/chatten/internal/core/port"
)

var getChatClientFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.ChatClient, error) {
	client := agent.NewClient(
		conf.Agent.BaseURL,
		conf.Agent.Token,
		conf.Agent.Endpoint,
		conf.Agent.MaxTokens,
	)

	return agent.NewInstrumentedClient(client), nil
})
