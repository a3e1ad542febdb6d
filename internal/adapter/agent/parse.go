package agent

import (
	"encoding/json"
	"fmt"
	"path"

	"github.com/bornholm/chatten/internal/core/model"
	"github.com/bornholm/chatten/internal/core/port"
	"github.com/pkg/errors"
)

const (
	messageTypeHuman = "human"
	messageTypeAI    = "ai"
	messageTypeTool  = "tool"
)

type message struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type retrievedChunk struct {
	PageContent string `json:"page_content"`
	Metadata    struct {
		Path string `json:"path"`
		Year *int   `json:"year"`
	} `json:"metadata"`
}

// ParseResponse extracts the answer and the retrieved sources from the
// message list returned by the agent.
func ParseResponse(raw string) (*model.ChatResponse, error) {
	var messages []message
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return nil, errors.WithStack(fmt.Errorf("%w: %w", port.ErrUpstreamParse, err))
	}

	var (
		content     string
		foundAnswer bool
		tool        *message
	)

	for i, m := range messages {
		switch m.Type {
		case messageTypeAI:
			if !foundAnswer && m.Content != "" {
				content = m.Content
				foundAnswer = true
			}
		case messageTypeTool:
			if tool == nil {
				tool = &messages[i]
			}
		case messageTypeHuman:
		default:
			return nil, errors.WithStack(fmt.Errorf("%w: unexpected message type '%s'", port.ErrUpstreamParse, m.Type))
		}
	}

	if !foundAnswer {
		return nil, errors.WithStack(fmt.Errorf("%w: no answer in agent response", port.ErrUpstreamParse))
	}

	metadata := make([]model.ChatMetadata, 0)

	if tool != nil {
		var chunks []retrievedChunk
		if err := json.Unmarshal([]byte(tool.Content), &chunks); err != nil {
			return nil, errors.WithStack(fmt.Errorf("%w: tool message: %w", port.ErrUpstreamParse, err))
		}

		for _, c := range chunks {
			metadata = append(metadata, model.ChatMetadata{
				Content:  c.PageContent,
				FileName: model.DocumentID(path.Base(c.Metadata.Path)),
				Year:     c.Metadata.Year,
			})
		}
	}

	return &model.ChatResponse{
		Content:  content,
		Metadata: metadata,
	}, nil
}
