package model

import "strings"

type ChatRequest struct {
	Message string `json:"message"`
}

// Normalize returns the request as used for memoization.
func (r ChatRequest) Normalize() ChatRequest {
	return ChatRequest{
		Message: strings.TrimSpace(r.Message),
	}
}

type ChatMetadata struct {
	Content  string     `json:"content"`
	FileName DocumentID `json:"file_name"`
	Year     *int       `json:"year"`
}

type ChatResponse struct {
	Content       string         `json:"content"`
	Metadata      []ChatMetadata `json:"metadata"`
	ErrorHappened bool           `json:"error_happened"`
}

// Sources returns the distinct documents referenced by the response, in order
// of first appearance.
func (r *ChatResponse) Sources() []DocumentID {
	seen := make(map[DocumentID]struct{}, len(r.Metadata))
	sources := make([]DocumentID, 0, len(r.Metadata))

	for _, m := range r.Metadata {
		if m.FileName == "" {
			continue
		}

		if _, exists := seen[m.FileName]; exists {
			continue
		}

		seen[m.FileName] = struct{}{}
		sources = append(sources, m.FileName)
	}

	return sources
}
