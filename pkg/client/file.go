package client

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/bornholm/chatten/internal/core/model"
	"github.com/bornholm/chatten/internal/http/handler/api"
	"github.com/pkg/errors"
)

// GetFile downloads the document and copies its bytes to w.
func (c *Client) GetFile(ctx context.Context, documentID model.DocumentID, w io.Writer) error {
	query := url.Values{}
	query.Set("file_name", string(documentID))

	if err := c.request(ctx, http.MethodGet, "/files", query, nil, w); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// RelevantPage returns the page of an already downloaded document best
// matching the query.
func (c *Client) RelevantPage(ctx context.Context, documentID model.DocumentID, query string) (*api.RelevantPageResponse, error) {
	req := api.RelevantPageRequest{
		FileName: documentID,
		Query:    query,
	}

	var res api.RelevantPageResponse

	if err := c.jsonRequest(ctx, http.MethodPost, "/files/relevant_page", nil, req, &res); err != nil {
		return nil, errors.WithStack(err)
	}

	return &res, nil
}
