package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bornholm/chatten/internal/core/model"
	"github.com/bornholm/chatten/internal/http/handler/api"
	"github.com/pkg/errors"
)

func (c *Client) ListTasks(ctx context.Context) ([]api.TaskStateHeader, error) {
	var res api.ListTasksResponse

	if err := c.jsonRequest(ctx, http.MethodGet, "/tasks", nil, nil, &res); err != nil {
		return nil, errors.WithStack(err)
	}

	return res.Tasks, nil
}

func (c *Client) GetTask(ctx context.Context, taskID model.TaskID) (*api.Task, error) {
	var res api.ShowTaskResponse

	if err := c.jsonRequest(ctx, http.MethodGet, fmt.Sprintf("/tasks/%s", taskID), nil, nil, &res); err != nil {
		return nil, errors.WithStack(err)
	}

	return res.Task, nil
}

type WaitForOptions struct {
	PollInterval time.Duration
}

type WaitForOptionFunc func(opts *WaitForOptions)

func WithWaitForPollInterval(interval time.Duration) WaitForOptionFunc {
	return func(opts *WaitForOptions) {
		opts.PollInterval = interval
	}
}

func NewWaitForOptions(funcs ...WaitForOptionFunc) *WaitForOptions {
	opts := &WaitForOptions{
		PollInterval: time.Second * 2,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

// WaitFor polls the task until it is finished.
func (c *Client) WaitFor(ctx context.Context, taskID model.TaskID, funcs ...WaitForOptionFunc) (*api.Task, error) {
	opts := NewWaitForOptions(funcs...)

	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		task, err := c.GetTask(ctx, taskID)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		if !task.FinishedAt.IsZero() {
			return task, nil
		}

		select {
		case <-ctx.Done():
			return nil, errors.WithStack(ctx.Err())
		case <-ticker.C:
		}
	}
}
