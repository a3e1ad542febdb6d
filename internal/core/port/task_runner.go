package port

import (
	"context"
	"time"

	"github.com/bornholm/chatten/internal/core/model"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusSucceeded TaskStatus = "succeeded"
	TaskStatusFailed    TaskStatus = "failed"
)

type TaskStateHeader struct {
	ID          model.TaskID
	Type        model.TaskType
	ScheduledAt time.Time
	Status      TaskStatus
}

type TaskState struct {
	TaskStateHeader
	FinishedAt time.Time
	Error      error
	Message    string
}

type TaskHandler interface {
	Handle(ctx context.Context, task model.Task) error
}

type TaskHandlerFunc func(ctx context.Context, task model.Task) error

func (f TaskHandlerFunc) Handle(ctx context.Context, task model.Task) error {
	return f(ctx, task)
}

type TaskRunner interface {
	ScheduleTask(ctx context.Context, task model.Task) error
	GetTaskState(ctx context.Context, id model.TaskID) (*TaskState, error)
	ListTasks(ctx context.Context) ([]TaskStateHeader, error)
	RegisterTask(taskType model.TaskType, handler TaskHandler)
	Run(ctx context.Context) error
}
