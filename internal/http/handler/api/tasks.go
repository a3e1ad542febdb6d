package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/bornholm/chatten/internal/core/model"
	"github.com/bornholm/chatten/internal/core/port"
	"github.com/pkg/errors"
)

type ListTasksResponse struct {
	Tasks []TaskStateHeader `json:"tasks"`
}

type TaskStateHeader struct {
	ID          model.TaskID    `json:"id"`
	Type        model.TaskType  `json:"type"`
	ScheduledAt time.Time       `json:"scheduledAt"`
	Status      port.TaskStatus `json:"status"`
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	headers, err := h.taskRunner.ListTasks(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not list tasks", slog.Any("error", errors.WithStack(err)))
		writeError(ctx, w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	tasks := make([]TaskStateHeader, 0, len(headers))
	for _, h := range headers {
		tasks = append(tasks, TaskStateHeader{
			ID:          h.ID,
			Type:        h.Type,
			ScheduledAt: h.ScheduledAt,
			Status:      h.Status,
		})
	}

	writeJSON(ctx, w, http.StatusOK, ListTasksResponse{Tasks: tasks})
}

type ShowTaskResponse struct {
	Task *Task `json:"task"`
}

type Task struct {
	ID          model.TaskID    `json:"id"`
	Type        model.TaskType  `json:"type"`
	Status      port.TaskStatus `json:"status"`
	ScheduledAt time.Time       `json:"scheduledAt"`
	FinishedAt  time.Time       `json:"finishedAt"`
	Error       string          `json:"error,omitempty"`
	Message     string          `json:"message"`
}

func (h *Handler) showTask(w http.ResponseWriter, r *http.Request) {
	taskID := model.TaskID(r.PathValue("taskID"))

	ctx := r.Context()

	taskState, err := h.taskRunner.GetTaskState(ctx, taskID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			writeError(ctx, w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
			return
		}

		slog.ErrorContext(ctx, "could not retrieve task state", slog.Any("error", errors.WithStack(err)))
		writeError(ctx, w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	res := ShowTaskResponse{
		Task: &Task{
			ID:          taskID,
			Type:        taskState.Type,
			Status:      taskState.Status,
			ScheduledAt: taskState.ScheduledAt,
			FinishedAt:  taskState.FinishedAt,
			Message:     taskState.Message,
		},
	}

	if taskState.Error != nil {
		res.Task.Error = taskState.Error.Error()
	}

	writeJSON(ctx, w, http.StatusOK, res)
}
