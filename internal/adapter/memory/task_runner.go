package memory

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/bornholm/chatten/internal/adapter/memory/syncx"
	"github.com/bornholm/chatten/internal/core/model"
	"github.com/bornholm/chatten/internal/core/port"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

type taskEntry struct {
	Task  model.Task
	State port.TaskState
}

// TaskRunner executes background tasks in the current process with bounded
// parallelism. Tasks scheduled before Run is called wait for it.
type TaskRunner struct {
	runningMutex *sync.Mutex
	runningCond  sync.Cond
	running      bool

	// Canceled when Run returns, aborting the tasks still executing
	ctx    context.Context
	cancel context.CancelFunc

	tasks      syncx.Map[model.TaskID, taskEntry]
	stateMutex sync.Mutex

	handlers  syncx.Map[model.TaskType, port.TaskHandler]
	semaphore chan struct{}

	cleanupDelay    time.Duration
	cleanupInterval time.Duration
}

// Run implements port.TaskRunner.
func (r *TaskRunner) Run(ctx context.Context) error {
	r.runningMutex.Lock()
	r.running = true
	r.runningCond.Broadcast()
	r.runningMutex.Unlock()

	defer r.cancel()

	ticker := time.NewTicker(r.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
				return errors.WithStack(err)
			}

			return nil

		case <-ticker.C:
			r.cleanup(ctx)
		}
	}
}

func (r *TaskRunner) cleanup(ctx context.Context) {
	slog.DebugContext(ctx, "running task cleaner")

	now := time.Now()

	var expired []model.TaskID

	r.tasks.Range(func(id model.TaskID, entry taskEntry) bool {
		if entry.State.FinishedAt.IsZero() || !now.After(entry.State.FinishedAt.Add(r.cleanupDelay)) {
			return true
		}

		expired = append(expired, id)

		return true
	})

	for _, id := range expired {
		slog.DebugContext(ctx, "deleting expired task", slog.String("taskID", string(id)))
		r.tasks.Delete(id)
	}
}

// ListTasks implements port.TaskRunner.
func (r *TaskRunner) ListTasks(ctx context.Context) ([]port.TaskStateHeader, error) {
	headers := make([]port.TaskStateHeader, 0)
	r.tasks.Range(func(id model.TaskID, entry taskEntry) bool {
		headers = append(headers, entry.State.TaskStateHeader)
		return true
	})

	slices.SortFunc(headers, func(a, b port.TaskStateHeader) int {
		return b.ScheduledAt.Compare(a.ScheduledAt)
	})

	return headers, nil
}

// RegisterTask implements port.TaskRunner.
func (r *TaskRunner) RegisterTask(taskType model.TaskType, handler port.TaskHandler) {
	r.handlers.Store(taskType, handler)
}

// ScheduleTask implements port.TaskRunner.
func (r *TaskRunner) ScheduleTask(ctx context.Context, task model.Task) error {
	taskID := task.ID()

	if _, exists := r.tasks.Load(taskID); exists {
		return errors.Errorf("task '%s' already scheduled", taskID)
	}

	r.updateState(task, func(s *port.TaskState) {
		s.ID = taskID
		s.ScheduledAt = time.Now()
		s.Status = port.TaskStatusPending
		s.Type = task.Type()
	})

	go r.execute(task)

	return nil
}

func (r *TaskRunner) execute(task model.Task) {
	ctx := slogx.WithAttrs(r.ctx,
		slog.String("taskID", string(task.ID())),
		slog.String("taskType", string(task.Type())),
	)

	defer func() {
		if recovered := recover(); recovered != nil {
			err, ok := recovered.(error)
			if !ok {
				err = errors.Errorf("%+v", recovered)
			}

			slog.ErrorContext(ctx, "recovered panic while running task", slog.Any("error", errors.WithStack(err)))

			r.updateState(task, func(s *port.TaskState) {
				s.Error = errors.WithStack(err)
				s.Status = port.TaskStatusFailed
				s.FinishedAt = time.Now()
			})
		}
	}()

	r.runningMutex.Lock()
	for !r.running {
		r.runningCond.Wait()
	}
	r.runningMutex.Unlock()

	select {
	case r.semaphore <- struct{}{}:
	case <-ctx.Done():
		r.fail(ctx, task, errors.WithStack(port.ErrCanceled))
		return
	}
	defer func() {
		<-r.semaphore
	}()

	handler, exists := r.handlers.Load(task.Type())
	if !exists {
		r.fail(ctx, task, errors.Errorf("no handler registered for task type '%s'", task.Type()))
		return
	}

	r.updateState(task, func(s *port.TaskState) {
		s.Status = port.TaskStatusRunning
	})

	start := time.Now()

	slog.DebugContext(ctx, "executing task")

	if err := handler.Handle(ctx, task); err != nil {
		if ctx.Err() != nil {
			err = errors.Wrap(port.ErrCanceled, err.Error())
		}

		r.fail(ctx, task, errors.WithStack(err))
		return
	}

	slog.DebugContext(ctx, "task finished", slog.Duration("duration", time.Since(start)))

	r.updateState(task, func(s *port.TaskState) {
		s.Status = port.TaskStatusSucceeded
		s.FinishedAt = time.Now()
	})
}

func (r *TaskRunner) fail(ctx context.Context, task model.Task, err error) {
	// Background failures are only reported through logs and task states
	slog.WarnContext(ctx, "task failed", slogx.Error(err))

	r.updateState(task, func(s *port.TaskState) {
		s.Error = err
		s.Message = err.Error()
		s.Status = port.TaskStatusFailed
		s.FinishedAt = time.Now()
	})
}

func (r *TaskRunner) updateState(task model.Task, fn func(s *port.TaskState)) {
	r.stateMutex.Lock()
	defer r.stateMutex.Unlock()

	entry, _ := r.tasks.LoadOrStore(task.ID(), taskEntry{
		Task: task,
		State: port.TaskState{
			TaskStateHeader: port.TaskStateHeader{
				ID: task.ID(),
			},
		},
	})

	fn(&entry.State)

	r.tasks.Store(task.ID(), entry)
}

// GetTaskState implements port.TaskRunner.
func (r *TaskRunner) GetTaskState(ctx context.Context, id model.TaskID) (*port.TaskState, error) {
	entry, exists := r.tasks.Load(id)
	if !exists {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	return &entry.State, nil
}

func NewTaskRunner(parallelism int, cleanupDelay time.Duration, cleanupInterval time.Duration) *TaskRunner {
	if parallelism <= 0 {
		parallelism = 1
	}

	runningMutex := &sync.Mutex{}
	ctx, cancel := context.WithCancel(context.Background())

	return &TaskRunner{
		runningMutex:    runningMutex,
		runningCond:     *sync.NewCond(runningMutex),
		running:         false,
		ctx:             ctx,
		cancel:          cancel,
		semaphore:       make(chan struct{}, parallelism),
		cleanupDelay:    cleanupDelay,
		cleanupInterval: cleanupInterval,
	}
}

var _ port.TaskRunner = &TaskRunner{}
