package memory

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bornholm/chatten/internal/core/model"
	"github.com/bornholm/chatten/internal/core/port"
	"github.com/pkg/errors"
)

type dummyTask struct {
	id       model.TaskID
	taskType model.TaskType
}

// ID implements model.Task.
func (d *dummyTask) ID() model.TaskID {
	return d.id
}

// Type implements model.Task.
func (d *dummyTask) Type() model.TaskType {
	return d.taskType
}

func waitForTasks(t *testing.T, runner *TaskRunner, ids ...model.TaskID) {
	deadline := time.Now().Add(5 * time.Second)

	for _, id := range ids {
		for {
			state, err := runner.GetTaskState(context.Background(), id)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if !state.FinishedAt.IsZero() {
				break
			}

			if time.Now().After(deadline) {
				t.Fatalf("task '%s' did not finish in time (status '%s')", id, state.Status)
			}

			time.Sleep(10 * time.Millisecond)
		}
	}
}

func TestTaskRunner(t *testing.T) {
	runner := NewTaskRunner(10, 24*time.Hour, time.Minute)

	var (
		executed atomic.Int64
		running  atomic.Int64
		peak     atomic.Int64
	)

	runner.RegisterTask("dummy", port.TaskHandlerFunc(func(ctx context.Context, task model.Task) error {
		current := running.Add(1)
		defer running.Add(-1)

		for {
			previous := peak.Load()
			if current <= previous || peak.CompareAndSwap(previous, current) {
				break
			}
		}

		time.Sleep(10 * time.Millisecond)
		executed.Add(1)
		return nil
	}))

	runner.RegisterTask("failing", port.TaskHandlerFunc(func(ctx context.Context, task model.Task) error {
		return errors.New("boom")
	}))

	runner.RegisterTask("panicking", port.TaskHandlerFunc(func(ctx context.Context, task model.Task) error {
		panic("unexpected")
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	total := int64(100)
	ids := make([]model.TaskID, 0, total)

	for range total {
		task := &dummyTask{id: model.NewTaskID(), taskType: "dummy"}
		if err := runner.ScheduleTask(ctx, task); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
		ids = append(ids, task.ID())
	}

	failing := &dummyTask{id: model.NewTaskID(), taskType: "failing"}
	panicking := &dummyTask{id: model.NewTaskID(), taskType: "panicking"}
	unknown := &dummyTask{id: model.NewTaskID(), taskType: "unknown"}

	for _, task := range []*dummyTask{failing, panicking, unknown} {
		if err := runner.ScheduleTask(ctx, task); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
		ids = append(ids, task.ID())
	}

	if err := runner.ScheduleTask(ctx, failing); err == nil {
		t.Errorf("runner.ScheduleTask(): expected error when scheduling the same task twice")
	}

	state, err := runner.GetTaskState(ctx, ids[0])
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := port.TaskStatusPending, state.Status; e != g {
		t.Errorf("state.Status: expected '%s' before Run, got '%s'", e, g)
	}

	go func() {
		if err := runner.Run(ctx); err != nil {
			t.Errorf("%+v", errors.WithStack(err))
		}
	}()

	waitForTasks(t, runner, ids...)

	if e, g := total, executed.Load(); e != g {
		t.Errorf("executed: expected %d, got %d", e, g)
	}

	if g := peak.Load(); g > 10 {
		t.Errorf("peak parallelism: expected at most %d, got %d", 10, g)
	}

	headers, err := runner.ListTasks(ctx)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int(total)+3, len(headers); e != g {
		t.Errorf("len(headers): expected %d, got %d", e, g)
	}

	for _, task := range []*dummyTask{failing, panicking, unknown} {
		state, err := runner.GetTaskState(ctx, task.ID())
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if e, g := port.TaskStatusFailed, state.Status; e != g {
			t.Errorf("[%s] state.Status: expected '%s', got '%s'", task.Type(), e, g)
		}

		if state.Error == nil {
			t.Errorf("[%s] state.Error should not be nil", task.Type())
		}
	}

	if _, err := runner.GetTaskState(ctx, "missing"); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("runner.GetTaskState(missing): expected error matching ErrNotFound, got '%v'", err)
	}
}

func TestTaskRunnerCleanup(t *testing.T) {
	runner := NewTaskRunner(1, 100*time.Millisecond, 50*time.Millisecond)

	runner.RegisterTask("dummy", port.TaskHandlerFunc(func(ctx context.Context, task model.Task) error {
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runner.Run(ctx)

	task := &dummyTask{id: model.NewTaskID(), taskType: "dummy"}
	if err := runner.ScheduleTask(ctx, task); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	waitForTasks(t, runner, task.ID())

	time.Sleep(400 * time.Millisecond)

	if _, err := runner.GetTaskState(ctx, task.ID()); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("runner.GetTaskState(): expected finished task to be cleaned up, got '%v'", err)
	}
}
