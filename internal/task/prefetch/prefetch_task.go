package prefetch

import "github.com/bornholm/chatten/internal/core/model"

const TaskTypePrefetch model.TaskType = "prefetch"

// PrefetchTask loads a document into the document cache ahead of its first
// download.
type PrefetchTask struct {
	id         model.TaskID
	documentID model.DocumentID
}

// ID implements model.Task.
func (t *PrefetchTask) ID() model.TaskID {
	return t.id
}

// Type implements model.Task.
func (t *PrefetchTask) Type() model.TaskType {
	return TaskTypePrefetch
}

func (t *PrefetchTask) DocumentID() model.DocumentID {
	return t.documentID
}

func NewPrefetchTask(documentID model.DocumentID) *PrefetchTask {
	return &PrefetchTask{
		id:         model.NewTaskID(),
		documentID: documentID,
	}
}

var _ model.Task = &PrefetchTask{}
