package model

import (
	"github.com/rs/xid"
)

type TaskID string

func NewTaskID() TaskID {
	return TaskID(xid.New().String())
}

type TaskType string

type Task interface {
	ID() TaskID
	Type() TaskType
}
