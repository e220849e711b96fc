package services

import (
	"project-hub.com/project-hub/internal/constants"
	apperrors "project-hub.com/project-hub/internal/errors"
)

type TaskAction string

const (
	ActionSubmit  TaskAction = "submit"
	ActionApprove TaskAction = "approve"
	ActionReject  TaskAction = "reject"
)

type transition struct {
	from constants.TaskStatus
	to   constants.TaskStatus
}

var taskTransitions = map[TaskAction]transition{
	ActionSubmit:  {from: constants.StatusTodo, to: constants.StatusAwaitingReview},
	ActionApprove: {from: constants.StatusAwaitingReview, to: constants.StatusCompleted},
	ActionReject:  {from: constants.StatusAwaitingReview, to: constants.StatusTodo},
}

// NextStatus is the only way a task changes status.
func NextStatus(current constants.TaskStatus, action TaskAction) (constants.TaskStatus, error) {
	t, ok := taskTransitions[action]
	if !ok || t.from != current {
		return current, apperrors.ErrInvalidTransition
	}
	return t.to, nil
}
