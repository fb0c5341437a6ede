package service

import "errors"

// Failure taxonomy surfaced to the HTTP layer. Handlers map these with
// errors.Is; everything else is an internal error.
var (
	// ErrNoPlan: the user has no active goal plan. Terminal for the
	// caller, who should redirect to goal setup.
	ErrNoPlan = errors.New("no active goal plan")

	// ErrTaskNotFound: the task ID is not in the plan's task list.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskCompleted: acting on an already-completed task.
	ErrTaskCompleted = errors.New("task already completed")

	// ErrQuizNotStarted: quiz submission before any quiz was generated.
	ErrQuizNotStarted = errors.New("quiz not started")

	// ErrValidation: request rejected before any mutation.
	ErrValidation = errors.New("validation failed")
)
