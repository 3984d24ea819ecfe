package tracker

import "errors"

var (
	// ErrConcurrentEvaluation means another evaluation committed against
	// the same employee snapshot first. Callers retry or surface 409.
	ErrConcurrentEvaluation = errors.New("concurrent evaluation detected")

	// ErrInvalidState rejects operations on employees whose tracking has
	// terminated.
	ErrInvalidState = errors.New("employee is in a terminal state")
)
