package filter

import (
	"errors"
	"fmt"
)

var (
	// ErrPoolStopped is returned when work is submitted to a stopped pool
	ErrPoolStopped = errors.New("worker pool is stopped")
	// ErrUnknownPreset is returned for a preset name that was never registered
	ErrUnknownPreset = errors.New("unknown filter preset")
)

// CompilationError indicates a filter expression could not be compiled
type CompilationError struct {
	Expression string
	Reason     string
	Err        error
}

func (e *CompilationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compilation error in '%s': %s: %v", e.Expression, e.Reason, e.Err)
	}
	return fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

// EvaluationError indicates a filter failed at runtime for one character
type EvaluationError struct {
	Expression    string
	CharacterID   int
	CharacterName string
	Err           error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation error for '%s' on character #%d %s: %v", e.Expression, e.CharacterID, e.CharacterName, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
