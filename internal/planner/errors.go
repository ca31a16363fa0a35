package planner

import (
	"errors"
	"fmt"
)

// Sentinel kinds for planning errors.
var (
	ErrGeneration = errors.New("recommendation generation failed")
)

// StageError marks which pipeline stage a fatal planning error came from.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("planning failed at %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
