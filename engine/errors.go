package engine

import "errors"

var (
	// ErrUnknownInstruction indicates command text that is neither a print nor an assignment.
	ErrUnknownInstruction = errors.New("engine: unknown instruction")
	// ErrUndefinedVariable indicates a reference to a name that was never bound.
	ErrUndefinedVariable = errors.New("engine: undefined variable")
)
