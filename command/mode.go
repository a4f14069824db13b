package command

import "errors"

// ErrUnknownMode indicates a Mode value outside the fixed vocabulary set.
var ErrUnknownMode = errors.New("command: unknown mode")

// Mode selects which command vocabulary is active for a run.
type Mode int

const (
	ModeDefault Mode = iota
	ModePython       // red marker
	ModeJava         // green marker
	ModeLinux        // blue marker
)

func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModePython:
		return "python"
	case ModeJava:
		return "java"
	case ModeLinux:
		return "linux"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	return m >= ModeDefault && m <= ModeLinux
}
