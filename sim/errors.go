package sim

import "fmt"

// An InvariantError reports a broken engine invariant. It indicates a defect
// in the engine or in the caller's state construction, never bad user input,
// so it is delivered as a panic rather than a returned error.
type InvariantError struct {
	Msg string
}

func (e InvariantError) Error() string {
	return "invariant violated: " + e.Msg
}

func invariantViolated(format string, args ...any) {
	panic(InvariantError{Msg: fmt.Sprintf(format, args...)})
}
