package engine

import "fmt"

// ExitCode is the process exit status of a dispatch.
type ExitCode int

const (
	// ExitOK means the handler ran and returned nil, or help was shown.
	ExitOK ExitCode = 0

	// ExitNotImplemented is reserved for a valid verb and noun with no
	// registered handler.
	ExitNotImplemented ExitCode = 1

	// ExitUsage covers grammar mismatches, argument errors and invalid
	// actions.
	ExitUsage ExitCode = 2

	// ExitFailure covers handler errors and failures before dispatch
	// (configuration, discovery, bootstrap).
	ExitFailure ExitCode = 3
)

// ExitError signals a non-zero exit code without printing an extra
// error message. The dispatcher has already written its own output.
type ExitError struct {
	Code ExitCode
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this interface on
// returned errors to distinguish "handled non-zero exit" from "unexpected
// error to display".
func (e *ExitError) ExitCode() int {
	return int(e.Code)
}
