package main

import (
	"errors"
	"fmt"
)

// ExitError carries a process exit code out of a cobra RunE so that main
// calls os.Exit in one place. The failure itself has already been reported.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// IsExitError extracts the code of an ExitError anywhere in err's chain.
func IsExitError(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
