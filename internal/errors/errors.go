package errors

import (
	stderrors "errors"
)

// Exit codes used by the command line drivers.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitConfig  = 2
)

// TypeOf returns the ErrorType of the first AppError in err's chain, or "" if there is none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsType reports whether err wraps an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	return err != nil && TypeOf(err) == errType
}

// IsRecoverable reports whether an interactive session can report err and keep going.
// Only validation failures are recoverable; parsing and storage failures end the run.
func IsRecoverable(err error) bool {
	return IsType(err, ErrTypeValidation)
}

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsType(err, ErrTypeConfig):
		return ExitConfig
	default:
		return ExitFailure
	}
}

// ContextOf returns the context map attached to the first AppError in err's chain.
func ContextOf(err error) map[string]interface{} {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Context
	}
	return nil
}
