package errors

type ExitCodeError struct {
	code ExitCode
	error
}

func NewError(err error, exitCode ExitCode) *ExitCodeError {
	if err == nil {
		return nil
	}
	return &ExitCodeError{exitCode, err}
}

func (e *ExitCodeError) GetExitCode() ExitCode {
	if e == nil {
		return 0
	}
	return e.code
}

// Cause exposes the wrapped error to github.com/pkg/errors.Cause.
func (e *ExitCodeError) Cause() error {
	return e.error
}

// ExitCodeOf returns the exit code carried by err, GenericErrorExitCode for any other
// non-nil error and 0 for nil.
func ExitCodeOf(err error) ExitCode {
	if err == nil {
		return 0
	}
	if ece, ok := err.(*ExitCodeError); ok {
		return ece.GetExitCode()
	}
	return GenericErrorExitCode
}
