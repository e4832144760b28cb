package diag

import (
	"github.com/pkg/errors"
)

// InternalError signals a broken precondition from an upstream
// component. It aborts the current translation unit: continuing would
// risk emitting a plausible-looking but unsound encoding. The pipeline
// recovers it at the translation boundary and reports it separately
// from verification failures.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return "internal: " + e.Err.Error()
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

func Failf(format string, args ...interface{}) {
	panic(&InternalError{Err: errors.Errorf(format, args...)})
}

func Assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		Failf(format, args...)
	}
}
