package oerror

import "fmt"

// OomphError is the error type returned by gamemove packages for recoverable failures such as
// malformed configuration, duplicate world brushes or corrupted recordings.
type OomphError struct {
	Err string
}

// New returns a new OomphError with the message formatted from the given arguments.
func New(format string, args ...any) *OomphError {
	if len(args) == 0 {
		return &OomphError{Err: format}
	}
	return &OomphError{Err: fmt.Sprintf(format, args...)}
}

func (e *OomphError) Error() string {
	return e.Err
}
