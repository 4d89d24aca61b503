package persist

import (
	"errors"
	"io/fs"
)

// Kind values double as the wire-level error tags on the IPC boundary.
type Kind string

const (
	KindInvalidPath      Kind = "invalid_path"
	KindPermissionDenied Kind = "permission_denied"
	KindIOFailure        Kind = "io_failure"
)

// Error tags a filesystem-level fault so callers can branch on Kind
// instead of string-matching the message.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return "failed to write file: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalidPath(err error) *Error {
	return &Error{Kind: KindInvalidPath, Err: err}
}

// classify maps an os-level write fault onto the error taxonomy.
// Missing parent directories, directory targets and disk faults all
// land in KindIOFailure.
func classify(err error) *Error {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return &Error{Kind: KindPermissionDenied, Err: err}
	case errors.Is(err, fs.ErrInvalid):
		return invalidPath(err)
	default:
		return &Error{Kind: KindIOFailure, Err: err}
	}
}
