package source

import (
	"errors"
	"fmt"
)

// FileError reports a failure to source or persist a document. It is raised by
// the I/O collaborators and never by the analysis core.
type FileError struct {
	Op   string // list, read, save, ...
	Path string
	Msg  string
	Err  error
}

func (e *FileError) Error() string {
	msg := e.Msg
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// IsFileError reports whether err is, or wraps, a *FileError.
func IsFileError(err error) bool {
	var f *FileError
	return errors.As(err, &f)
}
