package sync

import (
	"errors"
	"fmt"
)

// ErrLocalPathInvalid means the push source directory does not exist. Fatal
// to the run.
var ErrLocalPathInvalid = errors.New("local path does not exist")

// PathNotFoundError means a remote path segment could not be resolved.
// Fatal to the run.
type PathNotFoundError struct {
	Segment       string
	MatchedPrefix string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("remote folder %q not found under %q", e.Segment, e.MatchedPrefix)
}

// ResolutionError means a reference's target is missing or unreachable.
// Fatal to that subtree only.
type ResolutionError struct {
	Name     string
	TargetID string
	Err      error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve reference %q (target %s): %v", e.Name, e.TargetID, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// TransferError means an individual download, export, upload or update
// failed. The entry is skipped and the walk continues.
type TransferError struct {
	Op   string
	Name string
	Err  error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Name, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
