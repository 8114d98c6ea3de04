package params

import "errors"

var (
	// ErrParse marks an edit whose text could not be parsed into the
	// leaf's category. The edit is rolled back locally; callers may
	// inspect the error but nothing needs to be done with it.
	ErrParse = errors.New("params: parse failure")

	// ErrOutOfRange marks an edit that parsed cleanly but falls outside
	// the editor's bounds. Handled exactly like a parse failure.
	ErrOutOfRange = errors.New("params: value out of editor range")

	// ErrNotFound marks a lookup against a path that is not in the
	// current leaf index. Refresh and commit treat it as a no-op.
	ErrNotFound = errors.New("params: no such parameter")

	// ErrRefreshing marks an edit attempt made while a programmatic
	// refresh holds the suppress scope.
	ErrRefreshing = errors.New("params: refresh in progress")
)
