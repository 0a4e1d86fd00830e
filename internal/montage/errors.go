package montage

import "errors"

var (
	// ErrNoClips means sampling produced no usable clip plan, usually
	// because every source failed to probe or had no duration.
	ErrNoClips = errors.New("no clips could be planned from the sources")

	// ErrNoValidClips means every planned clip failed to extract.
	ErrNoValidClips = errors.New("no clips were successfully extracted")

	// ErrEmptyInput is returned by Concat when given no clip paths.
	ErrEmptyInput = errors.New("no input files to concatenate")
)
