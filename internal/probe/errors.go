package probe

import (
	"errors"
	"fmt"
)

// ErrNoDuration reports that a successfully probed file carries no usable
// duration. It is returned by Result.Duration, never during parsing, so a
// probe of a duration-less file (a still image, a broken index) is not
// itself an error.
var ErrNoDuration = errors.New("no duration in probe result")

// ProbeError wraps any failure to probe a file: the binary missing, a
// non-zero exit, or unparseable JSON. The underlying cause is reachable
// through errors.As / errors.Is.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %q: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }
