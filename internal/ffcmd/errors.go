package ffcmd

import "fmt"

// FileExistsError reports an output target that already exists while its
// spec did not request overwrite. Raised by the pre-flight check, before
// any process is spawned, so the external tool's own overwrite prompt is
// never reached.
type FileExistsError struct {
	Path string
}

func (e *FileExistsError) Error() string {
	return fmt.Sprintf("output file already exists (overwrite not requested): %s", e.Path)
}
