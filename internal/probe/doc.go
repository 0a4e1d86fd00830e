// Package probe inspects media files with ffprobe. A single JSON probe call
// is parsed into typed format and stream records; fields the types do not
// model are kept as opaque key/value pairs so callers can still reach them.
package probe
