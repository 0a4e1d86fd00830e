// Package scan discovers source videos on disk for montage runs.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Supported media file extensions (lowercase, with leading dot).
var mediaExtensions = map[string]bool{
	".mkv":  true,
	".mp4":  true,
	".avi":  true,
	".m4v":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".ts":   true,
	".m2ts": true,
	".mpg":  true,
	".mpeg": true,
	".vob":  true,
	".ogv":  true,
}

// IsMediaFile reports whether path carries a recognized video extension.
func IsMediaFile(path string) bool {
	return mediaExtensions[strings.ToLower(filepath.Ext(path))]
}

// Discover walks each root, collecting files with media extensions as
// absolute paths. Roots that are plain files are accepted directly when
// they look like media. Hidden directories are pruned. A root that cannot
// be stat'd fails the call; unreadable entries inside a root (permission
// errors, broken symlinks) are skipped and reported in warnings so one bad
// subdirectory cannot sink a whole batch. The result is sorted
// lexicographically and deduplicated so processing order is deterministic
// regardless of how the roots were given.
func Discover(roots ...string) (files []string, warnings []string, err error) {
	seen := make(map[string]bool)

	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if !seen[abs] {
			seen[abs] = true
			files = append(files, abs)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, nil, err
		}
		if !info.IsDir() {
			if IsMediaFile(root) {
				add(root)
			}
			continue
		}

		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("skipping %s: %v", path, err))
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if IsMediaFile(path) {
				add(path)
			}
			return nil
		})
		if walkErr != nil {
			return nil, nil, walkErr
		}
	}
	sort.Strings(files)
	return files, warnings, nil
}
