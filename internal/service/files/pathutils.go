package files

import (
	"fmt"
	"strings"

	"filedepot/internal/domain"
)

// NormalizeLogicalPath canonicalizes a client-supplied logical path:
// backslashes become forward slashes, empty and "." segments are dropped,
// and the result carries no leading or trailing slash. ".." segments are
// rejected outright.
func NormalizeLogicalPath(path string) (string, error) {
	path = strings.ReplaceAll(path, "\\", "/")

	var segments []string
	for _, segment := range strings.Split(path, "/") {
		segment = strings.TrimSpace(segment)
		if segment == "" || segment == "." {
			continue
		}
		if segment == ".." {
			return "", fmt.Errorf("invalid logical path %q: %w", path, domain.ErrValidation)
		}
		segments = append(segments, segment)
	}

	return strings.Join(segments, "/"), nil
}

// SplitLogicalPath breaks a normalized path into its directory chain and
// leaf name. An empty directory chain means the leaf sits at the tree root.
func SplitLogicalPath(normalized string) (dirs []string, leaf string) {
	if normalized == "" {
		return nil, ""
	}
	segments := strings.Split(normalized, "/")
	return segments[:len(segments)-1], segments[len(segments)-1]
}

// SplitExtension splits a file name into stem and extension, keeping the
// dot with the extension. Only the last extension is split off, so
// "archive.tar.gz" yields ("archive.tar", ".gz").
func SplitExtension(name string) (stem, ext string) {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 { // leading dot (".gitignore") is part of the stem
		return name, ""
	}
	return name[:idx], name[idx:]
}
