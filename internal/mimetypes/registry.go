// Package mimetypes resolves MIME types for uploads whose clients did not
// supply one, from an embedded extension map.
package mimetypes

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/mime_types.yaml
var configFiles embed.FS

// DefaultMimeType is used when the extension is unknown.
const DefaultMimeType = "application/octet-stream"

// Registry maps file extensions to MIME types.
type Registry struct {
	byExtension map[string]string
	mu          sync.RWMutex
}

// NewRegistry loads the embedded extension map.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/mime_types.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded mime map: %w", err)
	}

	var file struct {
		Extensions map[string]string `yaml:"extensions"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse mime map: %w", err)
	}

	return &Registry{byExtension: file.Extensions}, nil
}

// ByFileName returns the MIME type for a file name's extension, falling back
// to DefaultMimeType.
func (r *Registry) ByFileName(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return DefaultMimeType
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if mime, ok := r.byExtension[ext]; ok {
		return mime
	}
	return DefaultMimeType
}
