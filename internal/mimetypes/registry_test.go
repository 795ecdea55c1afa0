package mimetypes

import "testing"

func TestByFileName(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	tests := []struct {
		name string
		file string
		want string
	}{
		{name: "pdf", file: "report.pdf", want: "application/pdf"},
		{name: "uppercase extension", file: "PHOTO.JPG", want: "image/jpeg"},
		{name: "nested path", file: "a/b/data.csv", want: "text/csv"},
		{name: "unknown extension", file: "blob.xyz123", want: DefaultMimeType},
		{name: "no extension", file: "README", want: DefaultMimeType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := registry.ByFileName(tt.file); got != tt.want {
				t.Errorf("ByFileName(%q) = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}
