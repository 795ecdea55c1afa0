package files

import (
	"errors"
	"testing"

	"filedepot/internal/domain"
)

func TestNormalizeLogicalPath(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "simple", in: "a/b/c.txt", want: "a/b/c.txt"},
		{name: "backslashes", in: "a\\b\\c.txt", want: "a/b/c.txt"},
		{name: "leading slash", in: "/a/b.txt", want: "a/b.txt"},
		{name: "trailing slash", in: "a/b/", want: "a/b"},
		{name: "dot segments dropped", in: "./a/./b.txt", want: "a/b.txt"},
		{name: "consecutive slashes", in: "a//b.txt", want: "a/b.txt"},
		{name: "whitespace segments", in: "a/  /b.txt", want: "a/b.txt"},
		{name: "empty", in: "", want: ""},
		{name: "only slashes", in: "///", want: ""},
		{name: "parent traversal rejected", in: "a/../b.txt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeLogicalPath(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizeLogicalPath(%q) succeeded, want error", tt.in)
				}
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeLogicalPath(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeLogicalPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitLogicalPath(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantDirs int
		wantLeaf string
	}{
		{name: "nested", in: "a/b/c.txt", wantDirs: 2, wantLeaf: "c.txt"},
		{name: "root level", in: "c.txt", wantDirs: 0, wantLeaf: "c.txt"},
		{name: "empty", in: "", wantDirs: 0, wantLeaf: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dirs, leaf := SplitLogicalPath(tt.in)
			if len(dirs) != tt.wantDirs || leaf != tt.wantLeaf {
				t.Errorf("SplitLogicalPath(%q) = (%v, %q), want %d dirs and leaf %q",
					tt.in, dirs, leaf, tt.wantDirs, tt.wantLeaf)
			}
		})
	}
}

func TestSplitExtension(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantStem string
		wantExt  string
	}{
		{name: "normal", in: "report.pdf", wantStem: "report", wantExt: ".pdf"},
		{name: "no extension", in: "README", wantStem: "README", wantExt: ""},
		{name: "double extension", in: "archive.tar.gz", wantStem: "archive.tar", wantExt: ".gz"},
		{name: "leading dot", in: ".gitignore", wantStem: ".gitignore", wantExt: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stem, ext := SplitExtension(tt.in)
			if stem != tt.wantStem || ext != tt.wantExt {
				t.Errorf("SplitExtension(%q) = (%q, %q), want (%q, %q)",
					tt.in, stem, ext, tt.wantStem, tt.wantExt)
			}
		})
	}
}
