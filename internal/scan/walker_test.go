package scan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFindFilesSizeCap(t *testing.T) {
	root := t.TempDir()
	small := filepath.Join(root, "small.js")
	large := filepath.Join(root, "large.js")
	if err := os.WriteFile(small, []byte("x = 1"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(large, []byte(strings.Repeat("a", 200)), 0644); err != nil {
		t.Fatal(err)
	}

	files, err := findFiles(root, Options{MaxFileSize: 100})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "small.js" {
		t.Errorf("files = %v, want only small.js", files)
	}
}

func TestFindFilesDeterministicOrder(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"c.js", "a.js", "b.js"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := findFiles(root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(files); i++ {
		if files[i] < files[i-1] {
			t.Errorf("enumeration not sorted: %v", files)
		}
	}
}

func TestMatchesAny(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		path     string
		want     bool
	}{
		{"glob", []string{"src/*.js"}, "src/pay.js", true},
		{"glob miss", []string{"src/*.js"}, "lib/pay.js", false},
		{"basename", []string{"*.py"}, "deep/nested/charge.py", true},
		{"dir prefix", []string{"legacy"}, "legacy/old/pay.php", true},
		{"dir prefix with slash", []string{"legacy/"}, "legacy/old/pay.php", true},
		{"no patterns", nil, "anything", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesAny(tt.patterns, tt.path); got != tt.want {
				t.Errorf("matchesAny(%v, %q) = %v", tt.patterns, tt.path, got)
			}
		})
	}
}

func TestUnderSkippedDir(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"node_modules/sdk/index.js", true},
		{"app/vendor/lib.php", true},
		{"src/pay.js", false},
		{"src/vendored/lib.js", false},
	}
	for _, tt := range tests {
		if got := underSkippedDir(tt.path); got != tt.want {
			t.Errorf("underSkippedDir(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
