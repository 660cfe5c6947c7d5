package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"elavonx/internal/classify"
	elxerrors "elavonx/internal/errors"
)

// Directories that are never scanned, regardless of user globs.
var skipDirs = map[string]bool{
	".git":             true,
	".svn":             true,
	".hg":              true,
	".elavonx":         true,
	".cache":           true,
	".idea":            true,
	".vscode":          true,
	"node_modules":     true,
	"vendor":           true,
	"bower_components": true,
	"dist":             true,
	"build":            true,
	"out":              true,
	"target":           true,
	"bin":              true,
	"obj":              true,
	"__pycache__":      true,
}

// Generated-asset suffixes that are never worth scanning.
var skipSuffixes = []string{".min.js", ".bundle.js", ".min.css", ".map"}

// findFiles enumerates candidate files under root in deterministic order.
// Hard-coded directory and suffix exclusions apply before user globs.
func findFiles(root string, opts Options) ([]string, error) {
	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	candidates := classify.CandidateExtensions()

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Inaccessible entries are skipped, not fatal.
			return nil
		}
		if d.IsDir() {
			if path != root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		if !eligible(rel, d, candidates, maxSize, opts) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, elxerrors.Wrap(elxerrors.FileAccess, "failed to walk workspace", err)
	}

	sort.Strings(files)
	return files, nil
}

// eligible applies the per-file filters: extension, generated-asset
// suffixes, size cap, then include/exclude globs on the relative path.
func eligible(rel string, d fs.DirEntry, candidates map[string]bool, maxSize int64, opts Options) bool {
	name := d.Name()
	for _, suffix := range skipSuffixes {
		if strings.HasSuffix(name, suffix) {
			return false
		}
	}
	if !candidates[strings.ToLower(filepath.Ext(name))] {
		return false
	}
	if info, err := d.Info(); err != nil || info.Size() > maxSize {
		return false
	}

	normalized := filepath.ToSlash(rel)
	if len(opts.Include) > 0 && !matchesAny(opts.Include, normalized) {
		return false
	}
	if matchesAny(opts.Exclude, normalized) {
		return false
	}
	return true
}

// matchesAny matches a slash-normalized path against globs. A pattern
// also matches as a directory prefix, so "src" covers "src/a/b.js".
func matchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		normalized := filepath.ToSlash(pattern)
		if matched, _ := filepath.Match(normalized, path); matched {
			return true
		}
		if matched, _ := filepath.Match(normalized, filepath.Base(path)); matched {
			return true
		}
		dirPattern := strings.TrimSuffix(normalized, "/") + "/"
		if strings.HasPrefix(path, dirPattern) {
			return true
		}
	}
	return false
}

// explicitEligible applies the workspace filters to an explicitly named
// file: skipped directories, generated-asset suffixes, the size cap, and
// the include/exclude globs. The extension filter is waived, since an
// explicit path is a deliberate choice. A stat failure passes the file
// through so the read path can report it as skipped.
func explicitEligible(path string, maxSize int64, opts Options) bool {
	if underSkippedDir(path) {
		return false
	}
	name := filepath.Base(path)
	for _, suffix := range skipSuffixes {
		if strings.HasSuffix(name, suffix) {
			return false
		}
	}
	if info, err := os.Stat(path); err == nil && info.Size() > maxSize {
		return false
	}

	normalized := filepath.ToSlash(path)
	if len(opts.Include) > 0 && !matchesAny(opts.Include, normalized) {
		return false
	}
	if matchesAny(opts.Exclude, normalized) {
		return false
	}
	return true
}

// underSkippedDir reports whether any path segment is a hard-coded
// excluded directory. Applied to explicit file lists as well, so a path
// under node_modules is skipped even when passed directly.
func underSkippedDir(path string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if skipDirs[segment] {
			return true
		}
	}
	return false
}
