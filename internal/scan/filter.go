package scan

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// NoExtension is the sentinel extension assigned to files without a suffix.
const NoExtension = "(no extension)"

// Filter holds the criteria applied to every regular file encountered.
// It is built once at startup and read-only afterwards. Directories are
// never rejected by Matches; only the exclude patterns can prune them.
type Filter struct {
	// MinSize is the minimum file size in bytes (inclusive).
	MinSize int64
	// Extensions is the set of normalized extensions to retain.
	// Empty or nil means all extensions match.
	Extensions map[string]struct{}
	// Excludes contains regex patterns that prune whole paths,
	// files and directories alike.
	Excludes []*regexp.Regexp
}

// NewFilter builds a Filter from raw inputs. Extensions are normalized to
// lower case with a leading dot, so "JPG", ".jpg" and "jpg" are equivalent.
func NewFilter(minSize int64, extensions []string) Filter {
	var set map[string]struct{}

	if len(extensions) > 0 {
		set = make(map[string]struct{}, len(extensions))

		for _, ext := range extensions {
			ext = strings.Trim(ext, "'\"")
			if ext == "" {
				continue
			}

			ext = strings.ToLower(ext)
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}

			set[ext] = struct{}{}
		}
	}

	return Filter{MinSize: minSize, Extensions: set}
}

// CompileExcludes compiles the given regex patterns into the filter.
func (f *Filter) CompileExcludes(patterns []string) error {
	f.Excludes = make([]*regexp.Regexp, 0, len(patterns))

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("compiling exclusion pattern %q: %w", p, err)
		}

		f.Excludes = append(f.Excludes, re)
	}

	return nil
}

// NormalizeExt maps a file name to its normalized extension: lower case with
// the leading dot, or NoExtension when the name has no suffix. Both the
// scanner and the tree renderer go through this single helper, so they always
// agree on what a file's extension is.
func NormalizeExt(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return NoExtension
	}

	return strings.ToLower(ext)
}

// Matches reports whether a file with the given size and normalized extension
// passes the filter. It is the single predicate shared by Scan and Tree.
func (f Filter) Matches(size int64, ext string) bool {
	if len(f.Extensions) > 0 {
		if _, ok := f.Extensions[ext]; !ok {
			return false
		}
	}

	return size >= f.MinSize
}

// Excluded reports whether the path matches any exclusion pattern.
// Paths are checked in slash format for cross-platform consistency.
func (f Filter) Excluded(path string) bool {
	if len(f.Excludes) == 0 {
		return false
	}

	fPath := filepath.ToSlash(path)

	for _, re := range f.Excludes {
		if re.MatchString(fPath) {
			return true
		}
	}

	return false
}

// ExtensionList returns the allowed extensions in sorted order,
// or nil when the filter matches all extensions.
func (f Filter) ExtensionList() []string {
	if len(f.Extensions) == 0 {
		return nil
	}

	list := make([]string, 0, len(f.Extensions))
	for ext := range f.Extensions {
		list = append(list, ext)
	}

	sort.Strings(list)

	return list
}
