package scan

import (
	"os"
	"path/filepath"
	"strings"
)

// Tree connector glyphs.
const (
	branchConnector = "├── "
	lastConnector   = "└── "
	branchPadding   = "│   "
	lastPadding     = "    "
)

// Tree renders the filtered hierarchy under dir as a connector-drawn,
// multi-line string. Children are listed in lexicographic order. Directories
// are always retained, even when every descendant is filtered out; files are
// retained only when they pass the filter, and get a parenthesized size
// suffix. prefix is prepended to every line and is normally "".
//
// Every child examined increments progress by one, whether retained or not.
// Stat errors drop the affected file silently; an unlistable directory
// renders as no content at all.
func Tree(dir, prefix string, filter Filter, progress *Progress) string {
	var b strings.Builder

	writeTree(&b, dir, prefix, filter, progress)

	return b.String()
}

// treeChild is one retained directory entry, ready to draw.
type treeChild struct {
	name  string
	size  int64
	isDir bool
}

func writeTree(b *strings.Builder, dir, prefix string, filter Filter, progress *Progress) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	retained := make([]treeChild, 0, len(entries))

	for _, entry := range entries {
		progress.Visit()

		if filter.Excluded(filepath.Join(dir, entry.Name())) {
			continue
		}

		if entry.IsDir() {
			retained = append(retained, treeChild{name: entry.Name(), isDir: true})

			continue
		}

		// Symlinks and other non-regular entries are not files the scanner
		// would yield, so they don't belong in the tree either.
		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if !filter.Matches(info.Size(), NormalizeExt(entry.Name())) {
			continue
		}

		retained = append(retained, treeChild{name: entry.Name(), size: info.Size()})
	}

	for i, child := range retained {
		connector, padding := branchConnector, branchPadding
		if i == len(retained)-1 {
			connector, padding = lastConnector, lastPadding
		}

		if child.isDir {
			b.WriteString(prefix + connector + child.name + "\n")
			writeTree(b, filepath.Join(dir, child.name), prefix+padding, filter, progress)
		} else {
			b.WriteString(prefix + connector + child.name + " (" + FormatSize(child.size) + ")\n")
		}
	}
}
