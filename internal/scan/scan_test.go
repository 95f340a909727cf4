package scan_test

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/dirreport/internal/scan"
)

// collect runs a scan and returns the yielded entries sorted by path.
func collect(t *testing.T, root string, filter scan.Filter) []scan.Entry {
	t.Helper()

	var (
		mu      sync.Mutex
		entries []scan.Entry
	)

	require.NoError(t, scan.Scan(context.Background(), root, filter, func(e scan.Entry) {
		mu.Lock()
		defer mu.Unlock()

		entries = append(entries, e)
	}, nil))

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	return entries
}

func TestScan(t *testing.T) {
	t.Run("yields only entries passing the filter", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "a.txt"), 500)
		writeFile(t, filepath.Join(root, "b.jpg"), 2048)
		writeFile(t, filepath.Join(root, "sub", "c.jpg"), 10)

		entries := collect(t, root, scan.NewFilter(1024, []string{".jpg"}))

		require.Len(t, entries, 1)
		assert.Equal(t, filepath.Join(root, "b.jpg"), entries[0].Path)
		assert.Equal(t, int64(2048), entries[0].Size)
		assert.Equal(t, ".jpg", entries[0].Ext)
	})

	t.Run("descends the whole tree", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "one.log"), 100)
		writeFile(t, filepath.Join(root, "a", "two.log"), 100)
		writeFile(t, filepath.Join(root, "a", "b", "c", "three.log"), 100)

		entries := collect(t, root, scan.NewFilter(0, nil))

		assert.Len(t, entries, 3)
	})

	t.Run("every entry satisfies the predicate", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "keep.jpg"), 4096)
		writeFile(t, filepath.Join(root, "small.jpg"), 4095)
		writeFile(t, filepath.Join(root, "other.png"), 9000)
		writeFile(t, filepath.Join(root, "plain"), 9000)

		filter := scan.NewFilter(4096, []string{".jpg", ".png"})

		for _, e := range collect(t, root, filter) {
			assert.True(t, filter.Matches(e.Size, e.Ext), "scanner yielded %q which fails the filter", e.Path)
		}
	})

	t.Run("no-extension files carry the sentinel", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "README"), 64)

		entries := collect(t, root, scan.NewFilter(0, nil))

		require.Len(t, entries, 1)
		assert.Equal(t, scan.NoExtension, entries[0].Ext)
	})

	t.Run("is restartable with no cross-call state", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "a.txt"), 100)
		writeFile(t, filepath.Join(root, "b", "c.txt"), 100)

		filter := scan.NewFilter(0, nil)

		first := collect(t, root, filter)
		second := collect(t, root, filter)

		assert.Equal(t, first, second)
	})

	t.Run("excluded subtrees are skipped", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, ".git", "objects", "blob"), 5000)
		writeFile(t, filepath.Join(root, "src", "main.go"), 5000)

		filter := scan.NewFilter(0, nil)
		require.NoError(t, filter.CompileExcludes([]string{`.*\.git/.*`}))

		entries := collect(t, root, filter)

		require.Len(t, entries, 1)
		assert.Equal(t, filepath.Join(root, "src", "main.go"), entries[0].Path)
	})

	t.Run("cancellation stops the walk", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "a.txt"), 1)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := scan.Scan(ctx, root, scan.NewFilter(0, nil), func(scan.Entry) {}, nil)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

// TestScanTreeConsistency checks the cross-component invariant: for any
// directory, the files the renderer retains are exactly the scanner's
// results restricted to that directory's immediate children.
func TestScanTreeConsistency(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "big.jpg"), 5000)
	writeFile(t, filepath.Join(root, "small.jpg"), 10)
	writeFile(t, filepath.Join(root, "big.txt"), 5000)
	writeFile(t, filepath.Join(root, "sub", "keep.jpg"), 9000)
	writeFile(t, filepath.Join(root, "sub", "drop.jpg"), 1)
	require.NoError(t, os.Symlink(filepath.Join(root, "big.jpg"), filepath.Join(root, "alias.jpg")))

	filter := scan.NewFilter(1024, []string{".jpg"})

	scanned := map[string]bool{}
	for _, e := range collect(t, root, filter) {
		scanned[e.Path] = true
	}

	assert.Equal(t, map[string]bool{
		filepath.Join(root, "big.jpg"):         true,
		filepath.Join(root, "sub", "keep.jpg"): true,
	}, scanned)

	tree := scan.Tree(root, "", filter, nil)

	want := "├── big.jpg (4.88 KB)\n" +
		"└── sub\n" +
		"    └── keep.jpg (8.79 KB)\n"
	assert.Equal(t, want, tree, "renderer retains exactly the scanner's files, per directory")
}
