package scan

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/charlievieth/fastwalk"
)

// Entry describes one regular file that passed the filter.
// Entries are produced, consumed and discarded per item; never stored.
type Entry struct {
	// Path is the file path as encountered during the walk.
	Path string
	// Size is the file size in bytes.
	Size int64
	// Ext is the normalized extension, or NoExtension.
	Ext string
}

// Scan walks the tree rooted at root and invokes visit for every regular
// file accepted by the filter. The traversal is parallel, so visit may be
// called from multiple goroutines concurrently and no ordering is guaranteed;
// callers synchronize (see Collector).
//
// Failure policy is fail-soft throughout: metadata errors on a single file
// skip that file, an unreadable directory skips that subtree, and neither is
// surfaced. Scan holds no cross-call state; calling it again performs a
// fresh traversal.
//
// Symbolic links are not followed, and no cycle detection is performed
// beyond that. The only error returned is cancellation via ctx.
//
// onError, if non-nil, is called once for every file skipped because its
// metadata could not be read; like visit it may run concurrently.
func Scan(ctx context.Context, root string, filter Filter, visit func(Entry), onError func()) error {
	conf := &fastwalk.Config{
		Follow: false,
	}

	return fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Silently skip unreadable entries
		}

		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		default:
		}

		if filter.Excluded(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			if onError != nil {
				onError()
			}

			return nil // File vanished or stat denied; skip it
		}

		ext := NormalizeExt(d.Name())
		if !filter.Matches(info.Size(), ext) {
			return nil
		}

		visit(Entry{Path: path, Size: info.Size(), Ext: ext})

		return nil
	})
}
