package scan

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// ExtStat represents statistics for a file extension.
type ExtStat struct {
	// Count is the number of files with this extension.
	Count int `json:"count"`
	// Size is the cumulative size in bytes.
	Size int64 `json:"size"`
}

// FileStat represents a single file path and size.
type FileStat struct {
	// Path is the file path in slash format.
	Path string `json:"path"`
	// Size is the size in bytes.
	Size int64 `json:"size"`
}

// Stats holds aggregate statistics over all files retained by a scan.
//
// FileCount counts only retained files, while the tree renderer's Progress
// counts every visited entry. The two numbers are expected to disagree and
// are reported side by side.
type Stats struct {
	// FileCount is the number of files that passed the filter.
	FileCount int64 `json:"file_count"`
	// TotalBytes is the cumulative size of those files.
	TotalBytes int64 `json:"total_bytes"`
	// ExtStats maps normalized extensions to their statistics.
	ExtStats map[string]ExtStat `json:"ext_stats"`
	// TopFiles contains the N largest files, largest first.
	TopFiles []FileStat `json:"top_files"`
	// ErrorCount is the number of files skipped due to metadata errors.
	ErrorCount int64 `json:"error_count"`
	// Elapsed is the total scan duration.
	Elapsed time.Duration `json:"elapsed"`
	// TopN is the number of top files tracked.
	TopN int `json:"top_n"`
}

// Collector aggregates entries from concurrent Scan callbacks using a mutex.
// Pass Collector.Add as the visit function to Scan.
type Collector struct {
	mu         sync.Mutex
	topN       int
	extStats   map[string]ExtStat
	files      []FileStat
	fileCount  int64
	totalBytes int64
	errorCount int64
}

// NewCollector creates a collector tracking the topN largest files.
func NewCollector(topN int) *Collector {
	if topN <= 0 {
		topN = 10
	}

	return &Collector{
		topN:     topN,
		extStats: make(map[string]ExtStat),
		files:    make([]FileStat, 0),
	}
}

// Add records one retained file. Safe for concurrent use; Scan calls it
// from multiple goroutines.
func (c *Collector) Add(entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fileCount++
	c.totalBytes += entry.Size

	stat := c.extStats[entry.Ext]
	stat.Count++
	stat.Size += entry.Size
	c.extStats[entry.Ext] = stat

	// Collect all files, sorted and trimmed in Finalize
	c.files = append(c.files, FileStat{Path: entry.Path, Size: entry.Size})
}

// AddError counts one file skipped because its metadata could not be read.
// Safe for concurrent use.
func (c *Collector) AddError() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errorCount++
}

// Snapshot returns the current file count and byte total for progress display.
func (c *Collector) Snapshot() (files, bytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.fileCount, c.totalBytes
}

// StartReporter invokes hook with the current totals on each tick until ctx
// is done. It does nothing when hook is nil.
func (c *Collector) StartReporter(ctx context.Context, hook func(files, bytes int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.Snapshot())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Finalize produces the final Stats: the top N files by size, largest first,
// with paths converted to slash format.
func (c *Collector) Finalize() *Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	sort.Slice(c.files, func(i, j int) bool {
		return c.files[i].Size > c.files[j].Size
	})

	top := c.files
	if len(top) > c.topN {
		top = top[:c.topN]
	}

	topFiles := make([]FileStat, len(top))
	for i, f := range top {
		f.Path = strings.TrimPrefix(filepath.ToSlash(f.Path), "./")
		topFiles[i] = f
	}

	return &Stats{
		FileCount:  c.fileCount,
		TotalBytes: c.totalBytes,
		ExtStats:   c.extStats,
		TopFiles:   topFiles,
		ErrorCount: c.errorCount,
		TopN:       c.topN,
	}
}
