package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/dirreport/internal/config"
	"github.com/idelchi/dirreport/internal/mailer"
	"github.com/idelchi/dirreport/internal/report"
	"github.com/idelchi/dirreport/internal/scan"
)

// allowedFormats lists the valid --format values.
//
//nolint:gochecknoglobals // Config constant
var allowedFormats = []string{"text", "json"}

// run validates the options and drives the two scan phases: tree rendering
// first, statistics accumulation second. Both traverse the same tree with
// the same filter.
func run(ctx context.Context, opts *Options) error {
	info, err := os.Stat(opts.Path)
	if err != nil {
		return fmt.Errorf("accessing path %q: %w", opts.Path, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path %q is not a directory", opts.Path)
	}

	minSize, err := scan.ParseSize(opts.MinSizeRaw)
	if err != nil {
		return fmt.Errorf("invalid min-size: %w", err)
	}

	if minSize < 0 {
		return errors.New("minimum size cannot be negative")
	}

	if !slices.Contains(allowedFormats, strings.ToLower(opts.Format)) {
		return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, allowedFormats)
	}

	filter := scan.NewFilter(minSize, opts.Extensions)
	if err := filter.CompileExcludes(opts.Excludes); err != nil {
		return err
	}

	extDisplay := "all"
	if list := filter.ExtensionList(); len(list) > 0 {
		extDisplay = strings.Join(list, ",")
	}

	log.Info("starting scan", "path", opts.Path, "min-size", scan.FormatSize(minSize), "extensions", extDisplay)

	if opts.Email != "" {
		log.Info("email delivery enabled", "to", opts.Email)
	}

	enableProgress := !opts.Debug && isatty.IsTerminal(os.Stderr.Fd())

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")
	}

	start := time.Now()

	// Phase 1: build the visual tree.
	progress := &scan.Progress{}

	treeCtx, cancelTree := context.WithCancel(ctx)

	if enableProgress {
		progress.StartReporter(treeCtx, func(visited int64) {
			fmt.Fprintf(os.Stderr, "\r\033[2KBuilding tree… %d items\r", visited)
		}, 0)
	}

	tree := scan.Tree(opts.Path, "", filter, progress)

	cancelTree()
	clearStatus(enableProgress)
	log.Info("tree built", "items-visited", progress.Visited())

	// Phase 2: accumulate statistics over the same tree.
	collector := scan.NewCollector(opts.TopN)

	scanCtx, cancelScan := context.WithCancel(ctx)

	if enableProgress {
		collector.StartReporter(scanCtx, func(files, bytes int64) {
			fmt.Fprintf(os.Stderr, "\r\033[2KAnalyzing… %d files, %s\r",
				files, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
		}, 0)
	}

	scanErr := scan.Scan(ctx, opts.Path, filter, collector.Add, collector.AddError)

	cancelScan()
	clearStatus(enableProgress)

	if scanErr != nil {
		return scanErr
	}

	stats := collector.Finalize()
	stats.Elapsed = time.Since(start)

	log.Info("analysis complete", "files", stats.FileCount,
		"size", humanize.IBytes(uint64(stats.TotalBytes))) //nolint:gosec // Bytes is always positive

	if stats.ErrorCount > 0 {
		log.Warn("some files could not be read", "count", stats.ErrorCount)
	}

	data := report.Data{
		Target:    opts.Path,
		Timestamp: start,
		Elapsed:   stats.Elapsed,
		Filter:    filter,
		Stats:     stats,
		Tree:      tree,
	}

	if err := report.Write(opts.Output, data); err != nil {
		return err
	}

	if abs, err := filepath.Abs(opts.Output); err == nil {
		log.Info("report written", "path", abs)
	}

	switch strings.ToLower(opts.Format) {
	case "json":
		if err := report.WriteJSON(stats, os.Stdout); err != nil {
			return err
		}
	default:
		if err := report.WriteSummary(stats, os.Stdout); err != nil {
			return err
		}
	}

	if opts.Email != "" {
		sendReport(ctx, opts)
	}

	return nil
}

// sendReport mails the written report. Delivery failure is logged but never
// fatal: the report is already on disk.
func sendReport(ctx context.Context, opts *Options) {
	cfg, err := config.Load()
	if err != nil {
		log.Error("loading mail configuration", "err", err)

		return
	}

	if err := mailer.Send(ctx, cfg.SMTP, opts.Email, opts.Output, opts.Path); err != nil {
		log.Error("email delivery failed", "err", err)

		return
	}

	log.Info("email sent", "to", opts.Email)
}

// clearStatus wipes the in-place progress line.
func clearStatus(enabled bool) {
	if enabled {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}
}
