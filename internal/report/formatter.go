package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/idelchi/dirreport/internal/scan"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// WriteJSON outputs statistics in JSON format.
func WriteJSON(stats *scan.Stats, writer io.Writer) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// statsTable renders the per-extension breakdown and the largest files as an
// aligned table for embedding in the report.
func statsTable(stats *scan.Stats) string {
	var b strings.Builder

	w := tabwriter.NewWriter(&b, 0, 4, TabSpacing, ' ', 0)

	if len(stats.ExtStats) > 0 {
		fmt.Fprintln(w, "\nBy extension:\t\t")

		extList := make([]string, 0, len(stats.ExtStats))
		for ext := range stats.ExtStats {
			extList = append(extList, ext)
		}

		sort.Slice(extList, func(i, j int) bool {
			return stats.ExtStats[extList[i]].Size > stats.ExtStats[extList[j]].Size
		})

		for _, ext := range extList {
			extStat := stats.ExtStats[ext]
			pct := 0.0
			if stats.TotalBytes > 0 {
				pct = 100.0 * float64(extStat.Size) / float64(stats.TotalBytes)
			}

			fmt.Fprintf(w, "  %s:\t%d files, %s (%.1f%%)\n",
				ext, extStat.Count, scan.FormatSize(extStat.Size), pct)
		}
	}

	if len(stats.TopFiles) > 0 {
		fmt.Fprintf(w, "\nTop %d files:\t\t\n", len(stats.TopFiles))

		for i, f := range stats.TopFiles {
			pct := 0.0
			if stats.TotalBytes > 0 {
				pct = 100.0 * float64(f.Size) / float64(stats.TotalBytes)
			}

			fmt.Fprintf(w, "  %d) '%s'\t%s (%.1f%%)\n",
				i+1, f.Path, scan.FormatSize(f.Size), pct)
		}
	}

	_ = w.Flush() // writing to a strings.Builder cannot fail

	return b.String()
}

// WriteSummary prints a short table of the scan results to writer, for
// console output after the report file is written.
func WriteSummary(stats *scan.Stats, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "Total files:\t%d\n", stats.FileCount)
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n",
		scan.FormatSize(stats.TotalBytes), stats.TotalBytes)
	if stats.ErrorCount > 0 {
		fmt.Fprintf(w, "Files skipped:\t%d\n", stats.ErrorCount)
	}

	fmt.Fprintf(w, "Elapsed:\t%v\n", stats.Elapsed)

	return w.Flush()
}
