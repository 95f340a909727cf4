// Package report assembles the text report produced after a scan:
// metadata header, applied filters, summary statistics and the rendered
// directory tree.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/MakeNowJust/heredoc/v2"

	"github.com/idelchi/dirreport/internal/scan"
)

// Data carries everything the report template needs.
type Data struct {
	// Target is the scanned directory path.
	Target string
	// Timestamp is when the scan started.
	Timestamp time.Time
	// Elapsed is the total wall-clock duration of both phases.
	Elapsed time.Duration
	// Filter is the configuration applied to the scan.
	Filter scan.Filter
	// Stats holds the aggregate statistics.
	Stats *scan.Stats
	// Tree is the rendered directory tree.
	Tree string
}

// reportTemplate is the full report layout. The tree string is embedded
// verbatim beneath the root folder name line.
var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"size":       scan.FormatSize,
	"duration":   formatDuration,
	"extensions": formatExtensions,
	"statsTable": statsTable,
	"rootName":   filepath.Base,
}).Parse(heredoc.Doc(`
	FOLDER ANALYSIS REPORT
	==================================================
	Target path:  {{.Target}}
	Scan time:    {{.Timestamp.Format "2006-01-02 15:04:05"}}
	Duration:     {{duration .Elapsed}}
	--------------------------------------------------
	Applied filters:
	  Min file size: {{size .Filter.MinSize}}
	  Extensions:    {{extensions .Filter}}
	==================================================

	SUMMARY STATISTICS
	------------------------------
	Total files found: {{.Stats.FileCount}}
	Total size:        {{size .Stats.TotalBytes}}
	Files skipped:     {{.Stats.ErrorCount}}
	{{statsTable .Stats}}
	==================================================

	DIRECTORY TREE STRUCTURE
	------------------------------
	{{rootName .Target}}/
	{{.Tree}}
	==================================================
`)))

// Render produces the complete report text.
func Render(data Data) (string, error) {
	var b strings.Builder

	if err := reportTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}

	return b.String(), nil
}

// Write renders the report and writes it to path, creating parent
// directories as needed.
func Write(path string, data Data) error {
	text, err := Render(data)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}

// formatDuration renders durations the way the report expects: seconds with
// two decimals under a minute, "XmYs" above.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2f seconds", d.Seconds())
	}

	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60

	return fmt.Sprintf("%dm %ds", minutes, seconds)
}

// formatExtensions renders the filter's allow-list, or "All".
func formatExtensions(f scan.Filter) string {
	list := f.ExtensionList()
	if len(list) == 0 {
		return "All"
	}

	return strings.Join(list, ", ")
}
