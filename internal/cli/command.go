// Package cli wires the dirreport command line.
package cli

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// DefaultExcludes contains the default exclusion patterns.
//
//nolint:gochecknoglobals // Config constant
var DefaultExcludes = []string{`.*\.git/.*`, `.*node_modules/.*`}

// Options holds the parsed command-line configuration.
type Options struct {
	// Path is the directory to analyze.
	Path string
	// MinSizeRaw is the unparsed minimum file size (e.g. "10MB").
	MinSizeRaw string
	// Extensions to include (empty = all).
	Extensions []string
	// Excludes contains regex patterns to exclude.
	Excludes []string
	// Output is the report file path.
	Output string
	// Format selects the console summary format (text or json).
	Format string
	// TopN is the number of largest files to list in the report.
	TopN int
	// Email is the optional recipient address for the report.
	Email string
	// Debug enables debug logging.
	Debug bool
}

// New builds the dirreport root command.
func New(version string) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "dirreport [path]",
		Short: "Analyze a folder and generate a filtered tree report",
		Long: heredoc.Doc(`
			dirreport walks a directory tree, filters files by minimum size and
			extension, and writes a text report containing summary statistics and
			an ASCII tree of the retained hierarchy. The report can optionally be
			emailed as an attachment.

			Directories always appear in the tree, even when every file beneath
			them is filtered out. The "items scanned" progress figure counts every
			entry visited while the tree is built, filtered-out ones included, so
			it will normally exceed the final matching-file count.

			Email delivery reads credentials from the DIRREPORT_SMTP_USER and
			DIRREPORT_SMTP_PASSWORD environment variables (a .env file is honored).
		`),
		Example: heredoc.Doc(`
			dirreport ~/Downloads --min-size 10MB --ext .jpg,.png
			dirreport /data -s 1GB -o output/report.txt --email boss@company.com
			dirreport . --format json
		`),
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = "."
			if len(args) > 0 {
				opts.Path = args[0]
			}

			if opts.Debug {
				log.SetLevel(log.DebugLevel)
			}

			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.MinSizeRaw, "min-size", "s", "0", "Minimum file size (e.g., 10MB)")
	flags.StringSliceVarP(&opts.Extensions, "ext", "x", nil,
		"File extensions to include (e.g., .jpg,.png). Empty includes all")
	flags.StringSliceVarP(&opts.Excludes, "exclude", "e", DefaultExcludes, "Regex patterns to exclude")
	flags.StringVarP(&opts.Output, "output", "o", "report.txt", "Output report filename")
	flags.StringVarP(&opts.Format, "format", "f", "text", "Console summary format: text or json")
	flags.IntVarP(&opts.TopN, "top", "t", 10, "Number of largest files to list in the report")
	flags.StringVar(&opts.Email, "email", "", "Recipient email address to send the report to")
	flags.BoolVar(&opts.Debug, "debug", false, "Enable debug output")
	flags.SortFlags = false

	return cmd
}
