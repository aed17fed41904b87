package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// catalogFlags holds template catalog flags.
type catalogFlags struct {
	dir      string // Catalog directory (replaces built-in templates)
	template string // Default template id for entries that name none
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// batchFlags holds batch partitioning flags.
type batchFlags struct {
	size   int // Documents per PDF (0 = whole run in one PDF)
	number int // Render only this batch (0 = all batches)
}

// renderFlags holds browser rendering flags.
type renderFlags struct {
	timeout      string // Duration string, parsed by resolveTimeout
	css          string // External CSS file replacing the built-in stylesheet
	noBackground bool   // Skip painting CSS backgrounds
}

// outputFlags holds output mode flags for debugging.
type outputFlags struct {
	html     bool // Output HTML alongside PDF
	htmlOnly bool // Output HTML only, skip PDF
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common     commonFlags
	output     string
	workers    int
	catalog    catalogFlags
	page       pageFlags
	batch      batchFlags
	render     renderFlags
	outputMode outputFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addCatalogFlags adds template catalog flags to a FlagSet.
func addCatalogFlags(fs *flag.FlagSet, f *catalogFlags) {
	fs.StringVar(&f.dir, "catalog", "", "template catalog directory")
	fs.StringVar(&f.template, "template", "", "default template id for data entries")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addBatchFlags adds batch partitioning flags to a FlagSet.
func addBatchFlags(fs *flag.FlagSet, f *batchFlags) {
	fs.IntVarP(&f.size, "batch-size", "b", 0, "documents per PDF (0 = whole run)")
	fs.IntVar(&f.number, "batch", 0, "render only this batch number (requires --batch-size)")
}

// addRenderFlags adds browser rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF render timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.css, "css", "", "external CSS file replacing the built-in stylesheet")
	fs.BoolVar(&f.noBackground, "no-background", false, "skip painting CSS backgrounds")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "output HTML alongside PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "output HTML only, skip PDF")
}

// parseGenerateFlags parses generate command flags and returns positional args.
func parseGenerateFlags(args []string) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	f := &generateFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addCatalogFlags(fs, &f.catalog)
	addPageFlags(fs, &f.page)
	addBatchFlags(fs, &f.batch)
	addRenderFlags(fs, &f.render)
	addOutputFlags(fs, &f.outputMode)

	fs.Usage = func() { printGenerateUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
