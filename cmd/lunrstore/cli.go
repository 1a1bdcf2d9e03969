package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/lunrstore"
	"github.com/fwojciec/lunrstore/lunr"
	"github.com/fwojciec/lunrstore/verify"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// Open returns a loader for a store path or URL.
	Open func(source string) lunrstore.Loader
	// Create returns a writer that replaces the store at path.
	Create func(path string, opts lunr.EncodeOptions) lunrstore.CollectionWriter

	// Watch blocks, calling onChange whenever the file at path changes.
	Watch func(ctx context.Context, path string, onChange func()) error
	// Progress enables per-record progress lines on Stderr.
	Progress bool

	Sitemaps   lunrstore.SitemapService
	Duplicates lunrstore.DuplicateDetector
	Verifier   *verify.Verifier
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool          `short:"v" help:"Log operations to stderr"`
	Timeout time.Duration `default:"${timeout}" help:"Timeout for network requests (env LUNRSTORE_TIMEOUT)"`

	List     ListCmd     `cmd:"" help:"List the records of a store"`
	Check    CheckCmd    `cmd:"" help:"Lint a store and report duplicate URLs"`
	Fmt      FmtCmd      `cmd:"" help:"Re-encode a store as JSON or JavaScript"`
	Diff     DiffCmd     `cmd:"" help:"Compare two builds of a store"`
	Coverage CoverageCmd `cmd:"" help:"List sitemap pages missing from a store"`
	Verify   VerifyCmd   `cmd:"" help:"Check that every record's page is live and titled"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Source string `arg:"" help:"Store file path or URL"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	Source string `arg:"" help:"Store file path or URL"`
	Watch  bool   `short:"w" help:"Re-check whenever the store file changes"`
}

// FmtCmd is the "fmt" subcommand.
type FmtCmd struct {
	Source string `arg:"" help:"Store file path or URL"`
	Output string `short:"o" required:"" help:"Output file path"`
	Format string `short:"f" default:"js" enum:"js,json" help:"Output format (js or json)"`
	Var    string `help:"Variable name for the js format (default: the source's, else store)"`
}

// DiffCmd is the "diff" subcommand.
type DiffCmd struct {
	Old string `arg:"" help:"Previous store file path or URL"`
	New string `arg:"" help:"Current store file path or URL"`
}

// CoverageCmd is the "coverage" subcommand.
type CoverageCmd struct {
	Source  string   `arg:"" help:"Store file path or URL"`
	Site    string   `arg:"" help:"Site URL whose sitemap lists the pages"`
	Include []string `short:"i" help:"Only consider pages matching regex (repeatable)"`
	Exclude []string `short:"x" help:"Ignore pages matching regex (repeatable)"`
}

// VerifyCmd is the "verify" subcommand.
type VerifyCmd struct {
	Source      string  `arg:"" help:"Store file path or URL"`
	Concurrency int     `short:"c" default:"4" help:"Concurrent fetch limit"`
	RPS         float64 `name:"rps" default:"1" help:"Requests per second per domain (0 disables)"`
}
