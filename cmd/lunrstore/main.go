package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/lunrstore"
	"github.com/fwojciec/lunrstore/bloom"
	"github.com/fwojciec/lunrstore/fs"
	"github.com/fwojciec/lunrstore/goquery"
	lunrhttp "github.com/fwojciec/lunrstore/http"
	"github.com/fwojciec/lunrstore/lunr"
	lunrslog "github.com/fwojciec/lunrstore/slog"
	"github.com/fwojciec/lunrstore/toml"
	"github.com/fwojciec/lunrstore/verify"
	"golang.org/x/term"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Default timeout for network requests. Set before calling Run().
	Timeout time.Duration

	// TOML files supplying flag defaults. Missing files are skipped.
	ConfigPaths []string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Timeout:     defaultTimeout(),
		ConfigPaths: defaultConfigPaths(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("lunrstore"),
		kong.Description("Inspect and maintain the lunr.js search store of a static site."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Vars{"timeout": m.Timeout.String()},
		kong.Configuration(toml.Loader, m.ConfigPaths...),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'lunrstore --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := newLogger(cli.Verbose, stderr)
	timeout := cli.Timeout

	deps.Logger = logger
	deps.Progress = cli.Verbose || isTerminal(stderr)
	deps.Watch = fs.Watch
	deps.Open = func(source string) lunrstore.Loader {
		return lunrslog.NewLoggingLoader(openLoader(source, timeout), source, logger)
	}
	deps.Create = func(path string, opts lunr.EncodeOptions) lunrstore.CollectionWriter {
		return fs.NewWriter(path, opts)
	}
	deps.Sitemaps = lunrslog.NewLoggingSitemapService(
		lunrhttp.NewSitemapService(&http.Client{Timeout: timeout}),
		logger,
	)
	deps.Duplicates = bloom.NewDuplicateFinder(bloom.DefaultFalsePositiveRate)

	if strings.HasPrefix(kongCtx.Command(), "verify") {
		fetcher := lunrslog.NewLoggingFetcher(lunrhttp.NewFetcher(lunrhttp.WithTimeout(timeout)), logger)
		defer fetcher.Close()

		deps.Verifier = &verify.Verifier{
			Fetcher:     fetcher,
			Titles:      goquery.NewTitleExtractor(),
			RateLimiter: verify.NewDomainLimiter(cli.Verify.RPS),
			Concurrency: cli.Verify.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// openLoader picks a loader by the shape of source: http(s) URLs are
// downloaded, anything else is read from disk.
func openLoader(source string, timeout time.Duration) lunrstore.Loader {
	if isRemote(source) {
		return lunrhttp.NewLoader(source, lunrhttp.WithTimeout(timeout))
	}
	return fs.NewLoader(source)
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func newLogger(verbose bool, stderr io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func defaultConfigPaths() []string {
	if path := os.Getenv("LUNRSTORE_CONFIG"); path != "" {
		return []string{path}
	}
	return []string{".lunrstore.toml", "~/.config/lunrstore/config.toml"}
}

func defaultTimeout() time.Duration {
	if v := os.Getenv("LUNRSTORE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return lunrhttp.DefaultTimeout
}
