package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"arcmirror/fs"
	"arcmirror/goquery"
	archttp "arcmirror/http"
	"arcmirror/mirror"
	arcs3 "arcmirror/s3"
	arcslog "arcmirror/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Load .env if present; AWS credentials and region resolve through
	// the SDK default chain from the environment.
	_ = godotenv.Load()

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("arcmirror"),
		kong.Description("Mirror public archive documents into S3 with an HTML index."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'arcmirror --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Debug)
	fetcher := arcslog.NewLoggingFetcher(archttp.NewFetcher(), deps.Logger)

	// Wire command-specific dependencies based on the parsed command,
	// which is stable even when global flags precede the command name.
	switch strings.Fields(kongCtx.Command())[0] {
	case "scrape":
		deps.Scraper = &mirror.Scraper{
			Fetcher: fetcher,
			Records: goquery.NewScraper(),
			Writer:  fs.NewWriter(cli.Scrape.OutDir),
		}

	case "sync":
		store, err := arcs3.New(ctx, arcs3.Config{
			Bucket:   cli.Sync.Bucket,
			Region:   cli.Sync.Region,
			Endpoint: cli.Sync.Endpoint,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check AWS credentials and region in the environment or .env")
			return fmt.Errorf("failed to create S3 store: %w", err)
		}

		deps.Syncer = &mirror.Syncer{
			Fetcher:     fetcher,
			Store:       arcslog.NewLoggingObjectStore(store, deps.Logger),
			RateLimiter: mirror.NewDomainLimiter(cli.Sync.RPS),
			Prefix:      cli.Sync.Prefix,
			Concurrency: cli.Sync.Concurrency,
		}

	case "index":
		store, err := arcs3.New(ctx, arcs3.Config{
			Bucket:   cli.Index.Bucket,
			Region:   cli.Index.Region,
			Endpoint: cli.Index.Endpoint,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check AWS credentials and region in the environment or .env")
			return fmt.Errorf("failed to create S3 store: %w", err)
		}

		deps.Indexer = &mirror.Indexer{
			Store:      arcslog.NewLoggingObjectStore(store, deps.Logger),
			Bucket:     cli.Index.Bucket,
			Prefix:     cli.Index.Prefix,
			DatasetURL: cli.Index.DatasetURL,
		}
	}

	return kongCtx.Run(deps)
}

// newLogger returns a debug text logger on w when debug is set, and a
// discard logger otherwise so service logs don't interleave with
// command output.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	if debug {
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
