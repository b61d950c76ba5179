package main

import (
	"context"
	"io"
	"log/slog"

	"arcmirror/mirror"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Scraper *mirror.Scraper
	Syncer  *mirror.Syncer
	Indexer *mirror.Indexer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Debug bool `help:"Enable debug logging to stderr"`

	Scrape ScrapeCmd `cmd:"" help:"Scrape an archive listing page into record files"`
	Sync   SyncCmd   `cmd:"" help:"Download listed files and upload them to S3"`
	Index  IndexCmd  `cmd:"" help:"Generate an HTML index of bucket contents"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL    string `arg:"" help:"Archive listing page URL"`
	OutDir string `short:"o" default:"." help:"Directory for record files"`
}

// SyncCmd is the "sync" subcommand.
type SyncCmd struct {
	URLFile     string  `arg:"" help:"File containing URLs, one per line"`
	Bucket      string  `arg:"" help:"Target S3 bucket"`
	Prefix      string  `default:"archive/" help:"S3 key prefix"`
	Concurrency int     `short:"c" default:"5" help:"Concurrent download limit"`
	RPS         float64 `name:"rps" default:"4" help:"Max requests per second per source domain"`
	Region      string  `env:"AWS_REGION" help:"AWS region"`
	Endpoint    string  `env:"ARCMIRROR_S3_ENDPOINT" help:"Custom S3 endpoint (for S3-compatible services)"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Bucket     string `arg:"" help:"S3 bucket to list"`
	Prefix     string `default:"archive/" help:"S3 key prefix"`
	Output     string `short:"o" default:"index.html" help:"Output HTML file"`
	DatasetURL string `name:"dataset-url" help:"Link to a separately hosted processed dataset file"`
	Region     string `env:"AWS_REGION" help:"AWS region"`
	Endpoint   string `env:"ARCMIRROR_S3_ENDPOINT" help:"Custom S3 endpoint (for S3-compatible services)"`
}
