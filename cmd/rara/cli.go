package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/rara"
	"github.com/fwojciec/rara/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Now    func() time.Time

	// Store reads and writes JSON snapshots.
	Store rara.CollectionStore

	// Snapshots is the database opened with --db, if any.
	Snapshots rara.SnapshotStore

	Crawler  *crawl.Crawler
	Exporter func(format string, sep rune) (rara.Exporter, error)
}

// collections returns the store commands read and write collections in,
// along with name resolved for it. With a database open, name is a snapshot
// name; otherwise it is a JSON file.
func (d *Dependencies) collections(name string) (rara.CollectionStore, string) {
	if d.Snapshots != nil {
		return d.Snapshots, name
	}
	return d.Store, rara.NormalizeFilename(name, ".json", d.Now)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log every request and extraction"`
	DB      string `name:"db" help:"SQLite database of named snapshots; crawl stores a copy there, other commands read and write snapshots instead of JSON files"`

	Crawl     CrawlCmd     `cmd:"" help:"Crawl listing pages and save the extracted records"`
	Merge     MergeCmd     `cmd:"" help:"Combine saved collections into one"`
	Export    ExportCmd    `cmd:"" help:"Export a saved collection as CSV or XML"`
	Info      InfoCmd      `cmd:"" help:"Describe a saved collection"`
	Snapshots SnapshotsCmd `cmd:"" help:"List the snapshots stored in the --db database"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	BaseURL     string        `name:"base-url" env:"RARA_BASE_URL" help:"Paginated listing URL"`
	Pages       int           `short:"p" default:"1" help:"Number of listing pages to crawl"`
	Output      string        `short:"o" help:"JSON output file (default: timestamped name)"`
	CSV         string        `name:"csv" help:"Also export the records to this CSV file"`
	Concurrency int           `short:"c" default:"1" help:"Concurrent article fetch limit"`
	Timeout     time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
}

// MergeCmd is the "merge" subcommand.
type MergeCmd struct {
	Output string   `arg:"" help:"Merged collection"`
	Inputs []string `arg:"" help:"Collections to combine, in order"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Input  string `arg:"" help:"Saved collection"`
	Output string `arg:"" help:"Export file"`
	Format string `short:"f" default:"csv" enum:"csv,xml" help:"Export format (csv, xml)"`
	Sep    string `default:"," help:"CSV field separator"`
}

// InfoCmd is the "info" subcommand.
type InfoCmd struct {
	Input string `arg:"" help:"Saved collection"`
}

// SnapshotsCmd is the "snapshots" subcommand.
type SnapshotsCmd struct{}
