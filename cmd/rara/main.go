package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/rara"
	"github.com/fwojciec/rara/crawl"
	"github.com/fwojciec/rara/etree"
	"github.com/fwojciec/rara/fs"
	"github.com/fwojciec/rara/goquery"
	rarahttp "github.com/fwojciec/rara/http"
	rslog "github.com/fwojciec/rara/slog"
	"github.com/fwojciec/rara/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database opened for --db.
	DB *sqlite.DB

	// Now is the clock used for generated filenames.
	Now func() time.Time
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Now: time.Now}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Now:    m.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("rara"),
		kong.Description("Crawl the grammatical rarities archive into a record collection"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'rara --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Store = rslog.NewLoggingStore(fs.NewJSONStore(), deps.Logger)
	deps.Exporter = NewExporter

	if cmd := strings.Fields(kongCtx.Command()); len(cmd) > 0 && cmd[0] == "crawl" {
		fetcher := rarahttp.NewFetcher(rarahttp.WithTimeout(cli.Crawl.Timeout))
		defer fetcher.Close()

		deps.Crawler = &crawl.Crawler{
			Fetcher:     rslog.NewLoggingFetcher(fetcher, deps.Logger),
			Links:       goquery.NewLinkExtractor(),
			Records:     rslog.NewLoggingRecordExtractor(goquery.NewRecordExtractor(), deps.Logger),
			Concurrency: cli.Crawl.Concurrency,
			Logger: func(format string, args ...any) {
				deps.Logger.Warn(fmt.Sprintf(format, args...))
			},
		}
	}

	if cli.DB != "" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()
		deps.Snapshots = rslog.NewLoggingSnapshotStore(sqlite.NewCollectionStore(m.DB), deps.Logger)
	}

	return kongCtx.Run(deps)
}

// Export formats accepted by the export command.
const (
	FormatCSV = "csv"
	FormatXML = "xml"
)

// NewExporter returns the exporter for format. sep only applies to CSV.
func NewExporter(format string, sep rune) (rara.Exporter, error) {
	switch format {
	case FormatCSV:
		return fs.NewCSVExporter(sep), nil
	case FormatXML:
		return etree.NewXMLExporter(), nil
	}
	return nil, rara.Errorf(rara.EINVALID, "unknown export format %q", format)
}
