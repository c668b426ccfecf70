package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/rara"
	"github.com/fwojciec/rara/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	if c.Pages < 0 {
		return rara.Errorf(rara.EINVALID, "pages must be non-negative, got %d", c.Pages)
	}

	var exporter rara.Exporter
	if c.CSV != "" {
		var err error
		if exporter, err = deps.Exporter(FormatCSV, ','); err != nil {
			return err
		}
	}

	session := rara.NewSession()
	progress := func(event crawl.ProgressEvent) {
		line := crawl.FormatProgress(event)
		if line == "" {
			return
		}
		if event.Type == crawl.ProgressFailed {
			fmt.Fprintln(deps.Stderr, line)
			return
		}
		fmt.Fprintln(deps.Stdout, line)
	}

	result, crawlErr := deps.Crawler.Crawl(deps.Ctx, session, c.BaseURL, c.Pages, progress)
	if crawlErr != nil && !errors.Is(crawlErr, context.Canceled) {
		return fmt.Errorf("crawling: %w", crawlErr)
	}
	if crawlErr != nil {
		fmt.Fprintln(deps.Stderr, "Interrupted, saving records collected so far")
	}

	// Saving must survive an interrupted crawl.
	ctx := context.WithoutCancel(deps.Ctx)

	out := rara.NormalizeFilename(c.Output, ".json", deps.Now)
	if err := deps.Store.Save(ctx, session.Collection, out); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Saved %d records to %s\n", session.Collection.Len(), out)

	if exporter != nil {
		path := rara.NormalizeFilename(c.CSV, ".csv", deps.Now)
		if err := exportFile(exporter, session.Collection, path); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Exported CSV to %s\n", path)
	}

	if deps.Snapshots != nil {
		name := snapshotName(out)
		if err := deps.Snapshots.Save(ctx, session.Collection, name); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Stored snapshot %q\n", name)
	}

	if result != nil {
		fmt.Fprintln(deps.Stdout, crawl.FormatResult(result))
	}
	fmt.Fprintln(deps.Stdout, session.Errors.Summary())
	fmt.Fprintln(deps.Stdout, "Done!")

	return crawlErr
}

// snapshotName names a database snapshot after the JSON file it mirrors.
func snapshotName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// exportFile writes c to path with e.
func exportFile(e rara.Exporter, c *rara.Collection, path string) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return e.Export(f, c)
}

// parseSeparator returns the single character in s.
func parseSeparator(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, rara.Errorf(rara.EINVALID, "separator must be a single character, got %q", s)
	}
	return r, nil
}
