package crawl

import (
	"fmt"
)

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		// Too short for "..." prefix, just return dots
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// DisplayURLWidth is the width URLs are truncated to in progress lines.
const DisplayURLWidth = 60

// FormatProgress renders a progress event as a single line for the terminal.
// Events without a line of their own return "".
func FormatProgress(event ProgressEvent) string {
	url := TruncateURL(event.URL, DisplayURLWidth)
	switch event.Type {
	case ProgressPageStarted:
		return fmt.Sprintf("Page %d/%d: %s", event.Page, event.Pages, url)
	case ProgressLinksFound:
		return fmt.Sprintf("  Found %d links", event.Total)
	case ProgressCompleted:
		return fmt.Sprintf("  [%d/%d] %s", event.Completed, event.Total, url)
	case ProgressFailed:
		if event.Total > 0 {
			return fmt.Sprintf("  [%d/%d] skip %s: %v", event.Completed, event.Total, url, event.Error)
		}
		return fmt.Sprintf("  skip %s: %v", url, event.Error)
	case ProgressFinished:
		return fmt.Sprintf("Saved %d records", event.Completed)
	}
	return ""
}

// FormatResult summarizes a crawl result.
func FormatResult(r *Result) string {
	return fmt.Sprintf("%d pages, %d links, %d records saved, %d failed", r.Pages, r.Links, r.Saved, r.Failed)
}
