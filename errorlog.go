package rara

import (
	"fmt"
	"strings"
)

// Operations recorded in a Failure.
const (
	OpFetch   = "fetch"
	OpExtract = "extract"
)

// Failure is one captured per-item error.
type Failure struct {
	URL string
	Op  string
	Err error
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Op, f.URL, f.Err)
}

// Unwrap returns the underlying error.
func (f *Failure) Unwrap() error {
	return f.Err
}

// ErrorLog is an ordered list of failures captured during a crawl.
// The zero value is an empty log ready to use.
type ErrorLog struct {
	failures []*Failure
}

// Add records a failure for url.
func (l *ErrorLog) Add(url, op string, err error) {
	l.failures = append(l.failures, &Failure{URL: url, Op: op, Err: err})
}

// Failures returns the recorded failures in the order they occurred.
func (l *ErrorLog) Failures() []*Failure {
	failures := make([]*Failure, len(l.failures))
	copy(failures, l.failures)
	return failures
}

// Len returns the number of recorded failures.
func (l *ErrorLog) Len() int {
	return len(l.failures)
}

// Clear drops every recorded failure.
func (l *ErrorLog) Clear() {
	l.failures = nil
}

// Summary renders the log for the operator, one failure per line, or
// "Everything fine" when nothing failed.
func (l *ErrorLog) Summary() string {
	if len(l.failures) == 0 {
		return "Everything fine"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors:", len(l.failures))
	for _, f := range l.failures {
		b.WriteString("\n  ")
		b.WriteString(f.Error())
	}
	return b.String()
}
