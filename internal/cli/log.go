// Package cli implements the slideshow command-line interface.
//
// This package provides commands for solving photo collections into
// slideshows, scoring submissions, browsing the run history, and serving the
// HTTP API. The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - solve: Order photos into a slideshow and write it as txt, json, dot or svg
//   - score: Validate and score an existing submission
//   - runs: List, show and delete saved runs
//   - serve: Run the HTTP API
//   - cache: Manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Long solves
// log sequencer progress at info level.
//
// # Example
//
//	import "github.com/matzehuels/slideshow/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/slideshow/pkg/slides/sequence"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Solved 80000 photos (12.345s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// progressReporter logs sequencer progress snapshots. With a spinner
// attached the snapshot replaces the spinner text and is logged at debug
// level instead.
// Example output: "64512/80000 remaining, 183µs/step, est. 14.6s"
type progressReporter struct {
	logger  *log.Logger
	spinner *Spinner
}

// newProgressReporter creates a reporter that logs to l and, if s is
// non-nil, updates s.
func newProgressReporter(l *log.Logger, s *Spinner) sequence.Reporter {
	return &progressReporter{logger: l, spinner: s}
}

// Report implements sequence.Reporter.
func (r *progressReporter) Report(p sequence.Progress) {
	if p.Done() {
		r.logger.Debugf("Sequenced %d photos in %s", p.Total, p.Elapsed.Round(time.Millisecond))
		return
	}
	msg := fmt.Sprintf("%d/%d remaining, %s/step, est. %s",
		p.Remaining, p.Total,
		p.PerStep.Round(time.Microsecond),
		p.Estimated.Round(100*time.Millisecond))
	if r.spinner != nil {
		r.spinner.SetMessage("Solving " + msg)
		r.logger.Debug(msg)
		return
	}
	r.logger.Info(msg)
}
