package sequence

import "time"

// Progress is a periodic snapshot of a running sequence.
type Progress struct {
	Step      int           // Photos placed after the first one
	Remaining int           // Photos still in the candidate pool
	Total     int           // Photos in the input
	Elapsed   time.Duration // Time since the run started
	PerStep   time.Duration // Mean step cost since the previous report
	Estimated time.Duration // PerStep extrapolated to the whole input
}

// Done reports whether the pool is exhausted.
func (p Progress) Done() bool { return p.Remaining == 0 }

// Reporter receives progress snapshots. Report is called from the goroutine
// running [Sequence] and should return quickly.
type Reporter interface {
	Report(Progress)
}

// ReporterFunc adapts a function to the [Reporter] interface.
type ReporterFunc func(Progress)

// Report calls f(p).
func (f ReporterFunc) Report(p Progress) { f(p) }

type nopReporter struct{}

func (nopReporter) Report(Progress) {}

// tracker samples step timings and forwards them to a Reporter.
type tracker struct {
	reporter Reporter
	every    int
	total    int
	step     int

	start    time.Time
	lastTime time.Time
	lastStep int
	now      func() time.Time
}

func newTracker(total int, every int, r Reporter) *tracker {
	now := time.Now()
	return &tracker{
		reporter: r,
		every:    every,
		total:    total,
		start:    now,
		lastTime: now,
		now:      time.Now,
	}
}

// advance records one placed photo.
func (t *tracker) advance(remaining int) {
	t.step++
	if t.step%t.every == 0 || remaining == 0 {
		t.emit(remaining)
	}
}

func (t *tracker) emit(remaining int) {
	now := t.now()
	var perStep time.Duration
	if steps := t.step - t.lastStep; steps > 0 {
		perStep = now.Sub(t.lastTime) / time.Duration(steps)
	}
	t.reporter.Report(Progress{
		Step:      t.step,
		Remaining: remaining,
		Total:     t.total,
		Elapsed:   now.Sub(t.start),
		PerStep:   perStep,
		Estimated: perStep * time.Duration(t.total),
	})
	t.lastTime = now
	t.lastStep = t.step
}
