package sequence

import (
	"context"
	"math/rand/v2"
	"runtime"
	"slices"

	errs "github.com/matzehuels/slideshow/pkg/errors"
	"github.com/matzehuels/slideshow/pkg/slides"
)

const (
	// DefaultReportEvery is the number of steps between progress reports.
	DefaultReportEvery = 1024

	// DefaultParallelThreshold is the smallest pool searched in parallel.
	// Below it the goroutine fan-out costs more than the scan.
	DefaultParallelThreshold = 4096
)

// Options configures [Sequence].
type Options struct {
	// Seed drives the initial shuffle. The same seed and input always give
	// the same sequence.
	Seed uint64

	// Workers is the number of goroutines used for the candidate search.
	// Zero means runtime.GOMAXPROCS(0); one disables parallel search.
	Workers int

	// ParallelThreshold is the smallest pool size searched in parallel.
	// Zero means DefaultParallelThreshold.
	ParallelThreshold int

	// ReportEvery is the number of steps between progress reports.
	// Zero means DefaultReportEvery.
	ReportEvery int

	// Reporter receives progress snapshots. Nil disables reporting.
	Reporter Reporter
}

func (o *Options) setDefaults() {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.ParallelThreshold <= 0 {
		o.ParallelThreshold = DefaultParallelThreshold
	}
	if o.ReportEvery <= 0 {
		o.ReportEvery = DefaultReportEvery
	}
	if o.Reporter == nil {
		o.Reporter = nopReporter{}
	}
}

// CheckPairable verifies that the vertical photos can all be paired.
// It returns an UNPAIRED_VERTICAL error when their count is odd.
func CheckPairable(photos []slides.Photo) error {
	vertical := 0
	for _, p := range photos {
		if p.IsVertical() {
			vertical++
		}
	}
	if vertical%2 != 0 {
		return errs.New(errs.ErrCodeUnpairedVertical,
			"%d vertical photos cannot be paired (count must be even)", vertical)
	}
	return nil
}

// Shuffle returns a copy of photos permuted by a PCG generator seeded with seed.
func Shuffle(photos []slides.Photo, seed uint64) []slides.Photo {
	out := slices.Clone(photos)
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Sequence orders photos greedily and returns the placed sequence. The input
// slice is not modified.
//
// Every vertical photo in the result is immediately followed by its vertical
// partner, so the sequence can be cut into slides from left to right.
//
// Sequence returns an UNPAIRED_VERTICAL error when the vertical count is odd,
// a DEGENERATE_STATE error if a partner cannot be found mid-run, and the
// context error if ctx is cancelled between steps. Empty input yields an
// empty sequence.
func Sequence(ctx context.Context, photos []slides.Photo, opts Options) ([]slides.Photo, error) {
	if err := CheckPairable(photos); err != nil {
		return nil, err
	}
	if len(photos) == 0 {
		return []slides.Photo{}, nil
	}
	opts.setDefaults()

	shuffled := Shuffle(photos, opts.Seed)
	placed := make([]slides.Photo, 0, len(shuffled))
	placed = append(placed, shuffled[0])
	mode := InitialMode(shuffled[0])

	candidates := newPool(shuffled[1:])
	search := newSearcher(opts.Workers, opts.ParallelThreshold)
	progress := newTracker(len(photos), opts.ReportEvery, opts.Reporter)

	for candidates.len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		last := placed[len(placed)-1]
		c, err := search.best(ctx, candidates.items, last, mode)
		if err != nil {
			return nil, err
		}
		if c.idx < 0 {
			return nil, errs.New(errs.ErrCodeDegenerateState,
				"no vertical partner left for photo %d (%d photos remaining)", last.ID, candidates.len())
		}

		photo := candidates.take(c.idx)
		placed = append(placed, photo)
		mode = mode.Next(photo)
		progress.advance(candidates.len())
	}
	return placed, nil
}
