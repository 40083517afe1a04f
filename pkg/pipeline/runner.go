package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/slideshow/pkg/cache"
	errs "github.com/matzehuels/slideshow/pkg/errors"
	sio "github.com/matzehuels/slideshow/pkg/io"
	"github.com/matzehuels/slideshow/pkg/observability"
	"github.com/matzehuels/slideshow/pkg/slides"
	"github.com/matzehuels/slideshow/pkg/slides/assemble"
	"github.com/matzehuels/slideshow/pkg/slides/score"
	"github.com/matzehuels/slideshow/pkg/slides/sequence"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedResult is the cache payload of a solved slideshow.
type cachedResult struct {
	Order [][]int `json:"order"`
}

// Execute solves in: sequence → assemble → score, with result caching.
func (r *Runner) Execute(ctx context.Context, in *sio.Input, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid options")
	}

	hash, err := HashInput(in)
	if err != nil {
		return nil, fmt.Errorf("hash input: %w", err)
	}

	work, dropped := r.prepareInput(in, opts)
	result := &Result{
		Input:     work,
		InputHash: hash,
		Seed:      opts.Seed,
		Dropped:   dropped,
	}
	result.Stats.Input = work.Stats()

	// Stage 1+2: Sequence and assemble
	seqStart := time.Now()
	show, hit, err := r.SlidesWithCacheInfo(ctx, work, hash, opts)
	if err != nil {
		return nil, err
	}
	result.Slides = show
	result.Stats.SequenceTime = time.Since(seqStart)
	result.Stats.SlideCount = len(show)
	result.CacheInfo.ResultHit = hit

	opts.Logger.Info("sequenced photos",
		"photos", len(work.Photos),
		"slides", len(show),
		"cached", hit,
		"duration", result.Stats.SequenceTime)

	// Stage 3: Score
	scoreStart := time.Now()
	observability.Pipeline().OnScoreStart(ctx, len(show))
	total, err := score.EvaluatePhotos(show, work.Photos)
	result.Stats.ScoreTime = time.Since(scoreStart)
	observability.Pipeline().OnScoreComplete(ctx, len(show), total, result.Stats.ScoreTime, err)
	if err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}
	result.Score = total
	result.Transitions = score.Transitions(show)

	opts.Logger.Info("scored slideshow",
		"score", total,
		"duration", result.Stats.ScoreTime)

	return result, nil
}

// SlidesWithCacheInfo returns the slideshow for in, from cache when
// possible, and whether it was a cache hit. hash is the content hash of the
// input before any photos were dropped.
func (r *Runner) SlidesWithCacheInfo(ctx context.Context, in *sio.Input, hash string, opts Options) ([]slides.Slide, bool, error) {
	key := r.Keyer.ResultKey(hash, cache.ResultKeyOpts{
		Seed:         opts.Seed,
		DropUnpaired: opts.DropUnpaired,
	})

	if !opts.Refresh {
		if show, ok := r.lookup(ctx, key, in, opts.Logger); ok {
			return show, true, nil
		}
	}

	observability.Pipeline().OnSequenceStart(ctx, len(in.Photos))
	start := time.Now()
	placed, err := sequence.Sequence(ctx, in.Photos, opts.sequenceOptions())
	observability.Pipeline().OnSequenceComplete(ctx, len(in.Photos), time.Since(start), err)
	if err != nil {
		return nil, false, fmt.Errorf("sequence: %w", err)
	}

	show, err := assemble.Slides(placed)
	if err != nil {
		return nil, false, fmt.Errorf("assemble: %w", err)
	}

	if data, err := json.Marshal(cachedResult{Order: assemble.IDs(show)}); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLResult); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "result", len(data))
		}
	}
	return show, false, nil
}

// lookup reads a cached slideshow. Unreadable or stale entries count as a
// miss.
func (r *Runner) lookup(ctx context.Context, key string, in *sio.Input, logger *log.Logger) ([]slides.Slide, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "result")
		return nil, false
	}

	var cached cachedResult
	if err := json.Unmarshal(data, &cached); err != nil {
		observability.Cache().OnCacheMiss(ctx, "result")
		return nil, false
	}
	show, err := assemble.FromIDs(cached.Order, in.Photos)
	if err == nil {
		err = score.ValidatePhotos(show, in.Photos)
	}
	if err != nil {
		logger.Debug("discarding cached result", "err", err)
		observability.Cache().OnCacheMiss(ctx, "result")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "result")
	return show, true
}

// Score validates and scores an externally produced slideshow given as
// per-slide identity lists. With opts.DropUnpaired the input is reduced the
// same way Execute reduces it, so the output of a dropping run scores.
// Only DropUnpaired and Logger are read from opts.
func (r *Runner) Score(ctx context.Context, in *sio.Input, order [][]int, opts Options) (int, []slides.Slide, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	work, _ := r.prepareInput(in, opts)

	show, err := assemble.FromIDs(order, work.Photos)
	if err != nil {
		return 0, nil, err
	}

	start := time.Now()
	observability.Pipeline().OnScoreStart(ctx, len(show))
	total, err := score.EvaluatePhotos(show, work.Photos)
	observability.Pipeline().OnScoreComplete(ctx, len(show), total, time.Since(start), err)
	if err != nil {
		return 0, nil, err
	}
	return total, show, nil
}

// prepareInput applies DropUnpaired. It returns the input to solve and the
// identity of the dropped photo, or -1.
func (r *Runner) prepareInput(in *sio.Input, opts Options) (*sio.Input, int) {
	if !opts.DropUnpaired || sequence.CheckPairable(in.Photos) == nil {
		return in, -1
	}
	last := -1
	for _, p := range in.Photos {
		if p.IsVertical() {
			last = p.ID
		}
	}
	opts.Logger.Warn("odd number of vertical photos, dropping the last one", "photo", last)
	return in.Subset(func(p slides.Photo) bool { return p.ID != last }), last
}

// HashInput returns the content hash of in, computed over its canonical
// text encoding.
func HashInput(in *sio.Input) (string, error) {
	var buf bytes.Buffer
	if err := sio.WriteInput(&buf, in); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
