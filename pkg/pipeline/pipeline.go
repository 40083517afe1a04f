// Package pipeline runs the solve pipeline shared by the CLI and the HTTP
// server.
//
// # Architecture
//
// A run has three stages:
//
//  1. Sequence: order the photos greedily (pkg/slides/sequence)
//  2. Assemble: cut the sequence into slides (pkg/slides/assemble)
//  3. Score: validate the slideshow and sum its transitions (pkg/slides/score)
//
// Solved slideshows are cached by input content, seed, and the options that
// change the result, so repeated runs skip the sequencer.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, input, pipeline.Options{Seed: 7})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Score)
//
// Render a result in one of the output formats:
//
//	data, err := pipeline.Render(ctx, result, pipeline.FormatSVG, pipeline.RenderOptions{})
package pipeline

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	sio "github.com/matzehuels/slideshow/pkg/io"
	"github.com/matzehuels/slideshow/pkg/slides"
	"github.com/matzehuels/slideshow/pkg/slides/sequence"
)

const (
	// DefaultSeed is the default shuffle seed.
	DefaultSeed = uint64(42)

	// DefaultReportEvery is the number of steps between progress reports.
	DefaultReportEvery = sequence.DefaultReportEvery

	// DefaultParallelThreshold is the smallest pool searched in parallel.
	DefaultParallelThreshold = sequence.DefaultParallelThreshold
)

// Format constants for output formats.
const (
	FormatTxt  = "txt"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatTxt:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: txt, json, dot, svg)", format)
	}
	return nil
}

// Options configures a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Seed drives the shuffle. Zero means DefaultSeed.
	Seed uint64 `json:"seed,omitempty"`

	// Workers is the candidate search parallelism. Zero means GOMAXPROCS.
	Workers int `json:"workers,omitempty"`

	// ParallelThreshold is the smallest pool searched in parallel.
	ParallelThreshold int `json:"parallel_threshold,omitempty"`

	// ReportEvery is the number of steps between progress reports.
	ReportEvery int `json:"report_every,omitempty"`

	// DropUnpaired removes the last vertical photo when the vertical count
	// is odd instead of failing with UNPAIRED_VERTICAL.
	DropUnpaired bool `json:"drop_unpaired,omitempty"`

	// Refresh bypasses the result cache lookup. The fresh result is still
	// written back.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger       `json:"-"`
	Reporter sequence.Reporter `json:"-"`
}

// SetDefaults fills zero fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Workers == 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.ParallelThreshold == 0 {
		o.ParallelThreshold = DefaultParallelThreshold
	}
	if o.ReportEvery == 0 {
		o.ReportEvery = DefaultReportEvery
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option ranges.
func (o *Options) Validate() error {
	if o.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", o.Workers)
	}
	if o.ParallelThreshold < 0 {
		return fmt.Errorf("parallel_threshold must be non-negative, got %d", o.ParallelThreshold)
	}
	if o.ReportEvery < 0 {
		return fmt.Errorf("report_every must be non-negative, got %d", o.ReportEvery)
	}
	return nil
}

// ValidateAndSetDefaults validates o and then applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.Validate(); err != nil {
		return err
	}
	o.SetDefaults()
	return nil
}

func (o *Options) sequenceOptions() sequence.Options {
	return sequence.Options{
		Seed:              o.Seed,
		Workers:           o.Workers,
		ParallelThreshold: o.ParallelThreshold,
		ReportEvery:       o.ReportEvery,
		Reporter:          o.Reporter,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Input is the photo collection that was solved. With DropUnpaired it
	// may hold one photo less than the decoded input.
	Input *sio.Input

	// InputHash is the content hash of the solved input.
	InputHash string

	// Seed is the effective shuffle seed.
	Seed uint64

	// Dropped is the input-order index of the photo removed by
	// DropUnpaired, or -1.
	Dropped int

	// Slides is the assembled slideshow.
	Slides []slides.Slide

	// Transitions holds the score of each adjacent slide pair.
	Transitions []int

	// Score is the sum of Transitions.
	Score int

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the result came from cache.
	CacheInfo CacheInfo
}

// Order returns the slide identity lists of the result.
func (r *Result) Order() [][]int {
	out := make([][]int, len(r.Slides))
	for i, s := range r.Slides {
		out[i] = s.IDs()
	}
	return out
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Input        sio.Stats
	SlideCount   int
	SequenceTime time.Duration
	ScoreTime    time.Duration
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	ResultHit bool // Whether the slideshow came from cache
}
