// Package pkg provides the core libraries for building photo slideshows.
//
// # Overview
//
// A slideshow is an ordered sequence of slides, each holding one horizontal
// photo or two vertical photos. Consecutive slides earn an interest factor
// computed from their tag sets, and the slideshow score is the sum over all
// transitions. The pkg directory is organized into four main areas:
//
//  1. [slides] - Domain logic (photos, tags, similarity, sequencing, scoring)
//  2. [io] - Input and submission formats
//  3. [pipeline] - Orchestration (read → sequence → assemble → score → render)
//  4. [cache] and [store] - Result caching and run history
//
// # Architecture
//
// The typical data flow:
//
//	Input file (N, then one photo per line)
//	         ↓
//	    [io] package (decode, intern tags)
//	         ↓
//	    [slides/sequence] package (shuffle + greedy nearest neighbor)
//	         ↓
//	    [slides/assemble] package (pair verticals into slides)
//	         ↓
//	    [slides/score] package (validate + score)
//	         ↓
//	    submission / JSON / DOT / SVG output
//
// # Quick Start
//
//	in, _ := io.ImportInput("a_example.txt")
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, _ := runner.Execute(ctx, in, pipeline.Options{Seed: 42})
//	_ = io.ExportSubmission("a_example.out", result.Slides)
//
// # Main Packages
//
// [slides] - Photo, Slide and Vocabulary types plus the interest factor
// between two tag sets.
//
// [slides/sequence] - Greedy photo ordering. Each step picks the unused
// photo most similar to the current tail, switching to partner search after
// an unpaired vertical.
//
// [slides/assemble] - Turns the placed photo sequence into slides and
// rebuilds slides from submission IDs.
//
// [slides/score] - Consistency checks and scoring of a finished slideshow.
//
// [render/dot] - Graphviz rendering of a slideshow as a chain of slides
// weighted by transition score.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Coded errors shared by every entry point.
//
// # Testing
//
//	go test ./...                  # All tests
//	go test ./pkg/slides/...       # Domain packages only
//
// [slides]: https://pkg.go.dev/github.com/matzehuels/slideshow/pkg/slides
// [slides/sequence]: https://pkg.go.dev/github.com/matzehuels/slideshow/pkg/slides/sequence
// [slides/assemble]: https://pkg.go.dev/github.com/matzehuels/slideshow/pkg/slides/assemble
// [slides/score]: https://pkg.go.dev/github.com/matzehuels/slideshow/pkg/slides/score
// [io]: https://pkg.go.dev/github.com/matzehuels/slideshow/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/slideshow/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/slideshow/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/slideshow/pkg/store
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/slideshow/pkg/render/dot
// [observability]: https://pkg.go.dev/github.com/matzehuels/slideshow/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/slideshow/pkg/errors
package pkg
