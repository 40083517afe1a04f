// Package slides provides the photo and slide model used to build
// slideshows, together with the tag similarity metric that scores
// transitions between consecutive slides.
//
// # Overview
//
// A slideshow is an ordered sequence of slides. Each slide shows either one
// horizontal photo or two vertical photos side by side. Every photo carries a
// set of tags, and the quality of a transition between two slides is measured
// by [Similarity] over their combined tag sets.
//
// Tags are interned to small integers by a [Vocabulary] during ingestion, so
// the model only ever deals with sorted integer sets ([TagSet]).
//
// # Basic Usage
//
//	a := slides.Photo{ID: 0, Orientation: slides.Horizontal, Tags: slides.NewTagSet(1, 2)}
//	b := slides.Photo{ID: 1, Orientation: slides.Vertical, Tags: slides.NewTagSet(2)}
//	c := slides.Photo{ID: 2, Orientation: slides.Vertical, Tags: slides.NewTagSet(3)}
//
//	show := []slides.Slide{slides.FromOne(a), slides.FromTwo(b, c)}
//	fmt.Println(show[0].Similarity(show[1]))
//
// # Subpackages
//
//   - [github.com/matzehuels/slideshow/pkg/slides/sequence]: greedy photo ordering
//   - [github.com/matzehuels/slideshow/pkg/slides/assemble]: ordered photos to slides
//   - [github.com/matzehuels/slideshow/pkg/slides/score]: validation and scoring
//
// # Concurrency
//
// Photos, tag sets and slides are immutable after construction and may be
// shared freely between goroutines. [Vocabulary] is not safe for concurrent use.
package slides
