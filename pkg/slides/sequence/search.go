package sequence

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/slideshow/pkg/slides"
)

// candidate is a pool index with its similarity to the last placed photo.
// An index of -1 means no eligible photo was found.
type candidate struct {
	idx   int
	score int
}

var noCandidate = candidate{idx: -1, score: -1}

// better reports whether a should win over b: higher score first, then the
// lower pool index.
func better(a, b candidate) bool {
	if a.idx < 0 {
		return false
	}
	if b.idx < 0 {
		return true
	}
	if a.score != b.score {
		return a.score > b.score
	}
	return a.idx < b.idx
}

// scanRange finds the best eligible candidate in items[lo:hi].
func scanRange(items []slides.Photo, lo, hi int, last slides.Photo, mode Mode) candidate {
	best := noCandidate
	for i := lo; i < hi; i++ {
		p := items[i]
		if !mode.Eligible(p) {
			continue
		}
		c := candidate{idx: i, score: slides.Similarity(p.Tags, last.Tags)}
		if better(c, best) {
			best = c
		}
	}
	return best
}

// searcher runs the per-step best-candidate search, fanning out to workers
// for large pools.
type searcher struct {
	workers   int
	threshold int
	partial   []candidate
}

func newSearcher(workers, threshold int) *searcher {
	return &searcher{
		workers:   workers,
		threshold: threshold,
		partial:   make([]candidate, workers),
	}
}

// best returns the winning candidate for the current step.
func (s *searcher) best(ctx context.Context, items []slides.Photo, last slides.Photo, mode Mode) (candidate, error) {
	n := len(items)
	if s.workers <= 1 || n < s.threshold {
		return scanRange(items, 0, n, last, mode), nil
	}

	chunk := (n + s.workers - 1) / s.workers
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < s.workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, n)
		if lo >= hi {
			s.partial[w] = noCandidate
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s.partial[w] = scanRange(items, lo, hi, last, mode)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return noCandidate, err
	}

	best := noCandidate
	for _, c := range s.partial {
		if better(c, best) {
			best = c
		}
	}
	return best, nil
}
