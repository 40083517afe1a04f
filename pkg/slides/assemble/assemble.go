// Package assemble cuts a placed photo sequence into slides.
//
// The sequencer guarantees that every vertical photo is directly followed by
// its partner, so assembly is a single left-to-right walk. [FromIDs] rebuilds
// slides from identity lists, as stored in a result cache or read from a
// submission file.
package assemble

import (
	"fmt"

	errs "github.com/matzehuels/slideshow/pkg/errors"
	"github.com/matzehuels/slideshow/pkg/slides"
)

// Slides groups placed photos into slides. A vertical photo is combined with
// the photo that follows it; a horizontal photo becomes a slide on its own.
//
// A vertical photo in the last position has no partner and is reported as a
// CONSISTENCY_VIOLATION naming that photo. Orientation of the partner is not
// checked here; see score.Validate.
func Slides(placed []slides.Photo) ([]slides.Slide, error) {
	out := make([]slides.Slide, 0, len(placed))
	for i := 0; i < len(placed); {
		p := placed[i]
		if !p.IsVertical() {
			out = append(out, slides.FromOne(p))
			i++
			continue
		}
		if i+1 >= len(placed) {
			return nil, errs.NewViolation(p.ID, "vertical photo has no partner")
		}
		out = append(out, slides.FromTwo(p, placed[i+1]))
		i += 2
	}
	return out, nil
}

// FromIDs rebuilds slides from per-slide identity lists. Each list must hold
// one or two identities present in photos.
func FromIDs(order [][]int, photos []slides.Photo) ([]slides.Slide, error) {
	byID := make(map[int]slides.Photo, len(photos))
	for _, p := range photos {
		byID[p.ID] = p
	}
	lookup := func(id int) (slides.Photo, error) {
		p, ok := byID[id]
		if !ok {
			return slides.Photo{}, errs.NewViolation(id, "unknown photo identity")
		}
		return p, nil
	}

	out := make([]slides.Slide, 0, len(order))
	for i, ids := range order {
		switch len(ids) {
		case 1:
			p, err := lookup(ids[0])
			if err != nil {
				return nil, err
			}
			out = append(out, slides.FromOne(p))
		case 2:
			p, err := lookup(ids[0])
			if err != nil {
				return nil, err
			}
			q, err := lookup(ids[1])
			if err != nil {
				return nil, err
			}
			out = append(out, slides.FromTwo(p, q))
		default:
			return nil, errs.NewViolation(errs.NoPhoto,
				fmt.Sprintf("slide %d holds %d photos", i, len(ids)))
		}
	}
	return out, nil
}

// IDs flattens slides back into identity lists, the inverse of [FromIDs].
func IDs(s []slides.Slide) [][]int {
	out := make([][]int, len(s))
	for i, slide := range s {
		out[i] = slide.IDs()
	}
	return out
}
