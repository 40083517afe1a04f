package sequence

import "github.com/matzehuels/slideshow/pkg/slides"

// pool holds the photos that have not been placed yet. Order inside the pool
// carries no meaning beyond tie-breaking, which lets take remove in O(1) by
// moving the last photo into the freed slot.
type pool struct {
	items []slides.Photo
}

func newPool(photos []slides.Photo) *pool {
	return &pool{items: photos}
}

func (p *pool) len() int { return len(p.items) }

// take removes and returns the photo at index i.
func (p *pool) take(i int) slides.Photo {
	photo := p.items[i]
	last := len(p.items) - 1
	p.items[i] = p.items[last]
	p.items[last] = slides.Photo{}
	p.items = p.items[:last]
	return photo
}
