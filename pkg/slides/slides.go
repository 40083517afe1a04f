package slides

import (
	"fmt"
	"slices"
)

// Orientation distinguishes photos that fill a slide on their own from
// photos that must share a slide with a partner.
type Orientation int

const (
	// Horizontal photos are shown alone on a slide.
	Horizontal Orientation = iota
	// Vertical photos are shown in pairs. A slide holds exactly two of them.
	Vertical
)

// String returns the single-letter code used by the input format ("H" or "V").
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "H"
	case Vertical:
		return "V"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// ParseOrientation converts an input-format code to an Orientation.
func ParseOrientation(s string) (Orientation, bool) {
	switch s {
	case "H":
		return Horizontal, true
	case "V":
		return Vertical, true
	}
	return 0, false
}

// TagSet is a sorted, duplicate-free set of tag identifiers.
//
// The zero value is the empty set. TagSets are never modified after
// construction; functions that combine sets return new ones.
type TagSet []uint32

// NewTagSet builds a TagSet from ids in any order. Duplicates are removed.
func NewTagSet(ids ...uint32) TagSet {
	if len(ids) == 0 {
		return nil
	}
	s := slices.Clone(ids)
	slices.Sort(s)
	return TagSet(slices.Compact(s))
}

// Len returns the number of tags in the set.
func (t TagSet) Len() int { return len(t) }

// Contains reports whether id is a member of the set.
func (t TagSet) Contains(id uint32) bool {
	_, ok := slices.BinarySearch(t, id)
	return ok
}

// Union returns a new set holding the tags of both t and o.
func (t TagSet) Union(o TagSet) TagSet {
	out := make(TagSet, 0, len(t)+len(o))
	i, j := 0, 0
	for i < len(t) && j < len(o) {
		switch {
		case t[i] < o[j]:
			out = append(out, t[i])
			i++
		case t[i] > o[j]:
			out = append(out, o[j])
			j++
		default:
			out = append(out, t[i])
			i++
			j++
		}
	}
	out = append(out, t[i:]...)
	return append(out, o[j:]...)
}

// Photo is a single tagged input item.
//
// ID is the photo's index in the original input order and is unique across
// one input collection.
type Photo struct {
	ID          int
	Orientation Orientation
	Tags        TagSet
}

// IsVertical reports whether the photo must be paired on a slide.
func (p Photo) IsVertical() bool { return p.Orientation == Vertical }

// Similarity scores p against other using [Similarity] with p's tags first.
func (p Photo) Similarity(other Photo) int {
	return Similarity(p.Tags, other.Tags)
}

// Slide is one or two photos shown together, plus the union of their tags.
//
// A valid slide holds a single horizontal photo (Second is nil) or two
// vertical photos. Constructors do not enforce this; see the score package.
type Slide struct {
	First  Photo
	Second *Photo
	Tags   TagSet
}

// FromOne creates a single-photo slide.
func FromOne(p Photo) Slide {
	return Slide{
		First: p,
		Tags:  slices.Clone(p.Tags),
	}
}

// FromTwo creates a two-photo slide whose tags are the union of both photos.
func FromTwo(p, q Photo) Slide {
	return Slide{
		First:  p,
		Second: &q,
		Tags:   p.Tags.Union(q.Tags),
	}
}

// IsPair reports whether the slide holds two photos.
func (s Slide) IsPair() bool { return s.Second != nil }

// IDs returns the photo identities on the slide in display order.
func (s Slide) IDs() []int {
	if s.Second == nil {
		return []int{s.First.ID}
	}
	return []int{s.First.ID, s.Second.ID}
}

// Similarity scores the transition from s to next.
func (s Slide) Similarity(next Slide) int {
	return Similarity(s.Tags, next.Tags)
}
