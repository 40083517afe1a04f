package sequence

import "github.com/matzehuels/slideshow/pkg/slides"

// Mode is the pairing state of the sequencer.
type Mode int

const (
	// FreeChoice allows any remaining photo to be placed next.
	FreeChoice Mode = iota
	// SeekingPartner restricts the next photo to vertical ones.
	SeekingPartner
)

// String returns the mode name.
func (m Mode) String() string {
	if m == SeekingPartner {
		return "SeekingPartner"
	}
	return "FreeChoice"
}

// InitialMode returns the mode after first has been placed at the start of
// the sequence.
func InitialMode(first slides.Photo) Mode {
	return FreeChoice.Next(first)
}

// Next returns the mode after placed has been appended in mode m.
func (m Mode) Next(placed slides.Photo) Mode {
	if m == SeekingPartner {
		return FreeChoice
	}
	if placed.IsVertical() {
		return SeekingPartner
	}
	return FreeChoice
}

// Eligible reports whether p may be placed next in mode m.
func (m Mode) Eligible(p slides.Photo) bool {
	return m == FreeChoice || p.IsVertical()
}
