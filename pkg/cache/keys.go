package cache

// Keyer builds cache keys.
type Keyer interface {
	// ResultKey identifies a solved slideshow for an input and the options
	// that influence it.
	ResultKey(inputHash string, opts ResultKeyOpts) string
}

// ResultKeyOpts holds the options that change a solved slideshow.
// Worker count and progress settings never change the result.
type ResultKeyOpts struct {
	Seed         uint64 `json:"seed"`
	DropUnpaired bool   `json:"drop_unpaired"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey returns "result:" followed by a hash of the input hash and opts.
func (DefaultKeyer) ResultKey(inputHash string, opts ResultKeyOpts) string {
	return hashKey("result", inputHash, opts)
}
