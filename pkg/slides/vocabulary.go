package slides

// Vocabulary interns tag labels to dense identifiers in first-seen order.
// Identifiers start at 0 and are contiguous.
//
// The zero value is not usable; create one with [NewVocabulary].
type Vocabulary struct {
	ids    map[string]uint32
	labels []string
}

// NewVocabulary creates an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{ids: make(map[string]uint32)}
}

// ID returns the identifier for label, assigning the next free one if the
// label has not been seen before.
func (v *Vocabulary) ID(label string) uint32 {
	if id, ok := v.ids[label]; ok {
		return id
	}
	id := uint32(len(v.labels))
	v.ids[label] = id
	v.labels = append(v.labels, label)
	return id
}

// Lookup returns the identifier for label without assigning one.
func (v *Vocabulary) Lookup(label string) (uint32, bool) {
	id, ok := v.ids[label]
	return id, ok
}

// Label returns the label for id, or "" if id has not been assigned.
func (v *Vocabulary) Label(id uint32) string {
	if int(id) >= len(v.labels) {
		return ""
	}
	return v.labels[id]
}

// Labels returns the labels of set in identifier order.
func (v *Vocabulary) Labels(set TagSet) []string {
	out := make([]string, 0, len(set))
	for _, id := range set {
		out = append(out, v.Label(id))
	}
	return out
}

// Len returns the number of distinct labels seen so far.
func (v *Vocabulary) Len() int { return len(v.ids) }
