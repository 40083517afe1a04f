package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	errs "github.com/matzehuels/slideshow/pkg/errors"
	"github.com/matzehuels/slideshow/pkg/slides"
)

// maxToken bounds a single tag label.
const maxToken = 1 << 20

// Input is a decoded photo collection.
type Input struct {
	Photos     []slides.Photo
	Vocabulary *slides.Vocabulary
}

// Stats summarizes an input.
type Stats struct {
	Photos     int
	Horizontal int
	Vertical   int
	Tags       int
}

// Stats counts photos by orientation and distinct tags.
func (in *Input) Stats() Stats {
	s := Stats{Photos: len(in.Photos)}
	for _, p := range in.Photos {
		if p.IsVertical() {
			s.Vertical++
		} else {
			s.Horizontal++
		}
	}
	if in.Vocabulary != nil {
		s.Tags = in.Vocabulary.Len()
	}
	return s
}

type tokenizer struct {
	sc *bufio.Scanner
}

func (t *tokenizer) next() (string, bool) {
	if !t.sc.Scan() {
		return "", false
	}
	return t.sc.Text(), true
}

func (t *tokenizer) int() (int, bool) {
	tok, ok := t.next()
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Counts in the input are untrusted; slices grow past these hints by appending.
const (
	maxPhotoHint = 1 << 16
	maxTagHint   = 64
)

// ReadInput decodes a photo collection from r.
//
// ReadInput returns an INVALID_FORMAT error if the header is missing, a
// record is truncated, an orientation is not H or V, a tag count is not a
// non-negative integer, or a photo has no tags. ReadInput does not close r.
func ReadInput(r io.Reader) (*Input, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxToken)
	sc.Split(bufio.ScanWords)
	t := &tokenizer{sc: sc}

	n, ok := t.int()
	if !ok {
		if err := sc.Err(); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "read header")
		}
		return nil, errs.New(errs.ErrCodeInvalidFormat, "missing or invalid photo count")
	}

	in := &Input{
		Photos:     make([]slides.Photo, 0, min(n, maxPhotoHint)),
		Vocabulary: slides.NewVocabulary(),
	}
	for idx := 0; idx < n; idx++ {
		p, err := readPhoto(t, idx, in.Vocabulary)
		if err != nil {
			if scanErr := sc.Err(); scanErr != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidFormat, scanErr, "photo %d", idx)
			}
			return nil, err
		}
		in.Photos = append(in.Photos, p)
	}
	return in, nil
}

func readPhoto(t *tokenizer, idx int, vocab *slides.Vocabulary) (slides.Photo, error) {
	tok, ok := t.next()
	if !ok {
		return slides.Photo{}, errs.New(errs.ErrCodeInvalidFormat, "photo %d: unexpected end of input", idx)
	}
	o, ok := slides.ParseOrientation(tok)
	if !ok {
		return slides.Photo{}, errs.New(errs.ErrCodeInvalidFormat, "photo %d: orientation %q is not H or V", idx, tok)
	}
	count, ok := t.int()
	if !ok {
		return slides.Photo{}, errs.New(errs.ErrCodeInvalidFormat, "photo %d: missing or invalid tag count", idx)
	}
	if count == 0 {
		return slides.Photo{}, errs.New(errs.ErrCodeInvalidFormat, "photo %d: no tags", idx)
	}

	ids := make([]uint32, 0, min(count, maxTagHint))
	for range count {
		label, ok := t.next()
		if !ok {
			return slides.Photo{}, errs.New(errs.ErrCodeInvalidFormat,
				"photo %d: expected %d tags, got %d", idx, count, len(ids))
		}
		ids = append(ids, vocab.ID(label))
	}
	return slides.Photo{ID: idx, Orientation: o, Tags: slides.NewTagSet(ids...)}, nil
}

// ImportInput reads the input file at path.
// A missing file is reported as FILE_NOT_FOUND.
func ImportInput(path string) (*Input, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadInput(f)
}

// WriteInput encodes in back to the input format. Tag labels are written
// in identifier order, so the output is canonical for a given input. Without
// a vocabulary the numeric identifiers are written instead.
func WriteInput(w io.Writer, in *Input) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(in.Photos))
	for _, p := range in.Photos {
		var labels []string
		if in.Vocabulary != nil {
			labels = in.Vocabulary.Labels(p.Tags)
		} else {
			labels = make([]string, len(p.Tags))
			for i, id := range p.Tags {
				labels[i] = strconv.FormatUint(uint64(id), 10)
			}
		}
		fmt.Fprintf(bw, "%s %d %s\n", p.Orientation, len(labels), strings.Join(labels, " "))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write input: %w", err)
	}
	return nil
}

// Subset returns a copy of in holding only photos for which keep returns
// true. Photo identities are preserved, so they may no longer be contiguous.
func (in *Input) Subset(keep func(slides.Photo) bool) *Input {
	out := &Input{Vocabulary: in.Vocabulary}
	for _, p := range in.Photos {
		if keep(p) {
			out.Photos = append(out.Photos, p)
		}
	}
	return out
}
