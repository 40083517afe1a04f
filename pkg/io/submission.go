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

// WriteSubmission writes s in the submission format: the slide count, then
// one line of space-separated photo identities per slide.
func WriteSubmission(w io.Writer, s []slides.Slide) error {
	order := make([][]int, len(s))
	for i, slide := range s {
		order[i] = slide.IDs()
	}
	return WriteOrder(w, order)
}

// WriteOrder writes per-slide identity lists in the submission format.
func WriteOrder(w io.Writer, order [][]int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(order))
	for _, ids := range order {
		for i, id := range ids {
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(id))
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write submission: %w", err)
	}
	return nil
}

// ExportSubmission writes s to a submission file at path.
func ExportSubmission(path string, s []slides.Slide) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteSubmission(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadSubmission decodes a submission into per-slide identity lists.
//
// Each slide line must hold one or two integer identities. Whether the
// identities form a valid slideshow is left to the score package.
func ReadSubmission(r io.Reader) ([][]int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxToken)

	header, ok := nextLine(sc)
	if !ok {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "submission: missing slide count")
	}
	n, err := strconv.Atoi(header)
	if err != nil || n < 0 {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "submission: invalid slide count %q", header)
	}

	order := make([][]int, 0, n)
	for i := 0; i < n; i++ {
		line, ok := nextLine(sc)
		if !ok {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "submission: expected %d slides, got %d", n, i)
		}
		fields := strings.Fields(line)
		if len(fields) < 1 || len(fields) > 2 {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "slide %d: expected 1 or 2 photos, got %d", i, len(fields))
		}
		ids := make([]int, len(fields))
		for j, f := range fields {
			id, err := strconv.Atoi(f)
			if err != nil {
				return nil, errs.New(errs.ErrCodeInvalidFormat, "slide %d: invalid photo id %q", i, f)
			}
			ids[j] = id
		}
		order = append(order, ids)
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "read submission")
	}
	return order, nil
}

// ImportSubmission reads the submission file at path.
func ImportSubmission(path string) ([][]int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadSubmission(f)
}

// nextLine returns the next non-blank line.
func nextLine(sc *bufio.Scanner) (string, bool) {
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line, true
		}
	}
	return "", false
}
