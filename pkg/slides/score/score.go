// Package score validates slideshows and computes their interest score.
//
// A slideshow is valid when every slide holds either one horizontal photo or
// two vertical photos, and every input photo appears on exactly one slide.
// Its score is the sum of [slides.Similarity] over adjacent slides.
package score

import (
	errs "github.com/matzehuels/slideshow/pkg/errors"
	"github.com/matzehuels/slideshow/pkg/slides"
)

// Rules reported in consistency violations.
const (
	RuleSingleNotHorizontal = "single-photo slide holds a vertical photo"
	RulePairNotVertical     = "two-photo slide holds a horizontal photo"
	RulePairSamePhoto       = "two-photo slide repeats the same photo"
	RuleDuplicate           = "photo appears on more than one slide"
	RuleOutOfRange          = "photo identity outside the input"
	RuleMissing             = "photo does not appear on any slide"
)

// Validate checks s against an input of total photos with identities
// 0..total-1. The first broken rule is returned as a CONSISTENCY_VIOLATION
// error carrying an errors.Violation.
func Validate(s []slides.Slide, total int) error {
	expected := make([]bool, max(total, 0))
	for i := range expected {
		expected[i] = true
	}
	return validate(s, expected)
}

// ValidatePhotos is like [Validate] but expects exactly the identities of
// photos, which need not be contiguous.
func ValidatePhotos(s []slides.Slide, photos []slides.Photo) error {
	size := 0
	for _, p := range photos {
		if p.ID < 0 {
			return errs.NewViolation(p.ID, RuleOutOfRange)
		}
		size = max(size, p.ID+1)
	}
	expected := make([]bool, size)
	for _, p := range photos {
		expected[p.ID] = true
	}
	return validate(s, expected)
}

// validate checks s against the identities i with expected[i] set.
func validate(s []slides.Slide, expected []bool) error {
	seen := make([]bool, len(expected))
	mark := func(id int) error {
		if id < 0 || id >= len(expected) || !expected[id] {
			return errs.NewViolation(id, RuleOutOfRange)
		}
		if seen[id] {
			return errs.NewViolation(id, RuleDuplicate)
		}
		seen[id] = true
		return nil
	}

	for _, slide := range s {
		if slide.Second == nil {
			if slide.First.IsVertical() {
				return errs.NewViolation(slide.First.ID, RuleSingleNotHorizontal)
			}
			if err := mark(slide.First.ID); err != nil {
				return err
			}
			continue
		}

		for _, p := range []slides.Photo{slide.First, *slide.Second} {
			if !p.IsVertical() {
				return errs.NewViolation(p.ID, RulePairNotVertical)
			}
		}
		if slide.First.ID == slide.Second.ID {
			return errs.NewViolation(slide.First.ID, RulePairSamePhoto)
		}
		if err := mark(slide.First.ID); err != nil {
			return err
		}
		if err := mark(slide.Second.ID); err != nil {
			return err
		}
	}

	for id, want := range expected {
		if want && !seen[id] {
			return errs.NewViolation(id, RuleMissing)
		}
	}
	return nil
}

// Score sums the similarity of every adjacent slide pair. Fewer than two
// slides score 0.
func Score(s []slides.Slide) int {
	total := 0
	for i := 0; i+1 < len(s); i++ {
		total += s[i].Similarity(s[i+1])
	}
	return total
}

// Transitions returns the similarity of each adjacent slide pair; element i
// scores the move from s[i] to s[i+1].
func Transitions(s []slides.Slide) []int {
	if len(s) < 2 {
		return []int{}
	}
	out := make([]int, len(s)-1)
	for i := range out {
		out[i] = s[i].Similarity(s[i+1])
	}
	return out
}

// Evaluate validates s and returns its score.
func Evaluate(s []slides.Slide, total int) (int, error) {
	if err := Validate(s, total); err != nil {
		return 0, err
	}
	return Score(s), nil
}

// EvaluatePhotos validates s with [ValidatePhotos] and returns its score.
func EvaluatePhotos(s []slides.Slide, photos []slides.Photo) (int, error) {
	if err := ValidatePhotos(s, photos); err != nil {
		return 0, err
	}
	return Score(s), nil
}
