package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/slideshow/pkg/slides"
)

// Document is the JSON form of a solved slideshow.
type Document struct {
	Dataset     string     `json:"dataset,omitempty"`
	Seed        uint64     `json:"seed"`
	Score       int        `json:"score"`
	Slides      []SlideDoc `json:"slides"`
	Transitions []int      `json:"transitions"`
}

// SlideDoc is one slide in a [Document].
type SlideDoc struct {
	Photos []int    `json:"photos"`
	Tags   int      `json:"tags"`
	Labels []string `json:"labels,omitempty"`
}

// NewDocument builds a Document. When vocab is non-nil each slide lists its
// tag labels.
func NewDocument(s []slides.Slide, transitions []int, score int, seed uint64, vocab *slides.Vocabulary) Document {
	doc := Document{
		Seed:        seed,
		Score:       score,
		Slides:      make([]SlideDoc, len(s)),
		Transitions: transitions,
	}
	if doc.Transitions == nil {
		doc.Transitions = []int{}
	}
	for i, slide := range s {
		sd := SlideDoc{Photos: slide.IDs(), Tags: slide.Tags.Len()}
		if vocab != nil {
			sd.Labels = vocab.Labels(slide.Tags)
		}
		doc.Slides[i] = sd
	}
	return doc
}

// WriteJSON encodes doc as indented JSON to w.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes doc to a JSON file at path.
func ExportJSON(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(f, doc)
}
