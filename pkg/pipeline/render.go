package pipeline

import (
	"bytes"
	"context"
	"fmt"

	sio "github.com/matzehuels/slideshow/pkg/io"
	"github.com/matzehuels/slideshow/pkg/render/dot"
)

// RenderOptions configures [Render].
type RenderOptions struct {
	// Dataset names the input in JSON output.
	Dataset string

	// MaxSlides bounds DOT and SVG diagrams; see dot.Options.
	MaxSlides int

	// ShowTags adds tag labels to diagram nodes and JSON slides.
	ShowTags bool
}

// Render encodes result in format.
func Render(ctx context.Context, result *Result, format string, opts RenderOptions) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch format {
	case FormatTxt:
		if err := sio.WriteSubmission(&buf, result.Slides); err != nil {
			return nil, err
		}
	case FormatJSON:
		doc := NewDocument(result, opts)
		if err := sio.WriteJSON(&buf, doc); err != nil {
			return nil, err
		}
	case FormatDOT:
		buf.WriteString(toDOT(result, opts))
	case FormatSVG:
		svg, err := dot.RenderSVG(ctx, toDOT(result, opts))
		if err != nil {
			return nil, fmt.Errorf("render svg: %w", err)
		}
		return svg, nil
	}
	return buf.Bytes(), nil
}

// NewDocument builds the JSON document for result.
func NewDocument(result *Result, opts RenderOptions) sio.Document {
	vocab := result.Input.Vocabulary
	if !opts.ShowTags {
		vocab = nil
	}
	doc := sio.NewDocument(result.Slides, result.Transitions, result.Score, result.Seed, vocab)
	doc.Dataset = opts.Dataset
	return doc
}

func toDOT(result *Result, opts RenderOptions) string {
	return dot.ToDOT(result.Slides, result.Transitions, dot.Options{
		MaxSlides:  opts.MaxSlides,
		ShowTags:   opts.ShowTags,
		Vocabulary: result.Input.Vocabulary,
	})
}
