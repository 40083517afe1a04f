// Package dot renders slideshows as Graphviz diagrams.
//
// A slideshow becomes a left-to-right chain of boxes, one per slide. Slides
// holding a vertical pair are drawn dashed, and each edge carries the
// transition score between its slides:
//
//	src := dot.ToDOT(show, score.Transitions(show), dot.Options{MaxSlides: 50})
//	svg, err := dot.RenderSVG(ctx, src)
//
// Large slideshows are truncated to [Options.MaxSlides] with a trailing
// summary node, since Graphviz layout time grows quickly with node count.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/slideshow/pkg/slides"
)

// DefaultMaxSlides bounds the diagram when Options.MaxSlides is zero.
const DefaultMaxSlides = 200

// Options configures diagram generation.
type Options struct {
	// MaxSlides is the number of slides drawn before truncating.
	// Zero means DefaultMaxSlides; negative means no limit.
	MaxSlides int

	// ShowTags adds each slide's tags to its label. Labels are used when
	// Vocabulary is set, tag counts otherwise.
	ShowTags bool

	// Vocabulary resolves tag identifiers to labels.
	Vocabulary *slides.Vocabulary
}

// ToDOT converts a slideshow to Graphviz DOT source. transitions[i] labels
// the edge from slide i to slide i+1; a short or nil slice leaves the
// remaining edges unlabelled.
func ToDOT(show []slides.Slide, transitions []int, opts Options) string {
	limit := opts.MaxSlides
	if limit == 0 {
		limit = DefaultMaxSlides
	}
	n := len(show)
	if limit > 0 && n > limit {
		n = limit
	}

	var buf bytes.Buffer
	buf.WriteString("digraph slideshow {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("\n")

	for i := 0; i < n; i++ {
		fmt.Fprintf(&buf, "  s%d [%s];\n", i, strings.Join(slideAttrs(show[i], opts), ", "))
	}
	if rest := len(show) - n; rest > 0 {
		fmt.Fprintf(&buf, "  more [label=%q, shape=plaintext, style=\"\"];\n", fmt.Sprintf("… %d more", rest))
	}

	buf.WriteString("\n")
	for i := 0; i+1 < n; i++ {
		if i < len(transitions) {
			fmt.Fprintf(&buf, "  s%d -> s%d [label=\"%d\"];\n", i, i+1, transitions[i])
		} else {
			fmt.Fprintf(&buf, "  s%d -> s%d;\n", i, i+1)
		}
	}
	if n > 0 && n < len(show) {
		fmt.Fprintf(&buf, "  s%d -> more [style=dotted];\n", n-1)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func slideAttrs(s slides.Slide, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", slideLabel(s, opts))}
	if s.IsPair() {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

func slideLabel(s slides.Slide, opts Options) string {
	ids := s.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	label := strings.Join(parts, " + ")
	if !opts.ShowTags {
		return label
	}
	if opts.Vocabulary != nil {
		return label + "\n" + strings.Join(opts.Vocabulary.Labels(s.Tags), " ")
	}
	return fmt.Sprintf("%s\n%d tags", label, s.Tags.Len())
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg element with one whose viewBox
// starts at the origin and whose size matches the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
