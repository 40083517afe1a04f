package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/slideshow/pkg/cache"
	errs "github.com/matzehuels/slideshow/pkg/errors"
	sio "github.com/matzehuels/slideshow/pkg/io"
)

const example = `4
H 3 cat beach sun
V 2 selfie smile
V 2 garden selfie
H 2 garden cat
`

func readInput(t *testing.T, s string) *sio.Input {
	t.Helper()
	in, err := sio.ReadInput(strings.NewReader(s))
	if err != nil {
		t.Fatalf("ReadInput: %v", err)
	}
	return in
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"txt", false},
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", true},
		{"TXT", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if o.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", o.Seed, DefaultSeed)
	}
	if o.Workers < 1 {
		t.Errorf("Workers = %d, want >= 1", o.Workers)
	}
	if o.ReportEvery != DefaultReportEvery || o.ParallelThreshold != DefaultParallelThreshold {
		t.Errorf("defaults not applied: %+v", o)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	bad := Options{Workers: -1}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("negative workers should fail validation")
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), readInput(t, example), Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(res.Slides) != 3 {
		t.Fatalf("slides = %d, want 3", len(res.Slides))
	}
	pairs := 0
	for _, s := range res.Slides {
		if s.IsPair() {
			pairs++
		}
	}
	if pairs != 1 {
		t.Errorf("pairs = %d, want 1", pairs)
	}
	if res.Dropped != -1 {
		t.Errorf("Dropped = %d, want -1", res.Dropped)
	}
	if len(res.Transitions) != 2 {
		t.Errorf("transitions = %v", res.Transitions)
	}
	if sum := res.Transitions[0] + res.Transitions[1]; sum != res.Score {
		t.Errorf("Score = %d, transitions sum to %d", res.Score, sum)
	}
	if res.Stats.Input.Photos != 4 || res.Stats.SlideCount != 3 {
		t.Errorf("Stats = %+v", res.Stats)
	}
}

func TestExecuteEmpty(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), readInput(t, "0\n"), Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.Slides) != 0 || res.Score != 0 {
		t.Errorf("empty input: slides=%d score=%d", len(res.Slides), res.Score)
	}
}

func TestExecuteUnpaired(t *testing.T) {
	const odd = "4\nV 1 a\nH 1 b\nV 1 c\nV 1 d\n"
	r := NewRunner(nil, nil, nil)

	_, err := r.Execute(context.Background(), readInput(t, odd), Options{})
	if !errs.Is(err, errs.ErrCodeUnpairedVertical) {
		t.Fatalf("err = %v, want UNPAIRED_VERTICAL", err)
	}

	in := readInput(t, odd)
	res, err := r.Execute(context.Background(), in, Options{DropUnpaired: true})
	if err != nil {
		t.Fatalf("Execute with DropUnpaired: %v", err)
	}
	if res.Dropped != 3 {
		t.Errorf("Dropped = %d, want 3", res.Dropped)
	}
	if len(res.Input.Photos) != 3 {
		t.Errorf("solved photos = %d, want 3", len(res.Input.Photos))
	}
	for _, s := range res.Slides {
		for _, id := range s.IDs() {
			if id == 3 {
				t.Error("dropped photo appears in the slideshow")
			}
		}
	}
}

func TestExecuteCache(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	in := readInput(t, example)

	first, err := r.Execute(ctx, in, Options{Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.ResultHit {
		t.Error("first run should miss the cache")
	}

	second, err := r.Execute(ctx, in, Options{Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.ResultHit {
		t.Error("second run should hit the cache")
	}
	if second.Score != first.Score {
		t.Errorf("cached score = %d, want %d", second.Score, first.Score)
	}

	refreshed, err := r.Execute(ctx, in, Options{Seed: 3, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheInfo.ResultHit {
		t.Error("Refresh should bypass the cache")
	}

	other, err := r.Execute(ctx, in, Options{Seed: 4})
	if err != nil {
		t.Fatal(err)
	}
	if other.CacheInfo.ResultHit {
		t.Error("a different seed should miss the cache")
	}
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(ctx, readInput(t, example), Options{})
	if err == nil {
		t.Fatal("cancelled context should fail")
	}
}

func TestRunnerScore(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	in := readInput(t, example)

	total, show, err := r.Score(context.Background(), in, [][]int{{0}, {1, 2}, {3}}, Options{})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if len(show) != 3 {
		t.Errorf("slides = %d, want 3", len(show))
	}
	// {cat,beach,sun} -> {selfie,smile,garden}: 0
	// {selfie,smile,garden} -> {garden,cat}: c=1, |A|-c=2, |B|-c=1 -> 1
	if total != 1 {
		t.Errorf("score = %d, want 1", total)
	}

	_, _, err = r.Score(context.Background(), in, [][]int{{0}, {1}, {2}, {3}}, Options{})
	if !errs.Is(err, errs.ErrCodeConsistencyViolation) {
		t.Errorf("err = %v, want CONSISTENCY_VIOLATION", err)
	}
}

func TestRunnerScoreDropUnpaired(t *testing.T) {
	const odd = "3\nH 1 a\nV 1 a\nH 1 b\n"
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()
	in := readInput(t, odd)

	res, err := r.Execute(ctx, in, Options{DropUnpaired: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	order := res.Order()

	total, _, err := r.Score(ctx, in, order, Options{DropUnpaired: true})
	if err != nil {
		t.Fatalf("Score with DropUnpaired: %v", err)
	}
	if total != res.Score {
		t.Errorf("score = %d, want %d", total, res.Score)
	}

	_, _, err = r.Score(ctx, in, order, Options{})
	if !errs.Is(err, errs.ErrCodeConsistencyViolation) {
		t.Errorf("Score without DropUnpaired = %v, want CONSISTENCY_VIOLATION", err)
	}
}

func TestHashInput(t *testing.T) {
	a, err := HashInput(readInput(t, example))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := HashInput(readInput(t, strings.ReplaceAll(example, "\n", " ")))
	if a != b {
		t.Error("whitespace should not change the input hash")
	}
	c, _ := HashInput(readInput(t, strings.Replace(example, "sun", "moon", 1)))
	if a == c {
		t.Error("different labels should change the input hash")
	}
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(ctx, readInput(t, example), Options{})
	if err != nil {
		t.Fatal(err)
	}

	txt, err := Render(ctx, res, FormatTxt, RenderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	order, err := sio.ReadSubmission(bytes.NewReader(txt))
	if err != nil || len(order) != 3 {
		t.Errorf("txt round trip: %v, %v", order, err)
	}

	js, err := Render(ctx, res, FormatJSON, RenderOptions{Dataset: "example", ShowTags: true})
	if err != nil {
		t.Fatal(err)
	}
	var doc sio.Document
	if err := json.Unmarshal(js, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Dataset != "example" || doc.Score != res.Score || len(doc.Slides[0].Labels) == 0 {
		t.Errorf("document = %+v", doc)
	}

	src, err := Render(ctx, res, FormatDOT, RenderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(src), "digraph slideshow") {
		t.Errorf("dot = %s", src)
	}

	if _, err := Render(ctx, res, "png", RenderOptions{}); err == nil {
		t.Error("unsupported format should fail")
	}
}
