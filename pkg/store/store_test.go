package store

import (
	"context"
	"math"
	"testing"
	"time"

	errs "github.com/matzehuels/slideshow/pkg/errors"
	sio "github.com/matzehuels/slideshow/pkg/io"
	"github.com/matzehuels/slideshow/pkg/pipeline"
	"github.com/matzehuels/slideshow/pkg/slides"
)

func testResult() *pipeline.Result {
	a := slides.Photo{ID: 0, Tags: slides.NewTagSet(1)}
	b := slides.Photo{ID: 1, Tags: slides.NewTagSet(1, 2)}
	return &pipeline.Result{
		Input:     &sio.Input{Photos: []slides.Photo{a, b}},
		InputHash: "abc",
		Seed:      7,
		Score:     1,
		Slides:    []slides.Slide{slides.FromOne(a), slides.FromOne(b)},
		Stats:     pipeline.Stats{SequenceTime: time.Millisecond, ScoreTime: time.Millisecond},
	}
}

func TestNewRun(t *testing.T) {
	run := NewRun("a_example", testResult())
	if err := errs.ValidateRunID(run.ID); err != nil {
		t.Errorf("ID %q is not a valid run id: %v", run.ID, err)
	}
	if run.Dataset != "a_example" || run.Seed != 7 || run.Score != 1 || run.Photos != 2 {
		t.Errorf("run = %+v", run)
	}
	if len(run.Slides) != 2 || run.Slides[1][0] != 1 {
		t.Errorf("Slides = %v", run.Slides)
	}
	if run.Duration != 2*time.Millisecond {
		t.Errorf("Duration = %v", run.Duration)
	}
	if NewRun("x", testResult()).ID == run.ID {
		t.Error("run IDs should be unique")
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	st, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	older := NewRun("first", testResult())
	older.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := NewRun("second", testResult())
	newer.CreatedAt = older.CreatedAt.Add(time.Hour)

	for _, r := range []*Run{older, newer} {
		if err := st.Save(ctx, r); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	got, err := st.Get(ctx, older.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Dataset != "first" || len(got.Slides) != 2 {
		t.Errorf("Get = %+v", got)
	}

	runs, err := st.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != newer.ID {
		t.Fatalf("List order wrong: %+v", runs)
	}
	if runs[0].Slides != nil {
		t.Error("List should drop slide order")
	}

	runs, _ = st.List(ctx, 1)
	if len(runs) != 1 {
		t.Errorf("List(1) = %d runs", len(runs))
	}

	if err := st.Delete(ctx, older.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Get(ctx, older.ID); !errs.Is(err, errs.ErrCodeRunNotFound) {
		t.Errorf("Get after Delete: err = %v, want RUN_NOT_FOUND", err)
	}
	if err := st.Delete(ctx, older.ID); !errs.Is(err, errs.ErrCodeRunNotFound) {
		t.Errorf("second Delete: err = %v, want RUN_NOT_FOUND", err)
	}
}

func TestFileStoreRejectsBadID(t *testing.T) {
	ctx := context.Background()
	st, _ := NewFileStore(t.TempDir())

	for _, id := range []string{"", "../etc/passwd", "ABC"} {
		if _, err := st.Get(ctx, id); !errs.Is(err, errs.ErrCodeInvalidInput) {
			t.Errorf("Get(%q): err = %v, want INVALID_INPUT", id, err)
		}
	}
	if err := st.Save(ctx, &Run{ID: "nope"}); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("Save with bad id: err = %v", err)
	}
}

func TestRunDocRoundTrip(t *testing.T) {
	run := NewRun("big", testResult())
	run.Seed = math.MaxUint64
	run.CreatedAt = run.CreatedAt.Truncate(time.Millisecond)

	back := toDoc(run).run()
	if back.Seed != run.Seed {
		t.Errorf("Seed = %d, want %d", back.Seed, run.Seed)
	}
	if back.Duration != run.Duration || back.ID != run.ID || len(back.Slides) != len(run.Slides) {
		t.Errorf("round trip = %+v, want %+v", back, run)
	}
}

func TestNewMongoStoreRequiresDatabase(t *testing.T) {
	_, err := NewMongoStore(context.Background(), MongoConfig{URI: "mongodb://localhost:27017"})
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}
