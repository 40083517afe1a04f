// Package store keeps a history of solved slideshows.
//
// Each solve can be saved as a [Run] holding the slide order, the score, and
// enough metadata to tell runs apart. Two backends are provided:
//   - [FileStore]: JSON files under a directory, for the CLI
//   - [MongoStore]: a MongoDB collection, for the HTTP server
//
// # Usage
//
//	st, err := store.NewFileStore("")  // ~/.config/slideshow/runs/
//	run := store.NewRun("a_example", result)
//	if err := st.Save(ctx, run); err != nil {
//	    return err
//	}
//	runs, err := st.List(ctx, 20)
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	errs "github.com/matzehuels/slideshow/pkg/errors"
	"github.com/matzehuels/slideshow/pkg/pipeline"
)

// Run is a saved slideshow.
type Run struct {
	ID        string        `json:"id"`
	Dataset   string        `json:"dataset"`
	InputHash string        `json:"input_hash"`
	Seed      uint64        `json:"seed"`
	Score     int           `json:"score"`
	Photos    int           `json:"photos"`
	Slides    [][]int       `json:"slides,omitempty"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewRun creates a Run with a fresh identifier from a pipeline result.
func NewRun(dataset string, res *pipeline.Result) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Dataset:   dataset,
		InputHash: res.InputHash,
		Seed:      res.Seed,
		Score:     res.Score,
		Photos:    len(res.Input.Photos),
		Slides:    res.Order(),
		Duration:  res.Stats.SequenceTime + res.Stats.ScoreTime,
		CreatedAt: time.Now().UTC(),
	}
}

// Store is the interface for run storage backends.
type Store interface {
	// Save stores a run, replacing any run with the same ID.
	Save(ctx context.Context, run *Run) error

	// Get retrieves a run by ID. A missing run is a RUN_NOT_FOUND error.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns up to limit runs, newest first, without their slide
	// order. A limit of zero returns every run.
	List(ctx context.Context, limit int) ([]*Run, error)

	// Delete removes a run. A missing run is a RUN_NOT_FOUND error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

func notFound(id string) error {
	return errs.New(errs.ErrCodeRunNotFound, "run %s not found", id)
}
