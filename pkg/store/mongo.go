package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	errs "github.com/matzehuels/slideshow/pkg/errors"
)

// DefaultCollection is the MongoDB collection holding runs.
const DefaultCollection = "runs"

// MongoConfig configures a [MongoStore].
type MongoConfig struct {
	URI        string
	Database   string
	Collection string // defaults to DefaultCollection
}

// MongoStore keeps runs in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// runDoc is the BSON form of a Run. BSON has no unsigned 64-bit type, so the
// seed is stored bit-for-bit as an int64.
type runDoc struct {
	ID        string    `bson:"_id"`
	Dataset   string    `bson:"dataset"`
	InputHash string    `bson:"input_hash"`
	Seed      int64     `bson:"seed"`
	Score     int       `bson:"score"`
	Photos    int       `bson:"photos"`
	Slides    [][]int   `bson:"slides,omitempty"`
	Duration  int64     `bson:"duration_ns"`
	CreatedAt time.Time `bson:"created_at"`
}

func toDoc(r *Run) runDoc {
	return runDoc{
		ID:        r.ID,
		Dataset:   r.Dataset,
		InputHash: r.InputHash,
		Seed:      int64(r.Seed),
		Score:     r.Score,
		Photos:    r.Photos,
		Slides:    r.Slides,
		Duration:  int64(r.Duration),
		CreatedAt: r.CreatedAt,
	}
}

func (d runDoc) run() *Run {
	return &Run{
		ID:        d.ID,
		Dataset:   d.Dataset,
		InputHash: d.InputHash,
		Seed:      uint64(d.Seed),
		Score:     d.Score,
		Photos:    d.Photos,
		Slides:    d.Slides,
		Duration:  time.Duration(d.Duration),
		CreatedAt: d.CreatedAt,
	}
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "mongo database name is required")
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "ping mongo")
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "create index")
	}
	return &MongoStore{client: client, coll: coll}, nil
}

// Save upserts run by ID.
func (s *MongoStore) Save(ctx context.Context, run *Run) error {
	if err := errs.ValidateRunID(run.ID); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": run.ID}, toDoc(run), options.Replace().SetUpsert(true))
	if err != nil {
		return errs.Wrap(errs.ErrCodeNetwork, err, "save run %s", run.ID)
	}
	return nil
}

// Get loads the run with the given ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*Run, error) {
	if err := errs.ValidateRunID(id); err != nil {
		return nil, err
	}
	var doc runDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "get run %s", id)
	}
	return doc.run(), nil
}

// List returns runs newest first, leaving out the slide order.
func (s *MongoStore) List(ctx context.Context, limit int) ([]*Run, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"slides": 0})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "list runs")
	}
	defer cur.Close(ctx)

	var docs []runDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode runs: %w", err)
	}
	runs := make([]*Run, len(docs))
	for i, d := range docs {
		runs[i] = d.run()
	}
	return runs, nil
}

// Delete removes the run with the given ID.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := errs.ValidateRunID(id); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errs.Wrap(errs.ErrCodeNetwork, err, "delete run %s", id)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
