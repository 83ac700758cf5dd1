// Package mongo stores boards as MongoDB documents keyed by board id.
package mongo

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/brainboard/pkg/layer"
	"github.com/matzehuels/brainboard/pkg/store"
)

const (
	// DefaultDatabase is used when Config.Database is empty.
	DefaultDatabase = "brainboard"
	// Collection holds one document per board.
	Collection = "boards"
)

// Config configures the MongoDB connection.
type Config struct {
	URI      string
	Database string
}

// document is the stored shape of a board.
type document struct {
	ID        string                 `bson:"_id"`
	Layers    map[string]layerRecord `bson:"layers"`
	LayerIDs  []string               `bson:"layerIds"`
	UpdatedAt time.Time              `bson:"updatedAt"`
}

type layerRecord struct {
	Type   int     `bson:"type"`
	X      float64 `bson:"x"`
	Y      float64 `bson:"y"`
	Width  float64 `bson:"width"`
	Height float64 `bson:"height"`
	Fill   struct {
		R, G, B uint8
	} `bson:"fill"`
	Lock  bool   `bson:"lock"`
	Hide  bool   `bson:"hide"`
	Value string `bson:"value,omitempty"`
}

func toDocument(boardID string, snap layer.Snapshot) document {
	doc := document{
		ID:        boardID,
		Layers:    make(map[string]layerRecord, snap.Len()),
		LayerIDs:  snap.LayerIDs,
		UpdatedAt: time.Now().UTC(),
	}
	for id, l := range snap.Layers {
		r := layerRecord{
			Type: int(l.Type), X: l.X, Y: l.Y, Width: l.Width, Height: l.Height,
			Lock: l.Lock, Hide: l.Hide, Value: l.Value,
		}
		r.Fill.R, r.Fill.G, r.Fill.B = l.Fill.R, l.Fill.G, l.Fill.B
		doc.Layers[id] = r
	}
	return doc
}

func (d document) snapshot() (layer.Snapshot, error) {
	snap := layer.New()
	for id, r := range d.Layers {
		snap.Layers[id] = layer.Layer{
			ID: id, Type: layer.Role(r.Type),
			X: r.X, Y: r.Y, Width: r.Width, Height: r.Height,
			Fill: layer.Color{R: r.Fill.R, G: r.Fill.G, B: r.Fill.B},
			Lock: r.Lock, Hide: r.Hide, Value: r.Value,
		}
	}
	if d.LayerIDs != nil {
		snap.LayerIDs = d.LayerIDs
	}
	if err := snap.Validate(); err != nil {
		return layer.Snapshot{}, err
	}
	return snap, nil
}

// Store persists boards to a MongoDB collection.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// New connects to MongoDB and checks the connection.
func New(ctx context.Context, cfg Config) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	db := cfg.Database
	if db == "" {
		db = DefaultDatabase
	}
	return &Store{client: client, coll: client.Database(db).Collection(Collection)}, nil
}

// classify marks network failures and timeouts as retryable.
func classify(err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return store.Retryable(err)
	}
	return err
}

func (s *Store) Load(ctx context.Context, boardID string) (layer.Snapshot, error) {
	var doc document
	err := store.Retry(ctx, func() error {
		err := s.coll.FindOne(ctx, bson.M{"_id": boardID}).Decode(&doc)
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return store.ErrNotFound
		}
		return classify(err)
	})
	if err != nil {
		return layer.Snapshot{}, store.Storage(err, "find board %s", boardID)
	}
	return doc.snapshot()
}

func (s *Store) Save(ctx context.Context, boardID string, snap layer.Snapshot) error {
	doc := toDocument(boardID, snap)
	err := store.Retry(ctx, func() error {
		_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": boardID}, doc, options.Replace().SetUpsert(true))
		return classify(err)
	})
	return store.Storage(err, "replace board %s", boardID)
}

func (s *Store) Delete(ctx context.Context, boardID string) error {
	err := store.Retry(ctx, func() error {
		_, err := s.coll.DeleteOne(ctx, bson.M{"_id": boardID})
		return classify(err)
	})
	return store.Storage(err, "delete board %s", boardID)
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, store.Storage(err, "find boards")
	}
	var rows []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, store.Storage(err, "read boards")
	}
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids, nil
}

func (s *Store) Close() error { return s.client.Disconnect(context.Background()) }

var _ store.Store = (*Store)(nil)
