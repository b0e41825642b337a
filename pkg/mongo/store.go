package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type usageDocument struct {
	Key       string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Collection is the subset of *mongo.Collection the store needs.
type Collection interface {
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	UpdateOne(ctx context.Context, filter, update any, opts ...options.Lister[options.UpdateOneOptions]) (*mongo.UpdateResult, error)
}

// Store keeps one document per usage key, with the encoded record in "data".
type Store struct {
	coll Collection
	now  func() time.Time
}

// NewStore wraps a collection, usually client.Database(db).Collection(name).
func NewStore(coll Collection) *Store {
	if coll == nil {
		panic("mongo: collection is required")
	}
	return &Store{coll: coll, now: time.Now}
}

// Get returns the stored record, or nil, nil when there is none.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var doc usageDocument
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrStoreOperation, err)
	}
	return doc.Data, nil
}

// Set upserts the document for key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "data", Value: value},
		{Key: "updated_at", Value: s.now().UTC()},
	}}}
	_, err := s.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: key}}, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return errors.Join(ErrStoreOperation, err)
	}
	return nil
}
