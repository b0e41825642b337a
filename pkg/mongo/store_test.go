package mongo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	driver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/memberkit/pkg/mongo"
)

type MockCollection struct {
	mock.Mock
}

func (m *MockCollection) FindOne(ctx context.Context, filter any, _ ...options.Lister[options.FindOneOptions]) *driver.SingleResult {
	return m.Called(ctx, filter).Get(0).(*driver.SingleResult)
}

func (m *MockCollection) UpdateOne(ctx context.Context, filter, update any, opts ...options.Lister[options.UpdateOneOptions]) (*driver.UpdateResult, error) {
	args := m.Called(ctx, filter, update, opts)
	res, _ := args.Get(0).(*driver.UpdateResult)
	return res, args.Error(1)
}

func byID(key string) any {
	return bson.D{{Key: "_id", Value: key}}
}

func TestStore_Get(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		coll := &MockCollection{}
		doc := bson.D{{Key: "_id", Value: "usage:u1:basic"}, {Key: "data", Value: []byte(`{"goals":1}`)}}
		coll.On("FindOne", mock.Anything, byID("usage:u1:basic")).
			Return(driver.NewSingleResultFromDocument(doc, nil, nil))

		got, err := mongo.NewStore(coll).Get(ctx, "usage:u1:basic")
		require.NoError(t, err)
		assert.JSONEq(t, `{"goals":1}`, string(got))
		coll.AssertExpectations(t)
	})

	t.Run("absent key is nil without error", func(t *testing.T) {
		t.Parallel()
		coll := &MockCollection{}
		coll.On("FindOne", mock.Anything, byID("missing")).
			Return(driver.NewSingleResultFromDocument(bson.D{}, driver.ErrNoDocuments, nil))

		got, err := mongo.NewStore(coll).Get(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("driver error", func(t *testing.T) {
		t.Parallel()
		coll := &MockCollection{}
		coll.On("FindOne", mock.Anything, byID("k")).
			Return(driver.NewSingleResultFromDocument(bson.D{}, errors.New("server selection timeout"), nil))

		_, err := mongo.NewStore(coll).Get(ctx, "k")
		assert.ErrorIs(t, err, mongo.ErrStoreOperation)
	})
}

func TestStore_Set(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	upserts := mock.MatchedBy(func(opts []options.Lister[options.UpdateOneOptions]) bool {
		var o options.UpdateOneOptions
		for _, l := range opts {
			for _, fn := range l.List() {
				_ = fn(&o)
			}
		}
		return o.Upsert != nil && *o.Upsert
	})

	t.Run("upserts by key", func(t *testing.T) {
		t.Parallel()
		coll := &MockCollection{}
		coll.On("UpdateOne", mock.Anything, byID("usage:u1:basic"), mock.Anything, upserts).
			Return(&driver.UpdateResult{UpsertedCount: 1}, nil).Once()

		require.NoError(t, mongo.NewStore(coll).Set(ctx, "usage:u1:basic", []byte(`{}`)))
		coll.AssertExpectations(t)
	})

	t.Run("driver error", func(t *testing.T) {
		t.Parallel()
		coll := &MockCollection{}
		coll.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("not primary"))

		err := mongo.NewStore(coll).Set(ctx, "k", []byte(`{}`))
		assert.ErrorIs(t, err, mongo.ErrStoreOperation)
	})
}

func TestNewStore_PanicsOnNilCollection(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { mongo.NewStore(nil) })
}
