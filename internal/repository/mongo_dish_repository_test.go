package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Henrywch0714/restaurant-ordering/internal/models"
)

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func TestMongoDishRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("list serializes object ids", func(mt *mtest.T) {
		repo := NewMongoDishRepository(mt.Coll, time.Second)
		first := primitive.NewObjectID()
		second := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: first}, {Key: "id", Value: 1}, {Key: "name", Value: "Spring Rolls"}, {Key: "category", Value: "appetizers"}},
			bson.D{{Key: "_id", Value: second}, {Key: "id", Value: 2}, {Key: "name", Value: "Cucumber Salad"}, {Key: "category", Value: "appetizers"}},
		))

		dishes, err := repo.List(context.Background(), "appetizers")
		require.NoError(mt, err)
		require.Len(mt, dishes, 2)

		assert.Equal(mt, first.Hex(), dishes[0]["id"])
		assert.Equal(mt, "Spring Rolls", dishes[0]["name"])
		assert.NotContains(mt, dishes[0], "_id")
		assert.Equal(mt, second.Hex(), dishes[1]["id"])
	})

	mt.Run("list empty collection", func(mt *mtest.T) {
		repo := NewMongoDishRepository(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		dishes, err := repo.List(context.Background(), "")
		require.NoError(mt, err)
		assert.NotNil(mt, dishes)
		assert.Empty(mt, dishes)
	})

	mt.Run("list passes driver errors through", func(mt *mtest.T) {
		repo := NewMongoDishRepository(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad sort specification",
		}))

		_, err := repo.List(context.Background(), "")
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrDatastoreUnavailable)
		assert.Contains(mt, err.Error(), "bad sort specification")
	})

	noRetries := mtest.NewOptions().ClientOptions(options.Client().SetRetryReads(false).SetRetryWrites(false))

	mt.RunOpts("list network error is datastore unavailable", noRetries, func(mt *mtest.T) {
		repo := NewMongoDishRepository(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    6,
			Name:    "HostUnreachable",
			Message: "connection reset by peer",
			Labels:  []string{"NetworkError"},
		}))

		_, err := repo.List(context.Background(), "")
		require.Error(mt, err)
		assert.ErrorIs(mt, err, ErrDatastoreUnavailable)
	})

	mt.RunOpts("delete network error is datastore unavailable", noRetries, func(mt *mtest.T) {
		repo := NewMongoDishRepository(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    6,
			Name:    "HostUnreachable",
			Message: "connection reset by peer",
			Labels:  []string{"NetworkError"},
		}))

		err := repo.Delete(context.Background(), "5")
		assert.ErrorIs(mt, err, ErrDatastoreUnavailable)
		assert.NotErrorIs(mt, err, ErrDishNotFound)
	})

	mt.Run("get by object id", func(mt *mtest.T) {
		repo := NewMongoDishRepository(mt.Coll, time.Second)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: oid}, {Key: "name", Value: "Mapo Tofu"}, {Key: "price", Value: 12.5}},
		))

		dish, err := repo.GetByID(context.Background(), oid.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), dish["id"])
		assert.Equal(mt, 12.5, dish["price"])
	})

	mt.Run("get falls back to legacy id", func(mt *mtest.T) {
		repo := NewMongoDishRepository(mt.Coll, time.Second)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch),
			mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
				bson.D{{Key: "_id", Value: oid}, {Key: "id", Value: 1}, {Key: "name", Value: "Spring Rolls"}},
			),
		)

		dish, err := repo.GetByID(context.Background(), "000000000000000000000001")
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), dish["id"])
		assert.Equal(mt, "Spring Rolls", dish["name"])
	})

	mt.Run("get not found", func(mt *mtest.T) {
		repo := NewMongoDishRepository(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), "404")
		assert.ErrorIs(mt, err, ErrDishNotFound)
	})

	mt.Run("get unparseable id is not found", func(mt *mtest.T) {
		repo := NewMongoDishRepository(mt.Coll, time.Second)

		_, err := repo.GetByID(context.Background(), "kung-pao")
		assert.ErrorIs(mt, err, ErrDishNotFound)
	})

	mt.Run("create returns object id", func(mt *mtest.T) {
		repo := NewMongoDishRepository(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := repo.Create(context.Background(), models.Dish{
			"name": "A", "description": "d", "price": 1.0, "category": "c",
		})
		require.NoError(mt, err)

		_, err = primitive.ObjectIDFromHex(id)
		assert.NoError(mt, err)
	})

	mt.Run("create duplicate key error", func(mt *mtest.T) {
		repo := NewMongoDishRepository(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := repo.Create(context.Background(), models.Dish{"name": "A"})
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "duplicate key error")
	})

	mt.Run("update matched", func(mt *mtest.T) {
		repo := NewMongoDishRepository(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		err := repo.Update(context.Background(), primitive.NewObjectID().Hex(), models.Dish{"price": 2.0})
		assert.NoError(mt, err)
	})

	mt.Run("update not matched", func(mt *mtest.T) {
		repo := NewMongoDishRepository(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.Update(context.Background(), "77", models.Dish{"price": 2.0})
		assert.ErrorIs(mt, err, ErrDishNotFound)
	})

	mt.Run("empty update checks existence", func(mt *mtest.T) {
		repo := NewMongoDishRepository(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "n", Value: 1}},
		))

		err := repo.Update(context.Background(), "3", models.Dish{})
		assert.NoError(mt, err)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewMongoDishRepository(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(mt, repo.Delete(context.Background(), "5"))
	})

	mt.Run("delete not found", func(mt *mtest.T) {
		repo := NewMongoDishRepository(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		assert.ErrorIs(mt, repo.Delete(context.Background(), "5"), ErrDishNotFound)
	})
}
