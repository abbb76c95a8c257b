package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Henrywch0714/restaurant-ordering/internal/models"
)

// MongoDishRepository implements DishRepository on a MongoDB collection
type MongoDishRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

// NewMongoDishRepository creates a repository over the given collection.
// Every operation is bounded by timeout.
func NewMongoDishRepository(collection *mongo.Collection, timeout time.Duration) *MongoDishRepository {
	return &MongoDishRepository{
		collection: collection,
		timeout:    timeout,
	}
}

// List returns dishes in the category, or all dishes when category is empty
func (r *MongoDishRepository) List(ctx context.Context, category string) ([]models.Dish, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{}
	if category != "" {
		filter[models.FieldCategory] = category
	}

	opts := options.Find().SetSort(bson.D{{Key: models.FieldID, Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, classifyError("list dishes", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, classifyError("decode dishes", err)
	}

	dishes := make([]models.Dish, 0, len(docs))
	for _, doc := range docs {
		dishes = append(dishes, serializeDish(doc))
	}
	return dishes, nil
}

// GetByID returns a dish by object id or legacy numeric id
func (r *MongoDishRepository) GetByID(ctx context.Context, id string) (models.Dish, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc bson.M
	err := ParseDishID(id).Resolve(func(lookup Lookup) (bool, error) {
		err := r.collection.FindOne(ctx, lookup.Filter()).Decode(&doc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		if err != nil {
			return false, classifyError("find dish", err)
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return serializeDish(doc), nil
}

// Create inserts the dish and returns the assigned object id
func (r *MongoDishRepository) Create(ctx context.Context, dish models.Dish) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc := bson.M(writableFields(dish))
	if doc == nil {
		doc = bson.M{}
	}
	doc[models.FieldObjectID] = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", classifyError("insert dish", err)
	}

	return idString(result.InsertedID), nil
}

// Update sets the supplied fields on the matched dish
func (r *MongoDishRepository) Update(ctx context.Context, id string, fields models.Dish) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	set := bson.M(writableFields(fields))

	return ParseDishID(id).Resolve(func(lookup Lookup) (bool, error) {
		// $set rejects an empty document; an empty update only has to find its target.
		if len(set) == 0 {
			count, err := r.collection.CountDocuments(ctx, lookup.Filter(), options.Count().SetLimit(1))
			if err != nil {
				return false, classifyError("find dish", err)
			}
			return count > 0, nil
		}

		result, err := r.collection.UpdateOne(ctx, lookup.Filter(), bson.M{"$set": set})
		if err != nil {
			return false, classifyError("update dish", err)
		}
		return result.MatchedCount > 0, nil
	})
}

// Delete removes the matched dish
func (r *MongoDishRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return ParseDishID(id).Resolve(func(lookup Lookup) (bool, error) {
		result, err := r.collection.DeleteOne(ctx, lookup.Filter())
		if err != nil {
			return false, classifyError("delete dish", err)
		}
		return result.DeletedCount > 0, nil
	})
}

// classifyError marks lost connections as ErrDatastoreUnavailable and wraps
// everything else with the failed operation.
func classifyError(op string, err error) error {
	if errors.Is(err, mongo.ErrClientDisconnected) || mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return fmt.Errorf("%w: %s: %v", ErrDatastoreUnavailable, op, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
