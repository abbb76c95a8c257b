package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Henrywch0714/restaurant-ordering/internal/models"
)

var (
	ErrDishNotFound         = errors.New("dish not found")
	ErrDatastoreUnavailable = errors.New("datastore unavailable")
)

// DishRepository defines the interface for dish data access.
// Identifiers are resolved as an object id first and a legacy numeric id second.
type DishRepository interface {
	// List returns dishes ordered by legacy numeric id. An empty category matches every dish.
	List(ctx context.Context, category string) ([]models.Dish, error)
	GetByID(ctx context.Context, id string) (models.Dish, error)
	// Create stores the dish and returns its new object id.
	Create(ctx context.Context, dish models.Dish) (string, error)
	// Update overwrites only the supplied fields.
	Update(ctx context.Context, id string, fields models.Dish) error
	Delete(ctx context.Context, id string) error
}

// serializeDish replaces the internal _id with a string id.
func serializeDish(doc map[string]interface{}) models.Dish {
	if doc == nil {
		return nil
	}
	dish := models.Dish(doc)
	if oid, ok := dish[models.FieldObjectID]; ok {
		dish[models.FieldID] = idString(oid)
		delete(dish, models.FieldObjectID)
	}
	return dish
}

func idString(v interface{}) string {
	if oid, ok := v.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(v)
}

// writableFields drops fields callers may not set.
func writableFields(dish models.Dish) models.Dish {
	out := dish.Clone()
	delete(out, models.FieldObjectID)
	return out
}
