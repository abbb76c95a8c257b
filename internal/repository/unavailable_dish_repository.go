package repository

import (
	"context"

	"github.com/Henrywch0714/restaurant-ordering/internal/models"
)

// UnavailableDishRepository stands in when the datastore could not be reached
// at startup. Every operation fails with ErrDatastoreUnavailable until restart.
type UnavailableDishRepository struct{}

func NewUnavailableDishRepository() *UnavailableDishRepository {
	return &UnavailableDishRepository{}
}

func (UnavailableDishRepository) List(context.Context, string) ([]models.Dish, error) {
	return nil, ErrDatastoreUnavailable
}

func (UnavailableDishRepository) GetByID(context.Context, string) (models.Dish, error) {
	return nil, ErrDatastoreUnavailable
}

func (UnavailableDishRepository) Create(context.Context, models.Dish) (string, error) {
	return "", ErrDatastoreUnavailable
}

func (UnavailableDishRepository) Update(context.Context, string, models.Dish) error {
	return ErrDatastoreUnavailable
}

func (UnavailableDishRepository) Delete(context.Context, string) error {
	return ErrDatastoreUnavailable
}
