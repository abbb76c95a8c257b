package service

import (
	"context"
	"fmt"

	"github.com/Henrywch0714/restaurant-ordering/internal/models"
	"github.com/Henrywch0714/restaurant-ordering/internal/repository"
)

// AllCategories is the category filter value that disables filtering.
// It is never matched against a dish's literal category.
const AllCategories = "all"

// ValidationError reports a required field missing from a new dish
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Missing required field: %s", e.Field)
}

// DishService handles business logic for menu dishes
type DishService struct {
	repo repository.DishRepository
}

// NewDishService creates a new dish service
func NewDishService(repo repository.DishRepository) *DishService {
	return &DishService{
		repo: repo,
	}
}

// ListDishes returns every dish, or only those in category.
// An empty category or "all" means no filter.
func (s *DishService) ListDishes(ctx context.Context, category string) ([]models.Dish, error) {
	if category == AllCategories {
		category = ""
	}
	return s.repo.List(ctx, category)
}

// GetDish returns a dish by object id or legacy numeric id
func (s *DishService) GetDish(ctx context.Context, id string) (models.Dish, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateDish validates required fields and stores the dish
func (s *DishService) CreateDish(ctx context.Context, dish models.Dish) (string, error) {
	if field, missing := dish.MissingField(); missing {
		return "", &ValidationError{Field: field}
	}
	return s.repo.Create(ctx, dish)
}

// UpdateDish overwrites the supplied fields of a dish
func (s *DishService) UpdateDish(ctx context.Context, id string, fields models.Dish) error {
	return s.repo.Update(ctx, id, fields)
}

// DeleteDish removes a dish
func (s *DishService) DeleteDish(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
