package repository

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Henrywch0714/restaurant-ordering/internal/models"
)

// InMemoryDishRepository implements DishRepository with in-memory storage.
// It mirrors the MongoDB repository's semantics and backs MENU_STORE=memory.
type InMemoryDishRepository struct {
	mu     sync.RWMutex
	dishes []models.Dish
}

// NewInMemoryDishRepository creates an empty in-memory dish repository
func NewInMemoryDishRepository() *InMemoryDishRepository {
	return &InMemoryDishRepository{}
}

// NewSeededDishRepository creates an in-memory repository with sample dishes
// carrying legacy numeric ids.
func NewSeededDishRepository() *InMemoryDishRepository {
	seed := []models.Dish{
		{"id": 1, "name": "Spring Rolls", "description": "Crispy rolls filled with cabbage and carrot", "price": 6.5, "category": "appetizers"},
		{"id": 2, "name": "Cucumber Salad", "description": "Smashed cucumber with garlic and black vinegar", "price": 5.0, "category": "appetizers"},
		{"id": 3, "name": "Kung Pao Chicken", "description": "Diced chicken with peanuts and dried chili", "price": 14.0, "category": "mains"},
		{"id": 4, "name": "Mapo Tofu", "description": "Silken tofu in spicy bean sauce with minced pork", "price": 12.5, "category": "mains"},
		{"id": 5, "name": "Beef Noodle Soup", "description": "Braised beef shank over hand-pulled noodles", "price": 13.5, "category": "mains"},
		{"id": 6, "name": "Mango Pudding", "description": "Chilled mango pudding with evaporated milk", "price": 5.5, "category": "desserts"},
		{"id": 7, "name": "Sesame Balls", "description": "Glutinous rice balls with red bean paste", "price": 4.5, "category": "desserts"},
		{"id": 8, "name": "Jasmine Tea", "description": "A pot of hot jasmine green tea", "price": 3.0, "category": "drinks"},
		{"id": 9, "name": "Plum Juice", "description": "Smoked sour plum drink served cold", "price": 3.5, "category": "drinks"},
	}

	r := NewInMemoryDishRepository()
	for _, dish := range seed {
		dish[models.FieldObjectID] = primitive.NewObjectID()
		r.dishes = append(r.dishes, dish)
	}
	return r
}

// List returns dishes in the category ordered by legacy id. Dishes without a
// numeric id sort first, matching MongoDB's ordering of missing fields.
func (r *InMemoryDishRepository) List(ctx context.Context, category string) ([]models.Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dishes := make([]models.Dish, 0, len(r.dishes))
	for _, dish := range r.dishes {
		if category != "" && dish[models.FieldCategory] != category {
			continue
		}
		dishes = append(dishes, dish.Clone())
	}

	sort.SliceStable(dishes, func(i, j int) bool {
		a, aok := numericValue(dishes[i][models.FieldID])
		b, bok := numericValue(dishes[j][models.FieldID])
		if aok != bok {
			return !aok
		}
		return a < b
	})

	for i := range dishes {
		dishes[i] = serializeDish(dishes[i])
	}
	return dishes, nil
}

// GetByID returns a dish by object id or legacy numeric id
func (r *InMemoryDishRepository) GetByID(ctx context.Context, id string) (models.Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, err := r.find(id)
	if err != nil {
		return nil, err
	}
	return serializeDish(r.dishes[idx].Clone()), nil
}

// Create stores the dish under a new object id
func (r *InMemoryDishRepository) Create(ctx context.Context, dish models.Dish) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	oid := primitive.NewObjectID()
	doc := writableFields(dish)
	if doc == nil {
		doc = models.Dish{}
	}
	doc[models.FieldObjectID] = oid
	r.dishes = append(r.dishes, doc)

	return oid.Hex(), nil
}

// Update overwrites the supplied fields on the matched dish
func (r *InMemoryDishRepository) Update(ctx context.Context, id string, fields models.Dish) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, err := r.find(id)
	if err != nil {
		return err
	}

	updated := r.dishes[idx].Clone()
	for k, v := range writableFields(fields) {
		updated[k] = v
	}
	r.dishes[idx] = updated
	return nil
}

// Delete removes the matched dish
func (r *InMemoryDishRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, err := r.find(id)
	if err != nil {
		return err
	}

	r.dishes = append(r.dishes[:idx], r.dishes[idx+1:]...)
	return nil
}

// find returns the index of the dish id resolves to. Callers hold the lock.
func (r *InMemoryDishRepository) find(id string) (int, error) {
	idx := -1
	err := ParseDishID(id).Resolve(func(lookup Lookup) (bool, error) {
		for i, dish := range r.dishes {
			if lookup.Matches(dish) {
				idx = i
				return true, nil
			}
		}
		return false, nil
	})
	return idx, err
}
