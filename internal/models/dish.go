package models

// Dish is a menu item document. The schema is open: besides the required
// fields a dish may carry any caller-supplied attribute.
//
// Dishes returned to callers carry a string "id" holding the document's
// object identifier; the internal "_id" field is never exposed.
type Dish map[string]interface{}

// Field names with special meaning on a dish document.
const (
	FieldObjectID = "_id"
	FieldID       = "id"
	FieldCategory = "category"
)

// RequiredDishFields lists the fields every persisted dish must carry,
// in the order they are checked.
var RequiredDishFields = []string{"name", "description", "price", "category"}

// MissingField returns the first required field absent from the dish.
// Presence is all that is checked; a zero price or empty name is accepted.
func (d Dish) MissingField() (string, bool) {
	for _, field := range RequiredDishFields {
		if _, ok := d[field]; !ok {
			return field, true
		}
	}
	return "", false
}

// Clone returns a shallow copy of the dish.
func (d Dish) Clone() Dish {
	if d == nil {
		return nil
	}
	out := make(Dish, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// ListDishesResponse is the envelope returned by GET /api/menu.
type ListDishesResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Dishes  []Dish `json:"dishes"`
}

// DishResponse is the envelope returned by GET /api/menu/{id}.
type DishResponse struct {
	Success bool `json:"success"`
	Dish    Dish `json:"dish"`
}

// CreateDishResponse is the envelope returned by POST /api/menu.
type CreateDishResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// MessageResponse is the envelope returned by update and delete.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope returned on every failure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
