package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Henrywch0714/restaurant-ordering/internal/models"
	"github.com/Henrywch0714/restaurant-ordering/internal/repository"
	"github.com/Henrywch0714/restaurant-ordering/internal/service"
)

// DishHandler handles menu-related HTTP requests
type DishHandler struct {
	service *service.DishService
	logger  *slog.Logger
}

// NewDishHandler creates a new dish handler
func NewDishHandler(service *service.DishService, logger *slog.Logger) *DishHandler {
	return &DishHandler{
		service: service,
		logger:  logger,
	}
}

// ListDishes handles GET /api/menu?category=
func (h *DishHandler) ListDishes(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	dishes, err := h.service.ListDishes(r.Context(), category)
	if err != nil {
		h.handleError(w, err, "failed to list dishes", "category", category)
		return
	}

	WriteJSON(w, http.StatusOK, models.ListDishesResponse{
		Success: true,
		Count:   len(dishes),
		Dishes:  dishes,
	}, h.logger)
}

// GetDish handles GET /api/menu/{dishId}
func (h *DishHandler) GetDish(w http.ResponseWriter, r *http.Request) {
	dishID := chi.URLParam(r, "dishId")

	dish, err := h.service.GetDish(r.Context(), dishID)
	if err != nil {
		h.handleError(w, err, "failed to get dish", "dish_id", dishID)
		return
	}

	WriteJSON(w, http.StatusOK, models.DishResponse{Success: true, Dish: dish}, h.logger)
}

// CreateDish handles POST /api/menu
func (h *DishHandler) CreateDish(w http.ResponseWriter, r *http.Request) {
	dish, err := decodeDish(w, r)
	if err != nil {
		h.logger.Warn("failed to decode dish", "error", err)
		WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body", err.Error(), h.logger)
		return
	}

	id, err := h.service.CreateDish(r.Context(), dish)
	if err != nil {
		h.handleError(w, err, "failed to create dish")
		return
	}

	h.logger.Info("dish created", "dish_id", id)
	WriteJSON(w, http.StatusCreated, models.CreateDishResponse{
		Success: true,
		Message: "Dish created successfully",
		ID:      id,
	}, h.logger)
}

// UpdateDish handles PUT /api/menu/{dishId}
// Only the supplied fields are overwritten.
func (h *DishHandler) UpdateDish(w http.ResponseWriter, r *http.Request) {
	dishID := chi.URLParam(r, "dishId")

	fields, err := decodeDish(w, r)
	if err != nil {
		h.logger.Warn("failed to decode dish update", "dish_id", dishID, "error", err)
		WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body", err.Error(), h.logger)
		return
	}

	if err := h.service.UpdateDish(r.Context(), dishID, fields); err != nil {
		h.handleError(w, err, "failed to update dish", "dish_id", dishID)
		return
	}

	h.logger.Info("dish updated", "dish_id", dishID, "fields", len(fields))
	WriteJSON(w, http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "Dish updated successfully",
	}, h.logger)
}

// DeleteDish handles DELETE /api/menu/{dishId}
func (h *DishHandler) DeleteDish(w http.ResponseWriter, r *http.Request) {
	dishID := chi.URLParam(r, "dishId")

	if err := h.service.DeleteDish(r.Context(), dishID); err != nil {
		h.handleError(w, err, "failed to delete dish", "dish_id", dishID)
		return
	}

	h.logger.Info("dish deleted", "dish_id", dishID)
	WriteJSON(w, http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "Dish deleted successfully",
	}, h.logger)
}

// handleError maps a service error to its envelope and status
func (h *DishHandler) handleError(w http.ResponseWriter, err error, msg string, attrs ...any) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		h.logger.Info(msg, append(attrs, "error", err)...)
		WriteError(w, http.StatusBadRequest, validationErr.Error(), h.logger)
	case errors.Is(err, repository.ErrDishNotFound):
		h.logger.Info(msg, append(attrs, "error", err)...)
		WriteError(w, http.StatusNotFound, "Dish not found", h.logger)
	case errors.Is(err, repository.ErrDatastoreUnavailable):
		h.logger.Error(msg, append(attrs, "error", err)...)
		WriteErrorMessage(w, http.StatusInternalServerError, "Database not connected",
			"MongoDB connection failed. Please check your connection string.", h.logger)
	default:
		h.logger.Error(msg, append(attrs, "error", err)...)
		WriteErrorMessage(w, http.StatusInternalServerError, "Database error", err.Error(), h.logger)
	}
}
