package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dineline/dineline-backend/internal/models"
	"github.com/dineline/dineline-backend/internal/storage"
)

// RestaurantHandler serves restaurant registration and lookup
type RestaurantHandler struct {
	store storage.Store
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(store storage.Store) *RestaurantHandler {
	return &RestaurantHandler{store: store}
}

// Create registers a restaurant tenant
func (h *RestaurantHandler) Create(c *fiber.Ctx) error {
	var restaurant models.Restaurant
	if err := c.BodyParser(&restaurant); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if restaurant.Name == "" || restaurant.WhatsAppNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name and whatsapp_number are required"})
	}

	created, err := h.store.CreateRestaurant(&restaurant)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// Get returns one restaurant by ID
func (h *RestaurantHandler) Get(c *fiber.Ctx) error {
	restaurant, err := h.store.GetRestaurant(c.Params("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Restaurant not found"})
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(restaurant)
}
