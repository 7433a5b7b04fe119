package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dineline/dineline-backend/internal/models"
	"github.com/dineline/dineline-backend/internal/storage"
)

// BookingHandler serves the dashboard view of table reservations
type BookingHandler struct {
	store storage.Store
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(store storage.Store) *BookingHandler {
	return &BookingHandler{store: store}
}

var validBookingStatuses = map[string]bool{
	models.BookingStatusPending:   true,
	models.BookingStatusConfirmed: true,
	models.BookingStatusCancelled: true,
	models.BookingStatusCompleted: true,
}

// List returns a restaurant's bookings, newest first
func (h *BookingHandler) List(c *fiber.Ctx) error {
	restaurantID := c.Query("restaurant_id")
	if restaurantID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "restaurant_id is required"})
	}

	bookings, err := h.store.GetBookingsByRestaurant(restaurantID)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"bookings": bookings, "total": len(bookings)})
}

// Get returns one booking by ID
func (h *BookingHandler) Get(c *fiber.Ctx) error {
	booking, err := h.store.GetBooking(c.Params("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(booking)
}

// UpdateStatus moves a booking through its lifecycle
func (h *BookingHandler) UpdateStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if !validBookingStatuses[req.Status] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status"})
	}

	if err := h.store.UpdateBookingStatus(c.Params("id"), req.Status); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"success": true, "status": req.Status})
}
