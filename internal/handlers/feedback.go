package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dineline/dineline-backend/internal/storage"
)

// FeedbackHandler serves the dashboard view of customer feedback
type FeedbackHandler struct {
	store storage.Store
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(store storage.Store) *FeedbackHandler {
	return &FeedbackHandler{store: store}
}

// List returns a restaurant's feedback with the running average rating
func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	restaurantID := c.Query("restaurant_id")
	if restaurantID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "restaurant_id is required"})
	}

	entries, err := h.store.GetFeedbackByRestaurant(restaurantID)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	average := 0.0
	if len(entries) > 0 {
		sum := 0
		for _, f := range entries {
			sum += f.Rating
		}
		average = float64(sum) / float64(len(entries))
	}

	return c.JSON(fiber.Map{
		"feedback":       entries,
		"total":          len(entries),
		"average_rating": average,
	})
}
