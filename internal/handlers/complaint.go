package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dineline/dineline-backend/internal/models"
	"github.com/dineline/dineline-backend/internal/storage"
)

// ComplaintHandler serves the dashboard view of customer complaints
type ComplaintHandler struct {
	store storage.Store
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(store storage.Store) *ComplaintHandler {
	return &ComplaintHandler{store: store}
}

var validComplaintStatuses = map[string]bool{
	models.ComplaintStatusNew:        true,
	models.ComplaintStatusInProgress: true,
	models.ComplaintStatusResolved:   true,
}

// List returns a restaurant's complaints, newest first
func (h *ComplaintHandler) List(c *fiber.Ctx) error {
	restaurantID := c.Query("restaurant_id")
	if restaurantID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "restaurant_id is required"})
	}

	complaints, err := h.store.GetComplaintsByRestaurant(restaurantID)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	if status := c.Query("status"); status != "" && validComplaintStatuses[status] {
		filtered := complaints[:0]
		for _, complaint := range complaints {
			if complaint.Status == status {
				filtered = append(filtered, complaint)
			}
		}
		complaints = filtered
	}

	return c.JSON(fiber.Map{"complaints": complaints, "total": len(complaints)})
}

// Get returns one complaint by ID
func (h *ComplaintHandler) Get(c *fiber.Ctx) error {
	complaint, err := h.store.GetComplaint(c.Params("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Complaint not found"})
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(complaint)
}

// UpdateStatus moves a complaint through its lifecycle
func (h *ComplaintHandler) UpdateStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if !validComplaintStatuses[req.Status] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status"})
	}

	if err := h.store.UpdateComplaintStatus(c.Params("id"), req.Status); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Complaint not found"})
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"success": true, "status": req.Status})
}
