package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dineline/dineline-backend/internal/models"
	"github.com/dineline/dineline-backend/internal/storage"
)

// OrderHandler serves the dashboard view of WhatsApp orders
type OrderHandler struct {
	store storage.Store
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(store storage.Store) *OrderHandler {
	return &OrderHandler{store: store}
}

var validOrderStatuses = map[string]bool{
	models.OrderStatusNew:       true,
	models.OrderStatusPreparing: true,
	models.OrderStatusReady:     true,
	models.OrderStatusDelivered: true,
	models.OrderStatusCancelled: true,
}

// List returns a restaurant's orders, newest first
func (h *OrderHandler) List(c *fiber.Ctx) error {
	restaurantID := c.Query("restaurant_id")
	if restaurantID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "restaurant_id is required"})
	}

	orders, err := h.store.GetOrdersByRestaurant(restaurantID)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	// Optional status filter
	if status := c.Query("status"); status != "" {
		filtered := orders[:0]
		for _, order := range orders {
			if order.Status == status {
				filtered = append(filtered, order)
			}
		}
		orders = filtered
	}

	return c.JSON(fiber.Map{"orders": orders, "total": len(orders)})
}

// Get returns one order by ID
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	order, err := h.store.GetOrder(c.Params("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(order)
}

// UpdateStatus moves an order through its lifecycle
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if !validOrderStatuses[req.Status] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status"})
	}

	if err := h.store.UpdateOrderStatus(c.Params("id"), req.Status); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"success": true, "status": req.Status})
}
