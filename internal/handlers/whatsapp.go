package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/dineline/dineline-backend/internal/models"
	"github.com/dineline/dineline-backend/internal/services"
	"github.com/dineline/dineline-backend/internal/storage"
)

// WhatsAppHandler handles WhatsApp webhook requests and outbound sends
type WhatsAppHandler struct {
	store        storage.Store
	conversation *services.ConversationService
	twilio       *services.TwilioService
}

// NewWhatsAppHandler creates a new WhatsApp handler. The Twilio service
// may be nil in development; replies are then only logged.
func NewWhatsAppHandler(store storage.Store, conversation *services.ConversationService, twilio *services.TwilioService) *WhatsAppHandler {
	return &WhatsAppHandler{
		store:        store,
		conversation: conversation,
		twilio:       twilio,
	}
}

// TwilioWebhookPayload represents an incoming WhatsApp message from Twilio
type TwilioWebhookPayload struct {
	MessageSid          string `form:"MessageSid"`
	AccountSid          string `form:"AccountSid"`
	MessagingServiceSid string `form:"MessagingServiceSid"`
	From                string `form:"From"` // customer number (whatsapp:+15551234567)
	To                  string `form:"To"`   // restaurant's Twilio number
	Body                string `form:"Body"` // message text
	NumMedia            string `form:"NumMedia"`
}

// HandleWebhook processes incoming WhatsApp messages
func (h *WhatsAppHandler) HandleWebhook(c *fiber.Ctx) error {
	var payload TwilioWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing webhook: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook payload",
		})
	}

	// Status callbacks arrive on the same URL with an empty body
	if payload.Body == "" || payload.From == "" {
		return c.SendStatus(fiber.StatusOK)
	}

	log.Printf("📱 WhatsApp message from %s: %s", payload.From, payload.Body)

	reply, err := h.conversation.HandleIncoming(c.Context(), payload.From, payload.To, payload.Body)
	if err != nil {
		// The engine already produced a customer-safe reply
		log.Printf("Error processing message from %s: %v", payload.From, err)
	}

	if h.twilio != nil && reply != "" {
		phone := trimWhatsAppPrefix(payload.From)
		if err := h.twilio.SendWhatsAppMessage(phone, reply); err != nil {
			log.Printf("❌ Failed to send WhatsApp response to %s: %v", phone, err)
		}
	} else {
		log.Printf("📤 Response (not sent - Twilio not configured): %s", reply)
	}

	return c.SendStatus(fiber.StatusOK)
}

// TestWebhookPayload is the JSON shape for the development webhook
type TestWebhookPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Message string `json:"message"`
}

// HandleTestWebhook processes test WhatsApp messages (for development).
// It returns the reply in the response body instead of sending it.
func (h *WhatsAppHandler) HandleTestWebhook(c *fiber.Ctx) error {
	var payload TestWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid test payload",
		})
	}

	reply, err := h.conversation.HandleIncoming(c.Context(), payload.From, payload.To, payload.Message)
	if err != nil {
		log.Printf("Error processing test message: %v", err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"response": reply,
	})
}

// SendRequest is the payload for a one-off outbound message
type SendRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// HandleSend sends a single WhatsApp message to a customer
func (h *WhatsAppHandler) HandleSend(c *fiber.Ctx) error {
	var req SendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if req.To == "" || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Phone number and message are required"})
	}
	if h.twilio == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "WhatsApp sending is not configured"})
	}

	if err := h.twilio.SendWhatsAppMessage(req.To, req.Message); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to send message"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// BroadcastRequest is the payload for a promotional broadcast
type BroadcastRequest struct {
	RestaurantID string   `json:"restaurant_id"`
	Recipients   []string `json:"recipients"`
	Message      string   `json:"message"`
	PromotionID  string   `json:"promotion_id,omitempty"`
}

// HandleBroadcast sends a promotion to multiple recipients. Broadcasts
// are only available on the executive plan.
func (h *WhatsAppHandler) HandleBroadcast(c *fiber.Ctx) error {
	var req BroadcastRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if len(req.Recipients) == 0 || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Recipients array and message are required"})
	}

	restaurant, err := h.store.GetRestaurant(req.RestaurantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Restaurant not found"})
		}
		return fiber.ErrInternalServerError
	}
	if restaurant.Plan != models.PlanExecutive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Broadcast messages are only available on the Executive Plan"})
	}
	if h.twilio == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "WhatsApp sending is not configured"})
	}

	sent := 0
	for _, recipient := range req.Recipients {
		if err := h.twilio.SendWhatsAppMessage(recipient, req.Message); err != nil {
			log.Printf("❌ Broadcast send failed for %s: %v", recipient, err)
			continue
		}
		sent++
	}

	if req.PromotionID != "" {
		if err := h.store.MarkPromotionSent(req.PromotionID, sent); err != nil {
			log.Printf("⚠️ Failed to mark promotion %s sent: %v", req.PromotionID, err)
		}
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"recipients": sent,
	})
}

// trimWhatsAppPrefix strips Twilio's "whatsapp:" address prefix
func trimWhatsAppPrefix(address string) string {
	const prefix = "whatsapp:"
	if len(address) > len(prefix) && address[:len(prefix)] == prefix {
		return address[len(prefix):]
	}
	return address
}
