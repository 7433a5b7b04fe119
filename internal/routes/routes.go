package routes

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/dineline/dineline-backend/internal/handlers"
	"github.com/dineline/dineline-backend/internal/middleware"
	"github.com/dineline/dineline-backend/internal/services"
	"github.com/dineline/dineline-backend/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, store storage.Store, conversation *services.ConversationService, twilio *services.TwilioService) {
	whatsapp := handlers.NewWhatsAppHandler(store, conversation, twilio)
	restaurants := handlers.NewRestaurantHandler(store)
	orders := handlers.NewOrderHandler(store)
	bookings := handlers.NewBookingHandler(store)
	feedback := handlers.NewFeedbackHandler(store)
	complaints := handlers.NewComplaintHandler(store)

	// ========== WEBHOOK ROUTES ==========
	webhooks := app.Group("/webhook")

	if os.Getenv("ENVIRONMENT") == "development" || os.Getenv("DISABLE_WEBHOOK_VALIDATION") == "true" {
		// Development: skip signature validation for ngrok
		webhooks.Post("/whatsapp", whatsapp.HandleWebhook)
	} else {
		webhooks.Post("/whatsapp", middleware.ValidateTwilioSignature(), whatsapp.HandleWebhook)
	}

	// Test webhook (development only, returns the reply inline)
	app.Post("/test/whatsapp", whatsapp.HandleTestWebhook)

	// ========== API ROUTES ==========
	api := app.Group("/api")

	api.Post("/whatsapp/send", whatsapp.HandleSend)
	api.Post("/whatsapp/broadcast", whatsapp.HandleBroadcast)

	api.Post("/restaurants", restaurants.Create)
	api.Get("/restaurants/:id", restaurants.Get)

	api.Get("/orders", orders.List)
	api.Get("/orders/:id", orders.Get)
	api.Patch("/orders/:id/status", orders.UpdateStatus)

	api.Get("/bookings", bookings.List)
	api.Get("/bookings/:id", bookings.Get)
	api.Patch("/bookings/:id/status", bookings.UpdateStatus)

	api.Get("/feedback", feedback.List)

	api.Get("/complaints", complaints.List)
	api.Get("/complaints/:id", complaints.Get)
	api.Patch("/complaints/:id/status", complaints.UpdateStatus)
}
