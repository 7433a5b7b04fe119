package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/dineline/dineline-backend/internal/models"
	"github.com/dineline/dineline-backend/internal/storage"
)

// Shared reply texts
const (
	msgApology = "Sorry, something went wrong. Please try again later."

	msgUnknownRestaurant = "This number is not connected to a restaurant yet. Please try again later."

	msgFallback = "I'm not sure what you're asking for. Please type 'menu' to start over."
)

// ConversationService drives the WhatsApp conversation engine: session
// bootstrap, flow selection, and per-step dispatch into the four flows.
type ConversationService struct {
	store    storage.Store
	sessions *SessionManager
}

// NewConversationService creates a new conversation service
func NewConversationService(store storage.Store, sessions *SessionManager) *ConversationService {
	return &ConversationService{
		store:    store,
		sessions: sessions,
	}
}

// HandleIncoming processes one inbound message and returns the reply to
// deliver back through the messaging gateway. Every path returns a text
// reply; the error is for logging only and never reaches the customer.
func (c *ConversationService) HandleIncoming(ctx context.Context, from, to, body string) (string, error) {
	phone := strings.TrimPrefix(from, "whatsapp:")
	number := strings.TrimPrefix(to, "whatsapp:")
	text := strings.TrimSpace(body)

	// The inbound number must map to a restaurant; there is no
	// default-restaurant fallback.
	restaurant, err := c.store.GetRestaurantByWhatsAppNumber(number)
	if err != nil {
		return msgUnknownRestaurant, fmt.Errorf("resolve restaurant for %s: %w", number, err)
	}

	unlock := c.sessions.LockPhone(phone)
	defer unlock()

	sess, err := c.sessions.Get(ctx, phone)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		return msgApology, err
	}

	// Flow selection outranks the greeting reset: a bare "order" at
	// the choice step starts the order flow instead of bouncing the
	// customer back to the welcome menu.
	if sess != nil && sess.Flow == FlowNone && sess.Step == stepChooseFlow {
		if flow, ok := flowKeyword(text); ok {
			reply, err := c.startFlow(sess, flow)
			return c.finish(ctx, sess, reply, err)
		}
	}

	// No session, or a greeting/reset word: any abandoned conversation
	// for this phone is silently replaced.
	if sess == nil || isGreeting(text) {
		fresh := c.sessions.NewSession(phone, restaurant.ID)
		if err := c.sessions.Put(ctx, fresh); err != nil {
			return msgApology, err
		}
		return welcomeMessage(restaurant.Name), nil
	}

	if err := c.sessions.Touch(ctx, sess); err != nil && !errors.Is(err, ErrSessionNotFound) {
		log.Printf("⚠️ Failed to touch session for %s: %v", phone, err)
	}

	reply, err := c.dispatch(sess, text)
	return c.finish(ctx, sess, reply, err)
}

// dispatch forwards the message to the active flow's step handler
func (c *ConversationService) dispatch(sess *Session, text string) (string, error) {
	switch sess.Flow {
	case FlowOrder:
		return c.handleOrderFlow(sess, text)
	case FlowBooking:
		return c.handleBookingFlow(sess, text)
	case FlowFeedback:
		return c.handleFeedbackFlow(sess, text)
	case FlowComplaint:
		return c.handleComplaintFlow(sess, text)
	default:
		// Unrecognized input before any flow was chosen
		return msgFallback, nil
	}
}

// startFlow switches a fresh session onto the chosen flow and returns
// that flow's opening prompt. The order flow needs the menu up front;
// if the catalog read fails the session stays at the choice step.
func (c *ConversationService) startFlow(sess *Session, flow FlowType) (string, error) {
	switch flow {
	case FlowOrder:
		menu, err := c.store.GetMenu(sess.RestaurantID)
		if err != nil {
			return "", err
		}
		if len(menu) == 0 {
			return "Online ordering is not available right now. Please try again later.", nil
		}
		sess.Flow = FlowOrder
		sess.Step = orderStepCategory
		return menuCategoriesMessage(menu), nil

	case FlowBooking:
		sess.Flow = FlowBooking
		sess.Step = bookingStepDetails
		return msgBookingPrompt, nil

	case FlowFeedback:
		sess.Flow = FlowFeedback
		sess.Step = feedbackStepRating
		return msgFeedbackPrompt, nil

	case FlowComplaint:
		sess.Flow = FlowComplaint
		sess.Step = complaintStepIssue
		return msgComplaintPrompt, nil
	}

	return msgFallback, nil
}

// finish persists the (possibly mutated) session, or on a collaborator
// failure leaves it untouched at its current step so the customer can
// retry the same input.
func (c *ConversationService) finish(ctx context.Context, sess *Session, reply string, err error) (string, error) {
	if err != nil {
		return msgApology, err
	}
	if sess.ended {
		if derr := c.sessions.Delete(ctx, sess.Phone); derr != nil {
			log.Printf("⚠️ Failed to delete finished session for %s: %v", sess.Phone, derr)
		}
		return reply, nil
	}
	if perr := c.sessions.Put(ctx, sess); perr != nil {
		return msgApology, perr
	}
	return reply, nil
}

// welcomeMessage greets a new conversation and lists the four flows
func welcomeMessage(restaurantName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "👋 Welcome to %s!\n\nHow can we help you today?\n\n", restaurantName)
	b.WriteString("🍔 Type 'order' to place an order\n")
	b.WriteString("📅 Type 'book' to book a table\n")
	b.WriteString("⭐ Type 'feedback' to leave feedback\n")
	b.WriteString("❗ Type 'complaint' to register a complaint")
	return b.String()
}

// menuCategoriesMessage lists the restaurant's menu categories
func menuCategoriesMessage(menu []models.MenuCategory) string {
	var b strings.Builder
	b.WriteString("📋 *Menu Categories*\n\n")
	for i, cat := range menu {
		fmt.Fprintf(&b, "%d. %s\n", i+1, cat.Category)
	}
	b.WriteString("\nPlease reply with the number of the category you'd like to see.")
	return b.String()
}
