package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dineline/dineline-backend/internal/models"
	"github.com/dineline/dineline-backend/internal/storage"
)

const (
	testRestaurantNumber = "whatsapp:+14155238886"
	testCustomerPhone    = "whatsapp:+15551234567"
)

// flakyStore wraps a real store and lets a test fail the write paths to
// simulate a collaborator outage mid-conversation.
type flakyStore struct {
	storage.Store
	failWrites bool
	failMenu   bool
}

var errStoreDown = errors.New("store unavailable")

func (f *flakyStore) GetMenu(restaurantID string) ([]models.MenuCategory, error) {
	if f.failMenu {
		return nil, errStoreDown
	}
	return f.Store.GetMenu(restaurantID)
}

func (f *flakyStore) CreateOrder(order *models.Order) (*models.Order, error) {
	if f.failWrites {
		return nil, errStoreDown
	}
	return f.Store.CreateOrder(order)
}

func (f *flakyStore) CreateBooking(booking *models.Booking) (*models.Booking, error) {
	if f.failWrites {
		return nil, errStoreDown
	}
	return f.Store.CreateBooking(booking)
}

func newTestConversation(t *testing.T) (*ConversationService, *flakyStore, *models.Restaurant) {
	t.Helper()

	store := &flakyStore{Store: storage.NewMemoryStore()}
	restaurant, err := store.CreateRestaurant(&models.Restaurant{
		Name:           "Bella Napoli",
		WhatsAppNumber: "+14155238886",
		Menu: []models.MenuCategory{
			{
				Category: "Burgers",
				Items: []models.MenuItem{
					{Name: "Classic Burger", Price: 8.99},
					{Name: "Cheese Burger", Price: 9.99},
				},
			},
			{
				Category: "Pizzas",
				Items: []models.MenuItem{
					{Name: "Margherita", Price: 12.50},
				},
			},
		},
	})
	require.NoError(t, err)

	manager := NewSessionManager(NewMemorySessionStore())
	return NewConversationService(store, manager), store, restaurant
}

// say sends one message and requires the engine itself not to fail
func say(t *testing.T, svc *ConversationService, body string) string {
	t.Helper()
	reply, err := svc.HandleIncoming(context.Background(), testCustomerPhone, testRestaurantNumber, body)
	require.NoError(t, err)
	return reply
}

func TestGreetingStartsConversation(t *testing.T) {
	svc, _, _ := newTestConversation(t)

	reply := say(t, svc, "hi")
	assert.Contains(t, reply, "Welcome to Bella Napoli")
	assert.Contains(t, reply, "'order'")
	assert.Contains(t, reply, "'book'")
	assert.Contains(t, reply, "'feedback'")
	assert.Contains(t, reply, "'complaint'")

	sess, err := svc.sessions.Get(context.Background(), "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, FlowNone, sess.Flow)
	assert.Equal(t, stepChooseFlow, sess.Step)
}

func TestUnknownRestaurantNumber(t *testing.T) {
	svc, _, _ := newTestConversation(t)

	reply, err := svc.HandleIncoming(context.Background(), testCustomerPhone, "whatsapp:+10000000000", "hi")
	assert.Equal(t, msgUnknownRestaurant, reply)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestOrderKeywordOutranksGreetingReset(t *testing.T) {
	svc, _, _ := newTestConversation(t)

	say(t, svc, "hi")

	// "order" is both a greeting word and a flow keyword; at the choice
	// step it must start the order flow, not bounce back to the welcome.
	reply := say(t, svc, "order")
	assert.Contains(t, reply, "Menu Categories")
	assert.Contains(t, reply, "1. Burgers")
	assert.Contains(t, reply, "2. Pizzas")

	sess, err := svc.sessions.Get(context.Background(), "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, FlowOrder, sess.Flow)
	assert.Equal(t, orderStepCategory, sess.Step)
}

func TestGreetingResetsMidFlow(t *testing.T) {
	svc, _, _ := newTestConversation(t)

	say(t, svc, "hi")
	say(t, svc, "book")

	reply := say(t, svc, "hello")
	assert.Contains(t, reply, "Welcome to Bella Napoli")

	sess, err := svc.sessions.Get(context.Background(), "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, FlowNone, sess.Flow)
	assert.Equal(t, stepChooseFlow, sess.Step)
}

func TestUnrecognizedInputAtChoiceStep(t *testing.T) {
	svc, _, _ := newTestConversation(t)

	say(t, svc, "hi")
	reply := say(t, svc, "pizza please")
	assert.Equal(t, msgFallback, reply)
}

func TestFullOrderWalkthroughDelivery(t *testing.T) {
	svc, store, restaurant := newTestConversation(t)

	say(t, svc, "hi")
	say(t, svc, "order")

	reply := say(t, svc, "1") // Burgers
	assert.Contains(t, reply, "Burgers Menu")
	assert.Contains(t, reply, "1. Classic Burger - $8.99")

	reply = say(t, svc, "2") // Cheese Burger
	assert.Contains(t, reply, "Cheese Burger")
	assert.Contains(t, reply, "How many")

	reply = say(t, svc, "2") // quantity
	assert.Equal(t, msgAddMore, reply)

	reply = say(t, svc, "yes")
	assert.Contains(t, reply, "Menu Categories")

	say(t, svc, "2") // Pizzas
	say(t, svc, "1") // Margherita
	say(t, svc, "1") // quantity

	reply = say(t, svc, "no")
	assert.Contains(t, reply, "Order Summary")
	assert.Contains(t, reply, "Cheese Burger x2 - $19.98")
	assert.Contains(t, reply, "Margherita x1 - $12.50")
	assert.Contains(t, reply, "Total: $32.48")

	reply = say(t, svc, "1") // delivery
	assert.Equal(t, msgAskAddress, reply)

	say(t, svc, "12 Main Street")
	say(t, svc, "Jane")

	reply = say(t, svc, "+15559876543")
	assert.Contains(t, reply, "Order Confirmation")
	assert.Contains(t, reply, "Address: 12 Main Street")
	assert.Contains(t, reply, "Order Type: Delivery")

	reply = say(t, svc, "confirm")
	assert.Contains(t, reply, "Your order has been confirmed! Order #")

	// The order is committed and the conversation is over
	orders, err := store.GetOrdersByRestaurant(restaurant.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderTypeDelivery, orders[0].OrderType)
	assert.Equal(t, "Jane", orders[0].Customer.Name)
	assert.InDelta(t, 32.48, orders[0].Total, 0.001)
	assert.Contains(t, reply, orders[0].Reference())

	_, err = svc.sessions.Get(context.Background(), "+15551234567")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestOrderCancelCommitsNothing(t *testing.T) {
	svc, store, restaurant := newTestConversation(t)

	say(t, svc, "hi")
	say(t, svc, "order")
	say(t, svc, "1")
	say(t, svc, "1")
	say(t, svc, "1")
	say(t, svc, "no")
	say(t, svc, "2") // pickup
	say(t, svc, "Jane")
	say(t, svc, "+15559876543")

	reply := say(t, svc, "cancel")
	assert.Equal(t, msgOrderCancelled, reply)

	orders, err := store.GetOrdersByRestaurant(restaurant.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	_, err = svc.sessions.Get(context.Background(), "+15551234567")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestInvalidInputDoesNotAdvance(t *testing.T) {
	svc, _, _ := newTestConversation(t)

	say(t, svc, "hi")
	say(t, svc, "order")

	// Repeated garbage re-prompts identically and leaves the step alone
	first := say(t, svc, "ninety-nine")
	second := say(t, svc, "ninety-nine")
	assert.Equal(t, msgInvalidCategory, first)
	assert.Equal(t, first, second)

	sess, err := svc.sessions.Get(context.Background(), "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, orderStepCategory, sess.Step)

	// Out-of-range index is rejected the same way
	reply := say(t, svc, "3")
	assert.Equal(t, msgInvalidCategory, reply)
}

func TestStoreFailureLeavesSessionIntact(t *testing.T) {
	svc, store, restaurant := newTestConversation(t)

	say(t, svc, "hi")
	say(t, svc, "order")
	say(t, svc, "1")
	say(t, svc, "1")
	say(t, svc, "1")
	say(t, svc, "no")
	say(t, svc, "2")
	say(t, svc, "Jane")
	say(t, svc, "+15559876543")

	store.failWrites = true
	reply, err := svc.HandleIncoming(context.Background(), testCustomerPhone, testRestaurantNumber, "confirm")
	assert.Equal(t, msgApology, reply)
	assert.ErrorIs(t, err, errStoreDown)

	// The session survives at the confirm step, so the same input works
	// once the store recovers.
	sess, err := svc.sessions.Get(context.Background(), "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, orderStepConfirm, sess.Step)

	store.failWrites = false
	reply = say(t, svc, "confirm")
	assert.Contains(t, reply, "Your order has been confirmed!")

	orders, err := store.GetOrdersByRestaurant(restaurant.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestMenuOutageKeepsChoiceStep(t *testing.T) {
	svc, store, _ := newTestConversation(t)

	say(t, svc, "hi")

	store.failMenu = true
	reply, err := svc.HandleIncoming(context.Background(), testCustomerPhone, testRestaurantNumber, "order")
	assert.Equal(t, msgApology, reply)
	assert.ErrorIs(t, err, errStoreDown)

	sess, err := svc.sessions.Get(context.Background(), "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, FlowNone, sess.Flow)
	assert.Equal(t, stepChooseFlow, sess.Step)

	store.failMenu = false
	reply = say(t, svc, "order")
	assert.Contains(t, reply, "Menu Categories")
}

func TestOrderUnavailableWhenMenuEmpty(t *testing.T) {
	svc, store, restaurant := newTestConversation(t)

	restaurant.Menu = nil
	require.NoError(t, store.UpdateRestaurant(restaurant))

	say(t, svc, "hi")
	reply := say(t, svc, "order")
	assert.Contains(t, reply, "Online ordering is not available")

	// Still at the choice step, other flows remain reachable
	reply = say(t, svc, "book")
	assert.Contains(t, reply, "Table Booking")
}

func TestFullBookingWalkthrough(t *testing.T) {
	svc, store, restaurant := newTestConversation(t)

	say(t, svc, "hi")

	reply := say(t, svc, "book")
	assert.Contains(t, reply, "Table Booking")
	assert.Contains(t, reply, "Example: 2025-04-20 19:30 4")

	reply = say(t, svc, "next friday at 7")
	assert.Equal(t, msgInvalidBooking, reply)

	reply = say(t, svc, "2025-04-20 19:30 4")
	assert.Equal(t, msgAskBookingName, reply)

	say(t, svc, "Jane")
	reply = say(t, svc, "+15559876543")
	assert.Equal(t, msgAskBookingNotes, reply)

	reply = say(t, svc, "Window seat please")
	assert.Contains(t, reply, "Reservation Confirmation")
	assert.Contains(t, reply, "Date: 2025-04-20")
	assert.Contains(t, reply, "Time: 19:30")
	assert.Contains(t, reply, "Guests: 4")
	assert.Contains(t, reply, "Notes: Window seat please")

	reply = say(t, svc, "confirm")
	assert.Contains(t, reply, "Your reservation has been confirmed! Booking #")

	bookings, err := store.GetBookingsByRestaurant(restaurant.ID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "2025-04-20", bookings[0].Date)
	assert.Equal(t, "19:30", bookings[0].Time)
	assert.Equal(t, 4, bookings[0].Guests)
	assert.Equal(t, "Window seat please", bookings[0].Notes)
	assert.Equal(t, models.BookingStatusPending, bookings[0].Status)

	_, err = svc.sessions.Get(context.Background(), "+15551234567")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestBookingNotesNoneIsDropped(t *testing.T) {
	svc, store, restaurant := newTestConversation(t)

	say(t, svc, "hi")
	say(t, svc, "book")
	say(t, svc, "2025-04-20 19:30 2")
	say(t, svc, "Jane")
	say(t, svc, "+15559876543")

	reply := say(t, svc, "none")
	assert.NotContains(t, reply, "Notes:")

	say(t, svc, "confirm")

	bookings, err := store.GetBookingsByRestaurant(restaurant.ID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Empty(t, bookings[0].Notes)
}

func TestFullFeedbackWalkthrough(t *testing.T) {
	svc, store, restaurant := newTestConversation(t)

	say(t, svc, "hi")

	reply := say(t, svc, "feedback")
	assert.Contains(t, reply, "rate your experience")

	reply = say(t, svc, "6 too good")
	assert.Equal(t, msgInvalidFeedback, reply)

	reply = say(t, svc, "5 Great food and service")
	assert.Equal(t, msgAskName, reply)

	say(t, svc, "Jane")
	reply = say(t, svc, "+15559876543")
	assert.Contains(t, reply, "Feedback Confirmation")
	assert.Contains(t, reply, "⭐⭐⭐⭐⭐")

	reply = say(t, svc, "confirm")
	assert.Contains(t, reply, "Your feedback has been submitted!")

	entries, err := store.GetFeedbackByRestaurant(restaurant.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].Rating)
	assert.Equal(t, "Great food and service", entries[0].Comment)
}

func TestFullComplaintWalkthrough(t *testing.T) {
	svc, store, restaurant := newTestConversation(t)

	say(t, svc, "hi")

	reply := say(t, svc, "complaint")
	assert.Contains(t, reply, "describe your issue")

	say(t, svc, "My order arrived cold")
	say(t, svc, "Jane")
	reply = say(t, svc, "+15559876543")
	assert.Contains(t, reply, "Complaint Confirmation")

	reply = say(t, svc, "confirm")
	assert.Contains(t, reply, "Your complaint has been registered")

	complaints, err := store.GetComplaintsByRestaurant(restaurant.ID)
	require.NoError(t, err)
	require.Len(t, complaints, 1)
	assert.Equal(t, "My order arrived cold", complaints[0].Issue)
	assert.Equal(t, models.ComplaintStatusNew, complaints[0].Status)
	assert.Contains(t, reply, complaints[0].Reference())
}

func TestExpiredSessionGetsFreshWelcome(t *testing.T) {
	svc, _, _ := newTestConversation(t)
	ctx := context.Background()

	say(t, svc, "hi")
	say(t, svc, "book")

	// Age the session past its TTL behind the engine's back
	sess, err := svc.sessions.Get(ctx, "+15551234567")
	require.NoError(t, err)
	sess.ExpiresAt = sess.ExpiresAt.Add(-2 * sessionTTL)
	require.NoError(t, svc.sessions.Put(ctx, sess))

	// Mid-flow input lands on a dead session: the customer is greeted
	// fresh instead of resuming the stale booking.
	reply := say(t, svc, "2025-04-20 19:30 4")
	assert.Contains(t, reply, "Welcome to Bella Napoli")

	fresh, err := svc.sessions.Get(ctx, "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, FlowNone, fresh.Flow)
	assert.Equal(t, stepChooseFlow, fresh.Step)
}
