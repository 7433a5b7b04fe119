package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dineline/dineline-backend/internal/models"
)

func seedRestaurant(t *testing.T, store *MemoryStore) *models.Restaurant {
	t.Helper()
	restaurant, err := store.CreateRestaurant(&models.Restaurant{
		Name:           "Bella Napoli",
		WhatsAppNumber: "+14155238886",
		Menu: []models.MenuCategory{
			{Category: "Pizzas", Items: []models.MenuItem{{Name: "Margherita", Price: 12.50}}},
		},
	})
	require.NoError(t, err)
	return restaurant
}

func TestRestaurantLookup(t *testing.T) {
	store := NewMemoryStore()
	restaurant := seedRestaurant(t, store)

	assert.NotEmpty(t, restaurant.ID)
	assert.Equal(t, models.PlanBasic, restaurant.Plan)

	got, err := store.GetRestaurant(restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bella Napoli", got.Name)

	byNumber, err := store.GetRestaurantByWhatsAppNumber("+14155238886")
	require.NoError(t, err)
	assert.Equal(t, restaurant.ID, byNumber.ID)

	_, err = store.GetRestaurantByWhatsAppNumber("+19999999999")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.GetRestaurant("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetMenu(t *testing.T) {
	store := NewMemoryStore()
	restaurant := seedRestaurant(t, store)

	menu, err := store.GetMenu(restaurant.ID)
	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, "Pizzas", menu[0].Category)

	_, err = store.GetMenu("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderLifecycle(t *testing.T) {
	store := NewMemoryStore()
	restaurant := seedRestaurant(t, store)

	order, err := store.CreateOrder(&models.Order{
		RestaurantID: restaurant.ID,
		Customer:     models.Customer{Name: "Jane", Phone: "+15551234567"},
		Items:        []models.OrderItem{{Name: "Margherita", Quantity: 2, Price: 12.50}},
		OrderType:    models.OrderTypePickup,
		Total:        25.00,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.OrderStatusNew, order.Status)
	assert.Len(t, order.Reference(), 6)

	require.NoError(t, store.UpdateOrderStatus(order.ID, models.OrderStatusPreparing))

	got, err := store.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPreparing, got.Status)

	assert.ErrorIs(t, store.UpdateOrderStatus("missing", models.OrderStatusReady), ErrNotFound)
}

func TestOrdersListedNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	restaurant := seedRestaurant(t, store)

	first, err := store.CreateOrder(&models.Order{RestaurantID: restaurant.ID})
	require.NoError(t, err)
	second, err := store.CreateOrder(&models.Order{RestaurantID: restaurant.ID})
	require.NoError(t, err)

	// Force distinct creation times; map iteration order is not enough
	first.CreatedAt = time.Now().Add(-time.Hour)

	orders, err := store.GetOrdersByRestaurant(restaurant.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)

	// Other restaurants' orders stay invisible
	other, err := store.GetOrdersByRestaurant("someone-else")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestBookingLifecycle(t *testing.T) {
	store := NewMemoryStore()
	restaurant := seedRestaurant(t, store)

	booking, err := store.CreateBooking(&models.Booking{
		RestaurantID: restaurant.ID,
		Customer:     models.Customer{Name: "Jane", Phone: "+15551234567"},
		Date:         "2025-04-20",
		Time:         "19:30",
		Guests:       4,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, booking.Status)

	require.NoError(t, store.UpdateBookingStatus(booking.ID, models.BookingStatusConfirmed))

	got, err := store.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, got.Status)

	bookings, err := store.GetBookingsByRestaurant(restaurant.ID)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestFeedbackStorage(t *testing.T) {
	store := NewMemoryStore()
	restaurant := seedRestaurant(t, store)

	_, err := store.CreateFeedback(&models.Feedback{
		RestaurantID: restaurant.ID,
		Customer:     models.Customer{Name: "Jane"},
		Rating:       5,
		Comment:      "Great food",
	})
	require.NoError(t, err)

	entries, err := store.GetFeedbackByRestaurant(restaurant.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].Rating)
}

func TestComplaintLifecycle(t *testing.T) {
	store := NewMemoryStore()
	restaurant := seedRestaurant(t, store)

	complaint, err := store.CreateComplaint(&models.Complaint{
		RestaurantID: restaurant.ID,
		Customer:     models.Customer{Name: "Jane"},
		Issue:        "Order arrived cold",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusNew, complaint.Status)

	require.NoError(t, store.UpdateComplaintStatus(complaint.ID, models.ComplaintStatusResolved))

	got, err := store.GetComplaint(complaint.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusResolved, got.Status)
}

func TestPromotionLifecycle(t *testing.T) {
	store := NewMemoryStore()
	restaurant := seedRestaurant(t, store)

	promotion, err := store.CreatePromotion(&models.Promotion{
		RestaurantID: restaurant.ID,
		Title:        "Weekend Special",
		Message:      "20% off all pizzas this weekend!",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PromotionStatusDraft, promotion.Status)
	assert.Nil(t, promotion.SentDate)

	require.NoError(t, store.MarkPromotionSent(promotion.ID, 42))

	got, err := store.GetPromotion(promotion.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PromotionStatusSent, got.Status)
	assert.Equal(t, 42, got.Recipients)
	require.NotNil(t, got.SentDate)

	assert.ErrorIs(t, store.MarkPromotionSent("missing", 1), ErrNotFound)
}
