package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dineline/dineline-backend/internal/models"
)

// MemoryStore holds all data in memory for development and tests
type MemoryStore struct {
	restaurants map[string]*models.Restaurant
	orders      map[string]*models.Order
	bookings    map[string]*models.Booking
	feedback    map[string]*models.Feedback
	complaints  map[string]*models.Complaint
	promotions  map[string]*models.Promotion

	// Mutexes for thread safety
	restaurantMu sync.RWMutex
	orderMu      sync.RWMutex
	bookingMu    sync.RWMutex
	feedbackMu   sync.RWMutex
	complaintMu  sync.RWMutex
	promotionMu  sync.RWMutex
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		restaurants: make(map[string]*models.Restaurant),
		orders:      make(map[string]*models.Order),
		bookings:    make(map[string]*models.Booking),
		feedback:    make(map[string]*models.Feedback),
		complaints:  make(map[string]*models.Complaint),
		promotions:  make(map[string]*models.Promotion),
	}
}

// Restaurant operations

func (m *MemoryStore) CreateRestaurant(restaurant *models.Restaurant) (*models.Restaurant, error) {
	m.restaurantMu.Lock()
	defer m.restaurantMu.Unlock()

	if restaurant.ID == "" {
		restaurant.ID = uuid.NewString()
	}
	if restaurant.Plan == "" {
		restaurant.Plan = models.PlanBasic
	}
	restaurant.CreatedAt = time.Now()
	restaurant.UpdatedAt = time.Now()

	m.restaurants[restaurant.ID] = restaurant
	return restaurant, nil
}

func (m *MemoryStore) GetRestaurant(id string) (*models.Restaurant, error) {
	m.restaurantMu.RLock()
	defer m.restaurantMu.RUnlock()

	restaurant, exists := m.restaurants[id]
	if !exists {
		return nil, ErrNotFound
	}
	return restaurant, nil
}

func (m *MemoryStore) GetRestaurantByWhatsAppNumber(number string) (*models.Restaurant, error) {
	m.restaurantMu.RLock()
	defer m.restaurantMu.RUnlock()

	for _, restaurant := range m.restaurants {
		if restaurant.WhatsAppNumber == number {
			return restaurant, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetMenu(restaurantID string) ([]models.MenuCategory, error) {
	restaurant, err := m.GetRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	return restaurant.Menu, nil
}

func (m *MemoryStore) UpdateRestaurant(restaurant *models.Restaurant) error {
	m.restaurantMu.Lock()
	defer m.restaurantMu.Unlock()

	if _, exists := m.restaurants[restaurant.ID]; !exists {
		return ErrNotFound
	}
	restaurant.UpdatedAt = time.Now()
	m.restaurants[restaurant.ID] = restaurant
	return nil
}

// Order operations

func (m *MemoryStore) CreateOrder(order *models.Order) (*models.Order, error) {
	m.orderMu.Lock()
	defer m.orderMu.Unlock()

	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.Status == "" {
		order.Status = models.OrderStatusNew
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()

	m.orders[order.ID] = order
	return order, nil
}

func (m *MemoryStore) GetOrder(id string) (*models.Order, error) {
	m.orderMu.RLock()
	defer m.orderMu.RUnlock()

	order, exists := m.orders[id]
	if !exists {
		return nil, ErrNotFound
	}
	return order, nil
}

func (m *MemoryStore) GetOrdersByRestaurant(restaurantID string) ([]*models.Order, error) {
	m.orderMu.RLock()
	defer m.orderMu.RUnlock()

	var orders []*models.Order
	for _, order := range m.orders {
		if order.RestaurantID == restaurantID {
			orders = append(orders, order)
		}
	}
	sortNewestFirst(orders, func(o *models.Order) time.Time { return o.CreatedAt })
	return orders, nil
}

func (m *MemoryStore) UpdateOrderStatus(id string, status string) error {
	m.orderMu.Lock()
	defer m.orderMu.Unlock()

	order, exists := m.orders[id]
	if !exists {
		return ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	return nil
}

// Booking operations

func (m *MemoryStore) CreateBooking(booking *models.Booking) (*models.Booking, error) {
	m.bookingMu.Lock()
	defer m.bookingMu.Unlock()

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	m.bookings[booking.ID] = booking
	return booking, nil
}

func (m *MemoryStore) GetBooking(id string) (*models.Booking, error) {
	m.bookingMu.RLock()
	defer m.bookingMu.RUnlock()

	booking, exists := m.bookings[id]
	if !exists {
		return nil, ErrNotFound
	}
	return booking, nil
}

func (m *MemoryStore) GetBookingsByRestaurant(restaurantID string) ([]*models.Booking, error) {
	m.bookingMu.RLock()
	defer m.bookingMu.RUnlock()

	var bookings []*models.Booking
	for _, booking := range m.bookings {
		if booking.RestaurantID == restaurantID {
			bookings = append(bookings, booking)
		}
	}
	sortNewestFirst(bookings, func(b *models.Booking) time.Time { return b.CreatedAt })
	return bookings, nil
}

func (m *MemoryStore) UpdateBookingStatus(id string, status string) error {
	m.bookingMu.Lock()
	defer m.bookingMu.Unlock()

	booking, exists := m.bookings[id]
	if !exists {
		return ErrNotFound
	}
	booking.Status = status
	booking.UpdatedAt = time.Now()
	return nil
}

// Feedback operations

func (m *MemoryStore) CreateFeedback(feedback *models.Feedback) (*models.Feedback, error) {
	m.feedbackMu.Lock()
	defer m.feedbackMu.Unlock()

	if feedback.ID == "" {
		feedback.ID = uuid.NewString()
	}
	feedback.CreatedAt = time.Now()

	m.feedback[feedback.ID] = feedback
	return feedback, nil
}

func (m *MemoryStore) GetFeedbackByRestaurant(restaurantID string) ([]*models.Feedback, error) {
	m.feedbackMu.RLock()
	defer m.feedbackMu.RUnlock()

	var entries []*models.Feedback
	for _, f := range m.feedback {
		if f.RestaurantID == restaurantID {
			entries = append(entries, f)
		}
	}
	sortNewestFirst(entries, func(f *models.Feedback) time.Time { return f.CreatedAt })
	return entries, nil
}

// Complaint operations

func (m *MemoryStore) CreateComplaint(complaint *models.Complaint) (*models.Complaint, error) {
	m.complaintMu.Lock()
	defer m.complaintMu.Unlock()

	if complaint.ID == "" {
		complaint.ID = uuid.NewString()
	}
	if complaint.Status == "" {
		complaint.Status = models.ComplaintStatusNew
	}
	complaint.CreatedAt = time.Now()
	complaint.UpdatedAt = time.Now()

	m.complaints[complaint.ID] = complaint
	return complaint, nil
}

func (m *MemoryStore) GetComplaint(id string) (*models.Complaint, error) {
	m.complaintMu.RLock()
	defer m.complaintMu.RUnlock()

	complaint, exists := m.complaints[id]
	if !exists {
		return nil, ErrNotFound
	}
	return complaint, nil
}

func (m *MemoryStore) GetComplaintsByRestaurant(restaurantID string) ([]*models.Complaint, error) {
	m.complaintMu.RLock()
	defer m.complaintMu.RUnlock()

	var complaints []*models.Complaint
	for _, c := range m.complaints {
		if c.RestaurantID == restaurantID {
			complaints = append(complaints, c)
		}
	}
	sortNewestFirst(complaints, func(c *models.Complaint) time.Time { return c.CreatedAt })
	return complaints, nil
}

func (m *MemoryStore) UpdateComplaintStatus(id string, status string) error {
	m.complaintMu.Lock()
	defer m.complaintMu.Unlock()

	complaint, exists := m.complaints[id]
	if !exists {
		return ErrNotFound
	}
	complaint.Status = status
	complaint.UpdatedAt = time.Now()
	return nil
}

// Promotion operations

func (m *MemoryStore) CreatePromotion(promotion *models.Promotion) (*models.Promotion, error) {
	m.promotionMu.Lock()
	defer m.promotionMu.Unlock()

	if promotion.ID == "" {
		promotion.ID = uuid.NewString()
	}
	if promotion.Status == "" {
		promotion.Status = models.PromotionStatusDraft
	}
	promotion.CreatedAt = time.Now()
	promotion.UpdatedAt = time.Now()

	m.promotions[promotion.ID] = promotion
	return promotion, nil
}

func (m *MemoryStore) GetPromotion(id string) (*models.Promotion, error) {
	m.promotionMu.RLock()
	defer m.promotionMu.RUnlock()

	promotion, exists := m.promotions[id]
	if !exists {
		return nil, ErrNotFound
	}
	return promotion, nil
}

func (m *MemoryStore) MarkPromotionSent(id string, recipients int) error {
	m.promotionMu.Lock()
	defer m.promotionMu.Unlock()

	promotion, exists := m.promotions[id]
	if !exists {
		return ErrNotFound
	}
	now := time.Now()
	promotion.Status = models.PromotionStatusSent
	promotion.Recipients = recipients
	promotion.SentDate = &now
	promotion.UpdatedAt = now
	return nil
}

// sortNewestFirst orders entities by creation time, newest first, so
// list endpoints match the dashboard's expected ordering.
func sortNewestFirst[T any](items []T, createdAt func(T) time.Time) {
	sort.Slice(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
}
