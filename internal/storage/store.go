package storage

import (
	"errors"

	"github.com/dineline/dineline-backend/internal/models"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// Store defines the interface for storage operations
type Store interface {
	// Restaurant operations
	CreateRestaurant(restaurant *models.Restaurant) (*models.Restaurant, error)
	GetRestaurant(id string) (*models.Restaurant, error)
	GetRestaurantByWhatsAppNumber(number string) (*models.Restaurant, error)
	GetMenu(restaurantID string) ([]models.MenuCategory, error)
	UpdateRestaurant(restaurant *models.Restaurant) error

	// Order operations
	CreateOrder(order *models.Order) (*models.Order, error)
	GetOrder(id string) (*models.Order, error)
	GetOrdersByRestaurant(restaurantID string) ([]*models.Order, error)
	UpdateOrderStatus(id string, status string) error

	// Booking operations
	CreateBooking(booking *models.Booking) (*models.Booking, error)
	GetBooking(id string) (*models.Booking, error)
	GetBookingsByRestaurant(restaurantID string) ([]*models.Booking, error)
	UpdateBookingStatus(id string, status string) error

	// Feedback operations
	CreateFeedback(feedback *models.Feedback) (*models.Feedback, error)
	GetFeedbackByRestaurant(restaurantID string) ([]*models.Feedback, error)

	// Complaint operations
	CreateComplaint(complaint *models.Complaint) (*models.Complaint, error)
	GetComplaint(id string) (*models.Complaint, error)
	GetComplaintsByRestaurant(restaurantID string) ([]*models.Complaint, error)
	UpdateComplaintStatus(id string, status string) error

	// Promotion operations
	CreatePromotion(promotion *models.Promotion) (*models.Promotion, error)
	GetPromotion(id string) (*models.Promotion, error)
	MarkPromotionSent(id string, recipients int) error
}
