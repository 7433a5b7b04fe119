package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/dineline/dineline-backend/internal/models"
)

// DatabaseStore implements Store on top of gorm/PostgreSQL
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a new database-backed storage
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Restaurant operations

func (d *DatabaseStore) CreateRestaurant(restaurant *models.Restaurant) (*models.Restaurant, error) {
	if err := d.db.Create(restaurant).Error; err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (d *DatabaseStore) GetRestaurant(id string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := d.db.First(&restaurant, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &restaurant, nil
}

func (d *DatabaseStore) GetRestaurantByWhatsAppNumber(number string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := d.db.First(&restaurant, "whatsapp_number = ?", number).Error; err != nil {
		return nil, translateError(err)
	}
	return &restaurant, nil
}

func (d *DatabaseStore) GetMenu(restaurantID string) ([]models.MenuCategory, error) {
	restaurant, err := d.GetRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	return restaurant.Menu, nil
}

func (d *DatabaseStore) UpdateRestaurant(restaurant *models.Restaurant) error {
	return d.db.Save(restaurant).Error
}

// Order operations

func (d *DatabaseStore) CreateOrder(order *models.Order) (*models.Order, error) {
	if err := d.db.Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (d *DatabaseStore) GetOrder(id string) (*models.Order, error) {
	var order models.Order
	if err := d.db.First(&order, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

func (d *DatabaseStore) GetOrdersByRestaurant(restaurantID string) ([]*models.Order, error) {
	var orders []*models.Order
	err := d.db.Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (d *DatabaseStore) UpdateOrderStatus(id string, status string) error {
	return d.updateStatus(&models.Order{}, id, status)
}

// Booking operations

func (d *DatabaseStore) CreateBooking(booking *models.Booking) (*models.Booking, error) {
	if err := d.db.Create(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

func (d *DatabaseStore) GetBooking(id string) (*models.Booking, error) {
	var booking models.Booking
	if err := d.db.First(&booking, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &booking, nil
}

func (d *DatabaseStore) GetBookingsByRestaurant(restaurantID string) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := d.db.Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (d *DatabaseStore) UpdateBookingStatus(id string, status string) error {
	return d.updateStatus(&models.Booking{}, id, status)
}

// Feedback operations

func (d *DatabaseStore) CreateFeedback(feedback *models.Feedback) (*models.Feedback, error) {
	if err := d.db.Create(feedback).Error; err != nil {
		return nil, err
	}
	return feedback, nil
}

func (d *DatabaseStore) GetFeedbackByRestaurant(restaurantID string) ([]*models.Feedback, error) {
	var entries []*models.Feedback
	err := d.db.Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// Complaint operations

func (d *DatabaseStore) CreateComplaint(complaint *models.Complaint) (*models.Complaint, error) {
	if err := d.db.Create(complaint).Error; err != nil {
		return nil, err
	}
	return complaint, nil
}

func (d *DatabaseStore) GetComplaint(id string) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := d.db.First(&complaint, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &complaint, nil
}

func (d *DatabaseStore) GetComplaintsByRestaurant(restaurantID string) ([]*models.Complaint, error) {
	var complaints []*models.Complaint
	err := d.db.Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&complaints).Error
	return complaints, err
}

func (d *DatabaseStore) UpdateComplaintStatus(id string, status string) error {
	return d.updateStatus(&models.Complaint{}, id, status)
}

// Promotion operations

func (d *DatabaseStore) CreatePromotion(promotion *models.Promotion) (*models.Promotion, error) {
	if err := d.db.Create(promotion).Error; err != nil {
		return nil, err
	}
	return promotion, nil
}

func (d *DatabaseStore) GetPromotion(id string) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := d.db.First(&promotion, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &promotion, nil
}

func (d *DatabaseStore) MarkPromotionSent(id string, recipients int) error {
	now := time.Now()
	result := d.db.Model(&models.Promotion{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     models.PromotionStatusSent,
			"recipients": recipients,
			"sent_date":  &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// updateStatus sets the status column on any entity by primary key
func (d *DatabaseStore) updateStatus(model interface{}, id string, status string) error {
	result := d.db.Model(model).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
