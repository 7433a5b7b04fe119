package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order represents a food order placed through the WhatsApp flow
type Order struct {
	ID           string `json:"id" gorm:"primaryKey"`
	RestaurantID string `json:"restaurant_id" gorm:"index"`

	Customer Customer `json:"customer" gorm:"embedded;embeddedPrefix:customer_"`

	Items []OrderItem `json:"items" gorm:"serializer:json"`

	OrderType string  `json:"order_type"` // "delivery" or "pickup"
	Total     float64 `json:"total"`
	Status    string  `json:"status" gorm:"default:new"`
	Notes     string  `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem is one line of an order
type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"` // unit price at order time
}

// Order type constants
const (
	OrderTypeDelivery = "delivery"
	OrderTypePickup   = "pickup"
)

// OrderStatus constants
const (
	OrderStatusNew       = "new"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// BeforeCreate hook to auto-generate the order ID
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = OrderStatusNew
	}
	return nil
}

// Reference returns the short human-readable order reference shared
// with the customer (last 6 characters of the ID).
func (o *Order) Reference() string {
	return shortRef(o.ID)
}

// shortRef trims an entity ID down to the last 6 characters
func shortRef(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}
